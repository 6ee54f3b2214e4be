// Package domain defines the core types for the location reminders store.
//
// Reminder is the single persisted entity: a user note tied to a named place
// and a latitude/longitude pair. Its ID is generated client-side by
// NewReminder before any store sees it and is the record's primary key.
//
// Coordinates carries a position. InRange is advisory; nothing in the
// persistence layer rejects out-of-range values.
//
// # Design Principles
//
// - No database or external dependencies beyond ID generation
// - Stores validate only ID presence
package domain
