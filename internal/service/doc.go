// Package service implements business logic for location reminders.
//
// ReminderService sits between the CLI and the repository layer. It creates
// reminders with fresh IDs, rejects reminders without a title, turns store
// absence into ErrReminderNotFound, and moves reminder sets in and out
// through codec importers and exporters.
//
// # Event System
//
// Successful writes publish events on an EventBus. Handlers run
// synchronously on the publishing goroutine, after the write has completed.
//
// # Design Principles
//
// - Services own business logic and validation
// - Repository pattern for data access
// - Context-aware for cancellation and timeouts
package service
