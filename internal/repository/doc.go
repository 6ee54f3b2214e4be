// Package repository defines the data access interface for reminders.
//
// Two implementations live in subpackages: sqlite, an embedded SQL store
// backed by modernc.org/sqlite, and memory, an in-process map with an
// optional snapshot file. Both satisfy the same contract, verified by the
// shared suite in repositorytest:
//
// - Save is an upsert keyed by ID (last write wins)
// - GetByID returns (nil, nil) when the ID is unknown
// - DeleteAll leaves an empty store
// - Engine failures surface as *StorageError, matched by errors.Is(err, ErrStorage)
//
// # Testing
//
// Both backends run the suite against instance-scoped stores (":memory:"
// for sqlite, no snapshot for memory) that are closed in t.Cleanup.
package repository
