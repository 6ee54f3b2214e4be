package repository

import (
	"context"

	"locationreminders/internal/domain"
)

// ReminderRepository defines the interface for reminder data access.
//
// Absence is not an error: GetByID returns (nil, nil) for unknown IDs.
// Engine failures are returned as *StorageError.
type ReminderRepository interface {
	// Write operations
	Save(ctx context.Context, reminder *domain.Reminder) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error

	// Read operations
	GetAll(ctx context.Context) ([]domain.Reminder, error)
	GetByID(ctx context.Context, id string) (*domain.Reminder, error)
	Count(ctx context.Context) (int, error)

	// Bulk operations
	ReplaceAll(ctx context.Context, reminders []domain.Reminder) error

	// Close releases the backing storage
	Close() error
}
