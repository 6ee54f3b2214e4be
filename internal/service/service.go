package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"locationreminders/internal/codec"
	"locationreminders/internal/domain"
	"locationreminders/internal/repository"
)

var (
	// ErrReminderNotFound is returned by Get for unknown IDs
	ErrReminderNotFound = errors.New("reminder not found")
	// ErrEmptyTitle is returned when creating or saving an untitled reminder
	ErrEmptyTitle = errors.New("reminder title is required")
)

// CreateInput carries the user-supplied fields of a new reminder
type CreateInput struct {
	Title       string
	Description string
	Location    string
	Latitude    float64
	Longitude   float64
}

// ImportResult summarizes an Import call
type ImportResult struct {
	Count       int  `json:"count"`
	Replaced    bool `json:"replaced"`
	AssignedIDs int  `json:"assigned_ids"`
}

// ReminderService provides business logic for reminder operations
type ReminderService struct {
	repo     repository.ReminderRepository
	eventBus *EventBus
	logger   *slog.Logger
}

// NewReminderService creates a new reminder service
func NewReminderService(repo repository.ReminderRepository, eventBus *EventBus, logger *slog.Logger) *ReminderService {
	if eventBus == nil {
		eventBus = NewEventBus()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ReminderService{
		repo:     repo,
		eventBus: eventBus,
		logger:   logger,
	}
}

// Create builds a reminder with a new ID and persists it
func (s *ReminderService) Create(ctx context.Context, in CreateInput) (*domain.Reminder, error) {
	reminder := domain.NewReminder(in.Title, in.Description, in.Location, in.Latitude, in.Longitude)
	if err := s.Save(ctx, reminder); err != nil {
		return nil, err
	}
	return reminder, nil
}

// Save upserts a reminder that already has an ID
func (s *ReminderService) Save(ctx context.Context, reminder *domain.Reminder) error {
	if err := s.validate(reminder); err != nil {
		return err
	}

	if !reminder.Coordinates().InRange() {
		s.logger.Warn("reminder coordinates out of range",
			"id", reminder.ID, "coordinates", reminder.Coordinates().String())
	}

	if err := s.repo.Save(ctx, reminder); err != nil {
		return fmt.Errorf("save reminder %s: %w", reminder.ID, err)
	}

	s.logger.Debug("reminder saved", "id", reminder.ID)
	s.eventBus.Publish(Event{
		Type:    EventReminderSaved,
		Payload: *reminder,
	})

	return nil
}

// Get retrieves a single reminder by ID
func (s *ReminderService) Get(ctx context.Context, id string) (*domain.Reminder, error) {
	reminder, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get reminder %s: %w", id, err)
	}
	if reminder == nil {
		return nil, fmt.Errorf("%w: %s", ErrReminderNotFound, id)
	}
	return reminder, nil
}

// List returns all reminders
func (s *ReminderService) List(ctx context.Context) ([]domain.Reminder, error) {
	reminders, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list reminders: %w", err)
	}
	return reminders, nil
}

// Delete removes one reminder. Deleting an unknown ID is not an error.
func (s *ReminderService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete reminder %s: %w", id, err)
	}

	s.eventBus.Publish(Event{
		Type:    EventReminderDeleted,
		Payload: map[string]string{"reminder_id": id},
	})

	return nil
}

// Clear removes every reminder and returns how many were stored
func (s *ReminderService) Clear(ctx context.Context) (int, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count reminders: %w", err)
	}

	if err := s.repo.DeleteAll(ctx); err != nil {
		return 0, fmt.Errorf("clear reminders: %w", err)
	}

	s.logger.Info("reminders cleared", "count", count)
	s.eventBus.Publish(Event{
		Type:    EventRemindersCleared,
		Payload: map[string]int{"count": count},
	})

	return count, nil
}

// Import reads reminders with importer and stores them. Entries without an
// ID get a fresh one. With replace set, the store ends up holding exactly
// the imported set; otherwise entries are upserted alongside existing ones.
func (s *ReminderService) Import(ctx context.Context, importer codec.Importer, r io.Reader, replace bool) (*ImportResult, error) {
	reminders, err := importer.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("import %s: %w", importer.Format(), err)
	}

	result := &ImportResult{Count: len(reminders), Replaced: replace}
	for i := range reminders {
		if reminders[i].ID == "" {
			reminders[i].ID = uuid.NewString()
			result.AssignedIDs++
		}
		if err := s.validate(&reminders[i]); err != nil {
			return nil, fmt.Errorf("import entry %d: %w", i, err)
		}
	}

	if replace {
		if err := s.repo.ReplaceAll(ctx, reminders); err != nil {
			return nil, fmt.Errorf("replace reminders: %w", err)
		}
	} else {
		for i := range reminders {
			if err := s.repo.Save(ctx, &reminders[i]); err != nil {
				return nil, fmt.Errorf("save reminder %s: %w", reminders[i].ID, err)
			}
		}
	}

	s.logger.Info("reminders imported",
		"format", importer.Format(), "count", result.Count, "replaced", replace)
	s.eventBus.Publish(Event{
		Type:    EventRemindersImported,
		Payload: *result,
	})

	return result, nil
}

// Export writes every reminder with exporter and returns how many were written
func (s *ReminderService) Export(ctx context.Context, exporter codec.Exporter, w io.Writer) (int, error) {
	reminders, err := s.List(ctx)
	if err != nil {
		return 0, err
	}

	if err := exporter.Export(reminders, w); err != nil {
		return 0, fmt.Errorf("export %s: %w", exporter.Format(), err)
	}

	return len(reminders), nil
}

func (s *ReminderService) validate(reminder *domain.Reminder) error {
	if err := reminder.Validate(); err != nil {
		return err
	}
	if reminder.Title == "" {
		return ErrEmptyTitle
	}
	return nil
}
