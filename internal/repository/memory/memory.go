// Package memory implements repository.ReminderRepository on an in-process
// concurrent map, optionally mirrored to a snapshot file.
package memory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"

	cmap "github.com/orcaman/concurrent-map/v2"

	"locationreminders/internal/codec"
	"locationreminders/internal/domain"
	"locationreminders/internal/repository"
)

type store = cmap.ConcurrentMap[string, domain.Reminder]

// Repository keeps reminders in memory. Without a snapshot nothing
// survives Close.
type Repository struct {
	// items is swapped whole by DeleteAll and ReplaceAll so readers see
	// either the old set or the new one.
	items  atomic.Pointer[store]
	closed atomic.Bool

	// mu serializes mutations. The snapshot is written before the map
	// changes, so a failed write leaves both untouched.
	mu       sync.Mutex
	snapshot string
	codec    codec.Codec
	logger   *slog.Logger
}

var _ repository.ReminderRepository = (*Repository)(nil)

// Option configures a Repository
type Option func(*Repository)

// WithSnapshot persists the store to path after every mutation, using c
// as the file format. An existing file at path is loaded on open.
func WithSnapshot(path string, c codec.Codec) Option {
	return func(r *Repository) {
		r.snapshot = path
		r.codec = c
	}
}

// WithLogger sets the logger used for lifecycle messages
func WithLogger(l *slog.Logger) Option {
	return func(r *Repository) {
		r.logger = l
	}
}

// New creates an empty store, or one loaded from its snapshot
func New(opts ...Option) (*Repository, error) {
	r := &Repository{logger: slog.Default()}
	r.items.Store(newStore())
	for _, opt := range opts {
		opt(r)
	}

	if r.snapshot != "" {
		if r.codec == nil {
			c, err := codec.ForPath(r.snapshot)
			if err != nil {
				return nil, fmt.Errorf("snapshot format: %w", err)
			}
			r.codec = c
		}
		if err := r.load(); err != nil {
			return nil, repository.Wrap("load snapshot", err)
		}
	}

	return r, nil
}

func (r *Repository) load() error {
	f, err := os.Open(r.snapshot)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	defer f.Close()

	reminders, err := r.codec.Parse(f)
	if err != nil {
		return err
	}
	for _, rem := range reminders {
		if rem.ID == "" {
			continue
		}
		r.items.Load().Set(rem.ID, rem)
	}

	r.logger.Debug("reminder snapshot loaded", "path", r.snapshot, "count", len(reminders))
	return nil
}

func newStore() *store {
	m := cmap.New[domain.Reminder]()
	return &m
}

// persist writes items to the snapshot via temp file + rename.
// Callers hold r.mu.
func (r *Repository) persist(items map[string]domain.Reminder) error {
	dir := filepath.Dir(r.snapshot)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(r.snapshot)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := r.codec.Export(sorted(items), tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), r.snapshot)
}

func (r *Repository) checkOpen(op string) error {
	if r.closed.Load() {
		return repository.Wrap(op, repository.ErrClosed)
	}
	return nil
}

// sorted returns the reminders ordered by ID
func sorted(items map[string]domain.Reminder) []domain.Reminder {
	reminders := make([]domain.Reminder, 0, len(items))
	for _, rem := range items {
		reminders = append(reminders, rem)
	}
	sort.Slice(reminders, func(i, j int) bool {
		return reminders[i].ID < reminders[j].ID
	})
	return reminders
}

// Save inserts or replaces the reminder by ID
func (r *Repository) Save(ctx context.Context, reminder *domain.Reminder) error {
	if err := reminder.Validate(); err != nil {
		return err
	}
	if err := r.checkOpen("save reminder"); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	items := r.items.Load()
	if r.snapshot != "" {
		next := items.Items()
		next[reminder.ID] = *reminder
		if err := r.persist(next); err != nil {
			return repository.Wrap("save reminder", err)
		}
	}
	items.Set(reminder.ID, *reminder)
	return nil
}

// GetAll returns every reminder ordered by ID
func (r *Repository) GetAll(ctx context.Context) ([]domain.Reminder, error) {
	if err := r.checkOpen("query reminders"); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return sorted(r.items.Load().Items()), nil
}

// GetByID returns the reminder, or nil, nil when absent
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Reminder, error) {
	if err := r.checkOpen("query reminder"); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rem, ok := r.items.Load().Get(id)
	if !ok {
		return nil, nil
	}
	return &rem, nil
}

// Count returns the number of stored reminders
func (r *Repository) Count(ctx context.Context) (int, error) {
	if err := r.checkOpen("count reminders"); err != nil {
		return 0, err
	}
	return r.items.Load().Count(), nil
}

// Delete removes one reminder. Unknown IDs are ignored.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.checkOpen("delete reminder"); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	items := r.items.Load()
	if r.snapshot != "" && items.Has(id) {
		next := items.Items()
		delete(next, id)
		if err := r.persist(next); err != nil {
			return repository.Wrap("delete reminder", err)
		}
	}
	items.Remove(id)
	return nil
}

// DeleteAll removes every reminder
func (r *Repository) DeleteAll(ctx context.Context) error {
	if err := r.checkOpen("delete reminders"); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return repository.Wrap("delete reminders", r.swap(newStore()))
}

// ReplaceAll swaps the contents for reminders. Later entries win when IDs repeat.
func (r *Repository) ReplaceAll(ctx context.Context, reminders []domain.Reminder) error {
	for i := range reminders {
		if err := reminders[i].Validate(); err != nil {
			return fmt.Errorf("reminder %d: %w", i, err)
		}
	}
	if err := r.checkOpen("replace reminders"); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	next := newStore()
	for _, rem := range reminders {
		next.Set(rem.ID, rem)
	}
	return repository.Wrap("replace reminders", r.swap(next))
}

// swap installs next as the whole store once the snapshot holds it.
// Callers hold r.mu.
func (r *Repository) swap(next *store) error {
	if r.snapshot != "" {
		if err := r.persist(next.Items()); err != nil {
			return err
		}
	}
	r.items.Store(next)
	return nil
}

// Close discards the in-memory contents. The snapshot, if any, is left in place.
func (r *Repository) Close() error {
	if r.closed.Swap(true) {
		return nil
	}
	r.items.Store(newStore())
	r.logger.Debug("memory reminder store closed", "snapshot", r.snapshot)
	return nil
}
