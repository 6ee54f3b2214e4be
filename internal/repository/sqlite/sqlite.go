package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"locationreminders/internal/domain"
	"locationreminders/internal/repository"

	_ "modernc.org/sqlite"
)

// MemoryPath opens a database that lives only as long as the Repository
const MemoryPath = ":memory:"

// DefaultBusyTimeout is applied to file databases unless overridden
const DefaultBusyTimeout = 5 * time.Second

// Repository implements repository.ReminderRepository using SQLite
type Repository struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

var _ repository.ReminderRepository = (*Repository)(nil)

// Option configures a Repository
type Option func(*options)

type options struct {
	busyTimeout time.Duration
	logger      *slog.Logger
}

// WithBusyTimeout sets how long a writer waits on a locked database
func WithBusyTimeout(d time.Duration) Option {
	return func(o *options) {
		o.busyTimeout = d
	}
}

// WithLogger sets the logger used for lifecycle messages
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// New opens (creating if needed) the database at path and migrates the schema.
// Pass MemoryPath for an instance-scoped in-memory database.
func New(path string, opts ...Option) (*Repository, error) {
	o := options{
		busyTimeout: DefaultBusyTimeout,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	db, err := sql.Open("sqlite", dsn(path, o.busyTimeout))
	if err != nil {
		return nil, repository.Wrap("open database", err)
	}

	if path == MemoryPath {
		// Every new connection to :memory: is a new empty database,
		// so the pool must never hold more than one.
		db.SetMaxOpenConns(1)
		db.SetConnMaxLifetime(0)
		db.SetConnMaxIdleTime(0)
	}

	repo := &Repository{db: db, path: path, logger: o.logger}
	if err := repo.migrate(); err != nil {
		db.Close()
		return nil, repository.Wrap("migrate database", err)
	}

	repo.logger.Debug("reminder database opened", "path", path)
	return repo, nil
}

func dsn(path string, busyTimeout time.Duration) string {
	if path == MemoryPath {
		return path
	}
	return fmt.Sprintf("file:%s?_pragma=busy_timeout(%d)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)",
		path, busyTimeout.Milliseconds())
}

func (r *Repository) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS reminders (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT NOT NULL,
		location TEXT NOT NULL,
		latitude REAL,
		longitude REAL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`

	_, err := r.db.Exec(schema)
	return err
}

// Save inserts the reminder, replacing every field of an existing row with the same ID
func (r *Repository) Save(ctx context.Context, reminder *domain.Reminder) error {
	if err := reminder.Validate(); err != nil {
		return err
	}

	_, err := r.db.ExecContext(ctx, upsertReminderSQL, reminderInsertArgs(reminder)...)
	if err != nil {
		return repository.Wrap("save reminder", err)
	}
	return nil
}

const upsertReminderSQL = `
	INSERT INTO reminders (` + reminderColumns + `, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
	ON CONFLICT(id) DO UPDATE SET
		title = excluded.title,
		description = excluded.description,
		location = excluded.location,
		latitude = excluded.latitude,
		longitude = excluded.longitude,
		updated_at = CURRENT_TIMESTAMP
`

// GetAll returns every stored reminder in insertion order
func (r *Repository) GetAll(ctx context.Context) ([]domain.Reminder, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+reminderColumns+`
		FROM reminders
		ORDER BY rowid
	`)
	if err != nil {
		return nil, repository.Wrap("query reminders", err)
	}
	defer rows.Close()

	reminders := make([]domain.Reminder, 0)
	for rows.Next() {
		var row reminderRow
		if err := rows.Scan(row.scanArgs()...); err != nil {
			return nil, repository.Wrap("scan reminder", err)
		}
		reminders = append(reminders, *row.toDomain())
	}

	if err := rows.Err(); err != nil {
		return nil, repository.Wrap("iterate reminders", err)
	}

	return reminders, nil
}

// GetByID retrieves a single reminder. Returns nil, nil when absent.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Reminder, error) {
	var row reminderRow
	err := r.db.QueryRowContext(ctx, `
		SELECT `+reminderColumns+`
		FROM reminders WHERE id = ?
	`, id).Scan(row.scanArgs()...)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, repository.Wrap("query reminder", err)
	}

	return row.toDomain(), nil
}

// Count returns the number of stored reminders
func (r *Repository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM reminders`).Scan(&n); err != nil {
		return 0, repository.Wrap("count reminders", err)
	}
	return n, nil
}

// Delete removes one reminder. Unknown IDs are ignored.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM reminders WHERE id = ?`, id); err != nil {
		return repository.Wrap("delete reminder", err)
	}
	return nil
}

// DeleteAll removes every reminder
func (r *Repository) DeleteAll(ctx context.Context) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reminders`)
	if err != nil {
		return repository.Wrap("delete reminders", err)
	}
	if n, err := res.RowsAffected(); err == nil {
		r.logger.Debug("reminders cleared", "count", n)
	}
	return nil
}

// ReplaceAll atomically swaps the table contents for reminders.
// Later entries win when IDs repeat.
func (r *Repository) ReplaceAll(ctx context.Context, reminders []domain.Reminder) error {
	for i := range reminders {
		if err := reminders[i].Validate(); err != nil {
			return fmt.Errorf("reminder %d: %w", i, err)
		}
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return repository.Wrap("begin transaction", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM reminders`); err != nil {
		return repository.Wrap("clear reminders", err)
	}

	stmt, err := tx.PrepareContext(ctx, upsertReminderSQL)
	if err != nil {
		return repository.Wrap("prepare statement", err)
	}
	defer stmt.Close()

	for i := range reminders {
		if _, err := stmt.ExecContext(ctx, reminderInsertArgs(&reminders[i])...); err != nil {
			return repository.Wrap(fmt.Sprintf("insert reminder %s", reminders[i].ID), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return repository.Wrap("commit transaction", err)
	}
	return nil
}

// Close closes the database connection. In-memory data is discarded.
func (r *Repository) Close() error {
	r.logger.Debug("reminder database closed", "path", r.path)
	return r.db.Close()
}
