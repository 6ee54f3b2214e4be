package sqlite

import (
	"context"
	"database/sql"
	"math"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"locationreminders/internal/domain"
	"locationreminders/internal/repository"
	"locationreminders/internal/repository/repositorytest"
)

// newTestRepo creates an in-memory SQLite repository for testing
func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := New(MemoryPath)
	require.NoError(t, err, "failed to create test repository")

	t.Cleanup(func() {
		repo.Close()
	})
	return repo
}

func TestRepositoryContract(t *testing.T) {
	repositorytest.Run(t, func(t *testing.T) repository.ReminderRepository {
		return newTestRepo(t)
	})
}

func TestFileRepositoryContract(t *testing.T) {
	repositorytest.Run(t, func(t *testing.T) repository.ReminderRepository {
		repo, err := New(filepath.Join(t.TempDir(), "reminders.db"))
		require.NoError(t, err)
		t.Cleanup(func() { repo.Close() })
		return repo
	})
}

func TestReminderRowToDomain(t *testing.T) {
	row := reminderRow{
		ID:          "abc",
		Title:       "title",
		Description: "description",
		Location:    "location",
		Latitude:    sql.NullFloat64{Float64: 12.5, Valid: true},
		Longitude:   sql.NullFloat64{Float64: -7.3, Valid: true},
	}

	assert.Equal(t, &domain.Reminder{
		ID:          "abc",
		Title:       "title",
		Description: "description",
		Location:    "location",
		Latitude:    12.5,
		Longitude:   -7.3,
	}, row.toDomain())
	assert.Len(t, row.scanArgs(), 6)

	row.Latitude = sql.NullFloat64{}
	assert.True(t, math.IsNaN(row.toDomain().Latitude), "NULL coordinate reads back as NaN")
}

func TestNonFiniteCoordinatesRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	reminder := domain.NewReminder("t", "d", "l", math.NaN(), math.Inf(-1))
	require.NoError(t, repo.Save(ctx, reminder))

	var latNull bool
	require.NoError(t, repo.db.QueryRowContext(ctx,
		`SELECT latitude IS NULL FROM reminders WHERE id = ?`, reminder.ID).Scan(&latNull))
	assert.True(t, latNull)

	loaded, err := repo.GetByID(ctx, reminder.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.True(t, math.IsNaN(loaded.Latitude))
	assert.True(t, math.IsInf(loaded.Longitude, -1))
}

func TestReminderInsertArgs(t *testing.T) {
	r := domain.NewReminder("title", "description", "location", 12.5, -7.3)
	args := reminderInsertArgs(r)

	assert.Equal(t, []any{r.ID, "title", "description", "location", 12.5, -7.3}, args)
}

func TestInstancesAreIsolated(t *testing.T) {
	ctx := context.Background()
	a := newTestRepo(t)
	b := newTestRepo(t)

	require.NoError(t, a.Save(ctx, repositorytest.RandomReminder()))

	count, err := b.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestMemoryDataDiscardedOnClose(t *testing.T) {
	ctx := context.Background()
	repo, err := New(MemoryPath)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, repositorytest.RandomReminder()))
	require.NoError(t, repo.Close())

	reopened := newTestRepo(t)
	all, err := reopened.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestFileDataSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "reminders.db")

	repo, err := New(path)
	require.NoError(t, err)
	reminder := repositorytest.RandomReminder()
	require.NoError(t, repo.Save(ctx, reminder))
	require.NoError(t, repo.Close())

	reopened, err := New(path)
	require.NoError(t, err)
	t.Cleanup(func() { reopened.Close() })

	loaded, err := reopened.GetByID(ctx, reminder.ID)
	require.NoError(t, err)
	assert.Equal(t, reminder, loaded)
}

func TestClosedRepositoryReturnsStorageError(t *testing.T) {
	ctx := context.Background()
	repo, err := New(MemoryPath)
	require.NoError(t, err)
	require.NoError(t, repo.Close())

	_, err = repo.GetAll(ctx)
	assert.ErrorIs(t, err, repository.ErrStorage)

	_, err = repo.GetByID(ctx, "anything")
	assert.ErrorIs(t, err, repository.ErrStorage)

	err = repo.Save(ctx, repositorytest.RandomReminder())
	assert.ErrorIs(t, err, repository.ErrStorage)

	assert.ErrorIs(t, repo.DeleteAll(ctx), repository.ErrStorage)
}

func TestOpenFailureIsStorageError(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing", "dir", "reminders.db"))
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrStorage)
}

func TestUpsertPreservesCreatedAt(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	reminder := repositorytest.RandomReminder()
	require.NoError(t, repo.Save(ctx, reminder))

	var createdBefore string
	require.NoError(t, repo.db.QueryRowContext(ctx,
		`SELECT created_at FROM reminders WHERE id = ?`, reminder.ID).Scan(&createdBefore))

	reminder.Title = "updated"
	require.NoError(t, repo.Save(ctx, reminder))

	var createdAfter string
	require.NoError(t, repo.db.QueryRowContext(ctx,
		`SELECT created_at FROM reminders WHERE id = ?`, reminder.ID).Scan(&createdAfter))
	assert.Equal(t, createdBefore, createdAfter)
}

func TestGetAllInsertionOrder(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	var ids []string
	for i := 0; i < 5; i++ {
		r := repositorytest.RandomReminder()
		require.NoError(t, repo.Save(ctx, r))
		ids = append(ids, r.ID)
	}

	// Upserting the first one must not move it
	first, err := repo.GetByID(ctx, ids[0])
	require.NoError(t, err)
	first.Title = "moved?"
	require.NoError(t, repo.Save(ctx, first))

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	var got []string
	for _, r := range all {
		got = append(got, r.ID)
	}
	assert.Equal(t, ids, got)
}

func TestMigrateIsIdempotent(t *testing.T) {
	repo := newTestRepo(t)
	require.NoError(t, repo.migrate())
	require.NoError(t, repo.migrate())
}

func TestConcurrentUpsertsSameID(t *testing.T) {
	ctx := context.Background()
	repo, err := New(filepath.Join(t.TempDir(), "reminders.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	base := repositorytest.RandomReminder()
	writes := make([]*domain.Reminder, 10)
	for i := range writes {
		writes[i] = repositorytest.RandomReminder()
		writes[i].ID = base.ID
	}

	var wg sync.WaitGroup
	errs := make(chan error, len(writes))
	for _, r := range writes {
		wg.Add(1)
		go func(r *domain.Reminder) {
			defer wg.Done()
			errs <- repo.Save(ctx, r)
		}(r)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
