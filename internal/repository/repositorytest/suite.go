// Package repositorytest holds the contract suite every
// repository.ReminderRepository implementation must pass.
package repositorytest

import (
	"context"
	"math"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"locationreminders/internal/domain"
	"locationreminders/internal/repository"
)

// Factory opens a fresh, isolated store. Implementations register
// Close with t.Cleanup.
type Factory func(t *testing.T) repository.ReminderRepository

// RandomReminder builds a reminder with fake text and coordinates drawn
// from [-360, 360], deliberately outside the valid WGS84 range.
func RandomReminder() *domain.Reminder {
	return domain.NewReminder(
		gofakeit.Sentence(3),
		gofakeit.Sentence(10),
		gofakeit.City(),
		gofakeit.Float64Range(-360, 360),
		gofakeit.Float64Range(-360, 360),
	)
}

// Run executes the contract suite against stores produced by newRepo
func Run(t *testing.T, newRepo Factory) {
	t.Run("GetReminders", func(t *testing.T) { testGetReminders(t, newRepo(t)) })
	t.Run("InsertReminderGetByID", func(t *testing.T) { testInsertGetByID(t, newRepo(t)) })
	t.Run("GetByIDNotFound", func(t *testing.T) { testGetByIDNotFound(t, newRepo(t)) })
	t.Run("DeleteReminders", func(t *testing.T) { testDeleteReminders(t, newRepo(t)) })
	t.Run("UpsertReplaces", func(t *testing.T) { testUpsert(t, newRepo(t)) })
	t.Run("EnumerationCompleteness", func(t *testing.T) { testEnumeration(t, newRepo(t)) })
	t.Run("ConcreteScenario", func(t *testing.T) { testConcreteScenario(t, newRepo(t)) })
	t.Run("SaveRequiresID", func(t *testing.T) { testSaveRequiresID(t, newRepo(t)) })
	t.Run("ArbitraryContent", func(t *testing.T) { testArbitraryContent(t, newRepo(t)) })
	t.Run("DeleteByID", func(t *testing.T) { testDelete(t, newRepo(t)) })
	t.Run("Count", func(t *testing.T) { testCount(t, newRepo(t)) })
	t.Run("ReplaceAll", func(t *testing.T) { testReplaceAll(t, newRepo(t)) })
	t.Run("ReturnedRecordsAreCopies", func(t *testing.T) { testReturnedCopies(t, newRepo(t)) })
}

func testGetReminders(t *testing.T, repo repository.ReminderRepository) {
	ctx := context.Background()
	reminder := RandomReminder()
	require.NoError(t, repo.Save(ctx, reminder))

	reminders, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, reminders, 1)
	assert.Equal(t, *reminder, reminders[0])
}

func testInsertGetByID(t *testing.T, repo repository.ReminderRepository) {
	ctx := context.Background()
	reminder := RandomReminder()
	require.NoError(t, repo.Save(ctx, reminder))

	loaded, err := repo.GetByID(ctx, reminder.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, reminder, loaded)
}

func testGetByIDNotFound(t *testing.T, repo repository.ReminderRepository) {
	ctx := context.Background()

	loaded, err := repo.GetByID(ctx, uuid.NewString())
	require.NoError(t, err)
	assert.Nil(t, loaded)

	// Populated store, unassigned id
	require.NoError(t, repo.Save(ctx, RandomReminder()))
	loaded, err = repo.GetByID(ctx, uuid.NewString())
	require.NoError(t, err)
	assert.Nil(t, loaded)

	loaded, err = repo.GetByID(ctx, "")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func testDeleteReminders(t *testing.T, repo repository.ReminderRepository) {
	ctx := context.Background()
	var saved []*domain.Reminder
	for i := 0; i < 4; i++ {
		r := RandomReminder()
		require.NoError(t, repo.Save(ctx, r))
		saved = append(saved, r)
	}

	require.NoError(t, repo.DeleteAll(ctx))

	reminders, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, reminders)

	for _, r := range saved {
		loaded, err := repo.GetByID(ctx, r.ID)
		require.NoError(t, err)
		assert.Nil(t, loaded, "reminder %s should be gone", r.ID)
	}

	// Clearing an empty store is fine
	require.NoError(t, repo.DeleteAll(ctx))
}

func testUpsert(t *testing.T, repo repository.ReminderRepository) {
	ctx := context.Background()
	original := RandomReminder()
	require.NoError(t, repo.Save(ctx, original))

	updated := RandomReminder()
	updated.ID = original.ID
	require.NoError(t, repo.Save(ctx, updated))

	reminders, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, reminders, 1)
	assert.Equal(t, *updated, reminders[0])

	loaded, err := repo.GetByID(ctx, original.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, loaded)
}

func testEnumeration(t *testing.T, repo repository.ReminderRepository) {
	ctx := context.Background()
	const n = 25

	want := make([]domain.Reminder, 0, n)
	for i := 0; i < n; i++ {
		r := RandomReminder()
		require.NoError(t, repo.Save(ctx, r))
		want = append(want, *r)
	}

	got, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, want, got)
}

func testConcreteScenario(t *testing.T, repo repository.ReminderRepository) {
	ctx := context.Background()
	reminder := domain.NewReminder("title", "description", "location", 12.5, -7.3)
	require.NoError(t, repo.Save(ctx, reminder))

	reminders, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, reminders, 1)
	got := reminders[0]
	assert.Equal(t, reminder.ID, got.ID)
	assert.Equal(t, "title", got.Title)
	assert.Equal(t, "description", got.Description)
	assert.Equal(t, "location", got.Location)
	assert.Equal(t, 12.5, got.Latitude)
	assert.Equal(t, -7.3, got.Longitude)

	loaded, err := repo.GetByID(ctx, reminder.ID)
	require.NoError(t, err)
	assert.Equal(t, reminder, loaded)

	require.NoError(t, repo.DeleteAll(ctx))
	reminders, err = repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, reminders)
}

func testSaveRequiresID(t *testing.T, repo repository.ReminderRepository) {
	ctx := context.Background()

	err := repo.Save(ctx, &domain.Reminder{Title: "no id"})
	require.ErrorIs(t, err, domain.ErrMissingID)
	assert.NotErrorIs(t, err, repository.ErrStorage)

	require.ErrorIs(t, repo.Save(ctx, nil), domain.ErrMissingID)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func testArbitraryContent(t *testing.T, repo repository.ReminderRepository) {
	ctx := context.Background()
	reminder := domain.NewReminder(
		"",
		"line one\nline two\t'quoted' \"double\" ; DROP TABLE reminders; --",
		"Zürich, 日本 🚲",
		-360,
		1e308,
	)
	require.NoError(t, repo.Save(ctx, reminder))

	loaded, err := repo.GetByID(ctx, reminder.ID)
	require.NoError(t, err)
	assert.Equal(t, reminder, loaded)

	// NaN never compares equal, so non-finite values are checked one by one
	nonFinite := []*domain.Reminder{
		domain.NewReminder("nan", "", "", math.NaN(), math.NaN()),
		domain.NewReminder("inf", "", "", math.Inf(1), math.Inf(-1)),
	}
	for _, r := range nonFinite {
		require.NoError(t, repo.Save(ctx, r))
	}

	nan, err := repo.GetByID(ctx, nonFinite[0].ID)
	require.NoError(t, err)
	require.NotNil(t, nan)
	assert.True(t, math.IsNaN(nan.Latitude))
	assert.True(t, math.IsNaN(nan.Longitude))

	inf, err := repo.GetByID(ctx, nonFinite[1].ID)
	require.NoError(t, err)
	require.NotNil(t, inf)
	assert.True(t, math.IsInf(inf.Latitude, 1))
	assert.True(t, math.IsInf(inf.Longitude, -1))

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func testDelete(t *testing.T, repo repository.ReminderRepository) {
	ctx := context.Background()
	keep := RandomReminder()
	drop := RandomReminder()
	require.NoError(t, repo.Save(ctx, keep))
	require.NoError(t, repo.Save(ctx, drop))

	require.NoError(t, repo.Delete(ctx, drop.ID))

	loaded, err := repo.GetByID(ctx, drop.ID)
	require.NoError(t, err)
	assert.Nil(t, loaded)

	reminders, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, reminders, 1)
	assert.Equal(t, keep.ID, reminders[0].ID)

	// Unknown id is a no-op
	require.NoError(t, repo.Delete(ctx, uuid.NewString()))
}

func testCount(t *testing.T, repo repository.ReminderRepository) {
	ctx := context.Background()

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	r := RandomReminder()
	require.NoError(t, repo.Save(ctx, r))
	require.NoError(t, repo.Save(ctx, r))
	require.NoError(t, repo.Save(ctx, RandomReminder()))

	count, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func testReplaceAll(t *testing.T, repo repository.ReminderRepository) {
	ctx := context.Background()
	old := RandomReminder()
	require.NoError(t, repo.Save(ctx, old))

	incoming := []domain.Reminder{*RandomReminder(), *RandomReminder(), *RandomReminder()}
	require.NoError(t, repo.ReplaceAll(ctx, incoming))

	got, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, incoming, got)

	loaded, err := repo.GetByID(ctx, old.ID)
	require.NoError(t, err)
	assert.Nil(t, loaded)

	t.Run("invalid record leaves store untouched", func(t *testing.T) {
		bad := []domain.Reminder{*RandomReminder(), {Title: "missing id"}}
		err := repo.ReplaceAll(ctx, bad)
		require.ErrorIs(t, err, domain.ErrMissingID)

		got, err := repo.GetAll(ctx)
		require.NoError(t, err)
		assert.ElementsMatch(t, incoming, got)
	})

	t.Run("duplicate ids collapse to the last one", func(t *testing.T) {
		first := RandomReminder()
		second := RandomReminder()
		second.ID = first.ID
		require.NoError(t, repo.ReplaceAll(ctx, []domain.Reminder{*first, *second}))

		got, err := repo.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, *second, got[0])
	})
}

func testReturnedCopies(t *testing.T, repo repository.ReminderRepository) {
	ctx := context.Background()
	reminder := RandomReminder()
	require.NoError(t, repo.Save(ctx, reminder))

	// Mutating the caller's value after Save must not leak into the store
	original := *reminder
	reminder.Title = "mutated after save"

	loaded, err := repo.GetByID(ctx, reminder.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, original.Title, loaded.Title)

	loaded.Title = "mutated after load"
	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, original.Title, all[0].Title)
}

