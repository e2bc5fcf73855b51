package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "daytrack-test.db")
	db, err := sql.Open("sqlite3", dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, MigrateUp(db))

	repo, err := NewSQLiteRepository(db)
	require.NoError(t, err)
	return repo
}

func TestTaskCRUD(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	created := time.Date(2026, 8, 24, 8, 0, 0, 0, time.UTC)
	due := created.AddDate(0, 0, 3)

	task := Task{
		ID:          "task-1",
		Name:        "Buy milk",
		Description: "Corner shop",
		Category:    "errands",
		BeginAt:     created,
		DueAt:       &due,
		Priority:    "Medium",
		OneTime:     true,
		CreatedAt:   created,
	}
	require.NoError(t, repo.CreateTask(ctx, task))

	got, err := repo.GetTask(ctx, "task-1")
	require.NoError(t, err)
	assert.Equal(t, task.Name, got.Name)
	assert.True(t, got.OneTime)
	require.NotNil(t, got.DueAt)
	assert.True(t, got.DueAt.Equal(due))
	assert.Nil(t, got.CompletedAt)

	completedAt := created.Add(6 * time.Hour)
	got.CompletedAt = &completedAt
	require.NoError(t, repo.UpdateTask(ctx, got))

	got, err = repo.GetTask(ctx, "task-1")
	require.NoError(t, err)
	require.NotNil(t, got.CompletedAt)
	assert.True(t, got.CompletedAt.Equal(completedAt))

	require.NoError(t, repo.DeleteTask(ctx, "task-1"))
	_, err = repo.GetTask(ctx, "task-1")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.DeleteTask(ctx, "task-1"), ErrNotFound)
}

func TestListTasksByCategory(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	base := time.Date(2026, 8, 24, 8, 0, 0, 0, time.UTC)

	for i, category := range []string{"health", "errands", "health"} {
		require.NoError(t, repo.CreateTask(ctx, Task{
			ID:        "task-" + string(rune('a'+i)),
			Name:      "Task " + string(rune('A'+i)),
			Category:  category,
			BeginAt:   base,
			Priority:  "Low",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	got, err := repo.ListTasks(ctx, TaskListFilter{Category: "health"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "task-a", got[0].ID)
	assert.Equal(t, "task-c", got[1].ID)
}

func TestGoalCRUDAndFilter(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	begin := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)

	goal := Goal{
		ID:             "goal-1",
		Name:           "Reading habit",
		BeginAt:        begin,
		DueAt:          begin.AddDate(0, 0, 7),
		TargetTaskID:   "task-1",
		TargetTaskName: "Read 10 pages",
		Period:         "Week",
		Frequency:      3,
		CreatedAt:      begin,
	}
	require.NoError(t, repo.CreateGoal(ctx, goal))

	goal.Progress = 3
	goal.Completed = true
	require.NoError(t, repo.UpdateGoal(ctx, goal))

	active := false
	got, err := repo.ListGoals(ctx, GoalListFilter{Completed: &active})
	require.NoError(t, err)
	assert.Empty(t, got)

	done := true
	got, err = repo.ListGoals(ctx, GoalListFilter{Completed: &done})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 3, got[0].Progress)
	assert.True(t, got[0].Completed)
}

func TestDailyLogUpsertRoundTrip(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	at := time.Date(2026, 8, 30, 21, 0, 0, 0, time.UTC)

	log := DailyLog{
		Date: "2026-08-30",
		Tasks: []DailyLogTask{
			{TaskID: "task-1", Completed: true},
			{TaskID: "task-2"},
		},
		Entries: []WellnessEntry{
			{ID: "entry-1", Date: "2026-08-30", At: at, Stress: 3, Energy: 6, Fatigue: 4, Mood: "Calm", Note: "long day"},
		},
	}
	require.NoError(t, repo.UpsertDailyLog(ctx, log))

	got, err := repo.GetDailyLog(ctx, "2026-08-30")
	require.NoError(t, err)
	require.Len(t, got.Tasks, 2)
	require.Len(t, got.Entries, 1)
	assert.Equal(t, "Calm", got.Entries[0].Mood)

	// replace the row set on upsert
	log.Tasks = log.Tasks[:1]
	log.Entries = nil
	require.NoError(t, repo.UpsertDailyLog(ctx, log))

	got, err = repo.GetDailyLog(ctx, "2026-08-30")
	require.NoError(t, err)
	assert.Len(t, got.Tasks, 1)
	assert.Empty(t, got.Entries)

	_, err = repo.GetDailyLog(ctx, "2026-08-29")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListDailyLogsRange(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	for _, date := range []string{"2026-08-24", "2026-08-26", "2026-08-31"} {
		require.NoError(t, repo.UpsertDailyLog(ctx, DailyLog{Date: date}))
	}

	got, err := repo.ListDailyLogs(ctx, "2026-08-24", "2026-08-30")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "2026-08-24", got[0].Date)
	assert.Equal(t, "2026-08-26", got[1].Date)
}

func TestMoodLabelsCaseInsensitiveUnique(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	now := time.Date(2026, 8, 24, 8, 0, 0, 0, time.UTC)

	require.NoError(t, repo.CreateMoodLabel(ctx, MoodLabel{Name: "Calm", Kind: "Positive", CreatedAt: now}))
	// NOCASE collation on the primary key rejects a differently-cased duplicate
	assert.Error(t, repo.CreateMoodLabel(ctx, MoodLabel{Name: "calm", Kind: "Positive", CreatedAt: now}))

	require.NoError(t, repo.DeleteMoodLabel(ctx, "Calm"))
	assert.ErrorIs(t, repo.DeleteMoodLabel(ctx, "Calm"), ErrNotFound)
}

func TestCategoryCRUD(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	now := time.Date(2026, 8, 24, 8, 0, 0, 0, time.UTC)

	require.NoError(t, repo.CreateCategory(ctx, Category{ID: "cat-1", Name: "health", CreatedAt: now}))
	require.NoError(t, repo.UpdateCategory(ctx, Category{ID: "cat-1", Name: "wellness"}))

	got, err := repo.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "wellness", got[0].Name)

	require.NoError(t, repo.DeleteCategory(ctx, "cat-1"))
	assert.ErrorIs(t, repo.DeleteCategory(ctx, "cat-1"), ErrNotFound)
}
