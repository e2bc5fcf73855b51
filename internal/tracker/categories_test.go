package tracker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"daytrack/internal/model"
	"daytrack/internal/storage"
)

func TestCreateCategoryUniqueness(t *testing.T) {
	tr, _ := newTestTracker(t)
	ctx := context.Background()

	_, err := tr.CreateCategory(ctx, "health")
	require.NoError(t, err)

	_, err = tr.CreateCategory(ctx, "health")
	assert.ErrorIs(t, err, ErrDuplicateName)

	// comparison is case-sensitive
	_, err = tr.CreateCategory(ctx, "Health")
	assert.NoError(t, err)

	_, err = tr.CreateCategory(ctx, "   ")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestDeleteCategoryCascades(t *testing.T) {
	tr, clock := newTestTracker(t)
	ctx := context.Background()

	cat, err := tr.CreateCategory(ctx, "health")
	require.NoError(t, err)

	task, err := tr.CreateAvailableTask(ctx, CreateTaskParams{
		Name: "Stretch", Category: "health", Priority: model.PriorityLow,
	})
	require.NoError(t, err)
	_, err = tr.CreateEvent(ctx, CreateEventParams{
		Name: "Yoga class", Category: "health",
		StartAt: clock.Now(), EndAt: clock.Now().Add(time.Hour),
	})
	require.NoError(t, err)
	_, err = tr.CreateGoal(ctx, CreateGoalParams{
		Name: "Mobility", Category: "health",
		TargetTask: task.Info.ID, Period: model.PeriodWeek, Frequency: 2,
	})
	require.NoError(t, err)

	// unrelated task keeps its category
	_, err = tr.CreateCategory(ctx, "errands")
	require.NoError(t, err)
	other, err := tr.CreateAvailableTask(ctx, CreateTaskParams{
		Name: "Buy milk", Category: "errands", Priority: model.PriorityLow,
	})
	require.NoError(t, err)

	deleted, err := tr.DeleteCategory(ctx, cat.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	for _, task := range tr.AvailableTasks() {
		if task.Info.ID == other.Info.ID {
			assert.Equal(t, "errands", task.Info.Category)
		} else {
			assert.Empty(t, task.Info.Category, "task %q still references deleted category", task.Info.Name)
		}
	}
	for _, event := range tr.Events() {
		assert.Empty(t, event.Info.Category)
	}
	for _, goal := range tr.ActiveGoals() {
		assert.Empty(t, goal.Info.Category)
	}

	// second delete of the same id reports false
	deleted, err = tr.DeleteCategory(ctx, cat.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

// flakyRepo wraps a repository and fails selected writes while armed.
type flakyRepo struct {
	storage.Repository
	failUpdateGoal     error
	failDeleteCategory error
}

func (r *flakyRepo) UpdateGoal(ctx context.Context, in storage.Goal) error {
	if r.failUpdateGoal != nil {
		return r.failUpdateGoal
	}
	return r.Repository.UpdateGoal(ctx, in)
}

func (r *flakyRepo) DeleteCategory(ctx context.Context, id string) error {
	if r.failDeleteCategory != nil {
		return r.failDeleteCategory
	}
	return r.Repository.DeleteCategory(ctx, id)
}

func TestDeleteCategoryAllOrNothing(t *testing.T) {
	ctx := context.Background()
	clock := &testClock{now: time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC)}
	repo := &flakyRepo{Repository: storage.NewMemoryRepository()}
	tr := New(repo, WithClock(clock.Now))
	require.NoError(t, tr.Load(ctx))

	cat, err := tr.CreateCategory(ctx, "health")
	require.NoError(t, err)
	task, err := tr.CreateAvailableTask(ctx, CreateTaskParams{
		Name: "Stretch", Category: "health", Priority: model.PriorityLow,
	})
	require.NoError(t, err)
	_, err = tr.CreateGoal(ctx, CreateGoalParams{
		Name: "Mobility", Category: "health",
		TargetTask: task.ID, Period: model.PeriodWeek, Frequency: 2,
	})
	require.NoError(t, err)

	intact := func() {
		t.Helper()
		require.Len(t, tr.Categories(), 1)
		for _, got := range tr.AvailableTasks() {
			assert.Equal(t, "health", got.Category)
		}
		for _, goal := range tr.ActiveGoals() {
			assert.Equal(t, "health", goal.Category)
		}
		row, err := repo.GetTask(ctx, task.ID)
		require.NoError(t, err)
		assert.Equal(t, "health", row.Category, "task row not restored in repository")
	}

	// a failing reference rewrite leaves category and references alone,
	// including the task row persisted before the failure
	repo.failUpdateGoal = errors.New("disk full")
	deleted, err := tr.DeleteCategory(ctx, cat.ID)
	require.Error(t, err)
	assert.False(t, deleted)
	intact()

	// a failing row delete after the rewrites is rolled back the same way
	repo.failUpdateGoal = nil
	repo.failDeleteCategory = errors.New("disk full")
	deleted, err = tr.DeleteCategory(ctx, cat.ID)
	require.Error(t, err)
	assert.False(t, deleted)
	intact()

	// once the repo recovers the cascade goes through
	repo.failDeleteCategory = nil
	deleted, err = tr.DeleteCategory(ctx, cat.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Empty(t, tr.Categories())
}

func TestRenameCategory(t *testing.T) {
	tr, _ := newTestTracker(t)
	ctx := context.Background()

	cat, err := tr.CreateCategory(ctx, "health")
	require.NoError(t, err)
	_, err = tr.CreateCategory(ctx, "errands")
	require.NoError(t, err)

	task, err := tr.CreateAvailableTask(ctx, CreateTaskParams{
		Name: "Stretch", Category: "health", Priority: model.PriorityLow,
	})
	require.NoError(t, err)

	// uniqueness is checked against the other categories
	assert.ErrorIs(t, tr.RenameCategory(ctx, cat.ID, "errands"), ErrDuplicateName)
	assert.ErrorIs(t, tr.RenameCategory(ctx, "ghost", "x"), ErrNotFound)

	require.NoError(t, tr.RenameCategory(ctx, cat.ID, "wellness"))
	for _, got := range tr.AvailableTasks() {
		if got.Info.ID == task.Info.ID {
			assert.Equal(t, "wellness", got.Info.Category)
		}
	}
}
