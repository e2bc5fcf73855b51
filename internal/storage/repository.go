package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("storage: not found")

// Repository is the persistence port for the tracker. The tracker loads
// everything at startup and writes through on each mutation, so list
// calls dominate reads and per-entity writes dominate updates.
type Repository interface {
	CreateCategory(ctx context.Context, in Category) error
	UpdateCategory(ctx context.Context, in Category) error
	DeleteCategory(ctx context.Context, id string) error
	ListCategories(ctx context.Context) ([]Category, error)

	CreateTask(ctx context.Context, in Task) error
	GetTask(ctx context.Context, id string) (Task, error)
	UpdateTask(ctx context.Context, in Task) error
	DeleteTask(ctx context.Context, id string) error
	ListTasks(ctx context.Context, filter TaskListFilter) ([]Task, error)

	CreateEvent(ctx context.Context, in Event) error
	UpdateEvent(ctx context.Context, in Event) error
	DeleteEvent(ctx context.Context, id string) error
	ListEvents(ctx context.Context) ([]Event, error)

	CreateGoal(ctx context.Context, in Goal) error
	UpdateGoal(ctx context.Context, in Goal) error
	DeleteGoal(ctx context.Context, id string) error
	ListGoals(ctx context.Context, filter GoalListFilter) ([]Goal, error)

	UpsertDailyLog(ctx context.Context, in DailyLog) error
	GetDailyLog(ctx context.Context, date string) (DailyLog, error)
	ListDailyLogs(ctx context.Context, from, to string) ([]DailyLog, error)

	CreateMoodLabel(ctx context.Context, in MoodLabel) error
	DeleteMoodLabel(ctx context.Context, name string) error
	ListMoodLabels(ctx context.Context) ([]MoodLabel, error)
}
