package storage

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepository is a map-backed Repository used by tests and as a
// fallback when the sqlite file cannot be opened. It applies the same
// not-found semantics as the sqlite implementation.
type MemoryRepository struct {
	mu         sync.RWMutex
	categories map[string]Category
	tasks      map[string]Task
	events     map[string]Event
	goals      map[string]Goal
	logs       map[string]DailyLog
	moodLabels map[string]MoodLabel
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		categories: make(map[string]Category),
		tasks:      make(map[string]Task),
		events:     make(map[string]Event),
		goals:      make(map[string]Goal),
		logs:       make(map[string]DailyLog),
		moodLabels: make(map[string]MoodLabel),
	}
}

func (r *MemoryRepository) CreateCategory(_ context.Context, in Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.categories[in.ID] = in
	return nil
}

func (r *MemoryRepository) UpdateCategory(_ context.Context, in Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.categories[in.ID]; !ok {
		return ErrNotFound
	}
	r.categories[in.ID] = in
	return nil
}

func (r *MemoryRepository) DeleteCategory(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.categories[id]; !ok {
		return ErrNotFound
	}
	delete(r.categories, id)
	return nil
}

func (r *MemoryRepository) ListCategories(_ context.Context) ([]Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Category, 0, len(r.categories))
	for _, c := range r.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *MemoryRepository) CreateTask(_ context.Context, in Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks[in.ID] = in
	return nil
}

func (r *MemoryRepository) GetTask(_ context.Context, id string) (Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tasks[id]
	if !ok {
		return Task{}, ErrNotFound
	}
	return t, nil
}

func (r *MemoryRepository) UpdateTask(_ context.Context, in Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[in.ID]; !ok {
		return ErrNotFound
	}
	r.tasks[in.ID] = in
	return nil
}

func (r *MemoryRepository) DeleteTask(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[id]; !ok {
		return ErrNotFound
	}
	delete(r.tasks, id)
	return nil
}

func (r *MemoryRepository) ListTasks(_ context.Context, filter TaskListFilter) ([]Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Task, 0, len(r.tasks))
	for _, t := range r.tasks {
		if filter.Category != "" && t.Category != filter.Category {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return paginate(out, filter.Limit, filter.Offset), nil
}

func (r *MemoryRepository) CreateEvent(_ context.Context, in Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events[in.ID] = in
	return nil
}

func (r *MemoryRepository) UpdateEvent(_ context.Context, in Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.events[in.ID]; !ok {
		return ErrNotFound
	}
	r.events[in.ID] = in
	return nil
}

func (r *MemoryRepository) DeleteEvent(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.events[id]; !ok {
		return ErrNotFound
	}
	delete(r.events, id)
	return nil
}

func (r *MemoryRepository) ListEvents(_ context.Context) ([]Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Event, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartAt.Before(out[j].StartAt) })
	return out, nil
}

func (r *MemoryRepository) CreateGoal(_ context.Context, in Goal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.goals[in.ID] = in
	return nil
}

func (r *MemoryRepository) UpdateGoal(_ context.Context, in Goal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.goals[in.ID]; !ok {
		return ErrNotFound
	}
	r.goals[in.ID] = in
	return nil
}

func (r *MemoryRepository) DeleteGoal(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.goals[id]; !ok {
		return ErrNotFound
	}
	delete(r.goals, id)
	return nil
}

func (r *MemoryRepository) ListGoals(_ context.Context, filter GoalListFilter) ([]Goal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Goal, 0, len(r.goals))
	for _, g := range r.goals {
		if filter.Completed != nil && g.Completed != *filter.Completed {
			continue
		}
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return paginate(out, filter.Limit, filter.Offset), nil
}

func (r *MemoryRepository) UpsertDailyLog(_ context.Context, in DailyLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logs[in.Date] = in
	return nil
}

func (r *MemoryRepository) GetDailyLog(_ context.Context, date string) (DailyLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	log, ok := r.logs[date]
	if !ok {
		return DailyLog{}, ErrNotFound
	}
	return log, nil
}

func (r *MemoryRepository) ListDailyLogs(_ context.Context, from, to string) ([]DailyLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]DailyLog, 0)
	for date, log := range r.logs {
		if date >= from && date <= to {
			out = append(out, log)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (r *MemoryRepository) CreateMoodLabel(_ context.Context, in MoodLabel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.moodLabels[in.Name] = in
	return nil
}

func (r *MemoryRepository) DeleteMoodLabel(_ context.Context, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.moodLabels[name]; !ok {
		return ErrNotFound
	}
	delete(r.moodLabels, name)
	return nil
}

func (r *MemoryRepository) ListMoodLabels(_ context.Context) ([]MoodLabel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]MoodLabel, 0, len(r.moodLabels))
	for _, m := range r.moodLabels {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func paginate[T any](in []T, limit, offset int) []T {
	if offset > 0 {
		if offset >= len(in) {
			return []T{}
		}
		in = in[offset:]
	}
	if limit > 0 && limit < len(in) {
		in = in[:limit]
	}
	return in
}
