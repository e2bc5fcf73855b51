package tracker

import (
	"context"
	"fmt"
	"strings"
	"time"

	"daytrack/internal/model"
)

// CreateTaskParams carries the fields for a new available task.
type CreateTaskParams struct {
	Name        string
	Description string
	Category    string
	Begin       time.Time
	Due         *time.Time
	Priority    model.Priority
	OneTime     bool
}

// CreateAvailableTask adds a task template to the pool. Task names are
// unique among available tasks with case-sensitive comparison, and the
// category (when set) must exist.
func (t *Tracker) CreateAvailableTask(ctx context.Context, p CreateTaskParams) (model.Task, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	name := strings.TrimSpace(p.Name)
	for _, existing := range t.tasks {
		if existing.Info.Name == name {
			return model.Task{}, fmt.Errorf("%w: task %q", ErrDuplicateName, name)
		}
	}
	if !t.categoryExists(p.Category) {
		return model.Task{}, fmt.Errorf("%w: unknown category %q", ErrValidation, p.Category)
	}

	begin := p.Begin
	if begin.IsZero() {
		begin = t.now()
	}
	task := model.Task{
		Info: model.Info{
			ID:          t.newID(),
			Name:        name,
			Description: strings.TrimSpace(p.Description),
			Category:    p.Category,
			CreatedAt:   t.now(),
		},
		Begin:    begin,
		Due:      p.Due,
		Priority: p.Priority,
		OneTime:  p.OneTime,
	}
	if err := task.Validate(); err != nil {
		return model.Task{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if err := t.repo.CreateTask(ctx, taskToStorage(task)); err != nil {
		return model.Task{}, err
	}
	t.tasks[task.Info.ID] = &task
	return task, nil
}

// AddToToday schedules an available task into today's active set. The
// current date must fall within the task's [begin, due] window; a due
// override, when given, replaces the template's due date first. The
// task id is also recorded in today's daily log.
func (t *Tracker) AddToToday(ctx context.Context, taskID string, dueOverride *time.Time) (model.Task, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	task, ok := t.tasks[taskID]
	if !ok {
		return model.Task{}, fmt.Errorf("%w: task %s", ErrNotFound, taskID)
	}

	candidate := *task
	if dueOverride != nil {
		if dueOverride.Before(candidate.Begin) {
			return model.Task{}, fmt.Errorf("%w: due date before begin date", ErrValidation)
		}
		candidate.Due = dueOverride
	}
	now := t.now()
	if !candidate.InWindow(now) {
		return model.Task{}, fmt.Errorf("%w: %s not in [%s, %s]",
			ErrOutOfRange, model.DayOf(now), model.DayOf(candidate.Begin), dueKey(candidate.Due))
	}

	if dueOverride != nil {
		if err := t.repo.UpdateTask(ctx, taskToStorage(candidate)); err != nil {
			return model.Task{}, err
		}
	}
	*task = candidate

	log := t.currentLog()
	log.TasksToday[taskID] = true
	if err := t.persistLog(ctx, log); err != nil {
		return model.Task{}, err
	}
	t.today[taskID] = true
	return *task, nil
}

// MarkComplete completes an active task: stamps CompletedAt, records the
// completion in today's daily log and advances every active goal bound
// to this task.
func (t *Tracker) MarkComplete(ctx context.Context, taskID string, at time.Time) (model.Task, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	task, ok := t.tasks[taskID]
	if !ok {
		return model.Task{}, fmt.Errorf("%w: task %s", ErrNotFound, taskID)
	}
	if task.Completed() {
		return model.Task{}, fmt.Errorf("%w: task %q", ErrAlreadyCompleted, task.Info.Name)
	}
	if at.IsZero() {
		at = t.now()
	}

	completed := *task
	completed.CompletedAt = &at
	if err := t.repo.UpdateTask(ctx, taskToStorage(completed)); err != nil {
		return model.Task{}, err
	}
	*task = completed

	log := t.currentLog()
	log.TasksToday[taskID] = true
	log.CompletedTasks[taskID] = true
	if err := t.persistLog(ctx, log); err != nil {
		return model.Task{}, err
	}

	if err := t.recordTargetTaskCompletion(ctx, taskID); err != nil {
		return model.Task{}, err
	}
	t.logger.Debug().Str("task", task.Info.Name).Time("at", at).Msg("task completed")
	return *task, nil
}

// ReopenTask is the explicit inverse of MarkComplete: it clears the
// completion stamp and removes the task from today's completed set. Goal
// progress already recorded is not rolled back; use the explicit goal
// decrement for that.
func (t *Tracker) ReopenTask(ctx context.Context, taskID string) (model.Task, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	task, ok := t.tasks[taskID]
	if !ok {
		return model.Task{}, fmt.Errorf("%w: task %s", ErrNotFound, taskID)
	}
	if !task.Completed() {
		return model.Task{}, fmt.Errorf("%w: task %q is not completed", ErrValidation, task.Info.Name)
	}

	reopened := *task
	reopened.CompletedAt = nil
	if err := t.repo.UpdateTask(ctx, taskToStorage(reopened)); err != nil {
		return model.Task{}, err
	}
	*task = reopened

	log := t.currentLog()
	delete(log.CompletedTasks, taskID)
	if err := t.persistLog(ctx, log); err != nil {
		return model.Task{}, err
	}
	return *task, nil
}

// RemoveFromToday takes a task out of the active set without deleting
// the template. History already recorded in past daily logs stays; only
// today's scheduling entry is dropped (unless the task was completed
// today, which stays on record). Returns false for tasks not active.
func (t *Tracker) RemoveFromToday(ctx context.Context, taskID string) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.today[taskID] {
		return false, nil
	}
	delete(t.today, taskID)

	log := t.currentLog()
	if !log.CompletedTasks[taskID] {
		delete(log.TasksToday, taskID)
		if err := t.persistLog(ctx, log); err != nil {
			return false, err
		}
	}
	return true, nil
}

// DeleteAvailableTask removes a task template from the pool entirely.
func (t *Tracker) DeleteAvailableTask(ctx context.Context, taskID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.tasks[taskID]; !ok {
		return fmt.Errorf("%w: task %s", ErrNotFound, taskID)
	}
	if err := t.repo.DeleteTask(ctx, taskID); err != nil {
		return err
	}
	delete(t.tasks, taskID)
	delete(t.today, taskID)
	return nil
}

// DailyReset is the midnight operation: it clears the active set, drops
// completed one-time templates from the pool, clears completion stamps
// on recurring templates and repopulates today from every template whose
// window includes the new date. Load runs the same operation when the
// app starts on a later day than the last recorded log.
func (t *Tracker) DailyReset(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.dailyReset(ctx)
}

// dailyReset is DailyReset without the lock. Callers hold the tracker
// lock.
func (t *Tracker) dailyReset(ctx context.Context) error {
	now := t.now()
	t.today = make(map[string]bool)

	for id, task := range t.tasks {
		switch {
		case task.OneTime && task.Completed():
			if err := t.repo.DeleteTask(ctx, id); err != nil {
				return err
			}
			delete(t.tasks, id)
		case task.Completed():
			cleared := *task
			cleared.CompletedAt = nil
			if err := t.repo.UpdateTask(ctx, taskToStorage(cleared)); err != nil {
				return err
			}
			*task = cleared
		}
	}

	log := t.currentLog()
	for id, task := range t.tasks {
		if task.InWindow(now) {
			t.today[id] = true
			log.TasksToday[id] = true
		}
	}
	if err := t.persistLog(ctx, log); err != nil {
		return err
	}

	t.logger.Info().
		Str("date", model.DayOf(now)).
		Int("scheduled", len(t.today)).
		Msg("daily reset applied")
	return nil
}

// AvailableTasks returns every template in the pool, sorted by name.
func (t *Tracker) AvailableTasks() []model.Task {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]model.Task, 0, len(t.tasks))
	for _, task := range t.tasks {
		out = append(out, *task)
	}
	return sortedTasks(out)
}

// TodayTasks returns the active subset, sorted by name.
func (t *Tracker) TodayTasks() []model.Task {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]model.Task, 0, len(t.today))
	for id := range t.today {
		if task, ok := t.tasks[id]; ok {
			out = append(out, *task)
		}
	}
	return sortedTasks(out)
}

func dueKey(due *time.Time) string {
	if due == nil {
		return "open"
	}
	return model.DayOf(*due)
}
