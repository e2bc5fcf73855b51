package tracker

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"daytrack/internal/model"
)

// GoalOrder selects the OrderGoals sort key.
type GoalOrder string

const (
	OrderByName   GoalOrder = "name"
	OrderByDue    GoalOrder = "due"
	OrderByPeriod GoalOrder = "period"
)

// GoalDeleteStatus is the outcome of a DeleteGoal call. Deleting an
// active goal is a two-phase operation: the first, unconfirmed call
// returns NeedsConfirmation and the caller re-invokes with confirmed set.
type GoalDeleteStatus string

const (
	GoalDeleted           GoalDeleteStatus = "deleted"
	GoalNeedsConfirmation GoalDeleteStatus = "needs_confirmation"
	GoalNotFound          GoalDeleteStatus = "not_found"
)

// CreateGoalParams carries the fields for a new goal.
type CreateGoalParams struct {
	Name        string
	Description string
	Category    string
	TargetTask  string // task id
	Period      model.Period
	Frequency   int
}

// CreateGoal binds a frequency target to an existing task. Goal names are
// unique; the due date derives from the period (begin + one week/month).
func (t *Tracker) CreateGoal(ctx context.Context, p CreateGoalParams) (model.Goal, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	name := strings.TrimSpace(p.Name)
	for _, existing := range t.goals {
		if existing.Info.Name == name {
			return model.Goal{}, fmt.Errorf("%w: goal %q", ErrDuplicateName, name)
		}
	}
	target, ok := t.tasks[p.TargetTask]
	if !ok {
		return model.Goal{}, fmt.Errorf("%w: target task %s", ErrNotFound, p.TargetTask)
	}
	if p.Frequency <= 0 {
		return model.Goal{}, fmt.Errorf("%w: frequency must be positive, got %d", ErrValidation, p.Frequency)
	}
	if !t.categoryExists(p.Category) {
		return model.Goal{}, fmt.Errorf("%w: unknown category %q", ErrValidation, p.Category)
	}

	begin := t.now()
	goal := model.Goal{
		Info: model.Info{
			ID:          t.newID(),
			Name:        name,
			Description: strings.TrimSpace(p.Description),
			Category:    p.Category,
			CreatedAt:   begin,
		},
		Begin:      begin,
		Due:        p.Period.DueAfter(begin),
		TargetTask: target.Info,
		Period:     p.Period,
		Frequency:  p.Frequency,
	}
	if err := goal.Validate(); err != nil {
		return model.Goal{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if err := t.repo.CreateGoal(ctx, goalToStorage(goal)); err != nil {
		return model.Goal{}, err
	}
	t.goals[goal.Info.ID] = &goal
	return goal, nil
}

// recordTargetTaskCompletion advances every active goal bound to the
// task by one, saturating at the frequency. Goals crossing their target
// transition to completed and leave the active set. Callers hold the
// tracker lock.
func (t *Tracker) recordTargetTaskCompletion(ctx context.Context, taskID string) error {
	for _, goal := range t.goals {
		if goal.Completed || goal.TargetTask.ID != taskID {
			continue
		}
		advanced := *goal
		done := advanced.Advance()
		if err := t.repo.UpdateGoal(ctx, goalToStorage(advanced)); err != nil {
			return err
		}
		*goal = advanced
		if done {
			t.logger.Info().Str("goal", goal.Info.Name).Msg("goal completed")
		}
	}
	return nil
}

// DecrementGoalProgress walks one step back on an active goal.
func (t *Tracker) DecrementGoalProgress(ctx context.Context, name string) (model.Goal, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	goal := t.goalByName(name)
	if goal == nil {
		return model.Goal{}, fmt.Errorf("%w: goal %q", ErrNotFound, name)
	}
	if goal.Completed {
		return model.Goal{}, fmt.Errorf("%w: goal %q is completed", ErrValidation, name)
	}
	stepped := *goal
	stepped.Retreat()
	if err := t.repo.UpdateGoal(ctx, goalToStorage(stepped)); err != nil {
		return model.Goal{}, err
	}
	*goal = stepped
	return *goal, nil
}

// DeleteGoal deletes a goal by name. Active goals require confirmation:
// without it the call reports NeedsConfirmation and changes nothing.
func (t *Tracker) DeleteGoal(ctx context.Context, name string, confirmed bool) (GoalDeleteStatus, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	goal := t.goalByName(name)
	if goal == nil {
		return GoalNotFound, nil
	}
	if !goal.Completed && !confirmed {
		return GoalNeedsConfirmation, nil
	}
	if err := t.repo.DeleteGoal(ctx, goal.Info.ID); err != nil {
		return GoalNotFound, err
	}
	delete(t.goals, goal.Info.ID)
	return GoalDeleted, nil
}

// OrderGoals returns all goals sorted by the given criterion. The sort
// is stable over the name-ordered base list; an unknown criterion keeps
// the base order (defined fallback, not an error).
func (t *Tracker) OrderGoals(criterion GoalOrder, reverse bool) []model.Goal {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]model.Goal, 0, len(t.goals))
	for _, g := range t.goals {
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Info.Name < out[j].Info.Name })

	switch criterion {
	case OrderByName:
		// base order
	case OrderByDue:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Due.Before(out[j].Due) })
	case OrderByPeriod:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Period < out[j].Period })
	default:
		// passthrough
	}
	if reverse {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out
}

// ActiveGoals returns goals still in progress, sorted by due date.
func (t *Tracker) ActiveGoals() []model.Goal {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.goalsWhere(func(g *model.Goal) bool { return !g.Completed })
}

// CompletedGoals returns the goal history, sorted by due date.
func (t *Tracker) CompletedGoals() []model.Goal {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.goalsWhere(func(g *model.Goal) bool { return g.Completed })
}

func (t *Tracker) goalsWhere(keep func(*model.Goal) bool) []model.Goal {
	out := make([]model.Goal, 0, len(t.goals))
	for _, g := range t.goals {
		if keep(g) {
			out = append(out, *g)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Due.Equal(out[j].Due) {
			return out[i].Due.Before(out[j].Due)
		}
		return out[i].Info.Name < out[j].Info.Name
	})
	return out
}

func (t *Tracker) goalByName(name string) *model.Goal {
	for _, g := range t.goals {
		if g.Info.Name == name {
			return g
		}
	}
	return nil
}

// GoalDueWithin lists active goals due inside the window, for reminder
// surfacing.
func (t *Tracker) GoalDueWithin(window time.Duration) []model.Goal {
	t.mu.Lock()
	defer t.mu.Unlock()

	deadline := t.now().Add(window)
	return t.goalsWhere(func(g *model.Goal) bool {
		return !g.Completed && !g.Due.After(deadline)
	})
}
