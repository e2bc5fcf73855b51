package tracker

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"daytrack/internal/model"
)

// CreateCategory registers a new category name. Names are unique with
// case-sensitive comparison.
func (t *Tracker) CreateCategory(ctx context.Context, name string) (model.Category, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	name = strings.TrimSpace(name)
	for _, c := range t.categories {
		if c.Name == name {
			return model.Category{}, fmt.Errorf("%w: category %q", ErrDuplicateName, name)
		}
	}

	cat := model.Category{ID: t.newID(), Name: name, CreatedAt: t.now()}
	if err := cat.Validate(); err != nil {
		return model.Category{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if err := t.repo.CreateCategory(ctx, categoryToStorage(cat)); err != nil {
		return model.Category{}, err
	}
	t.categories[cat.ID] = &cat
	return cat, nil
}

// RenameCategory re-checks uniqueness against every other category, then
// renames the category and rewrites the references on tasks, events and
// goals so nothing keeps pointing at the old name.
func (t *Tracker) RenameCategory(ctx context.Context, id, name string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	cat, ok := t.categories[id]
	if !ok {
		return fmt.Errorf("%w: category %s", ErrNotFound, id)
	}
	name = strings.TrimSpace(name)
	for otherID, other := range t.categories {
		if otherID != id && other.Name == name {
			return fmt.Errorf("%w: category %q", ErrDuplicateName, name)
		}
	}

	renamed := *cat
	renamed.Name = name
	if err := renamed.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	commit, revert, err := t.stageRetarget(ctx, cat.Name, name)
	if err != nil {
		return err
	}
	if err := t.repo.UpdateCategory(ctx, categoryToStorage(renamed)); err != nil {
		revert()
		return err
	}
	commit()
	cat.Name = name
	return nil
}

// DeleteCategory removes the category and clears the Category field on
// every task, event and goal that referenced it. The fan-out is staged:
// all repo writes happen before any in-memory change, and rows already
// written are restored when a later write fails, so the cascade applies
// fully or not at all. Deleting an unknown id returns false.
func (t *Tracker) DeleteCategory(ctx context.Context, id string) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	cat, ok := t.categories[id]
	if !ok {
		return false, nil
	}
	commit, revert, err := t.stageRetarget(ctx, cat.Name, "")
	if err != nil {
		return false, err
	}
	if err := t.repo.DeleteCategory(ctx, id); err != nil {
		revert()
		return false, err
	}
	commit()
	name := cat.Name
	delete(t.categories, id)
	t.logger.Info().Str("category", name).Msg("category deleted, references cleared")
	return true, nil
}

// retargetOp stages one reference rewrite. persist writes the row with
// the given category name; commit applies the new name in memory.
type retargetOp struct {
	persist func(category string) error
	commit  func()
}

// stageRetarget persists the rewrite of every reference from oldName to
// newName without touching memory. It returns a commit closure that
// applies the new name in memory and a revert closure that writes the
// original rows back, for callers whose own follow-up write fails. A
// failure mid-fan-out restores the rows already written and returns the
// error with repo and memory as they were. Callers hold the tracker
// lock.
func (t *Tracker) stageRetarget(ctx context.Context, oldName, newName string) (commit, revert func(), err error) {
	var ops []retargetOp
	for _, task := range t.tasks {
		if task.Category != oldName {
			continue
		}
		ops = append(ops, retargetOp{
			persist: func(category string) error {
				row := *task
				row.Category = category
				return t.repo.UpdateTask(ctx, taskToStorage(row))
			},
			commit: func() { task.Category = newName },
		})
	}
	for _, event := range t.events {
		if event.Category != oldName {
			continue
		}
		ops = append(ops, retargetOp{
			persist: func(category string) error {
				row := *event
				row.Category = category
				return t.repo.UpdateEvent(ctx, eventToStorage(row))
			},
			commit: func() { event.Category = newName },
		})
	}
	for _, goal := range t.goals {
		if goal.Category != oldName {
			continue
		}
		ops = append(ops, retargetOp{
			persist: func(category string) error {
				row := *goal
				row.Category = category
				return t.repo.UpdateGoal(ctx, goalToStorage(row))
			},
			commit: func() { goal.Category = newName },
		})
	}

	restore := func(n int) {
		// Memory still holds the old rows, so persisting them again
		// with oldName undoes the writes that went through.
		for i := 0; i < n; i++ {
			if rerr := ops[i].persist(oldName); rerr != nil {
				t.logger.Error().Err(rerr).Msg("category retarget restore failed")
			}
		}
	}
	for i, op := range ops {
		if err := op.persist(newName); err != nil {
			restore(i)
			return nil, nil, err
		}
	}
	commit = func() {
		for _, op := range ops {
			op.commit()
		}
	}
	revert = func() { restore(len(ops)) }
	return commit, revert, nil
}

// Categories returns all categories sorted by name.
func (t *Tracker) Categories() []model.Category {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]model.Category, 0, len(t.categories))
	for _, c := range t.categories {
		out = append(out, *c)
	}
	sortCategories(out)
	return out
}

func sortCategories(in []model.Category) {
	sort.Slice(in, func(i, j int) bool { return in[i].Name < in[j].Name })
}

// categoryExists reports whether a category with this exact name is
// registered. Callers hold the tracker lock.
func (t *Tracker) categoryExists(name string) bool {
	if name == "" {
		return true
	}
	for _, c := range t.categories {
		if c.Name == name {
			return true
		}
	}
	return false
}
