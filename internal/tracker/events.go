package tracker

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"daytrack/internal/model"
)

// CreateEventParams carries the fields for a new calendar event.
type CreateEventParams struct {
	Name        string
	Description string
	Category    string
	StartAt     time.Time
	EndAt       time.Time
}

func (t *Tracker) CreateEvent(ctx context.Context, p CreateEventParams) (model.Event, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.categoryExists(p.Category) {
		return model.Event{}, fmt.Errorf("%w: unknown category %q", ErrValidation, p.Category)
	}
	event := model.Event{
		Info: model.Info{
			ID:          t.newID(),
			Name:        strings.TrimSpace(p.Name),
			Description: strings.TrimSpace(p.Description),
			Category:    p.Category,
			CreatedAt:   t.now(),
		},
		StartAt: p.StartAt,
		EndAt:   p.EndAt,
	}
	if err := event.Validate(); err != nil {
		return model.Event{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if err := t.repo.CreateEvent(ctx, eventToStorage(event)); err != nil {
		return model.Event{}, err
	}
	t.events[event.Info.ID] = &event
	return event, nil
}

func (t *Tracker) DeleteEvent(ctx context.Context, id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.events[id]; !ok {
		return fmt.Errorf("%w: event %s", ErrNotFound, id)
	}
	if err := t.repo.DeleteEvent(ctx, id); err != nil {
		return err
	}
	delete(t.events, id)
	return nil
}

// EventsOn lists events touching the given date, ordered by start time.
func (t *Tracker) EventsOn(day time.Time) []model.Event {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]model.Event, 0)
	for _, e := range t.events {
		if e.OnDay(day) {
			out = append(out, *e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartAt.Before(out[j].StartAt) })
	return out
}

// Events lists all events ordered by start time.
func (t *Tracker) Events() []model.Event {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]model.Event, 0, len(t.events))
	for _, e := range t.events {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartAt.Before(out[j].StartAt) })
	return out
}
