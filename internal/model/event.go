package model

import (
	"errors"
	"time"
)

// Event is a calendar entry. Unlike tasks, events carry no completion
// state; they only occupy a time range on a given day.
type Event struct {
	Info
	StartAt time.Time
	EndAt   time.Time
}

func (e Event) Validate() error {
	if err := e.Info.Validate(); err != nil {
		return err
	}
	if e.StartAt.IsZero() {
		return errors.New("model: event start time is required")
	}
	if e.EndAt.IsZero() {
		return errors.New("model: event end time is required")
	}
	if e.EndAt.Before(e.StartAt) {
		return errors.New("model: event ends before it starts")
	}
	return nil
}

// OnDay reports whether the event touches the given calendar date.
func (e Event) OnDay(day time.Time) bool {
	key := DayOf(day)
	return key >= DayOf(e.StartAt) && key <= DayOf(e.EndAt)
}
