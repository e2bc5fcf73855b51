package model

import (
	"errors"
	"fmt"
	"time"
)

type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// Task is a template for daily work. An available task stays in the pool
// until it is scheduled into "today"; the tracker keeps the active subset
// separately. One-time tasks leave the pool once completed and a daily
// reset has run.
type Task struct {
	Info
	Begin       time.Time
	Due         *time.Time
	Priority    Priority
	CompletedAt *time.Time
	OneTime     bool
}

func (t Task) Validate() error {
	if err := t.Info.Validate(); err != nil {
		return err
	}
	if !t.Priority.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, t.Priority)
	}
	if t.Begin.IsZero() {
		return errors.New("model: task begin date is required")
	}
	if t.Due != nil && t.Due.Before(t.Begin) {
		return errors.New("model: task due date before begin date")
	}
	return nil
}

func (t Task) Completed() bool {
	return t.CompletedAt != nil
}

// InWindow reports whether the given day falls within [Begin, Due]
// inclusive, by calendar date. A nil Due leaves the window open-ended.
func (t Task) InWindow(day time.Time) bool {
	key := DayOf(day)
	if key < DayOf(t.Begin) {
		return false
	}
	if t.Due != nil && key > DayOf(*t.Due) {
		return false
	}
	return true
}
