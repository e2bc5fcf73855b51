package model

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidPeriod    = errors.New("model: invalid goal period")
	ErrInvalidFrequency = errors.New("model: goal frequency must be positive")
)

type Period string

const (
	PeriodWeek  Period = "Week"
	PeriodMonth Period = "Month"
)

func (p Period) IsValid() bool {
	switch p {
	case PeriodWeek, PeriodMonth:
		return true
	default:
		return false
	}
}

// DueAfter returns the goal due date derived from a begin date:
// one week or one month after it.
func (p Period) DueAfter(begin time.Time) time.Time {
	if p == PeriodMonth {
		return begin.AddDate(0, 1, 0)
	}
	return begin.AddDate(0, 0, 7)
}

// Goal binds a frequency target to a task: each completion of the target
// task advances progress by one. Progress saturates at Frequency, and
// Completed holds exactly when Progress has reached it.
type Goal struct {
	Info
	Begin      time.Time
	Due        time.Time
	TargetTask Info
	Period     Period
	Frequency  int
	Progress   int
	Completed  bool
}

func (g Goal) Validate() error {
	if err := g.Info.Validate(); err != nil {
		return err
	}
	if err := g.TargetTask.Validate(); err != nil {
		return fmt.Errorf("target task: %w", err)
	}
	if !g.Period.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPeriod, g.Period)
	}
	if g.Frequency <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidFrequency, g.Frequency)
	}
	if g.Progress < 0 {
		return errors.New("model: goal progress negative")
	}
	if g.Completed != (g.Progress >= g.Frequency) {
		return errors.New("model: goal completed flag out of sync with progress")
	}
	return nil
}

// Advance increments progress by one, saturating at Frequency. It returns
// true when this call transitions the goal to completed. Calling Advance
// on a completed goal is a no-op.
func (g *Goal) Advance() bool {
	if g.Completed {
		return false
	}
	g.Progress++
	if g.Progress >= g.Frequency {
		g.Progress = g.Frequency
		g.Completed = true
		return true
	}
	return false
}

// Retreat decrements progress by one, never below zero. Completed goals
// stay completed; the explicit decrement only applies to active goals.
func (g *Goal) Retreat() {
	if g.Completed || g.Progress == 0 {
		return
	}
	g.Progress--
}
