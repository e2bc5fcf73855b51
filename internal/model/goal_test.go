package model

import (
	"errors"
	"testing"
	"time"
)

func validGoal() Goal {
	begin := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	return Goal{
		Info: Info{
			ID:        "goal-1",
			Name:      "Reading habit",
			CreatedAt: begin,
		},
		Begin: begin,
		Due:   PeriodWeek.DueAfter(begin),
		TargetTask: Info{
			ID:        "task-1",
			Name:      "Read 10 pages",
			CreatedAt: begin,
		},
		Period:    PeriodWeek,
		Frequency: 3,
	}
}

func TestGoalValidateSuccess(t *testing.T) {
	g := validGoal()
	if err := g.Validate(); err != nil {
		t.Fatalf("expected valid goal, got error: %v", err)
	}
}

func TestGoalValidateRejectsBadFrequency(t *testing.T) {
	g := validGoal()
	g.Frequency = 0
	err := g.Validate()
	if err == nil || !errors.Is(err, ErrInvalidFrequency) {
		t.Fatalf("expected ErrInvalidFrequency, got: %v", err)
	}
}

func TestGoalValidateCompletedFlagSync(t *testing.T) {
	g := validGoal()
	g.Progress = g.Frequency
	// flag not set although progress reached frequency
	if err := g.Validate(); err == nil {
		t.Fatal("expected out-of-sync completed flag to fail validation")
	}
	g.Completed = true
	if err := g.Validate(); err != nil {
		t.Fatalf("expected valid completed goal, got: %v", err)
	}
}

func TestPeriodDueAfter(t *testing.T) {
	begin := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	if got := PeriodWeek.DueAfter(begin); !got.Equal(begin.AddDate(0, 0, 7)) {
		t.Fatalf("week due = %s", got)
	}
	if got := PeriodMonth.DueAfter(begin); !got.Equal(begin.AddDate(0, 1, 0)) {
		t.Fatalf("month due = %s", got)
	}
}

func TestGoalAdvanceSaturates(t *testing.T) {
	g := validGoal()

	if done := g.Advance(); done {
		t.Fatal("first advance should not complete a frequency-3 goal")
	}
	if done := g.Advance(); done {
		t.Fatal("second advance should not complete a frequency-3 goal")
	}
	if done := g.Advance(); !done {
		t.Fatal("third advance should complete the goal")
	}
	if !g.Completed || g.Progress != g.Frequency {
		t.Fatalf("goal not saturated: progress=%d completed=%v", g.Progress, g.Completed)
	}

	// further advances are no-ops
	if done := g.Advance(); done {
		t.Fatal("advance on completed goal reported a transition")
	}
	if g.Progress != g.Frequency {
		t.Fatalf("progress exceeded frequency: %d", g.Progress)
	}
}

func TestGoalRetreat(t *testing.T) {
	g := validGoal()
	g.Retreat()
	if g.Progress != 0 {
		t.Fatalf("retreat below zero: %d", g.Progress)
	}
	g.Advance()
	g.Retreat()
	if g.Progress != 0 {
		t.Fatalf("expected progress back to 0, got %d", g.Progress)
	}
}
