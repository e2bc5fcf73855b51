package model

import (
	"errors"
	"testing"
	"time"
)

func validTask() Task {
	return Task{
		Info: Info{
			ID:        "task-1",
			Name:      "Read 10 pages",
			CreatedAt: time.Date(2026, 8, 24, 8, 0, 0, 0, time.UTC),
		},
		Begin:    time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC),
		Priority: PriorityMedium,
	}
}

func TestTaskValidateSuccess(t *testing.T) {
	task := validTask()
	if err := task.Validate(); err != nil {
		t.Fatalf("expected valid task, got error: %v", err)
	}
}

func TestTaskValidateInvalidPriority(t *testing.T) {
	task := validTask()
	task.Priority = Priority("Urgent")
	err := task.Validate()
	if err == nil || !errors.Is(err, ErrInvalidPriority) {
		t.Fatalf("expected ErrInvalidPriority, got: %v", err)
	}
}

func TestTaskValidateDueBeforeBegin(t *testing.T) {
	task := validTask()
	due := task.Begin.AddDate(0, 0, -1)
	task.Due = &due
	if err := task.Validate(); err == nil {
		t.Fatal("expected error for due before begin, got nil")
	}
}

func TestTaskInWindow(t *testing.T) {
	task := validTask()
	due := time.Date(2026, 8, 26, 0, 0, 0, 0, time.UTC)
	task.Due = &due

	cases := []struct {
		name string
		day  time.Time
		want bool
	}{
		{"before begin", time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC), false},
		{"on begin", time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC), true},
		{"inside", time.Date(2026, 8, 25, 18, 30, 0, 0, time.UTC), true},
		{"on due", time.Date(2026, 8, 26, 23, 59, 0, 0, time.UTC), true},
		{"after due", time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := task.InWindow(tc.day); got != tc.want {
				t.Fatalf("InWindow(%s) = %v, want %v", tc.day, got, tc.want)
			}
		})
	}
}

func TestTaskInWindowOpenEnded(t *testing.T) {
	task := validTask()
	far := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	if !task.InWindow(far) {
		t.Fatal("expected open-ended window to include far future")
	}
}
