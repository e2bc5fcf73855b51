package storage

import "time"

type Category struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

type Task struct {
	ID          string
	Name        string
	Description string
	Category    string
	BeginAt     time.Time
	DueAt       *time.Time
	Priority    string
	CompletedAt *time.Time
	OneTime     bool
	CreatedAt   time.Time
}

type Event struct {
	ID          string
	Name        string
	Description string
	Category    string
	StartAt     time.Time
	EndAt       time.Time
	CreatedAt   time.Time
}

type Goal struct {
	ID             string
	Name           string
	Description    string
	Category       string
	BeginAt        time.Time
	DueAt          time.Time
	TargetTaskID   string
	TargetTaskName string
	Period         string
	Frequency      int
	Progress       int
	Completed      bool
	CreatedAt      time.Time
}

// DailyLogTask records one task's membership in a day: scheduled into
// "today", and optionally completed.
type DailyLogTask struct {
	TaskID    string
	Completed bool
}

type WellnessEntry struct {
	ID      string
	Date    string
	At      time.Time
	Stress  int
	Energy  int
	Fatigue int
	Mood    string
	Note    string
}

type DailyLog struct {
	Date    string
	Tasks   []DailyLogTask
	Entries []WellnessEntry
}

type MoodLabel struct {
	Name      string
	Kind      string
	CreatedAt time.Time
}

type TaskListFilter struct {
	Category string
	Limit    int
	Offset   int
}

type GoalListFilter struct {
	Completed *bool
	Limit     int
	Offset    int
}
