package model

import "errors"

// DailyLog aggregates one calendar date: which tasks were active and
// completed that day, plus the wellness entries recorded. Tasks are
// referenced by id only; the task store owns the templates.
type DailyLog struct {
	Date           string
	TasksToday     map[string]bool
	CompletedTasks map[string]bool
	Entries        []WellnessEntry
}

func NewDailyLog(date string) *DailyLog {
	return &DailyLog{
		Date:           date,
		TasksToday:     make(map[string]bool),
		CompletedTasks: make(map[string]bool),
	}
}

func (d *DailyLog) Validate() error {
	if d.Date == "" {
		return errors.New("model: daily log date is required")
	}
	for id := range d.CompletedTasks {
		if !d.TasksToday[id] {
			return errors.New("model: completed task missing from today set")
		}
	}
	return nil
}

// CompletionRate returns the fraction of today's tasks completed. The
// second return value is false when no tasks were scheduled that day;
// callers must treat that as "no data", never as zero.
func (d *DailyLog) CompletionRate() (float64, bool) {
	if len(d.TasksToday) == 0 {
		return 0, false
	}
	return float64(len(d.CompletedTasks)) / float64(len(d.TasksToday)), true
}

// Entry returns the wellness entry with the given id, if present.
func (d *DailyLog) Entry(id string) (WellnessEntry, bool) {
	for _, e := range d.Entries {
		if e.ID == id {
			return e, true
		}
	}
	return WellnessEntry{}, false
}
