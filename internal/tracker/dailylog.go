package tracker

import (
	"fmt"
	"sort"

	"daytrack/internal/model"
)

// Log returns a copy of the daily log for a date key.
func (t *Tracker) Log(date string) (model.DailyLog, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	log, ok := t.logs[date]
	if !ok {
		return model.DailyLog{}, fmt.Errorf("%w: no log for %s", ErrNotFound, date)
	}
	return copyLog(log), nil
}

// Logs returns copies of the logs in [from, to], ordered by date.
func (t *Tracker) Logs(from, to string) []model.DailyLog {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]model.DailyLog, 0)
	for date, log := range t.logs {
		if date >= from && date <= to {
			out = append(out, copyLog(log))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// CompletionRate reports the completion fraction for a date. The second
// value is false when the day had no scheduled tasks or no log at all,
// meaning no data rather than a zero rate.
func (t *Tracker) CompletionRate(date string) (float64, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	log, ok := t.logs[date]
	if !ok {
		return 0, false
	}
	return log.CompletionRate()
}

func copyLog(in *model.DailyLog) model.DailyLog {
	out := model.DailyLog{
		Date:           in.Date,
		TasksToday:     make(map[string]bool, len(in.TasksToday)),
		CompletedTasks: make(map[string]bool, len(in.CompletedTasks)),
		Entries:        make([]model.WellnessEntry, len(in.Entries)),
	}
	for id := range in.TasksToday {
		out.TasksToday[id] = true
	}
	for id := range in.CompletedTasks {
		out.CompletedTasks[id] = true
	}
	copy(out.Entries, in.Entries)
	return out
}
