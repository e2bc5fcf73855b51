package tracker

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"daytrack/internal/model"
	"daytrack/internal/storage"
)

// CreateMoodLabel registers a mood label. Label names are unique with
// case-insensitive comparison.
func (t *Tracker) CreateMoodLabel(ctx context.Context, name string, kind model.MoodKind) (model.MoodLabel, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	name = strings.TrimSpace(name)
	if _, exists := t.moodLabels[foldName(name)]; exists {
		return model.MoodLabel{}, fmt.Errorf("%w: mood label %q", ErrDuplicateName, name)
	}
	label := model.MoodLabel{Name: name, Kind: kind, CreatedAt: t.now()}
	if err := label.Validate(); err != nil {
		return model.MoodLabel{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if err := t.repo.CreateMoodLabel(ctx, moodLabelToStorage(label)); err != nil {
		return model.MoodLabel{}, err
	}
	t.moodLabels[foldName(name)] = label
	return label, nil
}

// DeleteMoodLabel removes a mood label. Labels still referenced by any
// wellness entry cannot be deleted; referential integrity wins over
// orphaning the entries.
func (t *Tracker) DeleteMoodLabel(ctx context.Context, name string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	key := foldName(name)
	label, ok := t.moodLabels[key]
	if !ok {
		return fmt.Errorf("%w: mood label %q", ErrNotFound, name)
	}
	for _, log := range t.logs {
		for _, entry := range log.Entries {
			if foldName(entry.Mood) == key {
				return fmt.Errorf("%w: %q used on %s", ErrMoodLabelInUse, label.Name, log.Date)
			}
		}
	}
	if err := t.repo.DeleteMoodLabel(ctx, label.Name); err != nil {
		return err
	}
	delete(t.moodLabels, key)
	return nil
}

// MoodLabels lists all labels sorted by name.
func (t *Tracker) MoodLabels() []model.MoodLabel {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]model.MoodLabel, 0, len(t.moodLabels))
	for _, l := range t.moodLabels {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return foldName(out[i].Name) < foldName(out[j].Name) })
	return out
}

// RecordWellnessParams carries one wellness self-report.
type RecordWellnessParams struct {
	At      time.Time
	Stress  model.Level
	Energy  model.Level
	Fatigue model.Level
	Mood    string
	Note    string
}

// RecordWellness appends a wellness entry to the daily log of the day
// the entry's timestamp falls on. The mood label must be registered.
func (t *Tracker) RecordWellness(ctx context.Context, p RecordWellnessParams) (model.WellnessEntry, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	at := p.At
	if at.IsZero() {
		at = t.now()
	}
	label, ok := t.moodLabels[foldName(p.Mood)]
	if !ok {
		return model.WellnessEntry{}, fmt.Errorf("%w: unknown mood label %q", ErrValidation, p.Mood)
	}

	entry := model.WellnessEntry{
		ID:      t.newID(),
		At:      at,
		Stress:  p.Stress,
		Energy:  p.Energy,
		Fatigue: p.Fatigue,
		Mood:    label.Name,
		Note:    strings.TrimSpace(p.Note),
	}
	if err := entry.Validate(); err != nil {
		return model.WellnessEntry{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	key := model.DayOf(at)
	log, ok := t.logs[key]
	if !ok {
		log = model.NewDailyLog(key)
		t.logs[key] = log
	}
	log.Entries = append(log.Entries, entry)
	if err := t.persistLog(ctx, log); err != nil {
		log.Entries = log.Entries[:len(log.Entries)-1]
		return model.WellnessEntry{}, err
	}
	return entry, nil
}

// DeleteWellness removes an entry by id from the given date's log.
func (t *Tracker) DeleteWellness(ctx context.Context, date, entryID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	log, ok := t.logs[date]
	if !ok {
		return fmt.Errorf("%w: no log for %s", ErrNotFound, date)
	}
	for i, entry := range log.Entries {
		if entry.ID == entryID {
			log.Entries = append(log.Entries[:i], log.Entries[i+1:]...)
			return t.persistLog(ctx, log)
		}
	}
	return fmt.Errorf("%w: entry %s on %s", ErrNotFound, entryID, date)
}

func moodLabelToStorage(in model.MoodLabel) storage.MoodLabel {
	return storage.MoodLabel{Name: in.Name, Kind: string(in.Kind), CreatedAt: in.CreatedAt}
}
