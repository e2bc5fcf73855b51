package update

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"daytrack/internal/model"
)

func (m Model) todayEntries() []model.WellnessEntry {
	date := model.DayOf(m.now())
	log, err := m.tracker.Log(date)
	if err != nil {
		return nil
	}
	return log.Entries
}

func (m Model) handleWellnessKey(msg tea.KeyMsg) Model {
	entries := m.todayEntries()
	switch msg.String() {
	case "j", "down":
		m.Wellness.Cursor = clampCursor(m.Wellness.Cursor+1, len(entries))
	case "k", "up":
		m.Wellness.Cursor = clampCursor(m.Wellness.Cursor-1, len(entries))
	case "x":
		if entry, ok := at(entries, m.Wellness.Cursor); ok {
			date := model.DayOf(m.now())
			err := m.tracker.DeleteWellness(context.Background(), date, entry.ID)
			m.report(err, "wellness entry deleted")
			m.Wellness.Cursor = clampCursor(m.Wellness.Cursor, len(entries)-1)
		}
	}
	return m
}
