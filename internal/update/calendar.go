package update

import (
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) handleCalendarKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "h", "left":
		m.Calendar.FocusDate = m.Calendar.FocusDate.AddDate(0, 0, -1)
	case "l", "right":
		m.Calendar.FocusDate = m.Calendar.FocusDate.AddDate(0, 0, 1)
	case "t":
		m.Calendar.FocusDate = m.now()
	}
	return m
}
