package update

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) handleTodayKey(msg tea.KeyMsg) Model {
	items := m.tracker.TodayTasks()
	switch msg.String() {
	case "j", "down":
		m.Today.Cursor = clampCursor(m.Today.Cursor+1, len(items))
	case "k", "up":
		m.Today.Cursor = clampCursor(m.Today.Cursor-1, len(items))
	case " ", "enter":
		if task, ok := at(items, m.Today.Cursor); ok {
			_, err := m.tracker.MarkComplete(context.Background(), task.ID, m.now())
			m.report(err, fmt.Sprintf("completed %q", task.Name))
		}
	case "u":
		if task, ok := at(items, m.Today.Cursor); ok {
			_, err := m.tracker.ReopenTask(context.Background(), task.ID)
			m.report(err, fmt.Sprintf("reopened %q", task.Name))
		}
	case "x":
		if task, ok := at(items, m.Today.Cursor); ok {
			_, err := m.tracker.RemoveFromToday(context.Background(), task.ID)
			m.report(err, fmt.Sprintf("removed %q from today", task.Name))
			m.Today.Cursor = clampCursor(m.Today.Cursor, len(items)-1)
		}
	}
	return m
}

func (m Model) handleAvailableKey(msg tea.KeyMsg) Model {
	items := m.tracker.AvailableTasks()
	switch msg.String() {
	case "j", "down":
		m.Available.Cursor = clampCursor(m.Available.Cursor+1, len(items))
	case "k", "up":
		m.Available.Cursor = clampCursor(m.Available.Cursor-1, len(items))
	case "a", "enter":
		if task, ok := at(items, m.Available.Cursor); ok {
			_, err := m.tracker.AddToToday(context.Background(), task.ID, nil)
			m.report(err, fmt.Sprintf("added %q to today", task.Name))
		}
	case "x":
		if task, ok := at(items, m.Available.Cursor); ok {
			err := m.tracker.DeleteAvailableTask(context.Background(), task.ID)
			m.report(err, fmt.Sprintf("deleted %q", task.Name))
			m.Available.Cursor = clampCursor(m.Available.Cursor, len(items)-1)
		}
	}
	return m
}

// report sets the status bar from an operation outcome.
func (m *Model) report(err error, okText string) {
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return
	}
	m.Status = StatusBar{Text: okText}
}

func clampCursor(cursor, n int) int {
	if n <= 0 {
		return 0
	}
	if cursor < 0 {
		return 0
	}
	if cursor >= n {
		return n - 1
	}
	return cursor
}

func at[T any](items []T, i int) (T, bool) {
	var zero T
	if i < 0 || i >= len(items) {
		return zero, false
	}
	return items[i], true
}
