package update

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"daytrack/internal/model"
	"daytrack/internal/tracker"
)

func (m Model) visibleGoals() []model.Goal {
	if m.Goals.ShowCompleted {
		return m.tracker.CompletedGoals()
	}
	return m.tracker.OrderGoals(m.Goals.Order, m.Goals.Reverse)
}

func (m Model) handleGoalsKey(msg tea.KeyMsg) Model {
	items := m.visibleGoals()
	key := msg.String()

	if key != "x" {
		m.Goals.ConfirmName = ""
	}

	switch key {
	case "j", "down":
		m.Goals.Cursor = clampCursor(m.Goals.Cursor+1, len(items))
	case "k", "up":
		m.Goals.Cursor = clampCursor(m.Goals.Cursor-1, len(items))
	case "o":
		m.Goals.Order = nextGoalOrder(m.Goals.Order)
		m.Status = StatusBar{Text: fmt.Sprintf("goals ordered by %s", m.Goals.Order)}
	case "r":
		m.Goals.Reverse = !m.Goals.Reverse
	case "tab":
		m.Goals.ShowCompleted = !m.Goals.ShowCompleted
		m.Goals.Cursor = 0
		m.Goals.ConfirmName = ""
	case "-":
		if goal, ok := at(items, m.Goals.Cursor); ok {
			_, err := m.tracker.DecrementGoalProgress(context.Background(), goal.Name)
			m.report(err, fmt.Sprintf("progress on %q decremented", goal.Name))
		}
	case "x":
		if goal, ok := at(items, m.Goals.Cursor); ok {
			m = m.deleteGoal(goal.Name)
			m.Goals.Cursor = clampCursor(m.Goals.Cursor, len(m.visibleGoals()))
		}
	}
	return m
}

// deleteGoal runs the two-phase delete: active goals need the same key
// pressed twice.
func (m Model) deleteGoal(name string) Model {
	confirmed := m.Goals.ConfirmName == name
	status, err := m.tracker.DeleteGoal(context.Background(), name, confirmed)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}
	switch status {
	case tracker.GoalDeleted:
		m.Goals.ConfirmName = ""
		m.Status = StatusBar{Text: fmt.Sprintf("goal %q deleted", name)}
	case tracker.GoalNeedsConfirmation:
		m.Goals.ConfirmName = name
		m.Status = StatusBar{Text: fmt.Sprintf("goal %q is active, press x again", name)}
	case tracker.GoalNotFound:
		m.Goals.ConfirmName = ""
		m.Status = StatusBar{Text: fmt.Sprintf("goal %q not found", name), IsError: true}
	}
	return m
}

func nextGoalOrder(order tracker.GoalOrder) tracker.GoalOrder {
	switch order {
	case tracker.OrderByName:
		return tracker.OrderByDue
	case tracker.OrderByDue:
		return tracker.OrderByPeriod
	default:
		return tracker.OrderByName
	}
}
