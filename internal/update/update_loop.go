package update

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"daytrack/internal/scheduler"
)

func (m Model) Init() tea.Cmd {
	if m.scheduler != nil {
		return waitForSchedulerCmd(m.scheduler.C())
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = typed.Width
		m.height = typed.Height
		m.feedbackView.Width = typed.Width - 6
		return m, nil

	case tea.KeyMsg:
		if m.Palette.Active {
			return m.handlePaletteKey(typed)
		}

		switch typed.String() {
		case "/":
			m.Palette.Active = true
			m.commandInput.SetValue("")
			m.commandInput.Focus()
			m.Status = StatusBar{Text: "command palette active"}
			return m, nil
		case m.Keys.Today:
			m.CurrentView = ViewToday
			return m, nil
		case m.Keys.Available:
			m.CurrentView = ViewAvailable
			return m, nil
		case m.Keys.Goals:
			m.CurrentView = ViewGoals
			return m, nil
		case m.Keys.Calendar:
			m.CurrentView = ViewCalendar
			return m, nil
		case m.Keys.Wellness:
			m.CurrentView = ViewWellness
			return m, nil
		case m.Keys.Feedback:
			m.CurrentView = ViewFeedback
			return m, nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			return m, nil
		case "ctrl+c", m.Keys.Quit:
			m.Quitting = true
			return m, tea.Quit
		}

		switch m.CurrentView {
		case ViewToday:
			return m.handleTodayKey(typed), nil
		case ViewAvailable:
			return m.handleAvailableKey(typed), nil
		case ViewGoals:
			return m.handleGoalsKey(typed), nil
		case ViewCalendar:
			return m.handleCalendarKey(typed), nil
		case ViewWellness:
			return m.handleWellnessKey(typed), nil
		case ViewFeedback:
			return m.handleFeedbackKey(typed)
		}
		return m, nil

	case spinner.TickMsg:
		if m.Feedback.Loading {
			var cmd tea.Cmd
			m.loadSpinner, cmd = m.loadSpinner.Update(typed)
			return m, cmd
		}
		return m, nil

	case SchedulerEventMsg:
		next := m.applySchedulerEvent(typed.Event)
		if m.scheduler != nil {
			return next, waitForSchedulerCmd(m.scheduler.C())
		}
		return next, nil

	case FeedbackReadyMsg:
		return m.applyFeedbackResult(typed), nil

	case SwitchViewMsg:
		if isKnownView(typed.View) {
			m.CurrentView = typed.View
		}
		return m, nil

	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil

	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	}

	return m, nil
}

func (m Model) applySchedulerEvent(ev scheduler.Event) Model {
	switch ev.Kind {
	case scheduler.EventMidnight:
		if err := m.tracker.DailyReset(context.Background()); err != nil {
			m.logger.Error().Err(err).Msg("daily reset failed")
			m.Status = StatusBar{Text: fmt.Sprintf("daily reset failed: %v", err), IsError: true}
			return m
		}
		m.Today.Cursor = 0
		m.Calendar.FocusDate = m.now()
		m.Status = StatusBar{Text: "new day, today list rebuilt"}
		m.logger.Info().Str("day", ev.At.Format("2006-01-02")).Msg("daily reset")

	case scheduler.EventReminder:
		pending := 0
		for _, task := range m.tracker.TodayTasks() {
			if !task.Completed() {
				pending++
			}
		}
		if pending == 0 {
			m.Status = StatusBar{Text: "reminder: all of today's tasks are done"}
			return m
		}
		text := fmt.Sprintf("reminder: %d task(s) still open today", pending)
		m.Status = StatusBar{Text: text}
		if err := m.notifier.Send("daytrack", text); err != nil {
			m.logger.Warn().Err(err).Msg("desktop notification failed")
		}
	}
	return m
}

func waitForSchedulerCmd(ch <-chan scheduler.Event) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return SchedulerEventMsg{Event: ev}
	}
}
