package update

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"daytrack/internal/feedback"
	"daytrack/internal/views"
)

func (m Model) handleFeedbackKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "g":
		if m.feedback == nil {
			m.Status = StatusBar{Text: "feedback is not configured", IsError: true}
			return m, nil
		}
		if m.Feedback.Loading {
			return m, nil
		}
		m.Feedback.Loading = true
		m.Status = StatusBar{Text: "generating weekly feedback"}
		return m, tea.Batch(m.loadSpinner.Tick, generateFeedbackCmd(m.feedback, m.now()))
	}
	var cmd tea.Cmd
	m.feedbackView, cmd = m.feedbackView.Update(msg)
	return m, cmd
}

func (m Model) applyFeedbackResult(msg FeedbackReadyMsg) Model {
	m.Feedback.Loading = false
	m.Feedback.Err = msg.Err
	if msg.Err != nil {
		if errors.Is(msg.Err, feedback.ErrFeedbackUnavailable) {
			m.Status = StatusBar{Text: "feedback unavailable, try again later", IsError: true}
		} else {
			m.Status = StatusBar{Text: msg.Err.Error(), IsError: true}
		}
		return m
	}
	m.Feedback.Entry = msg.Entry
	m.Feedback.HasEntry = true
	m.feedbackView.SetContent(views.RenderMarkdown(
		views.FeedbackMarkdown(msg.Entry.AIAnalysis, msg.Entry.Recommendations)))
	m.Status = StatusBar{Text: "weekly feedback ready"}
	return m
}

func generateFeedbackCmd(gen *feedback.Generator, day time.Time) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		entry, err := gen.Generate(ctx, day)
		return FeedbackReadyMsg{Entry: entry, Err: err}
	}
}
