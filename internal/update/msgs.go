package update

import (
	"daytrack/internal/feedback"
	"daytrack/internal/scheduler"
)

// SchedulerEventMsg wraps a scheduler tick delivered to the update loop.
type SchedulerEventMsg struct {
	Event scheduler.Event
}

// FeedbackReadyMsg carries the outcome of an async feedback generation.
type FeedbackReadyMsg struct {
	Entry feedback.Entry
	Err   error
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type SwitchViewMsg struct {
	View View
}
