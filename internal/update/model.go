// Package update holds the bubbletea model and update loop. All tracker
// mutations triggered by the UI run on the update goroutine, which keeps the
// single-writer discipline.
package update

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/rs/zerolog"

	"daytrack/internal/feedback"
	"daytrack/internal/notify"
	"daytrack/internal/scheduler"
	"daytrack/internal/tracker"
)

type View string

const (
	ViewToday     View = "Today"
	ViewAvailable View = "Available"
	ViewGoals     View = "Goals"
	ViewCalendar  View = "Calendar"
	ViewWellness  View = "Wellness"
	ViewFeedback  View = "Feedback"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Today     string
	Available string
	Goals     string
	Calendar  string
	Wellness  string
	Feedback  string
	Help      string
	Quit      string
}

func defaultKeyMap() GlobalKeyMap {
	return GlobalKeyMap{
		Today:     "1",
		Available: "2",
		Goals:     "3",
		Calendar:  "4",
		Wellness:  "5",
		Feedback:  "6",
		Help:      "?",
		Quit:      "q",
	}
}

type TodayState struct {
	Cursor int
}

type AvailableState struct {
	Cursor int
}

type GoalsState struct {
	Cursor        int
	Order         tracker.GoalOrder
	Reverse       bool
	ShowCompleted bool
	// ConfirmName holds the goal awaiting the second delete keypress.
	ConfirmName string
}

type CalendarState struct {
	FocusDate time.Time
}

type WellnessState struct {
	Cursor int
}

type FeedbackState struct {
	Loading  bool
	HasEntry bool
	Entry    feedback.Entry
	Err      error
}

type CommandPaletteState struct {
	Active bool
}

// Deps are the collaborators handed to the model at startup.
type Deps struct {
	Tracker   *tracker.Tracker
	Scheduler *scheduler.Engine
	Notifier  notify.Notifier
	Feedback  *feedback.Generator
	Logger    zerolog.Logger
	Now       func() time.Time
}

type Model struct {
	CurrentView View
	Status      StatusBar
	Keys        GlobalKeyMap
	HelpVisible bool
	Quitting    bool

	Today     TodayState
	Available AvailableState
	Goals     GoalsState
	Calendar  CalendarState
	Wellness  WellnessState
	Feedback  FeedbackState
	Palette   CommandPaletteState

	tracker   *tracker.Tracker
	scheduler *scheduler.Engine
	notifier  notify.Notifier
	feedback  *feedback.Generator
	logger    zerolog.Logger
	now       func() time.Time

	commandInput textinput.Model
	feedbackView viewport.Model
	loadSpinner  spinner.Model

	width  int
	height int
}

func NewModel(deps Deps) Model {
	input := textinput.New()
	input.Placeholder = "/task morning-run stretch and 5k"
	input.CharLimit = 200

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	now := deps.Now
	if now == nil {
		now = time.Now
	}
	notifier := deps.Notifier
	if notifier == nil {
		notifier = notify.Disabled()
	}

	return Model{
		CurrentView:  ViewToday,
		Keys:         defaultKeyMap(),
		Goals:        GoalsState{Order: tracker.OrderByName},
		Calendar:     CalendarState{FocusDate: now()},
		tracker:      deps.Tracker,
		scheduler:    deps.Scheduler,
		notifier:     notifier,
		feedback:     deps.Feedback,
		logger:       deps.Logger.With().Str("component", "ui").Logger(),
		now:          now,
		commandInput: input,
		feedbackView: viewport.New(74, 18),
		loadSpinner:  spin,
	}
}

func isKnownView(v View) bool {
	switch v {
	case ViewToday, ViewAvailable, ViewGoals, ViewCalendar, ViewWellness, ViewFeedback:
		return true
	}
	return false
}
