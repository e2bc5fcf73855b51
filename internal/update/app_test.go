package update

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"daytrack/internal/model"
	"daytrack/internal/scheduler"
	"daytrack/internal/storage"
	"daytrack/internal/tracker"
)

func newTestModel(t *testing.T) (Model, *tracker.Tracker, *time.Time) {
	t.Helper()
	now := time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC)
	clock := &now

	tr := tracker.New(storage.NewMemoryRepository(), tracker.WithClock(func() time.Time { return *clock }))
	if err := tr.Load(context.Background()); err != nil {
		t.Fatalf("load tracker: %v", err)
	}

	m := NewModel(Deps{
		Tracker: tr,
		Logger:  zerolog.Nop(),
		Now:     func() time.Time { return *clock },
	})
	return m, tr, clock
}

func press(m Model, keys ...string) Model {
	for _, key := range keys {
		var msg tea.Msg
		switch key {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEscape}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "space":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
		}
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func typeText(m Model, text string) Model {
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return next.(Model)
}

func TestViewSwitchKeys(t *testing.T) {
	m, _, _ := newTestModel(t)

	cases := []struct {
		key  string
		want View
	}{
		{"2", ViewAvailable},
		{"3", ViewGoals},
		{"4", ViewCalendar},
		{"5", ViewWellness},
		{"6", ViewFeedback},
		{"1", ViewToday},
	}
	for _, tc := range cases {
		m = press(m, tc.key)
		if m.CurrentView != tc.want {
			t.Fatalf("key %q: view = %s, want %s", tc.key, m.CurrentView, tc.want)
		}
	}
}

func TestPaletteCreatesTask(t *testing.T) {
	m, tr, _ := newTestModel(t)

	m = press(m, "/")
	if !m.Palette.Active {
		t.Fatal("palette should be active")
	}
	m = typeText(m, "/task journal evening pages")
	m = press(m, "enter")

	if m.Palette.Active {
		t.Fatal("palette should close on enter")
	}
	if m.Status.IsError {
		t.Fatalf("command failed: %s", m.Status.Text)
	}
	tasks := tr.AvailableTasks()
	if len(tasks) != 1 || tasks[0].Name != "journal" {
		t.Fatalf("tasks = %+v", tasks)
	}
}

func TestPaletteUnknownCommandReportsError(t *testing.T) {
	m, _, _ := newTestModel(t)

	m = press(m, "/")
	m = typeText(m, "/frobnicate")
	m = press(m, "enter")
	if !m.Status.IsError {
		t.Fatalf("expected error status, got %q", m.Status.Text)
	}
}

func TestCompleteTodayTask(t *testing.T) {
	m, tr, _ := newTestModel(t)
	ctx := context.Background()

	task, err := tr.CreateAvailableTask(ctx, tracker.CreateTaskParams{
		Name:     "stretch",
		Begin:    time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC),
		Priority: model.PriorityLow,
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := tr.AddToToday(ctx, task.ID, nil); err != nil {
		t.Fatal(err)
	}

	m = press(m, "1", "space")
	if m.Status.IsError {
		t.Fatalf("complete failed: %s", m.Status.Text)
	}
	today := tr.TodayTasks()
	if len(today) != 1 || !today[0].Completed() {
		t.Fatalf("today = %+v", today)
	}
}

func TestGoalDeleteNeedsConfirmation(t *testing.T) {
	m, tr, _ := newTestModel(t)
	ctx := context.Background()

	task, err := tr.CreateAvailableTask(ctx, tracker.CreateTaskParams{
		Name:     "run",
		Begin:    time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC),
		Priority: model.PriorityMedium,
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := tr.CreateGoal(ctx, tracker.CreateGoalParams{
		Name:       "run-week",
		TargetTask: task.ID,
		Period:     model.PeriodWeek,
		Frequency:  3,
	}); err != nil {
		t.Fatal(err)
	}

	m = press(m, "3", "x")
	if m.Goals.ConfirmName != "run-week" {
		t.Fatalf("ConfirmName = %q, want pending confirmation", m.Goals.ConfirmName)
	}
	if len(tr.ActiveGoals()) != 1 {
		t.Fatal("goal should survive the first keypress")
	}

	m = press(m, "x")
	if m.Goals.ConfirmName != "" {
		t.Fatalf("ConfirmName = %q after confirmed delete", m.Goals.ConfirmName)
	}
	if len(tr.ActiveGoals()) != 0 {
		t.Fatal("goal should be deleted on the second keypress")
	}
}

func TestMidnightEventRunsDailyReset(t *testing.T) {
	m, tr, clock := newTestModel(t)
	ctx := context.Background()

	task, err := tr.CreateAvailableTask(ctx, tracker.CreateTaskParams{
		Name:     "stretch",
		Begin:    time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC),
		Priority: model.PriorityLow,
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := tr.AddToToday(ctx, task.ID, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := tr.MarkComplete(ctx, task.ID, *clock); err != nil {
		t.Fatal(err)
	}

	*clock = clock.AddDate(0, 0, 1)
	next, _ := m.Update(SchedulerEventMsg{Event: scheduler.Event{
		Kind: scheduler.EventMidnight,
		At:   *clock,
	}})
	m = next.(Model)

	if m.Status.IsError {
		t.Fatalf("midnight handling failed: %s", m.Status.Text)
	}
	today := tr.TodayTasks()
	if len(today) != 1 || today[0].Completed() {
		t.Fatalf("today after reset = %+v", today)
	}
}

func TestReminderEventCountsOpenTasks(t *testing.T) {
	m, tr, clock := newTestModel(t)
	ctx := context.Background()

	task, err := tr.CreateAvailableTask(ctx, tracker.CreateTaskParams{
		Name:     "stretch",
		Begin:    time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC),
		Priority: model.PriorityLow,
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := tr.AddToToday(ctx, task.ID, nil); err != nil {
		t.Fatal(err)
	}

	next, _ := m.Update(SchedulerEventMsg{Event: scheduler.Event{
		Kind:  scheduler.EventReminder,
		Clock: "09:00",
		At:    *clock,
	}})
	m = next.(Model)
	if m.Status.Text != "reminder: 1 task(s) still open today" {
		t.Fatalf("status = %q", m.Status.Text)
	}
}
