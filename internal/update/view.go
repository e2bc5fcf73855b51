package update

import (
	"fmt"
	"strings"

	"daytrack/internal/model"
	"daytrack/internal/views"
)

func (m Model) View() string {
	if m.Quitting {
		return "bye\n"
	}

	var body string
	switch m.CurrentView {
	case ViewToday:
		body = views.RenderTodayPanel(m.todayPanelData())
	case ViewAvailable:
		body = views.RenderAvailablePanel(m.availablePanelData())
	case ViewGoals:
		body = views.RenderGoalsPanel(m.goalsPanelData())
	case ViewCalendar:
		body = views.RenderCalendarPanel(m.calendarPanelData())
	case ViewWellness:
		body = views.RenderWellnessPanel(m.wellnessPanelData())
	case ViewFeedback:
		body = views.RenderFeedbackPanel(m.feedbackPanelData())
	}

	if m.HelpVisible {
		body += "\n\n" + views.RenderHelpPanel(views.HelpPanelData{Bindings: m.helpBindings()})
	}

	footer := fmt.Sprintf("[1]today [2]tasks [3]goals [4]calendar [5]wellness [6]feedback [/]command [%s]help [%s]quit",
		m.Keys.Help, m.Keys.Quit)
	notification := ""
	if m.Palette.Active {
		notification = "command: " + m.commandInput.View()
	}

	return views.RenderApp(views.AppData{
		Header:       fmt.Sprintf("daytrack / %s", strings.ToLower(string(m.CurrentView))),
		Body:         body,
		StatusLine:   m.Status.Text,
		IsError:      m.Status.IsError,
		Footer:       footer,
		Notification: notification,
	})
}

func (m Model) todayPanelData() views.TodayPanelData {
	date := model.DayOf(m.now())
	data := views.TodayPanelData{Date: date, Cursor: m.Today.Cursor}
	if rate, ok := m.tracker.CompletionRate(date); ok {
		data.Rate = fmt.Sprintf("%.0f%%", rate*100)
	}
	for _, task := range m.tracker.TodayTasks() {
		data.Items = append(data.Items, taskRow(task))
	}
	return data
}

func (m Model) availablePanelData() views.AvailablePanelData {
	data := views.AvailablePanelData{Cursor: m.Available.Cursor}
	for _, task := range m.tracker.AvailableTasks() {
		data.Items = append(data.Items, taskRow(task))
	}
	return data
}

func taskRow(task model.Task) views.TaskRowData {
	row := views.TaskRowData{
		Name:     task.Name,
		Category: task.Category,
		Priority: string(task.Priority),
		Done:     task.Completed(),
	}
	if task.Due != nil {
		row.Due = model.DayOf(*task.Due)
	}
	return row
}

func (m Model) goalsPanelData() views.GoalsPanelData {
	data := views.GoalsPanelData{
		Cursor:        m.Goals.Cursor,
		Order:         string(m.Goals.Order),
		ShowCompleted: m.Goals.ShowCompleted,
		ConfirmName:   m.Goals.ConfirmName,
	}
	for _, goal := range m.visibleGoals() {
		data.Items = append(data.Items, views.GoalRowData{
			Name:      goal.Name,
			Period:    string(goal.Period),
			Progress:  goal.Progress,
			Frequency: goal.Frequency,
			Due:       model.DayOf(goal.Due),
			Completed: goal.Completed,
		})
	}
	return data
}

func (m Model) calendarPanelData() views.CalendarPanelData {
	data := views.CalendarPanelData{Date: model.DayOf(m.Calendar.FocusDate)}
	for _, ev := range m.tracker.EventsOn(m.Calendar.FocusDate) {
		data.Items = append(data.Items, views.EventRowData{
			Name:     ev.Name,
			Category: ev.Category,
			Start:    ev.StartAt.Format("15:04"),
			End:      ev.EndAt.Format("15:04"),
		})
	}
	return data
}

func (m Model) wellnessPanelData() views.WellnessPanelData {
	data := views.WellnessPanelData{
		Date:   model.DayOf(m.now()),
		Cursor: m.Wellness.Cursor,
	}
	for _, label := range m.tracker.MoodLabels() {
		data.Labels = append(data.Labels, label.Name)
	}
	for _, entry := range m.todayEntries() {
		data.Entries = append(data.Entries, views.WellnessRowData{
			At:      entry.At.Format("15:04"),
			Mood:    entry.Mood,
			Stress:  int(entry.Stress),
			Energy:  int(entry.Energy),
			Fatigue: int(entry.Fatigue),
			Note:    entry.Note,
		})
	}
	return data
}

func (m Model) feedbackPanelData() views.FeedbackPanelData {
	data := views.FeedbackPanelData{Date: model.DayOf(m.now())}
	switch {
	case m.Feedback.Loading:
		data.Loading = true
		data.Notice = m.loadSpinner.View()
	case m.Feedback.Err != nil:
		data.Notice = "feedback unavailable, try again later"
	case m.Feedback.HasEntry:
		data.Markdown = m.feedbackView.View()
	}
	return data
}

func (m Model) helpBindings() []string {
	return []string{
		"1-6        switch view",
		"/          command palette (/task, /mood, /goal, /category, /feedback)",
		"j/k        move cursor",
		"space      complete today's task",
		"u          reopen a completed task",
		"a          add available task to today",
		"x          delete / remove under cursor",
		"o, r, tab  goal ordering and scope",
		"g          generate weekly feedback",
		"q          quit",
	}
}
