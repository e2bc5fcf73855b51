package views

import (
	"fmt"
	"strings"
)

type TaskRowData struct {
	Name     string
	Category string
	Priority string
	Due      string
	Done     bool
}

type TodayPanelData struct {
	Date   string
	Items  []TaskRowData
	Cursor int
	Rate   string
}

type AvailablePanelData struct {
	Items  []TaskRowData
	Cursor int
}

type GoalRowData struct {
	Name      string
	Period    string
	Progress  int
	Frequency int
	Due       string
	Completed bool
}

type GoalsPanelData struct {
	Items         []GoalRowData
	Cursor        int
	Order         string
	ShowCompleted bool
	ConfirmName   string
}

type EventRowData struct {
	Name     string
	Category string
	Start    string
	End      string
}

type CalendarPanelData struct {
	Date  string
	Items []EventRowData
}

type WellnessRowData struct {
	At      string
	Mood    string
	Stress  int
	Energy  int
	Fatigue int
	Note    string
}

type WellnessPanelData struct {
	Date    string
	Entries []WellnessRowData
	Labels  []string
	Cursor  int
}

type FeedbackPanelData struct {
	Date     string
	Loading  bool
	Markdown string
	Notice   string
}

type HelpPanelData struct {
	Bindings []string
}

func RenderTodayPanel(data TodayPanelData) string {
	var b strings.Builder
	fmt.Fprintf(&b, "today %s", data.Date)
	if data.Rate != "" {
		fmt.Fprintf(&b, "  (%s done)", data.Rate)
	}
	b.WriteString("\n")
	b.WriteString("actions: [j/k]move [space]complete [u]reopen [x]remove\n")
	if len(data.Items) == 0 {
		b.WriteString(mutedStyle.Render("nothing scheduled for today"))
		return b.String()
	}
	for i, item := range data.Items {
		b.WriteString(renderTaskRow(item, i == data.Cursor))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func RenderAvailablePanel(data AvailablePanelData) string {
	var b strings.Builder
	b.WriteString("available tasks\n")
	b.WriteString("actions: [j/k]move [a]add to today [x]delete [/]new via palette\n")
	if len(data.Items) == 0 {
		b.WriteString(mutedStyle.Render("no task templates yet, try /task <name>"))
		return b.String()
	}
	for i, item := range data.Items {
		b.WriteString(renderTaskRow(item, i == data.Cursor))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderTaskRow(item TaskRowData, selected bool) string {
	marker := "[ ]"
	if item.Done {
		marker = "[x]"
	}
	line := fmt.Sprintf("%s %s", marker, item.Name)
	if item.Priority != "" {
		line += fmt.Sprintf(" !%s", item.Priority)
	}
	if item.Category != "" {
		line += fmt.Sprintf(" @%s", item.Category)
	}
	if item.Due != "" {
		line += fmt.Sprintf(" due %s", item.Due)
	}
	if item.Done {
		line = doneStyle.Render(line)
	}
	if selected {
		return cursorStyle.Render("> ") + line
	}
	return "  " + line
}

func RenderGoalsPanel(data GoalsPanelData) string {
	var b strings.Builder
	scope := "active"
	if data.ShowCompleted {
		scope = "completed"
	}
	fmt.Fprintf(&b, "goals (%s, by %s)\n", scope, data.Order)
	b.WriteString("actions: [j/k]move [o]order [r]reverse [tab]scope [-]undo progress [x]delete\n")
	if data.ConfirmName != "" {
		fmt.Fprintf(&b, "%s\n", errorStyle.Render(
			fmt.Sprintf("goal %q is still active, press x again to delete", data.ConfirmName)))
	}
	if len(data.Items) == 0 {
		b.WriteString(mutedStyle.Render("no goals here"))
		return b.String()
	}
	for i, g := range data.Items {
		bar := progressBar(g.Progress, g.Frequency)
		line := fmt.Sprintf("%s %s %d/%d (%s, due %s)", g.Name, bar, g.Progress, g.Frequency, g.Period, g.Due)
		if g.Completed {
			line = doneStyle.Render(line)
		}
		if i == data.Cursor {
			b.WriteString(cursorStyle.Render("> ") + line)
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func progressBar(progress, frequency int) string {
	if frequency <= 0 {
		return ""
	}
	filled := progress
	if filled > frequency {
		filled = frequency
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", frequency-filled) + "]"
}

func RenderCalendarPanel(data CalendarPanelData) string {
	var b strings.Builder
	fmt.Fprintf(&b, "calendar %s\n", data.Date)
	b.WriteString("actions: [h/l]day [t]today [/]new via palette\n")
	if len(data.Items) == 0 {
		b.WriteString(mutedStyle.Render("no events on this day"))
		return b.String()
	}
	for _, ev := range data.Items {
		line := fmt.Sprintf("  %s-%s %s", ev.Start, ev.End, ev.Name)
		if ev.Category != "" {
			line += fmt.Sprintf(" @%s", ev.Category)
		}
		b.WriteString(line + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func RenderWellnessPanel(data WellnessPanelData) string {
	var b strings.Builder
	fmt.Fprintf(&b, "wellness %s\n", data.Date)
	b.WriteString("actions: [j/k]move [x]delete entry [/]record via /mood\n")
	if len(data.Labels) > 0 {
		fmt.Fprintf(&b, "labels: %s\n", strings.Join(data.Labels, ", "))
	}
	if len(data.Entries) == 0 {
		b.WriteString(mutedStyle.Render("no entries today"))
		return b.String()
	}
	for i, e := range data.Entries {
		line := fmt.Sprintf("%s %s s:%d e:%d f:%d", e.At, e.Mood, e.Stress, e.Energy, e.Fatigue)
		if e.Note != "" {
			line += fmt.Sprintf(" %q", e.Note)
		}
		if i == data.Cursor {
			b.WriteString(cursorStyle.Render("> ") + line)
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func RenderFeedbackPanel(data FeedbackPanelData) string {
	var b strings.Builder
	fmt.Fprintf(&b, "weekly feedback %s\n", data.Date)
	b.WriteString("actions: [g]generate\n")
	switch {
	case data.Loading:
		b.WriteString(strings.TrimSpace(data.Notice + " thinking..."))
	case data.Notice != "":
		b.WriteString(errorStyle.Render(data.Notice))
	case data.Markdown != "":
		b.WriteString(data.Markdown)
	default:
		b.WriteString(mutedStyle.Render("press g to analyze the past week"))
	}
	return b.String()
}

func RenderHelpPanel(data HelpPanelData) string {
	var b strings.Builder
	b.WriteString("keys\n")
	for _, binding := range data.Bindings {
		b.WriteString("  " + binding + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// FeedbackMarkdown lays out a cached feedback entry as markdown for glamour.
func FeedbackMarkdown(analysis string, recommendations []string) string {
	var b strings.Builder
	b.WriteString("## Analysis\n\n")
	b.WriteString(analysis)
	b.WriteString("\n")
	if len(recommendations) > 0 {
		b.WriteString("\n## Recommendations\n\n")
		for _, r := range recommendations {
			b.WriteString("- " + r + "\n")
		}
	}
	return b.String()
}
