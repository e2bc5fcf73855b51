package update

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"daytrack/internal/commands"
	"daytrack/internal/model"
	"daytrack/internal/tracker"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Palette.Active = false
		m.commandInput.SetValue("")
		m.commandInput.Blur()
		m.Status = StatusBar{Text: "command palette closed"}
		return m, nil
	case "enter":
		input := m.commandInput.Value()
		m.Palette.Active = false
		m.commandInput.SetValue("")
		m.commandInput.Blur()
		return m.runCommand(input)
	}
	var cmd tea.Cmd
	m.commandInput, cmd = m.commandInput.Update(msg)
	return m, cmd
}

func (m Model) runCommand(input string) (Model, tea.Cmd) {
	cmd, err := commands.Parse(input)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}

	if cmd.Type == commands.TypeFeedback {
		m.CurrentView = ViewFeedback
		return m.handleFeedbackKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'g'}})
	}

	res, err := commands.Execute(cmd, m.commandHandlers())
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}
	m.Status = StatusBar{Text: res.Message}
	return m, nil
}

func (m Model) commandHandlers() commands.Handlers {
	ctx := context.Background()
	return commands.Handlers{
		Task: func(a commands.TaskArgs) (commands.Result, error) {
			task, err := m.tracker.CreateAvailableTask(ctx, tracker.CreateTaskParams{
				Name:        a.Name,
				Description: a.Description,
				Begin:       m.now(),
				Priority:    model.PriorityMedium,
			})
			if err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("task %q created", task.Name)}, nil
		},
		Mood: func(a commands.MoodArgs) (commands.Result, error) {
			entry, err := m.tracker.RecordWellness(ctx, tracker.RecordWellnessParams{
				At:      m.now(),
				Stress:  model.Level(a.Stress),
				Energy:  model.Level(a.Energy),
				Fatigue: model.Level(a.Fatigue),
				Mood:    a.Label,
				Note:    a.Note,
			})
			if err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("recorded %s mood", entry.Mood)}, nil
		},
		Goal: func(a commands.GoalArgs) (commands.Result, error) {
			task, ok := m.taskByName(a.Task)
			if !ok {
				return commands.Result{}, fmt.Errorf("unknown task %q", a.Task)
			}
			period := model.PeriodWeek
			if a.Period == "month" {
				period = model.PeriodMonth
			}
			goal, err := m.tracker.CreateGoal(ctx, tracker.CreateGoalParams{
				Name:       a.Name,
				TargetTask: task.ID,
				Period:     period,
				Frequency:  a.Frequency,
			})
			if err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("goal %q created, due %s",
				goal.Name, model.DayOf(goal.Due))}, nil
		},
		Category: func(a commands.CategoryArgs) (commands.Result, error) {
			cat, err := m.tracker.CreateCategory(ctx, a.Name)
			if err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("category %q created", cat.Name)}, nil
		},
	}
}

func (m Model) taskByName(name string) (model.Task, bool) {
	for _, task := range m.tracker.AvailableTasks() {
		if task.Name == name {
			return task, true
		}
	}
	return model.Task{}, false
}
