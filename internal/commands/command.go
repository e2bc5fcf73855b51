// Package commands parses the slash command palette into typed commands and
// dispatches them to registered handlers.
package commands

import (
	"fmt"
	"strconv"
	"strings"
)

type Type string

const (
	TypeTask     Type = "task"
	TypeMood     Type = "mood"
	TypeGoal     Type = "goal"
	TypeCategory Type = "category"
	TypeFeedback Type = "feedback"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// TaskArgs creates an available task: /task <name> [description...]
type TaskArgs struct {
	Name        string
	Description string
}

// MoodArgs records a wellness entry:
// /mood <label> <stress> <energy> <fatigue> [note...]
type MoodArgs struct {
	Label   string
	Stress  int
	Energy  int
	Fatigue int
	Note    string
}

// GoalArgs creates a goal bound to a task:
// /goal <name> <task> <week|month> <frequency>
type GoalArgs struct {
	Name      string
	Task      string
	Period    string
	Frequency int
}

// CategoryArgs creates a category: /category <name>
type CategoryArgs struct {
	Name string
}

type Command struct {
	Type     Type
	Raw      string
	Task     *TaskArgs
	Mood     *MoodArgs
	Goal     *GoalArgs
	Category *CategoryArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeTask:
		return parseTask(input, args)
	case TypeMood:
		return parseMood(input, args)
	case TypeGoal:
		return parseGoal(input, args)
	case TypeCategory:
		return parseCategory(input, args)
	case TypeFeedback:
		return Command{Type: TypeFeedback, Raw: input}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseTask(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "task requires a name"}
	}
	task := &TaskArgs{Name: args[0]}
	if len(args) > 1 {
		task.Description = strings.Join(args[1:], " ")
	}
	return Command{Type: TypeTask, Raw: raw, Task: task}, nil
}

func parseMood(raw string, args []string) (Command, error) {
	if len(args) < 4 {
		return Command{}, &CommandError{
			Code:    ErrCodeInvalidArgument,
			Message: "mood requires a label and stress, energy, fatigue levels",
		}
	}
	mood := &MoodArgs{Label: args[0]}
	levels := []*int{&mood.Stress, &mood.Energy, &mood.Fatigue}
	for i, dst := range levels {
		n, err := strconv.Atoi(args[i+1])
		if err != nil {
			return Command{}, &CommandError{
				Code:    ErrCodeInvalidArgument,
				Message: fmt.Sprintf("level %q is not a number", args[i+1]),
			}
		}
		*dst = n
	}
	if len(args) > 4 {
		mood.Note = strings.Join(args[4:], " ")
	}
	return Command{Type: TypeMood, Raw: raw, Mood: mood}, nil
}

func parseGoal(raw string, args []string) (Command, error) {
	if len(args) < 4 {
		return Command{}, &CommandError{
			Code:    ErrCodeInvalidArgument,
			Message: "goal requires name, task, period and frequency",
		}
	}
	freq, err := strconv.Atoi(args[3])
	if err != nil {
		return Command{}, &CommandError{
			Code:    ErrCodeInvalidArgument,
			Message: fmt.Sprintf("frequency %q is not a number", args[3]),
		}
	}
	return Command{Type: TypeGoal, Raw: raw, Goal: &GoalArgs{
		Name:      args[0],
		Task:      args[1],
		Period:    strings.ToLower(args[2]),
		Frequency: freq,
	}}, nil
}

func parseCategory(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "category requires a name"}
	}
	return Command{Type: TypeCategory, Raw: raw, Category: &CategoryArgs{Name: strings.Join(args, " ")}}, nil
}
