package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Task     func(TaskArgs) (Result, error)
	Mood     func(MoodArgs) (Result, error)
	Goal     func(GoalArgs) (Result, error)
	Category func(CategoryArgs) (Result, error)
	Feedback func() (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeTask:
		if handlers.Task == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "task handler not configured"}
		}
		return handlers.Task(*cmd.Task)
	case TypeMood:
		if handlers.Mood == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "mood handler not configured"}
		}
		return handlers.Mood(*cmd.Mood)
	case TypeGoal:
		if handlers.Goal == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "goal handler not configured"}
		}
		return handlers.Goal(*cmd.Goal)
	case TypeCategory:
		if handlers.Category == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "category handler not configured"}
		}
		return handlers.Category(*cmd.Category)
	case TypeFeedback:
		if handlers.Feedback == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "feedback handler not configured"}
		}
		return handlers.Feedback()
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}
