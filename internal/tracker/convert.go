package tracker

import (
	"sort"
	"strings"

	"daytrack/internal/model"
	"daytrack/internal/storage"
)

// foldName is the comparison key for case-insensitive name uniqueness
// (mood labels). Categories and task names compare case-sensitive.
func foldName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func categoryFromStorage(in storage.Category) model.Category {
	return model.Category{ID: in.ID, Name: in.Name, CreatedAt: in.CreatedAt}
}

func categoryToStorage(in model.Category) storage.Category {
	return storage.Category{ID: in.ID, Name: in.Name, CreatedAt: in.CreatedAt}
}

func taskFromStorage(in storage.Task) model.Task {
	return model.Task{
		Info: model.Info{
			ID:          in.ID,
			Name:        in.Name,
			Description: in.Description,
			Category:    in.Category,
			CreatedAt:   in.CreatedAt,
		},
		Begin:       in.BeginAt,
		Due:         in.DueAt,
		Priority:    model.Priority(in.Priority),
		CompletedAt: in.CompletedAt,
		OneTime:     in.OneTime,
	}
}

func taskToStorage(in model.Task) storage.Task {
	return storage.Task{
		ID:          in.Info.ID,
		Name:        in.Info.Name,
		Description: in.Info.Description,
		Category:    in.Info.Category,
		BeginAt:     in.Begin,
		DueAt:       in.Due,
		Priority:    string(in.Priority),
		CompletedAt: in.CompletedAt,
		OneTime:     in.OneTime,
		CreatedAt:   in.Info.CreatedAt,
	}
}

func eventFromStorage(in storage.Event) model.Event {
	return model.Event{
		Info: model.Info{
			ID:          in.ID,
			Name:        in.Name,
			Description: in.Description,
			Category:    in.Category,
			CreatedAt:   in.CreatedAt,
		},
		StartAt: in.StartAt,
		EndAt:   in.EndAt,
	}
}

func eventToStorage(in model.Event) storage.Event {
	return storage.Event{
		ID:          in.Info.ID,
		Name:        in.Info.Name,
		Description: in.Info.Description,
		Category:    in.Info.Category,
		StartAt:     in.StartAt,
		EndAt:       in.EndAt,
		CreatedAt:   in.Info.CreatedAt,
	}
}

func goalFromStorage(in storage.Goal) model.Goal {
	return model.Goal{
		Info: model.Info{
			ID:          in.ID,
			Name:        in.Name,
			Description: in.Description,
			Category:    in.Category,
			CreatedAt:   in.CreatedAt,
		},
		Begin: in.BeginAt,
		Due:   in.DueAt,
		TargetTask: model.Info{
			ID:        in.TargetTaskID,
			Name:      in.TargetTaskName,
			CreatedAt: in.CreatedAt,
		},
		Period:    model.Period(in.Period),
		Frequency: in.Frequency,
		Progress:  in.Progress,
		Completed: in.Completed,
	}
}

func goalToStorage(in model.Goal) storage.Goal {
	return storage.Goal{
		ID:             in.Info.ID,
		Name:           in.Info.Name,
		Description:    in.Info.Description,
		Category:       in.Info.Category,
		BeginAt:        in.Begin,
		DueAt:          in.Due,
		TargetTaskID:   in.TargetTask.ID,
		TargetTaskName: in.TargetTask.Name,
		Period:         string(in.Period),
		Frequency:      in.Frequency,
		Progress:       in.Progress,
		Completed:      in.Completed,
		CreatedAt:      in.Info.CreatedAt,
	}
}

func dailyLogFromStorage(in storage.DailyLog) *model.DailyLog {
	log := model.NewDailyLog(in.Date)
	for _, t := range in.Tasks {
		log.TasksToday[t.TaskID] = true
		if t.Completed {
			log.CompletedTasks[t.TaskID] = true
		}
	}
	for _, e := range in.Entries {
		log.Entries = append(log.Entries, model.WellnessEntry{
			ID:      e.ID,
			At:      e.At,
			Stress:  model.Level(e.Stress),
			Energy:  model.Level(e.Energy),
			Fatigue: model.Level(e.Fatigue),
			Mood:    e.Mood,
			Note:    e.Note,
		})
	}
	return log
}

func dailyLogToStorage(in *model.DailyLog) storage.DailyLog {
	out := storage.DailyLog{Date: in.Date}
	ids := make([]string, 0, len(in.TasksToday))
	for id := range in.TasksToday {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		out.Tasks = append(out.Tasks, storage.DailyLogTask{
			TaskID:    id,
			Completed: in.CompletedTasks[id],
		})
	}
	for _, e := range in.Entries {
		out.Entries = append(out.Entries, storage.WellnessEntry{
			ID:      e.ID,
			Date:    in.Date,
			At:      e.At,
			Stress:  int(e.Stress),
			Energy:  int(e.Energy),
			Fatigue: int(e.Fatigue),
			Mood:    e.Mood,
			Note:    e.Note,
		})
	}
	return out
}
