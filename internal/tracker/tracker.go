// Package tracker implements the use-case layer: category registry, task
// store, goal tracker, event store, mood labels and daily logs, composed
// into one service with the cross-entity consistency rules (category
// delete cascades, task completion driving goal progress and the daily
// log, the midnight reset).
//
// The Tracker is a single-writer object: one mutex guards all state, and
// the UI update loop plus the scheduler callback are the only callers.
// Persistence is write-through; the in-memory view is authoritative.
package tracker

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"daytrack/internal/model"
	"daytrack/internal/storage"
)

type Tracker struct {
	mu     sync.Mutex
	repo   storage.Repository
	logger zerolog.Logger
	now    func() time.Time

	categories map[string]*model.Category // by id
	tasks      map[string]*model.Task     // available templates, by id
	today      map[string]bool            // active subset of tasks, by id
	events     map[string]*model.Event    // by id
	goals      map[string]*model.Goal     // by id
	logs       map[string]*model.DailyLog // by date key
	moodLabels map[string]model.MoodLabel // by folded name
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock overrides the tracker clock, for deterministic tests.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// WithLogger attaches a structured logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(t *Tracker) { t.logger = logger }
}

func New(repo storage.Repository, opts ...Option) *Tracker {
	t := &Tracker{
		repo:       repo,
		logger:     zerolog.Nop(),
		now:        time.Now,
		categories: make(map[string]*model.Category),
		tasks:      make(map[string]*model.Task),
		today:      make(map[string]bool),
		events:     make(map[string]*model.Event),
		goals:      make(map[string]*model.Goal),
		logs:       make(map[string]*model.DailyLog),
		moodLabels: make(map[string]model.MoodLabel),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Load hydrates the tracker from the repository. Tasks recorded in
// today's daily log that are still within their window rejoin the active
// set, so a restart mid-day does not lose "today".
func (t *Tracker) Load(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	categories, err := t.repo.ListCategories(ctx)
	if err != nil {
		return err
	}
	for _, c := range categories {
		cat := categoryFromStorage(c)
		t.categories[cat.ID] = &cat
	}

	tasks, err := t.repo.ListTasks(ctx, storage.TaskListFilter{})
	if err != nil {
		return err
	}
	for _, st := range tasks {
		task := taskFromStorage(st)
		t.tasks[task.Info.ID] = &task
	}

	events, err := t.repo.ListEvents(ctx)
	if err != nil {
		return err
	}
	for _, se := range events {
		event := eventFromStorage(se)
		t.events[event.Info.ID] = &event
	}

	goals, err := t.repo.ListGoals(ctx, storage.GoalListFilter{})
	if err != nil {
		return err
	}
	for _, sg := range goals {
		goal := goalFromStorage(sg)
		t.goals[goal.Info.ID] = &goal
	}

	labels, err := t.repo.ListMoodLabels(ctx)
	if err != nil {
		return err
	}
	for _, sl := range labels {
		t.moodLabels[foldName(sl.Name)] = model.MoodLabel{
			Name:      sl.Name,
			Kind:      model.MoodKind(sl.Kind),
			CreatedAt: sl.CreatedAt,
		}
	}

	todayKey := model.DayOf(t.now())
	logs, err := t.repo.ListDailyLogs(ctx, "0000-00-00", "9999-99-99")
	if err != nil {
		return err
	}
	var latest string
	for _, sl := range logs {
		log := dailyLogFromStorage(sl)
		t.logs[log.Date] = log
		if log.Date > latest {
			latest = log.Date
		}
		if log.Date == todayKey {
			for id := range log.TasksToday {
				if task, ok := t.tasks[id]; ok && task.InWindow(t.now()) {
					t.today[id] = true
				}
			}
		}
	}

	t.logger.Info().
		Int("tasks", len(t.tasks)).
		Int("goals", len(t.goals)).
		Int("logs", len(t.logs)).
		Msg("tracker state loaded")

	// The app may not have been running at midnight. When the newest
	// recorded log predates today, the reset the scheduler would have
	// fired is still owed.
	if latest != "" && latest < todayKey {
		return t.dailyReset(ctx)
	}
	return nil
}

func (t *Tracker) newID() string {
	return uuid.NewString()
}

// currentLog returns today's daily log, creating it lazily. Callers hold
// the tracker lock.
func (t *Tracker) currentLog() *model.DailyLog {
	key := model.DayOf(t.now())
	log, ok := t.logs[key]
	if !ok {
		log = model.NewDailyLog(key)
		t.logs[key] = log
	}
	return log
}

func (t *Tracker) persistLog(ctx context.Context, log *model.DailyLog) error {
	return t.repo.UpsertDailyLog(ctx, dailyLogToStorage(log))
}

func sortedTasks(in []model.Task) []model.Task {
	sort.Slice(in, func(i, j int) bool {
		if in[i].Info.Name != in[j].Info.Name {
			return in[i].Info.Name < in[j].Info.Name
		}
		return in[i].Info.ID < in[j].Info.ID
	})
	return in
}
