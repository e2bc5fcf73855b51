package reports

import (
	"testing"
	"time"

	"daytrack/internal/model"
)

type stubSource struct {
	logs   []model.DailyLog
	active []model.Goal
	done   []model.Goal
	labels []model.MoodLabel
}

func (s *stubSource) Logs(from, to string) []model.DailyLog {
	out := make([]model.DailyLog, 0)
	for _, log := range s.logs {
		if log.Date >= from && log.Date <= to {
			out = append(out, log)
		}
	}
	return out
}

func (s *stubSource) ActiveGoals() []model.Goal     { return s.active }
func (s *stubSource) CompletedGoals() []model.Goal  { return s.done }
func (s *stubSource) MoodLabels() []model.MoodLabel { return s.labels }

func dayLog(date string, scheduled, completed int, entries ...model.WellnessEntry) model.DailyLog {
	log := model.DailyLog{
		Date:           date,
		TasksToday:     make(map[string]bool),
		CompletedTasks: make(map[string]bool),
		Entries:        entries,
	}
	for i := 0; i < scheduled; i++ {
		id := string(rune('a' + i))
		log.TasksToday[id] = true
		if i < completed {
			log.CompletedTasks[id] = true
		}
	}
	return log
}

func TestDailySummary(t *testing.T) {
	src := &stubSource{
		logs: []model.DailyLog{
			dayLog("2026-08-24", 4, 3,
				model.WellnessEntry{Stress: 3, Energy: 7, Fatigue: 2, Mood: "calm"},
				model.WellnessEntry{Stress: 5, Energy: 5, Fatigue: 4, Mood: "anxious"},
			),
		},
		labels: []model.MoodLabel{
			{Name: "calm", Kind: model.MoodPositive},
			{Name: "anxious", Kind: model.MoodNegative},
		},
	}
	g := NewGenerator(src)

	sum := g.Daily("2026-08-24")
	if !sum.HasRate || sum.CompletionRate != 0.75 {
		t.Errorf("rate = %v (has %v), want 0.75", sum.CompletionRate, sum.HasRate)
	}
	if sum.AvgStress != 4 || sum.AvgEnergy != 6 || sum.AvgFatigue != 3 {
		t.Errorf("averages = %v/%v/%v", sum.AvgStress, sum.AvgEnergy, sum.AvgFatigue)
	}
	if sum.PositiveMoods != 1 || sum.NegativeMoods != 1 {
		t.Errorf("moods = +%d/-%d", sum.PositiveMoods, sum.NegativeMoods)
	}
}

func TestDailyNoLog(t *testing.T) {
	g := NewGenerator(&stubSource{})
	sum := g.Daily("2026-08-24")
	if sum.HasRate {
		t.Error("day without a log should report no rate")
	}
	if sum.Date != "2026-08-24" {
		t.Errorf("Date = %q", sum.Date)
	}
}

func TestWeeklySpansSevenDays(t *testing.T) {
	end := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	src := &stubSource{
		logs: []model.DailyLog{
			dayLog("2026-08-24", 2, 2),
			dayLog("2026-08-27", 4, 1,
				model.WellnessEntry{Stress: 6, Energy: 4, Fatigue: 5, Mood: "tired"}),
			// Outside the window, must be ignored.
			dayLog("2026-08-23", 5, 5),
		},
		labels: []model.MoodLabel{{Name: "tired", Kind: model.MoodNegative}},
		active: []model.Goal{{
			Info:      model.Info{Name: "run"},
			Period:    model.PeriodWeek,
			Frequency: 3,
			Progress:  1,
			Due:       end,
		}},
	}
	g := NewGenerator(src)
	g.SetNowFunc(func() time.Time { return end })

	rep := g.Weekly(end)
	if rep.From != "2026-08-24" || rep.To != "2026-08-30" {
		t.Fatalf("window = %s..%s", rep.From, rep.To)
	}
	if len(rep.Days) != 7 || len(rep.Correlation) != 7 {
		t.Fatalf("days = %d, correlation = %d", len(rep.Days), len(rep.Correlation))
	}
	if rep.Tasks.Scheduled != 6 || rep.Tasks.Completed != 3 {
		t.Errorf("tasks = %d/%d", rep.Tasks.Completed, rep.Tasks.Scheduled)
	}
	if rep.Tasks.DaysWithTasks != 2 {
		t.Errorf("DaysWithTasks = %d", rep.Tasks.DaysWithTasks)
	}
	// (1.0 + 0.25) / 2
	if rep.Tasks.AvgCompletionRate != 0.625 {
		t.Errorf("AvgCompletionRate = %v", rep.Tasks.AvgCompletionRate)
	}
	if rep.Wellness.Entries != 1 || rep.Wellness.AvgStress != 6 {
		t.Errorf("wellness = %+v", rep.Wellness)
	}
	if len(rep.Goals) != 1 || rep.Goals[0].Name != "run" {
		t.Errorf("goals = %+v", rep.Goals)
	}

	// Empty days appear with no data flags set.
	empty := rep.Correlation[1] // 2026-08-25
	if empty.HasRate || empty.HasWellness {
		t.Errorf("empty day flagged with data: %+v", empty)
	}
	withBoth := rep.Correlation[3] // 2026-08-27
	if !withBoth.HasRate || !withBoth.HasWellness {
		t.Errorf("data day missing flags: %+v", withBoth)
	}
}

func TestCorrelatePerfectInverse(t *testing.T) {
	points := []CorrelationPoint{
		{HasRate: true, HasWellness: true, CompletionRate: 1.0, AvgStress: 2, AvgEnergy: 8, AvgFatigue: 1},
		{HasRate: true, HasWellness: true, CompletionRate: 0.5, AvgStress: 5, AvgEnergy: 5, AvgFatigue: 4},
		{HasRate: true, HasWellness: true, CompletionRate: 0.0, AvgStress: 8, AvgEnergy: 2, AvgFatigue: 7},
		{HasRate: true, HasWellness: false, CompletionRate: 0.9},
	}
	c := correlate(points)
	if c.Samples != 3 {
		t.Fatalf("samples = %d, want 3", c.Samples)
	}
	if !closeTo(c.StressVsTasks, -1) || !closeTo(c.FatigueVsTasks, -1) {
		t.Errorf("negative signals: stress %v fatigue %v", c.StressVsTasks, c.FatigueVsTasks)
	}
	if !closeTo(c.EnergyVsTasks, 1) {
		t.Errorf("energy r = %v, want 1", c.EnergyVsTasks)
	}
}

func TestCorrelateTooFewSamples(t *testing.T) {
	c := correlate([]CorrelationPoint{
		{HasRate: true, HasWellness: true, CompletionRate: 1, AvgStress: 3},
	})
	if c.Samples != 1 || c.StressVsTasks != 0 {
		t.Errorf("got %+v, want zeroed coefficients", c)
	}
}

func closeTo(got, want float64) bool {
	const eps = 1e-9
	return got > want-eps && got < want+eps
}

func TestTopMoodsOrdering(t *testing.T) {
	got := topMoods(map[string]int{"calm": 2, "tired": 5, "happy": 2}, 2)
	if len(got) != 2 {
		t.Fatalf("len = %d", len(got))
	}
	if got[0].Label != "tired" || got[1].Label != "calm" {
		t.Errorf("order = %v", got)
	}
}
