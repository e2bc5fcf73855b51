package reports

import (
	"math"
	"sort"
	"time"

	"daytrack/internal/model"
)

// Source provides the tracker data reports are built from. *tracker.Tracker
// satisfies it.
type Source interface {
	Logs(from, to string) []model.DailyLog
	ActiveGoals() []model.Goal
	CompletedGoals() []model.Goal
	MoodLabels() []model.MoodLabel
}

// Generator builds summaries from a Source.
type Generator struct {
	src Source
	now func() time.Time
}

// NewGenerator creates a report generator.
func NewGenerator(src Source) *Generator {
	return &Generator{src: src, now: time.Now}
}

// SetNowFunc overrides the clock, for tests.
func (g *Generator) SetNowFunc(now func() time.Time) {
	g.now = now
}

// Daily summarizes a single day by date key. A day with no log yields an
// empty summary for that date.
func (g *Generator) Daily(date string) DailySummary {
	logs := g.src.Logs(date, date)
	if len(logs) == 0 {
		return DailySummary{Date: date}
	}
	return summarize(logs[0], g.moodKinds())
}

// Weekly aggregates the seven days ending at day (inclusive).
func (g *Generator) Weekly(day time.Time) *WeeklyReport {
	to := model.DayOf(day)
	from := model.DayOf(day.AddDate(0, 0, -6))
	kinds := g.moodKinds()

	byDate := make(map[string]model.DailyLog)
	for _, log := range g.src.Logs(from, to) {
		byDate[log.Date] = log
	}

	rep := &WeeklyReport{
		From:        from,
		To:          to,
		GeneratedAt: g.now(),
	}

	moodCounts := make(map[string]int)
	var stressSum, energySum, fatigueSum float64
	var rateSum float64

	for i := 0; i < 7; i++ {
		date := model.DayOf(day.AddDate(0, 0, i-6))
		log, ok := byDate[date]
		if !ok {
			rep.Days = append(rep.Days, DailySummary{Date: date})
			rep.Correlation = append(rep.Correlation, CorrelationPoint{Date: date})
			continue
		}

		sum := summarize(log, kinds)
		rep.Days = append(rep.Days, sum)

		rep.Tasks.Scheduled += sum.ScheduledTasks
		rep.Tasks.Completed += sum.CompletedTasks
		if sum.HasRate {
			rep.Tasks.DaysWithTasks++
			rateSum += sum.CompletionRate
		}

		rep.Wellness.Entries += sum.WellnessEntries
		for _, e := range log.Entries {
			stressSum += float64(e.Stress)
			energySum += float64(e.Energy)
			fatigueSum += float64(e.Fatigue)
			moodCounts[e.Mood]++
		}

		rep.Correlation = append(rep.Correlation, CorrelationPoint{
			Date:           date,
			CompletionRate: sum.CompletionRate,
			HasRate:        sum.HasRate,
			AvgStress:      sum.AvgStress,
			AvgEnergy:      sum.AvgEnergy,
			AvgFatigue:     sum.AvgFatigue,
			HasWellness:    sum.WellnessEntries > 0,
		})
	}

	if rep.Tasks.DaysWithTasks > 0 {
		rep.Tasks.AvgCompletionRate = rateSum / float64(rep.Tasks.DaysWithTasks)
	}
	if rep.Wellness.Entries > 0 {
		n := float64(rep.Wellness.Entries)
		rep.Wellness.AvgStress = stressSum / n
		rep.Wellness.AvgEnergy = energySum / n
		rep.Wellness.AvgFatigue = fatigueSum / n
	}
	rep.Wellness.TopMoods = topMoods(moodCounts, 5)
	rep.Goals = goalSnapshots(g.src)
	rep.Correlations = correlate(rep.Correlation)

	return rep
}

// correlate computes Pearson r between completion rate and each wellness
// signal over points carrying both.
func correlate(points []CorrelationPoint) Correlations {
	var rates, stress, energy, fatigue []float64
	for _, p := range points {
		if !p.HasRate || !p.HasWellness {
			continue
		}
		rates = append(rates, p.CompletionRate)
		stress = append(stress, p.AvgStress)
		energy = append(energy, p.AvgEnergy)
		fatigue = append(fatigue, p.AvgFatigue)
	}
	c := Correlations{Samples: len(rates)}
	if c.Samples < 2 {
		return c
	}
	c.StressVsTasks = pearson(stress, rates)
	c.EnergyVsTasks = pearson(energy, rates)
	c.FatigueVsTasks = pearson(fatigue, rates)
	return c
}

func pearson(xs, ys []float64) float64 {
	n := float64(len(xs))
	var sumX, sumY float64
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
	}
	meanX, meanY := sumX/n, sumY/n

	var cov, varX, varY float64
	for i := range xs {
		dx, dy := xs[i]-meanX, ys[i]-meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 {
		return 0
	}
	return cov / math.Sqrt(varX*varY)
}

func summarize(log model.DailyLog, kinds map[string]model.MoodKind) DailySummary {
	sum := DailySummary{
		Date:            log.Date,
		ScheduledTasks:  len(log.TasksToday),
		CompletedTasks:  len(log.CompletedTasks),
		WellnessEntries: len(log.Entries),
	}
	sum.CompletionRate, sum.HasRate = log.CompletionRate()

	if len(log.Entries) > 0 {
		var stress, energy, fatigue int
		for _, e := range log.Entries {
			stress += int(e.Stress)
			energy += int(e.Energy)
			fatigue += int(e.Fatigue)
			switch kinds[e.Mood] {
			case model.MoodPositive:
				sum.PositiveMoods++
			case model.MoodNegative:
				sum.NegativeMoods++
			}
		}
		n := float64(len(log.Entries))
		sum.AvgStress = float64(stress) / n
		sum.AvgEnergy = float64(energy) / n
		sum.AvgFatigue = float64(fatigue) / n
	}
	return sum
}

func goalSnapshots(src Source) []GoalProgress {
	goals := append(src.ActiveGoals(), src.CompletedGoals()...)
	out := make([]GoalProgress, 0, len(goals))
	for _, goal := range goals {
		out = append(out, GoalProgress{
			Name:      goal.Name,
			Period:    string(goal.Period),
			Progress:  goal.Progress,
			Frequency: goal.Frequency,
			Completed: goal.Completed,
			Due:       model.DayOf(goal.Due),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func topMoods(counts map[string]int, limit int) []MoodCount {
	out := make([]MoodCount, 0, len(counts))
	for label, n := range counts {
		out = append(out, MoodCount{Label: label, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (g *Generator) moodKinds() map[string]model.MoodKind {
	labels := g.src.MoodLabels()
	kinds := make(map[string]model.MoodKind, len(labels))
	for _, l := range labels {
		kinds[l.Name] = l.Kind
	}
	return kinds
}
