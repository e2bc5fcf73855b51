// Package reports aggregates daily logs, goals and wellness entries into
// daily and weekly summaries. The weekly report also feeds the AI feedback
// prompt.
package reports

import "time"

// DailySummary collapses one daily log into counts and averages.
type DailySummary struct {
	Date           string  `json:"date"`
	ScheduledTasks int     `json:"scheduledTasks"`
	CompletedTasks int     `json:"completedTasks"`
	CompletionRate float64 `json:"completionRate"`
	// HasRate is false when the day had no scheduled tasks; the rate is
	// then meaningless rather than zero.
	HasRate bool `json:"hasRate"`

	WellnessEntries int     `json:"wellnessEntries"`
	AvgStress       float64 `json:"avgStress"`
	AvgEnergy       float64 `json:"avgEnergy"`
	AvgFatigue      float64 `json:"avgFatigue"`
	PositiveMoods   int     `json:"positiveMoods"`
	NegativeMoods   int     `json:"negativeMoods"`
}

// MoodCount is a mood label with its occurrence count over a period.
type MoodCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// TaskTotals sums task activity over a period.
type TaskTotals struct {
	Scheduled int `json:"scheduled"`
	Completed int `json:"completed"`
	// AvgCompletionRate averages over days that had scheduled tasks.
	AvgCompletionRate float64 `json:"avgCompletionRate"`
	DaysWithTasks     int     `json:"daysWithTasks"`
}

// WellnessTotals sums wellness activity over a period.
type WellnessTotals struct {
	Entries    int         `json:"entries"`
	AvgStress  float64     `json:"avgStress"`
	AvgEnergy  float64     `json:"avgEnergy"`
	AvgFatigue float64     `json:"avgFatigue"`
	TopMoods   []MoodCount `json:"topMoods"`
}

// GoalProgress is a goal snapshot included in reports.
type GoalProgress struct {
	Name      string `json:"name"`
	Period    string `json:"period"`
	Progress  int    `json:"progress"`
	Frequency int    `json:"frequency"`
	Completed bool   `json:"completed"`
	Due       string `json:"due"`
}

// CorrelationPoint pairs one day's completion rate with its wellness
// averages. Days without both signals carry the Has* flags unset.
type CorrelationPoint struct {
	Date           string  `json:"date"`
	CompletionRate float64 `json:"completionRate"`
	HasRate        bool    `json:"hasRate"`
	AvgStress      float64 `json:"avgStress"`
	AvgEnergy      float64 `json:"avgEnergy"`
	AvgFatigue     float64 `json:"avgFatigue"`
	HasWellness    bool    `json:"hasWellness"`
}

// Correlations holds Pearson r between daily completion rate and each
// wellness signal, over days that carried both. Samples below 2 leaves the
// coefficients at zero with Samples reporting why.
type Correlations struct {
	Samples        int     `json:"samples"`
	StressVsTasks  float64 `json:"stressVsTasks"`
	EnergyVsTasks  float64 `json:"energyVsTasks"`
	FatigueVsTasks float64 `json:"fatigueVsTasks"`
}

// WeeklyReport aggregates seven days ending at To (inclusive).
type WeeklyReport struct {
	From         string             `json:"from"`
	To           string             `json:"to"`
	Days         []DailySummary     `json:"days"`
	Tasks        TaskTotals         `json:"tasks"`
	Wellness     WellnessTotals     `json:"wellness"`
	Goals        []GoalProgress     `json:"goals"`
	Correlation  []CorrelationPoint `json:"correlation"`
	Correlations Correlations       `json:"correlations"`
	GeneratedAt  time.Time          `json:"generatedAt"`
}
