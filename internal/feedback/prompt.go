package feedback

import (
	"fmt"
	"strings"

	"daytrack/internal/reports"
)

// buildPrompt renders a weekly report into the instruction sent to the model.
// The model is asked for strict JSON so parseResponse stays simple.
func buildPrompt(rep *reports.WeeklyReport) string {
	var b strings.Builder

	b.WriteString("You are a personal productivity coach. Analyze one week of ")
	b.WriteString("task and wellness tracking data and give grounded, specific feedback.\n\n")
	fmt.Fprintf(&b, "Week %s to %s.\n\n", rep.From, rep.To)

	b.WriteString("Per-day data (date, tasks completed/scheduled, avg stress, avg energy, avg fatigue on 1-9):\n")
	for _, d := range rep.Days {
		if !d.HasRate && d.WellnessEntries == 0 {
			fmt.Fprintf(&b, "- %s: no data\n", d.Date)
			continue
		}
		fmt.Fprintf(&b, "- %s: tasks %d/%d", d.Date, d.CompletedTasks, d.ScheduledTasks)
		if d.WellnessEntries > 0 {
			fmt.Fprintf(&b, ", stress %.1f, energy %.1f, fatigue %.1f", d.AvgStress, d.AvgEnergy, d.AvgFatigue)
		}
		if d.PositiveMoods+d.NegativeMoods > 0 {
			fmt.Fprintf(&b, ", moods +%d/-%d", d.PositiveMoods, d.NegativeMoods)
		}
		b.WriteString("\n")
	}

	if len(rep.Wellness.TopMoods) > 0 {
		b.WriteString("\nMost frequent moods: ")
		for i, m := range rep.Wellness.TopMoods {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s (%d)", m.Label, m.Count)
		}
		b.WriteString("\n")
	}

	if len(rep.Goals) > 0 {
		b.WriteString("\nGoals:\n")
		for _, g := range rep.Goals {
			state := "active"
			if g.Completed {
				state = "completed"
			}
			fmt.Fprintf(&b, "- %s (%s): %d/%d, due %s, %s\n",
				g.Name, g.Period, g.Progress, g.Frequency, g.Due, state)
		}
	}

	if rep.Correlations.Samples >= 2 {
		fmt.Fprintf(&b,
			"\nCorrelation between wellness and task completion over %d days: stress %.2f, energy %.2f, fatigue %.2f.\n",
			rep.Correlations.Samples,
			rep.Correlations.StressVsTasks,
			rep.Correlations.EnergyVsTasks,
			rep.Correlations.FatigueVsTasks)
	}

	b.WriteString("\nRespond with JSON only, no markdown fences, in this shape:\n")
	b.WriteString(`{"analysis": "<2-4 sentences on patterns in this week's data>", `)
	b.WriteString(`"recommendations": ["<concrete suggestion>", "..."]}` + "\n")
	b.WriteString("Give 2 to 4 recommendations tied to the data above.\n")

	return b.String()
}
