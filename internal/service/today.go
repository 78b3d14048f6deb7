package service

import (
	"time"

	"github.com/ccamposlozano/fitness-tracker-ai/internal/model"
	"github.com/ccamposlozano/fitness-tracker-ai/internal/nutrition"
)

type MacroRow struct {
	Name      string
	Unit      string
	Actual    float64
	Target    float64
	HasTarget bool
	Progress  nutrition.Ratio
	// Remaining is target minus actual and goes negative past the target,
	// which the clamped Progress cannot show.
	Remaining float64
}

type TodayStatus struct {
	Date   string
	Totals model.DailyTotals
	Target model.TargetState
	Rows   []MacroRow
}

// TodaySummary reconciles today's totals against the target.
func TodaySummary(now time.Time, totals model.DailyTotals, target model.TargetState) TodayStatus {
	status := TodayStatus{
		Date:   now.Format("2006-01-02"),
		Totals: totals,
		Target: target,
	}
	t := target.Target
	status.Rows = []MacroRow{
		macroRow("Calories", "kcal", totals.Calories, t.Calories, target.Known),
		macroRow("Protein", "g", totals.ProteinG, t.ProteinG, target.Known),
		macroRow("Carbs", "g", totals.CarbsG, t.CarbsG, target.Known),
		macroRow("Fat", "g", totals.FatG, t.FatG, target.Known),
	}
	return status
}

func macroRow(name, unit string, actual, target float64, known bool) MacroRow {
	row := MacroRow{
		Name:      name,
		Unit:      unit,
		Actual:    actual,
		HasTarget: known,
		Progress:  nutrition.Progress(actual, target, known),
	}
	if known {
		row.Target = target
		row.Remaining = target - actual
	}
	return row
}
