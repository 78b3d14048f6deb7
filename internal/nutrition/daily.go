package nutrition

import (
	"time"

	"github.com/ccamposlozano/fitness-tracker-ai/internal/model"
)

// IsSameLocalDay reports whether ts falls on ref's calendar date. Both are
// read in ref's location, which is the viewer's local zone.
func IsSameLocalDay(ts, ref time.Time) bool {
	y1, m1, d1 := ts.In(ref.Location()).Date()
	y2, m2, d2 := ref.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func FilterToday(entries []model.LoggedEntry, ref time.Time) []model.LoggedEntry {
	out := make([]model.LoggedEntry, 0, len(entries))
	for _, e := range entries {
		if IsSameLocalDay(e.LoggedAt, ref) {
			out = append(out, e)
		}
	}
	return out
}

// AggregateToday sums the entries logged on ref's local date. Callers read
// the clock once and pass it as ref so one pass never straddles midnight.
func AggregateToday(entries []model.LoggedEntry, ref time.Time) model.DailyTotals {
	var totals model.DailyTotals
	for _, e := range entries {
		if !IsSameLocalDay(e.LoggedAt, ref) {
			continue
		}
		totals.Nutrients = totals.Nutrients.Add(e.Nutrients.Nutrients)
	}
	return totals
}
