// Package history holds the pure parts of the staffing history computation:
// date-range arithmetic and moving averages over persisted role counts.
package history

import (
	"math"
	"time"
)

// Record is one persisted day of required role counts, keyed by date.
type Record struct {
	Date  string         `json:"date"`
	Roles map[string]int `json:"roles"`
}

// Range returns the inclusive [now-(days-1), now] day range used to query
// the staffing log.
func Range(now time.Time, days int) (from, to time.Time) {
	to = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	from = to.AddDate(0, 0, -(days - 1))
	return from, to
}

// MovingAverages computes, per role key, the unweighted mean count across the
// given records, rounded to one decimal. A key absent from some records
// contributes no term for those dates: the denominator is the number of
// records containing the key, not the total day count. An empty history
// yields an empty map.
func MovingAverages(records []Record) map[string]float64 {
	totals := make(map[string]int)
	counts := make(map[string]int)
	for _, record := range records {
		for role, count := range record.Roles {
			totals[role] += count
			counts[role]++
		}
	}

	averages := make(map[string]float64, len(totals))
	for role, total := range totals {
		averages[role] = round1(float64(total) / float64(counts[role]))
	}
	return averages
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
