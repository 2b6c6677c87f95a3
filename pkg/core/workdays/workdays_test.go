package workdays

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResolve_Midweek(t *testing.T) {
	// Tuesday 2025-01-07
	tomorrow, dayAfter := NewResolver().Resolve(date(2025, time.January, 7))

	assert.Equal(t, "2025-01-08", tomorrow.Date())
	assert.Equal(t, "Wednesday", tomorrow.DayName())
	assert.Equal(t, "2025-01-09", dayAfter.Date())
	assert.Equal(t, "Thursday", dayAfter.DayName())
}

func TestResolve_ThursdaySkipsWeekendForSecondDay(t *testing.T) {
	// Thursday 2025-01-09: tomorrow is Friday, the day after lands on
	// Saturday and advances to Monday.
	tomorrow, dayAfter := NewResolver().Resolve(date(2025, time.January, 9))

	assert.Equal(t, "2025-01-10", tomorrow.Date())
	assert.Equal(t, "2025-01-13", dayAfter.Date())
}

func TestResolve_FridayCollisionPushesSecondDay(t *testing.T) {
	// Friday 2025-01-10: both raw candidates fall on the weekend and would
	// resolve to the same Monday, so the second day is pushed to Tuesday.
	tomorrow, dayAfter := NewResolver().Resolve(date(2025, time.January, 10))

	assert.Equal(t, "2025-01-13", tomorrow.Date())
	assert.Equal(t, "Monday", tomorrow.DayName())
	assert.Equal(t, "2025-01-14", dayAfter.Date())
	assert.Equal(t, "Tuesday", dayAfter.DayName())
}

func TestResolve_Saturday(t *testing.T) {
	tomorrow, dayAfter := NewResolver().Resolve(date(2025, time.January, 11))

	assert.Equal(t, "2025-01-13", tomorrow.Date())
	assert.Equal(t, "2025-01-14", dayAfter.Date())
}

func TestResolve_IgnoresTimeOfDay(t *testing.T) {
	lateEvening := time.Date(2025, time.January, 7, 23, 45, 12, 0, time.UTC)
	tomorrow, _ := NewResolver().Resolve(lateEvening)

	assert.Equal(t, "2025-01-08", tomorrow.Date())
	assert.Equal(t, 0, tomorrow.Start.Hour())
}

func TestResolve_WindowSpansFullDay(t *testing.T) {
	tomorrow, _ := NewResolver().Resolve(date(2025, time.January, 7))

	assert.Equal(t, time.Date(2025, time.January, 8, 0, 0, 0, 0, time.UTC), tomorrow.Start)
	assert.Equal(t, time.Date(2025, time.January, 8, 23, 59, 59, 0, time.UTC), tomorrow.End)
}

func TestResolve_WithSixDayWorkweekRule(t *testing.T) {
	resolver, err := NewResolverWithRule("FREQ=WEEKLY;BYDAY=MO,TU,WE,TH,FR,SA")
	require.NoError(t, err)

	// Friday 2025-01-10: Saturday is a working day under this rule.
	tomorrow, dayAfter := resolver.Resolve(date(2025, time.January, 10))

	assert.Equal(t, "2025-01-11", tomorrow.Date())
	assert.Equal(t, "Saturday", tomorrow.DayName())
	assert.Equal(t, "2025-01-13", dayAfter.Date())
	assert.Equal(t, "Monday", dayAfter.DayName())
}

func TestNewResolverWithRule_InvalidRule(t *testing.T) {
	_, err := NewResolverWithRule("NOT_A_RULE")
	assert.Error(t, err)
}
