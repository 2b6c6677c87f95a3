// Package workdays resolves the next two working days and their query
// windows, honoring either a default Monday-Friday workweek or a recurrence
// rule.
package workdays

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
)

// scanLimit bounds the forward search for the next working day. A workweek
// rule with no occurrence inside two weeks is treated as misconfigured.
const scanLimit = 14

// Window is one target day's inclusive query range, from midnight to one
// second before the next midnight.
type Window struct {
	Start time.Time
	End   time.Time
}

// Date returns the window's date formatted as YYYY-MM-DD.
func (w Window) Date() string {
	return w.Start.Format("2006-01-02")
}

// DayName returns the window's weekday name.
func (w Window) DayName() string {
	return w.Start.Weekday().String()
}

// Resolver finds upcoming working days. The zero rule means Monday through
// Friday.
type Resolver struct {
	rule *rrule.RRule
}

// NewResolver returns a resolver with the default Monday-Friday workweek.
func NewResolver() *Resolver {
	return &Resolver{}
}

// NewResolverWithRule returns a resolver whose working days are the
// occurrences of the given recurrence rule.
func NewResolverWithRule(ruleText string) (*Resolver, error) {
	rule, err := rrule.StrToRRule(ruleText)
	if err != nil {
		return nil, fmt.Errorf("invalid workweek rule: %w", err)
	}
	return &Resolver{rule: rule}, nil
}

// Resolve returns the windows for the next two distinct working days after
// now. The second day is always strictly later than the first.
func (r *Resolver) Resolve(now time.Time) (tomorrow, dayAfter Window) {
	first := r.nextWorkdayOnOrAfter(midnight(now).AddDate(0, 0, 1))
	second := r.nextWorkdayOnOrAfter(midnight(now).AddDate(0, 0, 2))
	if !second.After(first) {
		second = r.nextWorkdayOnOrAfter(first.AddDate(0, 0, 1))
	}
	return window(first), window(second)
}

func (r *Resolver) nextWorkdayOnOrAfter(day time.Time) time.Time {
	for i := 0; i < scanLimit; i++ {
		if r.isWorkday(day) {
			return day
		}
		day = day.AddDate(0, 0, 1)
	}
	return day
}

func (r *Resolver) isWorkday(day time.Time) bool {
	if r.rule == nil {
		weekday := day.Weekday()
		return weekday != time.Saturday && weekday != time.Sunday
	}
	// Anchor the rule at the query day so occurrences land at midnight and
	// the configured DTSTART (or its absence) cannot shift them out of the
	// window.
	r.rule.DTStart(day)
	occurrences := r.rule.Between(day, day.AddDate(0, 0, 1).Add(-time.Second), true)
	return len(occurrences) > 0
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func window(day time.Time) Window {
	return Window{
		Start: day,
		End:   day.AddDate(0, 0, 1).Add(-time.Second),
	}
}
