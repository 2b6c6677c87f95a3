// Package allocator matches required role headcounts against a snapshot of
// the employee directory using greedy first-fit assignment.
package allocator

import (
	"go.uber.org/zap"

	"github.com/unis-raj-shah/warehouse-scheduler/pkg/core/model"
	"github.com/unis-raj-shah/warehouse-scheduler/pkg/core/roles"
)

// Assignment lists the employees placed under one composite role key, in
// assignment order. The list never exceeds the requested count.
type Assignment struct {
	RoleKey     string
	EmployeeIDs []string
}

// Result is the outcome of one allocation pass. Shortages holds the positive
// difference between required and assigned headcount per role key; an unfilled
// quota is a reported outcome, not an error.
type Result struct {
	Assignments []Assignment
	Shortages   map[string]int
}

// ByRole returns the assignments as a role_key -> employee IDs map.
func (r Result) ByRole() map[string][]string {
	byRole := make(map[string][]string, len(r.Assignments))
	for _, a := range r.Assignments {
		byRole[a.RoleKey] = a.EmployeeIDs
	}
	return byRole
}

// Available reports whether an employee can be scheduled: active, not on
// leave, and either no shift preference or a stated day-shift preference.
func Available(e model.Employee) bool {
	if !e.Active || e.OnLeave {
		return false
	}
	if len(e.ShiftPreferences) == 0 {
		return true
	}
	for _, pref := range e.ShiftPreferences {
		if pref == "day" {
			return true
		}
	}
	return false
}

// Allocate fills each required quota from the employee snapshot. Role keys
// are processed in their given order; within a role, employees are pulled in
// snapshot order. No employee ID ever appears under more than one role key.
//
// The assigned set is the allocation pool accumulator: pass nil for a fresh
// pool, or thread the returned set through a later call so two scheduling
// days compete for the same people. The snapshot is held immutable for the
// duration of the pass, which is what keeps the no-double-assignment
// invariant a matter of set membership rather than locking.
func Allocate(required []model.RoleCount, employees []model.Employee, assigned map[string]bool, logger *zap.Logger) (Result, map[string]bool) {
	if assigned == nil {
		assigned = make(map[string]bool)
	}

	// First pass: bucket every available employee under each base role whose
	// synonyms appear in their job title, preserving snapshot order.
	availableByBase := make(map[string][]string)
	bucketed := make(map[string]map[string]bool)
	for _, employee := range employees {
		if !Available(employee) {
			continue
		}
		for _, rc := range required {
			base := roles.BaseRole(rc.Key)
			if bucketed[base][employee.ID] {
				continue
			}
			if roles.TitleMatches(base, employee.JobTitle) {
				availableByBase[base] = append(availableByBase[base], employee.ID)
				if bucketed[base] == nil {
					bucketed[base] = make(map[string]bool)
				}
				bucketed[base][employee.ID] = true
			}
		}
	}

	// Second pass: greedy first-fit in role-key order, skipping anyone
	// already placed.
	result := Result{
		Assignments: make([]Assignment, 0, len(required)),
		Shortages:   make(map[string]int),
	}
	for _, rc := range required {
		base := roles.BaseRole(rc.Key)
		ids := make([]string, 0, rc.Count)
		for _, id := range availableByBase[base] {
			if len(ids) >= rc.Count {
				break
			}
			if assigned[id] {
				continue
			}
			ids = append(ids, id)
			assigned[id] = true
		}

		if len(ids) < rc.Count {
			result.Shortages[rc.Key] = rc.Count - len(ids)
			logger.Warn("not enough available employees for role",
				zap.String("role", rc.Key),
				zap.Int("required", rc.Count),
				zap.Int("assigned", len(ids)))
		}

		result.Assignments = append(result.Assignments, Assignment{RoleKey: rc.Key, EmployeeIDs: ids})
	}

	return result, assigned
}
