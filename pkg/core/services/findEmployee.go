package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/unis-raj-shah/warehouse-scheduler/pkg/core/model"
	"github.com/unis-raj-shah/warehouse-scheduler/pkg/core/namematch"
	"github.com/unis-raj-shah/warehouse-scheduler/pkg/db"
)

// ErrNoMatch indicates that no employee matched the queried name closely
// enough.
var ErrNoMatch = errors.New("no matching employee found")

// FindEmployee resolves a free-text name against the employee directory
// using fuzzy matching over each employee's stored name variations.
func FindEmployee(ctx context.Context, store db.EmployeeStore, name string) (model.Employee, error) {
	employees, err := store.ListEmployees(ctx)
	if err != nil {
		return model.Employee{}, fmt.Errorf("failed to list employees: %w", err)
	}

	candidates := make([]namematch.Candidate, len(employees))
	for i, e := range employees {
		candidates[i] = namematch.Candidate{ID: e.ID, Variations: e.NameVariations}
	}

	matchedID := namematch.FindBestMatch(name, candidates)
	if matchedID == "" {
		return model.Employee{}, ErrNoMatch
	}

	return store.GetEmployee(ctx, matchedID)
}
