package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/unis-raj-shah/warehouse-scheduler/pkg/core/model"
)

const employeeColumns = `id, name, active, on_leave, shift_preferences, job_title, name_variations, email`

// ListEmployees returns the full employee directory in ID order.
func (db *DB) ListEmployees(ctx context.Context) ([]model.Employee, error) {
	rows, err := db.pool.Query(ctx, `SELECT `+employeeColumns+` FROM employee ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	var employees []model.Employee
	for rows.Next() {
		var (
			e              model.Employee
			variationsJSON []byte
			email          *string
		)
		if err := rows.Scan(&e.ID, &e.Name, &e.Active, &e.OnLeave, &e.ShiftPreferences, &e.JobTitle, &variationsJSON, &email); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		if len(variationsJSON) > 0 {
			if err := json.Unmarshal(variationsJSON, &e.NameVariations); err != nil {
				return nil, fmt.Errorf("failed to decode name variations for %s: %w", e.ID, err)
			}
		}
		if email != nil {
			e.Email = *email
		}
		employees = append(employees, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating employees: %w", err)
	}

	return employees, nil
}

// GetEmployee returns a single employee by ID.
func (db *DB) GetEmployee(ctx context.Context, id string) (model.Employee, error) {
	var (
		e              model.Employee
		variationsJSON []byte
		email          *string
	)
	err := db.pool.QueryRow(ctx, `SELECT `+employeeColumns+` FROM employee WHERE id = $1`, id).
		Scan(&e.ID, &e.Name, &e.Active, &e.OnLeave, &e.ShiftPreferences, &e.JobTitle, &variationsJSON, &email)
	if err != nil {
		return model.Employee{}, fmt.Errorf("failed to fetch employee %s: %w", id, err)
	}
	if len(variationsJSON) > 0 {
		if err := json.Unmarshal(variationsJSON, &e.NameVariations); err != nil {
			return model.Employee{}, fmt.Errorf("failed to decode name variations for %s: %w", id, err)
		}
	}
	if email != nil {
		e.Email = *email
	}
	return e, nil
}
