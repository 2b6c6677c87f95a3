package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/unis-raj-shah/warehouse-scheduler/pkg/core/history"
)

// UpsertDailyStaffing writes one day's flattened role counts. Re-running the
// same date overwrites the existing record.
func (db *DB) UpsertDailyStaffing(ctx context.Context, date string, roles map[string]int) error {
	rolesJSON, err := json.Marshal(roles)
	if err != nil {
		return fmt.Errorf("failed to encode roles: %w", err)
	}

	_, err = db.pool.Exec(ctx, `
		INSERT INTO staffing_history (day, roles, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (day) DO UPDATE SET roles = EXCLUDED.roles, updated_at = NOW()
	`, date, rolesJSON)
	if err != nil {
		return fmt.Errorf("failed to upsert staffing record for %s: %w", date, err)
	}

	return nil
}

// StaffingHistory returns records within [from, to] inclusive, ascending.
func (db *DB) StaffingHistory(ctx context.Context, from, to time.Time) ([]history.Record, error) {
	rows, err := db.pool.Query(ctx, `
		SELECT day::text, roles
		FROM staffing_history
		WHERE day BETWEEN $1 AND $2
		ORDER BY day
	`, from.Format("2006-01-02"), to.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("failed to query staffing history: %w", err)
	}
	defer rows.Close()

	var records []history.Record
	for rows.Next() {
		var (
			record    history.Record
			rolesJSON []byte
		)
		if err := rows.Scan(&record.Date, &rolesJSON); err != nil {
			return nil, fmt.Errorf("failed to scan staffing record: %w", err)
		}
		if err := json.Unmarshal(rolesJSON, &record.Roles); err != nil {
			return nil, fmt.Errorf("failed to decode roles for %s: %w", record.Date, err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating staffing history: %w", err)
	}

	return records, nil
}
