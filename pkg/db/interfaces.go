// Package db defines the storage contracts the scheduler depends on. The
// employee directory and the staffing log are deliberately separate stores:
// one is a snapshot-queryable entity table, the other an append/overwrite
// time-series keyed by date.
package db

import (
	"context"
	"time"

	"github.com/unis-raj-shah/warehouse-scheduler/pkg/core/history"
	"github.com/unis-raj-shah/warehouse-scheduler/pkg/core/model"
)

// EmployeeStore is the read-only employee directory. The scheduler never
// mutates employee records.
type EmployeeStore interface {
	// ListEmployees returns the full directory in stable (ID) order.
	ListEmployees(ctx context.Context) ([]model.Employee, error)
	// GetEmployee returns a single employee by ID.
	GetEmployee(ctx context.Context, id string) (model.Employee, error)
}

// HistoryStore is the daily staffing log. Upserts are idempotent per date:
// re-running a day overwrites its record rather than appending.
type HistoryStore interface {
	UpsertDailyStaffing(ctx context.Context, date string, roles map[string]int) error
	// StaffingHistory returns records whose date falls within [from, to]
	// inclusive, sorted ascending by date.
	StaffingHistory(ctx context.Context, from, to time.Time) ([]history.Record, error)
}
