package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/unis-raj-shah/warehouse-scheduler/internal/config"
	"github.com/unis-raj-shah/warehouse-scheduler/pkg/core/allocator"
	"github.com/unis-raj-shah/warehouse-scheduler/pkg/core/demand"
	"github.com/unis-raj-shah/warehouse-scheduler/pkg/core/history"
	"github.com/unis-raj-shah/warehouse-scheduler/pkg/core/model"
	"github.com/unis-raj-shah/warehouse-scheduler/pkg/core/workdays"
	"github.com/unis-raj-shah/warehouse-scheduler/pkg/db"
	"github.com/unis-raj-shah/warehouse-scheduler/pkg/metrics"
)

// ErrNoData indicates that no forecast could be fetched for either target
// day, so no schedule can be produced.
var ErrNoData = errors.New("no forecast data available")

// RunSchedulerResult contains the full output of one scheduling run: one
// independent day-result per target date plus the shortage map for the
// nearer day.
type RunSchedulerResult struct {
	RunID     string          `json:"run_id"`
	Tomorrow  model.DayResult `json:"tomorrow"`
	DayAfter  model.DayResult `json:"day_after"`
	Shortages map[string]int  `json:"shortages"`
}

// RunScheduler executes the full pipeline for the next two working days:
// forecast fetch, requirement calculation, history save, employee
// allocation, shortage diff, and notification dispatch.
//
// Notification and history failures are logged and never abort the run; the
// computed schedule is always returned. dryRun skips the history save and
// the notifications.
func RunScheduler(
	ctx context.Context,
	source ForecastSource,
	employees db.EmployeeStore,
	historyStore db.HistoryStore,
	notifier Notifier,
	cfg *config.Config,
	logger *zap.Logger,
	now time.Time,
	dryRun bool,
) (*RunSchedulerResult, error) {
	started := time.Now()
	defer func() {
		metrics.RunDurationSeconds.Observe(time.Since(started).Seconds())
	}()

	resolver, err := buildResolver(cfg)
	if err != nil {
		metrics.RunsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	tomorrowWindow, dayAfterWindow := resolver.Resolve(now)
	logger.Info("Resolved target dates",
		zap.String("tomorrow", tomorrowWindow.Date()),
		zap.String("day_after", dayAfterWindow.Date()))

	// Fetch both days' forecasts. A partially failed day proceeds with
	// zeroed signals; the run aborts only when neither day has any data.
	forecastTomorrow, okTomorrow := fetchForecast(ctx, source, tomorrowWindow, logger)
	forecastDayAfter, okDayAfter := fetchForecast(ctx, source, dayAfterWindow, logger)
	if !okTomorrow && !okDayAfter {
		metrics.RunsTotal.WithLabelValues("no_data").Inc()
		return nil, ErrNoData
	}

	productivity := demand.DefaultMetrics()
	requiredTomorrow := demand.Calculate(productivity, forecastTomorrow)
	requiredDayAfter := demand.Calculate(productivity, forecastDayAfter)

	if !dryRun {
		saveStaffing(ctx, historyStore, tomorrowWindow.Date(), requiredTomorrow, logger)
		saveStaffing(ctx, historyStore, dayAfterWindow.Date(), requiredDayAfter, logger)
	}

	// One immutable snapshot serves both days' allocations.
	snapshot, err := employees.ListEmployees(ctx)
	if err != nil {
		logger.Error("failed to list employees, allocating from empty pool", zap.Error(err))
		snapshot = nil
	}

	resultTomorrow, pool := allocator.Allocate(requiredTomorrow.Flatten(), snapshot, nil, logger)
	if !cfg.SharedAllocationPool {
		// Independent pools: an employee assigned tomorrow may be
		// assigned again the day after.
		pool = nil
	}
	resultDayAfter, _ := allocator.Allocate(requiredDayAfter.Flatten(), snapshot, pool, logger)

	// Shortages are reported for the nearer day only.
	shortages := resultTomorrow.Shortages

	run := &RunSchedulerResult{
		RunID:     uuid.New().String(),
		Tomorrow:  buildDayResult(tomorrowWindow, requiredTomorrow, resultTomorrow, forecastTomorrow),
		DayAfter:  buildDayResult(dayAfterWindow, requiredDayAfter, resultDayAfter, forecastDayAfter),
		Shortages: shortages,
	}

	publishMetrics(requiredTomorrow, resultTomorrow)

	if !dryRun {
		notify(notifier, run, logger)
	}

	metrics.RunsTotal.WithLabelValues("ok").Inc()
	logger.Info("Scheduling run completed",
		zap.String("run_id", run.RunID),
		zap.Int("shortage_roles", len(shortages)))

	return run, nil
}

// StaffingTrend returns the staffing records for the trailing day range
// along with the per-role moving averages.
func StaffingTrend(ctx context.Context, store db.HistoryStore, days int, now time.Time) ([]history.Record, map[string]float64, error) {
	from, to := history.Range(now, days)
	records, err := store.StaffingHistory(ctx, from, to)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch staffing history: %w", err)
	}
	return records, history.MovingAverages(records), nil
}

func buildResolver(cfg *config.Config) (*workdays.Resolver, error) {
	if cfg.WorkweekRule == "" {
		return workdays.NewResolver(), nil
	}
	resolver, err := workdays.NewResolverWithRule(cfg.WorkweekRule)
	if err != nil {
		return nil, fmt.Errorf("failed to build workday resolver: %w", err)
	}
	return resolver, nil
}

func buildDayResult(w workdays.Window, required model.RequiredRoles, allocated allocator.Result, forecast model.ForecastSignals) model.DayResult {
	return model.DayResult{
		Date:              w.Date(),
		DayName:           w.DayName(),
		RequiredRoles:     required,
		AssignedEmployees: allocated.ByRole(),
		Forecast:          forecast,
	}
}

func saveStaffing(ctx context.Context, store db.HistoryStore, date string, required model.RequiredRoles, logger *zap.Logger) {
	if err := store.UpsertDailyStaffing(ctx, date, required.FlattenMap()); err != nil {
		logger.Error("failed to save staffing history", zap.String("date", date), zap.Error(err))
	}
}

// notify dispatches the three notification emails. Each failure is logged
// and counted; none aborts the run.
func notify(notifier Notifier, run *RunSchedulerResult, logger *zap.Logger) {
	if err := notifier.SendSchedule(run.Tomorrow); err != nil {
		metrics.NotificationFailuresTotal.Inc()
		logger.Error("failed to send schedule email", zap.String("date", run.Tomorrow.Date), zap.Error(err))
	}
	if err := notifier.SendSchedule(run.DayAfter); err != nil {
		metrics.NotificationFailuresTotal.Inc()
		logger.Error("failed to send schedule email", zap.String("date", run.DayAfter.Date), zap.Error(err))
	}
	if err := notifier.SendStaffingForecast(run.Tomorrow, run.DayAfter, run.Shortages); err != nil {
		metrics.NotificationFailuresTotal.Inc()
		logger.Error("failed to send forecast email", zap.Error(err))
	}
}

func publishMetrics(required model.RequiredRoles, allocated allocator.Result) {
	demanded := 0
	for _, rc := range required.Flatten() {
		demanded += rc.Count
	}
	assigned := 0
	for _, a := range allocated.Assignments {
		assigned += len(a.EmployeeIDs)
	}
	short := 0
	for role, missing := range allocated.Shortages {
		short += missing
		metrics.ShortageByRole.WithLabelValues(role).Set(float64(missing))
	}

	metrics.RolesDemandedTotal.Set(float64(demanded))
	metrics.EmployeesAllocatedTotal.Set(float64(assigned))
	metrics.ShortageTotal.Set(float64(short))
}
