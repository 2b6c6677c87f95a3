package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/unis-raj-shah/warehouse-scheduler/internal/config"
	"github.com/unis-raj-shah/warehouse-scheduler/pkg/clients/wiseclient"
	"github.com/unis-raj-shah/warehouse-scheduler/pkg/core/history"
	"github.com/unis-raj-shah/warehouse-scheduler/pkg/core/model"
	"github.com/unis-raj-shah/warehouse-scheduler/pkg/core/workdays"
)

// Tuesday, so the target days are Wednesday the 8th and Thursday the 9th.
var testNow = time.Date(2025, time.January, 7, 9, 0, 0, 0, time.UTC)

// mockForecastSource serves canned reports keyed by window date. Dates in
// failDates error on every fetch.
type mockForecastSource struct {
	outboundByDate map[string][]wiseclient.OutboundOrder
	pickedByDate   map[string][]wiseclient.OutboundOrder
	incomingByDate map[string]float64
	failDates      map[string]bool
}

func (m *mockForecastSource) GetOutboundOrders(ctx context.Context, w workdays.Window) ([]wiseclient.OutboundOrder, error) {
	if m.failDates[w.Date()] {
		return nil, errors.New("report API unavailable")
	}
	return m.outboundByDate[w.Date()], nil
}

func (m *mockForecastSource) GetPickedOutboundOrders(ctx context.Context, w workdays.Window) ([]wiseclient.OutboundOrder, error) {
	if m.failDates[w.Date()] {
		return nil, errors.New("report API unavailable")
	}
	return m.pickedByDate[w.Date()], nil
}

func (m *mockForecastSource) GetIncomingSummary(ctx context.Context, w workdays.Window) (wiseclient.IncomingSummary, error) {
	if m.failDates[w.Date()] {
		return wiseclient.IncomingSummary{}, errors.New("report API unavailable")
	}
	return wiseclient.IncomingSummary{IncomingPallets: m.incomingByDate[w.Date()]}, nil
}

// mockEmployeeStore implements db.EmployeeStore for testing
type mockEmployeeStore struct {
	employees []model.Employee
	listErr   error
}

func (m *mockEmployeeStore) ListEmployees(ctx context.Context) ([]model.Employee, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.employees, nil
}

func (m *mockEmployeeStore) GetEmployee(ctx context.Context, id string) (model.Employee, error) {
	for _, e := range m.employees {
		if e.ID == id {
			return e, nil
		}
	}
	return model.Employee{}, errors.New("employee not found")
}

// mockHistoryStore implements db.HistoryStore for testing
type mockHistoryStore struct {
	upserts   map[string]map[string]int
	records   []history.Record
	upsertErr error
	queryErr  error
}

func (m *mockHistoryStore) UpsertDailyStaffing(ctx context.Context, date string, roles map[string]int) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	if m.upserts == nil {
		m.upserts = make(map[string]map[string]int)
	}
	m.upserts[date] = roles
	return nil
}

func (m *mockHistoryStore) StaffingHistory(ctx context.Context, from, to time.Time) ([]history.Record, error) {
	if m.queryErr != nil {
		return nil, m.queryErr
	}
	return m.records, nil
}

// mockNotifier implements Notifier for testing
type mockNotifier struct {
	scheduleDates []string
	forecastSent  int
	sendErr       error
}

func (m *mockNotifier) SendSchedule(day model.DayResult) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.scheduleDates = append(m.scheduleDates, day.Date)
	return nil
}

func (m *mockNotifier) SendStaffingForecast(tomorrow, dayAfter model.DayResult, shortages map[string]int) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.forecastSent++
	return nil
}

func driver(id string) model.Employee {
	return model.Employee{ID: id, Name: id, Active: true, JobTitle: "Forklift Driver"}
}

func workforce() []model.Employee {
	return []model.Employee{
		driver("fork-1"), driver("fork-2"), driver("fork-3"), driver("fork-4"), driver("fork-5"),
		{ID: "recv-1", Name: "recv-1", Active: true, JobTitle: "Receiving Clerk"},
		{ID: "lump-1", Name: "lump-1", Active: true, JobTitle: "Lumper"},
		{ID: "lump-2", Name: "lump-2", Active: true, JobTitle: "Lumper"},
		{ID: "assoc-1", Name: "assoc-1", Active: true, JobTitle: "Warehouse Associate"},
	}
}

// busySource produces 200 incoming pallets for both target days: 3 inbound
// forklift drivers, 1 receiver, 2 lumpers, 1 replenisher.
func busySource() *mockForecastSource {
	return &mockForecastSource{
		incomingByDate: map[string]float64{
			"2025-01-08": 200,
			"2025-01-09": 200,
		},
	}
}

func TestRunScheduler_FullRun(t *testing.T) {
	employees := &mockEmployeeStore{employees: workforce()}
	historyStore := &mockHistoryStore{}
	notifier := &mockNotifier{}

	result, err := RunScheduler(context.Background(), busySource(), employees, historyStore,
		notifier, &config.Config{}, zap.NewNop(), testNow, false)

	require.NoError(t, err)
	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, "2025-01-08", result.Tomorrow.Date)
	assert.Equal(t, "Wednesday", result.Tomorrow.DayName)
	assert.Equal(t, "2025-01-09", result.DayAfter.Date)

	assert.Equal(t, 3, result.Tomorrow.RequiredRoles.Inbound.ForkliftDriver)
	assert.Equal(t, []string{"fork-1", "fork-2", "fork-3"},
		result.Tomorrow.AssignedEmployees["inbound_forklift_driver"])
	assert.Equal(t, []string{"recv-1"}, result.Tomorrow.AssignedEmployees["inbound_receiver"])
	assert.Equal(t, []string{"lump-1", "lump-2"}, result.Tomorrow.AssignedEmployees["inbound_lumper"])

	// Both days' requirements are persisted.
	require.Contains(t, historyStore.upserts, "2025-01-08")
	require.Contains(t, historyStore.upserts, "2025-01-09")
	assert.Equal(t, 3, historyStore.upserts["2025-01-08"]["inbound_forklift_driver"])

	// Two schedule emails plus the combined forecast email.
	assert.Equal(t, []string{"2025-01-08", "2025-01-09"}, notifier.scheduleDates)
	assert.Equal(t, 1, notifier.forecastSent)
}

func TestRunScheduler_ShortagesReportedForNearerDayOnly(t *testing.T) {
	// Only two forklift drivers against an inbound requirement of three, so
	// both days run short.
	employees := &mockEmployeeStore{employees: []model.Employee{driver("fork-1"), driver("fork-2")}}

	result, err := RunScheduler(context.Background(), busySource(), employees, &mockHistoryStore{},
		&mockNotifier{}, &config.Config{}, zap.NewNop(), testNow, false)

	require.NoError(t, err)
	assert.Equal(t, 1, result.Shortages["inbound_forklift_driver"])
	assert.Equal(t, result.Tomorrow.Date, "2025-01-08")

	// The day-after shortage exists in its allocation but is not surfaced.
	assert.Len(t, result.DayAfter.AssignedEmployees["inbound_forklift_driver"], 2)
}

func TestRunScheduler_IndependentPoolsByDefault(t *testing.T) {
	employees := &mockEmployeeStore{employees: workforce()}

	result, err := RunScheduler(context.Background(), busySource(), employees, &mockHistoryStore{},
		&mockNotifier{}, &config.Config{}, zap.NewNop(), testNow, false)

	require.NoError(t, err)
	// Each day allocates from a fresh pool, so the same drivers serve both.
	assert.Equal(t, result.Tomorrow.AssignedEmployees["inbound_forklift_driver"],
		result.DayAfter.AssignedEmployees["inbound_forklift_driver"])
}

func TestRunScheduler_SharedPool(t *testing.T) {
	employees := &mockEmployeeStore{employees: workforce()}
	cfg := &config.Config{SharedAllocationPool: true}

	result, err := RunScheduler(context.Background(), busySource(), employees, &mockHistoryStore{},
		&mockNotifier{}, cfg, zap.NewNop(), testNow, false)

	require.NoError(t, err)
	assert.Equal(t, []string{"fork-1", "fork-2", "fork-3"},
		result.Tomorrow.AssignedEmployees["inbound_forklift_driver"])
	// The day after can only draw from whoever tomorrow left behind.
	assert.Equal(t, []string{"fork-4", "fork-5"},
		result.DayAfter.AssignedEmployees["inbound_forklift_driver"])
}

func TestRunScheduler_NoDataWhenBothDaysFail(t *testing.T) {
	source := &mockForecastSource{
		failDates: map[string]bool{"2025-01-08": true, "2025-01-09": true},
	}

	_, err := RunScheduler(context.Background(), source, &mockEmployeeStore{}, &mockHistoryStore{},
		&mockNotifier{}, &config.Config{}, zap.NewNop(), testNow, false)

	assert.ErrorIs(t, err, ErrNoData)
}

func TestRunScheduler_NoDataWhenBothDaysEmpty(t *testing.T) {
	// Every fetch succeeds but there is no workload at all on either day.
	source := &mockForecastSource{}

	_, err := RunScheduler(context.Background(), source, &mockEmployeeStore{}, &mockHistoryStore{},
		&mockNotifier{}, &config.Config{}, zap.NewNop(), testNow, false)

	assert.ErrorIs(t, err, ErrNoData)
}

func TestRunScheduler_OneFailedDayProceedsZeroed(t *testing.T) {
	source := busySource()
	source.failDates = map[string]bool{"2025-01-08": true}

	result, err := RunScheduler(context.Background(), source, &mockEmployeeStore{employees: workforce()},
		&mockHistoryStore{}, &mockNotifier{}, &config.Config{}, zap.NewNop(), testNow, false)

	require.NoError(t, err)
	assert.True(t, result.Tomorrow.Forecast.IsZero())
	assert.Equal(t, 3, result.DayAfter.RequiredRoles.Inbound.ForkliftDriver)
}

func TestRunScheduler_DryRunSkipsSideEffects(t *testing.T) {
	historyStore := &mockHistoryStore{}
	notifier := &mockNotifier{}

	_, err := RunScheduler(context.Background(), busySource(), &mockEmployeeStore{employees: workforce()},
		historyStore, notifier, &config.Config{}, zap.NewNop(), testNow, true)

	require.NoError(t, err)
	assert.Empty(t, historyStore.upserts)
	assert.Empty(t, notifier.scheduleDates)
	assert.Zero(t, notifier.forecastSent)
}

func TestRunScheduler_NotifierFailureDoesNotAbort(t *testing.T) {
	notifier := &mockNotifier{sendErr: errors.New("smtp down")}

	result, err := RunScheduler(context.Background(), busySource(), &mockEmployeeStore{employees: workforce()},
		&mockHistoryStore{}, notifier, &config.Config{}, zap.NewNop(), testNow, false)

	require.NoError(t, err)
	assert.NotNil(t, result)
}

func TestRunScheduler_HistoryFailureDoesNotAbort(t *testing.T) {
	historyStore := &mockHistoryStore{upsertErr: errors.New("db down")}

	result, err := RunScheduler(context.Background(), busySource(), &mockEmployeeStore{employees: workforce()},
		historyStore, &mockNotifier{}, &config.Config{}, zap.NewNop(), testNow, false)

	require.NoError(t, err)
	assert.NotNil(t, result)
}

func TestRunScheduler_EmployeeListFailureAllocatesNobody(t *testing.T) {
	employees := &mockEmployeeStore{listErr: errors.New("db down")}

	result, err := RunScheduler(context.Background(), busySource(), employees, &mockHistoryStore{},
		&mockNotifier{}, &config.Config{}, zap.NewNop(), testNow, false)

	require.NoError(t, err)
	assert.Empty(t, result.Tomorrow.AssignedEmployees["inbound_forklift_driver"])
	assert.Equal(t, 3, result.Shortages["inbound_forklift_driver"])
}

func TestRunScheduler_InvalidWorkweekRule(t *testing.T) {
	cfg := &config.Config{WorkweekRule: "NOT_A_RULE"}

	_, err := RunScheduler(context.Background(), busySource(), &mockEmployeeStore{}, &mockHistoryStore{},
		&mockNotifier{}, cfg, zap.NewNop(), testNow, false)

	assert.Error(t, err)
}

func TestStaffingTrend(t *testing.T) {
	store := &mockHistoryStore{records: []history.Record{
		{Date: "2025-01-05", Roles: map[string]int{"inbound_lumper": 2}},
		{Date: "2025-01-06", Roles: map[string]int{"inbound_lumper": 4}},
	}}

	records, averages, err := StaffingTrend(context.Background(), store, 7, testNow)

	require.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, 3.0, averages["inbound_lumper"])
}

func TestStaffingTrend_QueryError(t *testing.T) {
	store := &mockHistoryStore{queryErr: errors.New("db down")}

	_, _, err := StaffingTrend(context.Background(), store, 7, testNow)

	assert.Error(t, err)
}
