// Package metrics provides Prometheus observability metrics for the
// staffing scheduler.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry is the custom prometheus registry for the application
var Registry = prometheus.NewRegistry()

// factory registers metrics to the custom Registry directly
var factory = promauto.With(Registry)

// RolesDemandedTotal tracks total required headcount from the latest run.
var RolesDemandedTotal = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "scheduler",
	Name:      "roles_demanded_total",
	Help:      "Total headcount required across all roles for the nearest scheduling day",
})

// EmployeesAllocatedTotal tracks headcount successfully allocated.
var EmployeesAllocatedTotal = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "scheduler",
	Name:      "employees_allocated_total",
	Help:      "Total employees successfully allocated for the nearest scheduling day",
})

// ShortageTotal tracks unfilled headcount. High values indicate the
// available pool cannot cover the forecast workload.
var ShortageTotal = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "scheduler",
	Name:      "shortage_total",
	Help:      "Total unfilled headcount for the nearest scheduling day",
})

// ShortageByRole breaks the shortage down by composite role key.
var ShortageByRole = factory.NewGaugeVec(prometheus.GaugeOpts{
	Namespace: "scheduler",
	Name:      "shortage_by_role",
	Help:      "Unfilled headcount broken down by role key",
}, []string{"role"})

// RunsTotal counts scheduler runs by outcome (ok, no_data, error).
var RunsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "scheduler",
	Name:      "runs_total",
	Help:      "Total scheduler runs by outcome",
}, []string{"outcome"})

// RunDurationSeconds tracks time to complete a full scheduling run.
var RunDurationSeconds = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "scheduler",
	Name:      "run_duration_seconds",
	Help:      "Time taken to complete a scheduling run",
	Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
})

// NotificationFailuresTotal counts notification sends that failed. Failures
// never abort a run, so this is the only place they surface besides logs.
var NotificationFailuresTotal = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "scheduler",
	Name:      "notification_failures_total",
	Help:      "Total notification emails that failed to send",
})
