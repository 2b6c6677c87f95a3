package demand

// Metrics holds per-operation productivity figures in minutes per unit of
// work, keyed by operation then metric name.
type Metrics map[string]map[string]float64

// DefaultMetrics returns the built-in productivity figures.
func DefaultMetrics() Metrics {
	return Metrics{
		"inbound": {
			"offload_minutes_per_pallet": 3.75,
			"scan_minutes_per_pallet":    0.5,
			"putaway_minutes_per_pallet": 2.5,
			"lumper_minutes_per_pallet":  3.75,
		},
		"picking": {
			"pick_minutes_per_case":   1.0,
			"scan_minutes_per_case":   0.15,
			"wrap_minutes_per_pallet": 2.5,
		},
		"loading": {
			"load_minutes_per_pallet": 3.75,
		},
	}
}

// Get returns the metric for an operation, falling back when either the
// operation or the metric is absent.
func (m Metrics) Get(operation, name string, fallback float64) float64 {
	if byName, ok := m[operation]; ok {
		if value, ok := byName[name]; ok {
			return value
		}
	}
	return fallback
}
