// Package model defines the domain types shared across the scheduler.
package model

// ForecastSignals is one day's workload forecast, assembled from the WMS
// order and receipt reports.
type ForecastSignals struct {
	IncomingPallets float64 `json:"incoming_pallets"`
	ShippingPallets float64 `json:"shipping_pallets"`
	TotalOrderQty   float64 `json:"order_qty"`
	CasesToPick     float64 `json:"cases_to_pick"`
	StagedPallets   float64 `json:"staged_pallets"`
}

// IsZero reports whether every signal is zero.
func (f ForecastSignals) IsZero() bool {
	return f.IncomingPallets == 0 && f.ShippingPallets == 0 &&
		f.TotalOrderQty == 0 && f.CasesToPick == 0 && f.StagedPallets == 0
}

// Employee is one entry in the employee directory.
type Employee struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Active           bool     `json:"active"`
	OnLeave          bool     `json:"on_leave"`
	ShiftPreferences []string `json:"shift_preferences,omitempty"`
	JobTitle         string   `json:"job_title"`
	NameVariations   []string `json:"name_variations,omitempty"`
	Email            string   `json:"email,omitempty"`
}

// InboundRoles is the receiving-side headcount requirement.
type InboundRoles struct {
	ForkliftDriver int `json:"forklift_driver"`
	Receiver       int `json:"receiver"`
	Lumper         int `json:"lumper"`
}

// PickingRoles is the picking-side headcount requirement.
type PickingRoles struct {
	ForkliftDriver int `json:"forklift_driver"`
}

// LoadingRoles is the loading-side headcount requirement.
type LoadingRoles struct {
	ForkliftDriver int `json:"forklift_driver"`
}

// ReplenishmentRoles is the replenishment headcount requirement.
type ReplenishmentRoles struct {
	Staff int `json:"staff"`
}

// RequiredRoles is the per-operation headcount requirement for one day. The
// shape is fixed so role ordering stays deterministic across the pipeline.
type RequiredRoles struct {
	Inbound       InboundRoles       `json:"inbound"`
	Picking       PickingRoles       `json:"picking"`
	Loading       LoadingRoles       `json:"loading"`
	Replenishment ReplenishmentRoles `json:"replenishment"`
}

// RoleCount pairs a composite role key with its required headcount.
type RoleCount struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// Flatten returns the requirement as an ordered list of composite role keys.
// The order is stable: inbound roles first, then picking, loading, and
// replenishment.
func (r RequiredRoles) Flatten() []RoleCount {
	return []RoleCount{
		{Key: "inbound_forklift_driver", Count: r.Inbound.ForkliftDriver},
		{Key: "inbound_receiver", Count: r.Inbound.Receiver},
		{Key: "inbound_lumper", Count: r.Inbound.Lumper},
		{Key: "picking_forklift_driver", Count: r.Picking.ForkliftDriver},
		{Key: "loading_forklift_driver", Count: r.Loading.ForkliftDriver},
		{Key: "replenishment_staff", Count: r.Replenishment.Staff},
	}
}

// FlattenMap returns the requirement as a role_key -> count map.
func (r RequiredRoles) FlattenMap() map[string]int {
	flat := r.Flatten()
	m := make(map[string]int, len(flat))
	for _, rc := range flat {
		m[rc.Key] = rc.Count
	}
	return m
}

// DayResult is the full scheduling outcome for one day.
type DayResult struct {
	Date              string              `json:"date"`
	DayName           string              `json:"day_name"`
	RequiredRoles     RequiredRoles       `json:"required_roles"`
	AssignedEmployees map[string][]string `json:"assigned_employees"`
	Forecast          ForecastSignals     `json:"forecast"`
}
