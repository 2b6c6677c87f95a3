// Package demand converts a day's forecast signals into required headcounts
// per warehouse role.
package demand

import (
	"math"

	"github.com/unis-raj-shah/warehouse-scheduler/pkg/core/model"
)

const (
	// HoursPerShift is the paid shift length in hours.
	HoursPerShift = 7.5
	// WorkforceEfficiency discounts the shift for breaks and interruptions.
	WorkforceEfficiency = 0.8
	// CasesPerPallet converts loose order quantity into pallet equivalents.
	CasesPerPallet = 24.0

	// MaxOffloadForklifts caps the offload side of the inbound forklift count.
	MaxOffloadForklifts = 5
	// MaxPutawayForklifts caps the putaway side of the inbound forklift count.
	MaxPutawayForklifts = 3
	// MaxLumpers caps the inbound lumper count.
	MaxLumpers = 5

	// ReplenishmentRatio sizes the replenishment crew relative to all other
	// roles combined.
	ReplenishmentRatio = 0.1
)

// EffectiveMinutesPerPerson returns the productive minutes one person
// contributes per shift.
func EffectiveMinutesPerPerson() float64 {
	return HoursPerShift * 60 * WorkforceEfficiency
}

// FallbackRoles is the static requirement used when the calculation cannot
// complete.
func FallbackRoles() model.RequiredRoles {
	return model.RequiredRoles{
		Inbound:       model.InboundRoles{ForkliftDriver: 3, Receiver: 2, Lumper: 3},
		Picking:       model.PickingRoles{ForkliftDriver: 2},
		Loading:       model.LoadingRoles{ForkliftDriver: 2},
		Replenishment: model.ReplenishmentRoles{Staff: 1},
	}
}

// Calculate derives the required headcount per role from the forecast. Any
// panic during the calculation falls back to FallbackRoles.
func Calculate(metrics Metrics, forecast model.ForecastSignals) (required model.RequiredRoles) {
	defer func() {
		if r := recover(); r != nil {
			required = FallbackRoles()
		}
	}()

	minutesPerPerson := EffectiveMinutesPerPerson()

	// Loose order quantity ships as additional pallet equivalents.
	adjustedShipping := forecast.ShippingPallets + forecast.TotalOrderQty/CasesPerPallet

	// Inbound. No incoming freight means no inbound crew at all.
	if forecast.IncomingPallets > 0 {
		offloadMinutes := forecast.IncomingPallets * metrics.Get("inbound", "offload_minutes_per_pallet", 3.0)
		scanMinutes := forecast.IncomingPallets * metrics.Get("inbound", "scan_minutes_per_pallet", 0.15)
		putawayMinutes := forecast.IncomingPallets * metrics.Get("inbound", "putaway_minutes_per_pallet", 2.5)
		lumperMinutes := forecast.IncomingPallets * metrics.Get("inbound", "lumper_minutes_per_pallet", 2.5)

		offloadForklifts := min(MaxOffloadForklifts, shiftEquivalents(offloadMinutes, minutesPerPerson))
		putawayForklifts := min(MaxPutawayForklifts, shiftEquivalents(putawayMinutes, minutesPerPerson))
		required.Inbound.ForkliftDriver = offloadForklifts + putawayForklifts
		required.Inbound.Receiver = max(1, shiftEquivalents(scanMinutes, minutesPerPerson))
		required.Inbound.Lumper = min(MaxLumpers, shiftEquivalents(lumperMinutes, minutesPerPerson))
	}

	// Picking. No cases to pick means no picking crew at all.
	if forecast.CasesToPick > 0 {
		pickMinutes := forecast.CasesToPick * metrics.Get("picking", "pick_minutes_per_case", 1.0)
		wrapMinutes := adjustedShipping * metrics.Get("picking", "wrap_minutes_per_pallet", 2.5)
		required.Picking.ForkliftDriver = max(1, shiftEquivalents(pickMinutes, minutesPerPerson)) +
			max(1, shiftEquivalents(wrapMinutes, minutesPerPerson))
	}

	// Loading. Outbound shipments and already-staged pallets each need at
	// least one driver, but only when the volume exists.
	loadRate := metrics.Get("loading", "load_minutes_per_pallet", 3.75)
	if adjustedShipping > 0 {
		required.Loading.ForkliftDriver += max(1, shiftEquivalents(adjustedShipping*loadRate, minutesPerPerson))
	}
	if forecast.StagedPallets > 0 {
		required.Loading.ForkliftDriver += max(1, shiftEquivalents(forecast.StagedPallets*loadRate, minutesPerPerson))
	}

	// Replenishment scales with everything else.
	totalOthers := required.Inbound.ForkliftDriver + required.Inbound.Receiver + required.Inbound.Lumper +
		required.Picking.ForkliftDriver + required.Loading.ForkliftDriver
	required.Replenishment.Staff = max(1, roundHalfEven(ReplenishmentRatio*float64(totalOthers)))

	return required
}

// shiftEquivalents converts a work-minute total into whole people, rounding
// halves to even.
func shiftEquivalents(minutes, minutesPerPerson float64) int {
	return roundHalfEven(minutes / minutesPerPerson)
}

func roundHalfEven(x float64) int {
	return int(math.RoundToEven(x))
}
