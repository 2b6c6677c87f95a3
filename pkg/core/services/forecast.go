package services

import (
	"context"
	"math"

	"go.uber.org/zap"

	"github.com/unis-raj-shah/warehouse-scheduler/pkg/clients/wiseclient"
	"github.com/unis-raj-shah/warehouse-scheduler/pkg/core/model"
	"github.com/unis-raj-shah/warehouse-scheduler/pkg/core/workdays"
)

// ForecastSource provides the upstream order and receipt reports.
type ForecastSource interface {
	GetOutboundOrders(ctx context.Context, w workdays.Window) ([]wiseclient.OutboundOrder, error)
	GetPickedOutboundOrders(ctx context.Context, w workdays.Window) ([]wiseclient.OutboundOrder, error)
	GetIncomingSummary(ctx context.Context, w workdays.Window) (wiseclient.IncomingSummary, error)
}

// BuildForecast derives one day's forecast signals from raw order data:
//   - shipping pallets and order qty sum over the outbound orders
//   - cases to pick counts order qty on piece/case-pick orders that carry no
//     pallet qty of their own
//   - staged pallets sum over orders that already completed picking
func BuildForecast(outbound, picked []wiseclient.OutboundOrder, incomingPallets float64) model.ForecastSignals {
	forecast := model.ForecastSignals{
		IncomingPallets: math.Round(math.Max(0, incomingPallets)),
	}

	for _, order := range outbound {
		forecast.ShippingPallets += math.Max(0, order.PalletQty)
		forecast.TotalOrderQty += math.Max(0, order.OrderQty)

		if (order.PickingType == "PIECE_PICK" || order.PickingType == "CASE_PICK") && order.PalletQty == 0 {
			forecast.CasesToPick += math.Max(0, order.OrderQty)
		}
	}

	for _, order := range picked {
		forecast.StagedPallets += math.Max(0, order.PalletQty)
	}

	return forecast
}

// fetchForecast gathers the three upstream reports for one day window.
// Failed fetches are logged and zero-substituted; ok is false when every
// fetch failed or the day carries no signal at all.
func fetchForecast(ctx context.Context, source ForecastSource, w workdays.Window, logger *zap.Logger) (model.ForecastSignals, bool) {
	failures := 0

	outbound, err := source.GetOutboundOrders(ctx, w)
	if err != nil {
		logger.Warn("failed to fetch outbound orders", zap.String("date", w.Date()), zap.Error(err))
		failures++
	}

	picked, err := source.GetPickedOutboundOrders(ctx, w)
	if err != nil {
		logger.Warn("failed to fetch picked orders", zap.String("date", w.Date()), zap.Error(err))
		failures++
	}

	incoming, err := source.GetIncomingSummary(ctx, w)
	if err != nil {
		logger.Warn("failed to fetch incoming summary", zap.String("date", w.Date()), zap.Error(err))
		failures++
	}

	forecast := BuildForecast(outbound, picked, incoming.IncomingPallets)
	return forecast, failures < 3 && !forecast.IsZero()
}
