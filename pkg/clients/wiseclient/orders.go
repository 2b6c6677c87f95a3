package wiseclient

import (
	"context"
	"strconv"

	"github.com/unis-raj-shah/warehouse-scheduler/pkg/core/workdays"
)

// OutboundOrder is the normalized order row used for forecasting. The raw
// report rows carry loosely typed display columns; parsing happens here, at
// the boundary, so the calculator only ever sees clean numbers.
type OutboundOrder struct {
	OrderNo     string
	Status      string
	PalletQty   float64
	OrderQty    float64
	PickingType string
}

type orderSearchResponse struct {
	Results struct {
		Data []map[string]any `json:"data"`
	} `json:"results"`
}

// GetOutboundOrders returns unshipped outbound orders with appointments in
// the given day window.
func (c *Client) GetOutboundOrders(ctx context.Context, w workdays.Window) ([]OutboundOrder, error) {
	return c.searchOrders(ctx, w, []string{"Imported", "Open", "Planning", "Planned", "Committed"})
}

// GetPickedOutboundOrders returns orders that have completed picking and
// await loading in the given day window.
func (c *Client) GetPickedOutboundOrders(ctx context.Context, w workdays.Window) ([]OutboundOrder, error) {
	return c.searchOrders(ctx, w, []string{"Picked", "Packed", "Staged"})
}

func (c *Client) searchOrders(ctx context.Context, w workdays.Window, statuses []string) ([]OutboundOrder, error) {
	payload := map[string]any{
		"statuses":            statuses,
		"customerId":          c.customerID,
		"orderTypes":          []string{"Regular Order"},
		"appointmentTimeFrom": w.Start.Format(apiTimeLayout),
		"appointmentTimeTo":   w.End.Format(apiTimeLayout),
		"paging":              map[string]any{"pageNo": 1, "limit": 1000},
	}

	var resp orderSearchResponse
	if err := c.post(ctx, "/report-center/outbound/order-status-report/search-by-paging", payload, &resp); err != nil {
		return nil, err
	}

	orders := make([]OutboundOrder, 0, len(resp.Results.Data))
	for _, row := range resp.Results.Data {
		orders = append(orders, OutboundOrder{
			OrderNo:     asString(row["Order No."]),
			Status:      asString(row["Order Status"]),
			PalletQty:   asFloat(row["Pallet QTY"]),
			OrderQty:    asFloat(row["Order QTY"]),
			PickingType: asString(row["Picking Type"]),
		})
	}

	return orders, nil
}

// asFloat coerces a report cell into a number; malformed or missing cells
// become 0 rather than failing the fetch.
func asFloat(v any) float64 {
	switch value := v.(type) {
	case float64:
		return value
	case int:
		return float64(value)
	case string:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}
