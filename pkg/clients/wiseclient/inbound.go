package wiseclient

import (
	"context"

	"github.com/unis-raj-shah/warehouse-scheduler/pkg/core/workdays"
)

// IncomingSummary is the inbound side of the forecast: total pallets on
// receipts with appointments in the window.
type IncomingSummary struct {
	IncomingPallets float64
}

type receiptSearchResponse struct {
	Receipts []struct {
		ID          string  `json:"id"`
		Status      string  `json:"status"`
		PalletCount float64 `json:"palletCount"`
	} `json:"receipts"`
}

// GetIncomingSummary sums expected pallets over inbound receipts that have an
// appointment or are already in the yard for the given day window.
func (c *Client) GetIncomingSummary(ctx context.Context, w workdays.Window) (IncomingSummary, error) {
	payload := map[string]any{
		"appointmentTimeFrom": w.Start.Format(apiTimeLayout),
		"appointmentTimeTo":   w.End.Format(apiTimeLayout),
		"customerIds":         []string{c.customerID},
		"paging":              map[string]any{"pageNo": 1, "limit": 1000},
		"statuses":            []string{"Appointment Made", "In Yard"},
	}

	var resp receiptSearchResponse
	if err := c.post(ctx, "/bam/inbound/receipt/search-by-paging", payload, &resp); err != nil {
		return IncomingSummary{}, err
	}

	var total float64
	for _, receipt := range resp.Receipts {
		total += receipt.PalletCount
	}

	return IncomingSummary{IncomingPallets: total}, nil
}
