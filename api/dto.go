/*
dto.go - Data Transfer Objects for API responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract, allowing:
  - Field renaming without breaking clients
  - API-specific presentation (ratios, formatted amounts)
  - Version evolution

PRESENTATION RATIOS:
  Close rate and similar ratios are computed here, at the edge, never in
  the engine. Division by zero yields 0.

SEE ALSO:
  - handlers.go: Uses these types
  - report/types.go: Domain view these map from
*/
package api

import (
	"github.com/shopspring/decimal"

	"github.com/quantrinhansu123/Luminew-sub000/recon"
	"github.com/quantrinhansu123/Luminew-sub000/report"
)

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// RowDTO is one reconciled report row.
type RowDTO struct {
	StaffName        string  `json:"staff_name"`
	Date             string  `json:"date"`
	Product          string  `json:"product"`
	Market           string  `json:"market"`
	Shift            string  `json:"shift"`
	Synthetic        bool    `json:"synthetic,omitempty"`
	ManualOrders     int     `json:"manual_orders"`
	ManualRevenue    string  `json:"manual_revenue"`
	OrderCount       int     `json:"order_count"`
	Revenue          string  `json:"revenue"`
	CancelledCount   int     `json:"cancelled_count"`
	CancelledRevenue string  `json:"cancelled_revenue"`
	NetRevenue       string  `json:"net_revenue"`
	MessCount        int     `json:"mess_count"`
	ResponseCount    int     `json:"response_count"`
	CloseRate        float64 `json:"close_rate"`
}

// AggregateDTO is one per-staff (or grand-total) rollup.
type AggregateDTO struct {
	StaffName        string  `json:"staff_name,omitempty"`
	RowCount         int     `json:"row_count"`
	OrderCount       int     `json:"order_count"`
	Revenue          string  `json:"revenue"`
	CancelledCount   int     `json:"cancelled_count"`
	CancelledRevenue string  `json:"cancelled_revenue"`
	NetRevenue       string  `json:"net_revenue"`
	MessCount        int     `json:"mess_count"`
	ResponseCount    int     `json:"response_count"`
	CloseRate        float64 `json:"close_rate"`
}

// ShiftReportResponse is the full payload for one report request.
type ShiftReportResponse struct {
	PassID    string          `json:"pass_id"`
	Start     string          `json:"start"`
	End       string          `json:"end"`
	Rows      []RowDTO        `json:"rows"`
	Staff     []AggregateDTO  `json:"staff"`
	Total     AggregateDTO    `json:"total"`
	Truncated map[string]bool `json:"truncated"`
	Degraded  []string        `json:"degraded,omitempty"`
}

// StaffMemberDTO is one roster row.
type StaffMemberDTO struct {
	Name string `json:"name"`
	Team string `json:"team,omitempty"`
}

// ErrorResponse is the standard error payload.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// MAPPING
// =============================================================================

// closeRate is (orders - cancelled) / mess, the page's headline ratio.
// Zero mess count yields 0 rather than dividing by zero.
func closeRate(orders, cancelled, mess int) float64 {
	if mess == 0 {
		return 0
	}
	return float64(orders-cancelled) / float64(mess)
}

func money(d decimal.Decimal) string {
	return d.String()
}

func toRowDTO(row recon.ReconciledRow) RowDTO {
	return RowDTO{
		StaffName:        row.StaffName,
		Date:             row.Date,
		Product:          row.Product,
		Market:           row.Market,
		Shift:            row.Shift,
		Synthetic:        row.Synthetic,
		ManualOrders:     row.Manual.OrderCount,
		ManualRevenue:    money(row.Manual.Revenue),
		OrderCount:       row.OrderCount,
		Revenue:          money(row.Revenue),
		CancelledCount:   row.CancelledCount,
		CancelledRevenue: money(row.CancelledRevenue),
		NetRevenue:       money(row.NetRevenue),
		MessCount:        row.MessCount,
		ResponseCount:    row.ResponseCount,
		CloseRate:        closeRate(row.OrderCount, row.CancelledCount, row.MessCount),
	}
}

func toAggregateDTO(agg recon.AggregateRow) AggregateDTO {
	return AggregateDTO{
		StaffName:        agg.StaffName,
		RowCount:         agg.RowCount,
		OrderCount:       agg.OrderCount,
		Revenue:          money(agg.Revenue),
		CancelledCount:   agg.CancelledCount,
		CancelledRevenue: money(agg.CancelledRevenue),
		NetRevenue:       money(agg.NetRevenue),
		MessCount:        agg.MessCount,
		ResponseCount:    agg.ResponseCount,
		CloseRate:        closeRate(agg.OrderCount, agg.CancelledCount, agg.MessCount),
	}
}

func toShiftReportResponse(view *report.View) ShiftReportResponse {
	resp := ShiftReportResponse{
		PassID:    view.PassID,
		Start:     view.Window.Start,
		End:       view.Window.End,
		Rows:      make([]RowDTO, len(view.Rows)),
		Staff:     make([]AggregateDTO, len(view.Staff)),
		Total:     toAggregateDTO(view.Total),
		Truncated: view.Truncated,
		Degraded:  view.Degraded,
	}
	for i, row := range view.Rows {
		resp.Rows[i] = toRowDTO(row)
	}
	for i, agg := range view.Staff {
		resp.Staff[i] = toAggregateDTO(agg)
	}
	return resp
}
