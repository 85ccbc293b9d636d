/*
aggregate.go - Per-row reduction and per-staff rollups

PURPOSE:
  Reduces matched transactions into the numeric fields on each reconciled
  row, then rolls rows up into per-staff aggregates and a grand total.

  Rollups operate on whatever row subset the caller passes, so the service
  layer can apply visibility filters first and aggregate only what the
  reader actually sees.

  Derived ratios (close rates and the like) are presentation concerns and
  live in the API layer, not here.
*/
package recon

import (
	"sort"

	"github.com/shopspring/decimal"
)

// =============================================================================
// PER-ROW REDUCTION
// =============================================================================

// reduceOrders writes the all-transactions family fields onto a row.
func reduceOrders(row *ReconciledRow, matched []TransactionRecord) {
	row.OrderCount = len(matched)
	sum := decimal.Zero
	for _, t := range matched {
		sum = sum.Add(t.Amount)
	}
	row.Revenue = sum
}

// reduceCancelled writes the cancelled-only family fields onto a row.
func reduceCancelled(row *ReconciledRow, matched []TransactionRecord) {
	row.CancelledCount = len(matched)
	sum := decimal.Zero
	for _, t := range matched {
		sum = sum.Add(t.Amount)
	}
	row.CancelledRevenue = sum
}

// reduceSupport writes the mess/response fields onto a row.
func reduceSupport(row *ReconciledRow, matched []SupportEntry) {
	for _, e := range matched {
		row.MessCount += e.MessCount
		row.ResponseCount += e.ResponseCount
	}
}

// finalizeRow computes fields derived from other derived fields. Runs after
// every family has merged its results.
func finalizeRow(row *ReconciledRow) {
	row.NetRevenue = row.Revenue.Sub(row.CancelledRevenue)
}

// =============================================================================
// ROLLUPS
// =============================================================================

// AggregateRows sums derived fields per staff name across the given rows
// and returns per-staff aggregates sorted by name plus the grand total.
// Staff identity uses the normalized name; the display name of the first
// row seen wins.
func AggregateRows(rows []ReconciledRow) ([]AggregateRow, AggregateRow) {
	byStaff := make(map[string]*AggregateRow)
	var order []string

	total := AggregateRow{
		Revenue:          decimal.Zero,
		CancelledRevenue: decimal.Zero,
		NetRevenue:       decimal.Zero,
	}

	for _, row := range rows {
		key := NormalizeText(row.StaffName)
		agg, ok := byStaff[key]
		if !ok {
			agg = &AggregateRow{
				StaffName:        row.StaffName,
				Revenue:          decimal.Zero,
				CancelledRevenue: decimal.Zero,
				NetRevenue:       decimal.Zero,
			}
			byStaff[key] = agg
			order = append(order, key)
		}
		addRow(agg, row)
		addRow(&total, row)
	}

	sort.Strings(order)
	out := make([]AggregateRow, 0, len(order))
	for _, key := range order {
		out = append(out, *byStaff[key])
	}
	return out, total
}

func addRow(agg *AggregateRow, row ReconciledRow) {
	agg.RowCount++
	agg.OrderCount += row.OrderCount
	agg.Revenue = agg.Revenue.Add(row.Revenue)
	agg.CancelledCount += row.CancelledCount
	agg.CancelledRevenue = agg.CancelledRevenue.Add(row.CancelledRevenue)
	agg.NetRevenue = agg.NetRevenue.Add(row.NetRevenue)
	agg.MessCount += row.MessCount
	agg.ResponseCount += row.ResponseCount
}
