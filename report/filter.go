/*
filter.go - Visibility filters over reconciled rows

PURPOSE:
  Filters run AFTER reconciliation, on the enriched rows, and BEFORE
  aggregation, so per-staff totals always describe exactly what the
  reader sees.

SYNTHETIC ROWS:
  Backfill rows carry empty product/market/shift. Product and market
  filters compare normalized values, so an active product or market
  filter never retains a synthetic row (empty never equals a requested
  value). Staff and team filters apply to synthetic rows the same as to
  real ones.
*/
package report

import (
	"github.com/quantrinhansu123/Luminew-sub000/recon"
)

// Apply returns the rows visible under the filter, preserving order.
// teamMembers is the normalized name set for the requested team; nil when
// no team filter is active.
func (f Filter) Apply(rows []recon.ReconciledRow, teamMembers map[string]struct{}) []recon.ReconciledRow {
	if f.Empty() {
		return rows
	}

	var staff map[string]struct{}
	if len(f.Staff) > 0 {
		staff = make(map[string]struct{}, len(f.Staff))
		for _, n := range f.Staff {
			staff[recon.NormalizeText(n)] = struct{}{}
		}
	}
	product := recon.NormalizeText(f.Product)
	market := recon.NormalizeText(f.Market)

	var out []recon.ReconciledRow
	for _, row := range rows {
		name := recon.NormalizeText(row.StaffName)
		if staff != nil {
			if _, ok := staff[name]; !ok {
				continue
			}
		}
		if teamMembers != nil {
			if _, ok := teamMembers[name]; !ok {
				continue
			}
		}
		if product != "" && recon.NormalizeText(row.Product) != product {
			continue
		}
		if market != "" && recon.NormalizeText(row.Market) != market {
			continue
		}
		out = append(out, row)
	}
	return out
}
