/*
key.go - Composite business keys for cross-source matching

PURPOSE:
  Both sources are keyed on the same business tuple. The four-part key
  (staff, date, product, market) is the primary identity; the coarse
  two-part key (staff, date) exists only for fallback lookups; the
  five-part key adds shift and is used by the mess/response pass.

SEPARATOR:
  Fields are joined with "|", a character that never appears in staff
  names, product codes, or market codes in this data set.
*/
package recon

import "strings"

const keySep = "|"

// MatchKey builds the four-part business key over normalized fields.
func MatchKey(staff, date, product, market string) string {
	return strings.Join([]string{
		NormalizeText(staff),
		NormalizeDate(date),
		NormalizeText(product),
		NormalizeText(market),
	}, keySep)
}

// CoarseKey builds the two-part fallback key over normalized fields.
func CoarseKey(staff, date string) string {
	return NormalizeText(staff) + keySep + NormalizeDate(date)
}

// ShiftKey builds the five-part key used by the support pass.
func ShiftKey(staff, date, product, market, shift string) string {
	return MatchKey(staff, date, product, market) + keySep + NormalizeText(shift)
}

// Key returns the transaction's own four-part key.
func (t TransactionRecord) Key() string {
	return MatchKey(t.StaffName, t.Date, t.Product, t.Market)
}

// CoarseKey returns the transaction's own two-part key.
func (t TransactionRecord) CoarseKey() string {
	return CoarseKey(t.StaffName, t.Date)
}

// Key returns the entry's four-part key.
func (e ReportEntry) Key() string {
	return MatchKey(e.StaffName, e.Date, e.Product, e.Market)
}

// CoarseKey returns the entry's two-part key.
func (e ReportEntry) CoarseKey() string {
	return CoarseKey(e.StaffName, e.Date)
}

// ShiftKey returns the entry's five-part key for the support pass.
func (e ReportEntry) ShiftKey() string {
	return ShiftKey(e.StaffName, e.Date, e.Product, e.Market, e.Shift)
}

// ShiftKey returns the support row's own five-part key.
func (s SupportEntry) ShiftKey() string {
	return ShiftKey(s.StaffName, s.Date, s.Product, s.Market, s.Shift)
}
