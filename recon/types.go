/*
Package recon provides the cross-source reconciliation engine.

PURPOSE:
  This package contains the types and algorithms that attribute raw order
  transactions to manually entered shift-report rows. Two independently
  entered data sets describe the same activity; this engine decides, for
  each report row, which transactions belong to it, using a multi-part
  business key with cascading fallback and exactly-once claiming.

KEY CONCEPTS IN THIS FILE (types.go):
  - TransactionRecord: An immutable system-of-record order row
  - ReportEntry:       A manually entered per-shift report row
  - SupportEntry:      A second manual source carrying mess/response counts
  - ReconciledRow:     A ReportEntry enriched with derived numeric fields
  - AggregateRow:      Per-staff (and grand-total) sums over ReconciledRows

DESIGN PRINCIPLES:
  1. Immutability: transaction and support pools are read-only input
  2. Precision: revenue uses decimal.Decimal, never float64
  3. Exactly-once: a transaction is attributed to at most one row per family
  4. Determinism: identical inputs in identical row order give identical output

SEE ALSO:
  - normalize.go: Field canonicalization
  - key.go:       Business key construction
  - matcher.go:   Tiered matching algorithm
  - engine.go:    Full reconciliation pass
*/
package recon

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// TRANSACTION RECORD - System-of-record order row
// =============================================================================

// Status values carried by TransactionRecord. Anything other than
// StatusCancelled counts as a live order.
const (
	StatusOK        = "ok"
	StatusCancelled = "cancelled"
)

// TransactionRecord is one raw order row. Supplied externally, read-only
// to the engine. ID is unique and stable across fetches.
type TransactionRecord struct {
	ID        string
	Date      string
	StaffName string
	Product   string
	Market    string
	Amount    decimal.Decimal
	Status    string
}

// Cancelled reports whether this record belongs to the cancelled family.
func (t TransactionRecord) Cancelled() bool {
	return t.Status == StatusCancelled
}

// =============================================================================
// REPORT ENTRY - Manually entered shift report row
// =============================================================================

// ManualMetrics are the figures the staff member typed in themselves.
// They pass through to output untouched; reconciliation never overwrites them.
type ManualMetrics struct {
	OrderCount int
	Revenue    decimal.Decimal
}

// ReportEntry is one manually entered report row. There is no stable unique
// id; identity for matching is the (staff, date, product, market[, shift])
// tuple. Multiple entries may share staff+date with different product/market.
type ReportEntry struct {
	StaffName string
	Date      string
	Product   string
	Market    string
	Shift     string
	Manual    ManualMetrics

	// Synthetic marks a backfill row generated for a roster member with no
	// manual entry in the window. Synthetic rows carry empty
	// product/market/shift and zero manual metrics.
	Synthetic bool
}

// =============================================================================
// SUPPORT ENTRY - Second manual source (mess/response counts)
// =============================================================================

// SupportEntry is a row from the independent mess/response log. Unlike
// transactions it is matched on the full five-part key (including shift)
// with no fallback tiers.
type SupportEntry struct {
	ID            string
	StaffName     string
	Date          string
	Product       string
	Market        string
	Shift         string
	MessCount     int
	ResponseCount int
}

// =============================================================================
// DERIVED ROWS
// =============================================================================

// ReconciledRow is a ReportEntry plus the numeric fields derived by the
// reconciliation pass. NetRevenue is Revenue minus CancelledRevenue.
type ReconciledRow struct {
	ReportEntry

	OrderCount       int
	Revenue          decimal.Decimal
	CancelledCount   int
	CancelledRevenue decimal.Decimal
	NetRevenue       decimal.Decimal
	MessCount        int
	ResponseCount    int
}

// AggregateRow sums the derived fields across every visible ReconciledRow
// sharing one staff name. The grand total is an AggregateRow with an empty
// StaffName.
type AggregateRow struct {
	StaffName        string
	RowCount         int
	OrderCount       int
	Revenue          decimal.Decimal
	CancelledCount   int
	CancelledRevenue decimal.Decimal
	NetRevenue       decimal.Decimal
	MessCount        int
	ResponseCount    int
}

// =============================================================================
// WINDOW - Date range for one reconciliation pass
// =============================================================================

// Window is an inclusive canonical-day range. Start and End are
// "YYYY-MM-DD" strings; see normalize.go for how inputs get there.
type Window struct {
	Start string
	End   string
}

// Contains reports whether a canonical date falls inside the window.
// Canonical dates compare correctly as strings.
func (w Window) Contains(date string) bool {
	return date >= w.Start && date <= w.End
}

// Valid reports whether both bounds are canonical and ordered.
func (w Window) Valid() bool {
	return IsCanonicalDate(w.Start) && IsCanonicalDate(w.End) && w.Start <= w.End
}
