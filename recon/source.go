/*
source.go - Injected data source interfaces

PURPOSE:
  The engine is a pure function of three fetched inputs for a given
  window. Fetching is the only I/O boundary; it hides behind these
  interfaces so the sqlite store, the in-memory test source, and any
  future backend are interchangeable.

TRUNCATION:
  The backing store caps every query at FetchCap rows. A pool that comes
  back exactly at the cap may be missing data, which would otherwise
  become a silent undercount. Sources must report that condition through
  Pool.Truncated; the engine surfaces it to the caller, which decides
  whether to re-fetch with narrower filters.
*/
package recon

import "context"

// FetchCap is the per-query row limit enforced by backing stores.
const FetchCap = 10000

// TransactionQuery scopes one family's pool fetch.
type TransactionQuery struct {
	Window        Window
	CancelledOnly bool
	// StaffNames optionally narrows the fetch to the staff appearing in the
	// report set. Empty means no restriction.
	StaffNames []string
}

// Pool is one family's fetched transaction pool. Truncated is set when the
// fetch hit FetchCap and the pool may be incomplete.
type Pool struct {
	Records   []TransactionRecord
	Truncated bool
}

// SupportPool is the fetched mess/response pool.
type SupportPool struct {
	Entries   []SupportEntry
	Truncated bool
}

// TransactionSource supplies raw order records for a window.
type TransactionSource interface {
	FetchTransactions(ctx context.Context, q TransactionQuery) (Pool, error)
}

// SupportSource supplies mess/response rows for a window.
type SupportSource interface {
	FetchSupportEntries(ctx context.Context, w Window) (SupportPool, error)
}

// ReportSource supplies manually entered report rows for a window.
type ReportSource interface {
	FetchReportEntries(ctx context.Context, w Window) ([]ReportEntry, error)
}

// RosterSource supplies the authoritative list of staff expected to report.
type RosterSource interface {
	FetchRoster(ctx context.Context) ([]string, error)
}

// =============================================================================
// SLICE SOURCE - In-memory implementation (for testing/dev)
// =============================================================================

// SliceSource serves all four source interfaces from in-memory slices,
// applying the same window/status/cap semantics as the real store.
type SliceSource struct {
	Transactions []TransactionRecord
	Support      []SupportEntry
	Reports      []ReportEntry
	Roster       []string

	// Cap overrides FetchCap when positive; tests use tiny caps to
	// exercise truncation flagging.
	Cap int
}

func (s *SliceSource) limit() int {
	if s.Cap > 0 {
		return s.Cap
	}
	return FetchCap
}

// FetchTransactions returns window-scoped records, cancelled-only if asked,
// honoring the cap.
func (s *SliceSource) FetchTransactions(_ context.Context, q TransactionQuery) (Pool, error) {
	var staff map[string]struct{}
	if len(q.StaffNames) > 0 {
		staff = make(map[string]struct{}, len(q.StaffNames))
		for _, n := range q.StaffNames {
			staff[NormalizeText(n)] = struct{}{}
		}
	}

	var pool Pool
	for _, rec := range s.Transactions {
		if len(pool.Records) == s.limit() {
			break
		}
		if !q.Window.Contains(NormalizeDate(rec.Date)) {
			continue
		}
		if q.CancelledOnly && !rec.Cancelled() {
			continue
		}
		if staff != nil {
			if _, ok := staff[NormalizeText(rec.StaffName)]; !ok {
				continue
			}
		}
		pool.Records = append(pool.Records, rec)
	}
	// Same contract as the real store: a full page may be clipped.
	pool.Truncated = len(pool.Records) == s.limit()
	return pool, nil
}

// FetchSupportEntries returns window-scoped support rows honoring the cap.
func (s *SliceSource) FetchSupportEntries(_ context.Context, w Window) (SupportPool, error) {
	var pool SupportPool
	for _, e := range s.Support {
		if len(pool.Entries) == s.limit() {
			break
		}
		if !w.Contains(NormalizeDate(e.Date)) {
			continue
		}
		pool.Entries = append(pool.Entries, e)
	}
	pool.Truncated = len(pool.Entries) == s.limit()
	return pool, nil
}

// FetchReportEntries returns window-scoped report rows in input order.
// Rows with unparseable dates are kept; they surface in output with zero
// derived fields.
func (s *SliceSource) FetchReportEntries(_ context.Context, w Window) ([]ReportEntry, error) {
	var out []ReportEntry
	for _, e := range s.Reports {
		norm := NormalizeDate(e.Date)
		if IsCanonicalDate(norm) && !w.Contains(norm) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

// FetchRoster returns the roster slice as-is.
func (s *SliceSource) FetchRoster(_ context.Context) ([]string, error) {
	return s.Roster, nil
}
