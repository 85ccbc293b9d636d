/*
engine.go - One full reconciliation pass

PURPOSE:
  Orchestrates a pass over one date window: backfills synthetic rows for
  roster members with no manual report, runs each metric family's tiered
  matching, merges family results onto the rows, and finalizes derived
  fields.

METRIC FAMILIES:
  orders     all transactions in window  -> OrderCount, Revenue
  cancelled  cancelled-only transactions -> CancelledCount, CancelledRevenue
  support    mess/response manual rows   -> MessCount, ResponseCount

  Families are independent questions over overlapping data. Each owns its
  fetch, pre-filter, index, and ClaimSet, so they run concurrently in an
  errgroup. Family results accumulate in family-local buffers and merge
  onto the shared row slice only after Wait returns; nothing mutable is
  shared while goroutines run.

ORDERING:
  Within a family, rows are processed strictly in input order: real rows
  in the order the caller supplied them, then synthetic backfill rows in
  roster order. Tier-3 leftovers go to the earlier row when two rows
  contest a coarse key.

PARTIAL FAILURE:
  A family whose fetch fails is logged and recorded in Result.Degraded;
  its fields stay zero on every row. A roster fetch failure degrades to a
  pass with no backfill. Only the report-entry fetch is terminal.

SEE ALSO:
  - matcher.go:  Tier semantics
  - source.go:   Fetch boundary and truncation flagging
*/
package recon

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Family names as they appear in Result.Truncated and Result.Degraded.
const (
	FamilyOrders    = "orders"
	FamilyCancelled = "cancelled"
	FamilySupport   = "support"
)

// Engine runs reconciliation passes. All fields are required except
// Logger, which defaults to a nop logger.
type Engine struct {
	Transactions TransactionSource
	Support      SupportSource
	Roster       RosterSource
	Logger       *zap.Logger
}

// Result is the output of one pass: one ReconciledRow per input row (real
// then synthetic), plus per-family truncation and degradation flags.
// Aggregation happens separately (AggregateRows) so callers can filter the
// visible row set first.
type Result struct {
	PassID    string
	Window    Window
	Rows      []ReconciledRow
	Truncated map[string]bool
	Degraded  []string
}

func (e *Engine) logger() *zap.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return zap.NewNop()
}

// Reconcile runs one full pass over the supplied report entries. The
// entries' order is preserved and observable: it decides Tier-3
// allocation. Synthetic backfill rows are appended after the real rows.
func (e *Engine) Reconcile(ctx context.Context, w Window, entries []ReportEntry) (*Result, error) {
	if !w.Valid() {
		return nil, ErrInvalidWindow
	}

	passID := uuid.NewString()
	log := e.logger().With(zap.String("pass_id", passID), zap.String("window_start", w.Start), zap.String("window_end", w.End))

	rows := make([]ReconciledRow, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, ReconciledRow{ReportEntry: entry})
	}
	rows = append(rows, e.backfillRows(ctx, w, entries, log)...)

	res := &Result{
		PassID:    passID,
		Window:    w,
		Rows:      rows,
		Truncated: make(map[string]bool, 3),
	}

	staffNames := distinctStaff(rows)

	// Family-local buffers, merged after Wait. Index i addresses rows[i].
	var (
		ordersMatched    = make([][]TransactionRecord, len(rows))
		cancelledMatched = make([][]TransactionRecord, len(rows))
		supportMatched   = make([][]SupportEntry, len(rows))
		truncated        [3]bool
		failed           [3]error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		pool, err := e.Transactions.FetchTransactions(gctx, TransactionQuery{Window: w, StaffNames: staffNames})
		if err != nil {
			failed[0] = &FamilyError{Family: FamilyOrders, Err: err}
			return nil
		}
		truncated[0] = pool.Truncated
		matchFamily(rows, BuildTransactionIndex(pool.Records), ordersMatched)
		return nil
	})
	g.Go(func() error {
		pool, err := e.Transactions.FetchTransactions(gctx, TransactionQuery{Window: w, CancelledOnly: true, StaffNames: staffNames})
		if err != nil {
			failed[1] = &FamilyError{Family: FamilyCancelled, Err: err}
			return nil
		}
		truncated[1] = pool.Truncated
		matchFamily(rows, BuildTransactionIndex(pool.Records), cancelledMatched)
		return nil
	})
	g.Go(func() error {
		pool, err := e.Support.FetchSupportEntries(gctx, w)
		if err != nil {
			failed[2] = &FamilyError{Family: FamilySupport, Err: err}
			return nil
		}
		truncated[2] = pool.Truncated
		matcher := NewSupportMatcher(BuildSupportIndex(pool.Entries))
		for i := range rows {
			supportMatched[i] = matcher.Match(rows[i].ReportEntry)
		}
		return nil
	})
	// Family goroutines record their failures in failed[] instead of
	// returning them, so one broken family cannot cancel the others.
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i := range rows {
		reduceOrders(&rows[i], ordersMatched[i])
		reduceCancelled(&rows[i], cancelledMatched[i])
		reduceSupport(&rows[i], supportMatched[i])
		finalizeRow(&rows[i])
	}

	res.Truncated[FamilyOrders] = truncated[0]
	res.Truncated[FamilyCancelled] = truncated[1]
	res.Truncated[FamilySupport] = truncated[2]
	for fi, name := range []string{FamilyOrders, FamilyCancelled, FamilySupport} {
		if failed[fi] == nil {
			continue
		}
		res.Degraded = append(res.Degraded, name)
		log.Warn("metric family degraded", zap.String("family", name), zap.Error(failed[fi]))
	}

	log.Info("reconciliation pass complete",
		zap.Int("rows", len(rows)),
		zap.Int("synthetic", len(rows)-len(entries)),
		zap.Bool("orders_truncated", truncated[0]),
		zap.Bool("cancelled_truncated", truncated[1]),
		zap.Strings("degraded", res.Degraded),
	)
	return res, nil
}

// matchFamily runs one transaction family's tiered pass over the rows in
// order, writing matches into the family-local buffer.
func matchFamily(rows []ReconciledRow, index *TransactionIndex, matched [][]TransactionRecord) {
	matcher := NewMatcher(index)
	for i := range rows {
		matched[i] = matcher.Match(rows[i].ReportEntry)
	}
}

// backfillRows synthesizes zero rows for roster members with no manual
// entry in the window, dated to the window start. A roster fetch failure
// is logged and skips backfill rather than failing the pass.
func (e *Engine) backfillRows(ctx context.Context, w Window, entries []ReportEntry, log *zap.Logger) []ReconciledRow {
	if e.Roster == nil {
		return nil
	}
	roster, err := e.Roster.FetchRoster(ctx)
	if err != nil {
		log.Warn("roster fetch failed, skipping backfill", zap.Error(err))
		return nil
	}

	present := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		present[NormalizeText(entry.StaffName)] = struct{}{}
	}

	var out []ReconciledRow
	for _, name := range roster {
		norm := NormalizeText(name)
		if norm == "" {
			continue
		}
		if _, ok := present[norm]; ok {
			continue
		}
		present[norm] = struct{}{}
		out = append(out, ReconciledRow{ReportEntry: ReportEntry{
			StaffName: name,
			Date:      w.Start,
			Synthetic: true,
		}})
	}
	return out
}

// distinctStaff collects the staff names present in the row set, used to
// scope pool fetches.
func distinctStaff(rows []ReconciledRow) []string {
	seen := make(map[string]struct{}, len(rows))
	var out []string
	for _, row := range rows {
		norm := NormalizeText(row.StaffName)
		if norm == "" {
			continue
		}
		if _, ok := seen[norm]; ok {
			continue
		}
		seen[norm] = struct{}{}
		out = append(out, row.StaffName)
	}
	return out
}
