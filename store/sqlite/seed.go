/*
seed.go - Demo dataset

PURPOSE:
  A small, self-consistent dataset for local development and demos. It
  exercises every matching tier: exact key hits, empty-product
  transactions picked up by the relaxed tier, a product typo rescued by
  the coarse fallback, and a roster member with transactions but no
  manual report (backfill).
*/
package sqlite

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/quantrinhansu123/Luminew-sub000/recon"
	"github.com/quantrinhansu123/Luminew-sub000/report"
)

// SeedDemo resets the store and loads the demo dataset.
func SeedDemo(ctx context.Context, s *Store) error {
	if err := s.Reset(ctx); err != nil {
		return err
	}

	amount := func(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

	staff := []report.StaffMember{
		{Name: "Nguyen An", Team: "alpha"},
		{Name: "Tran Binh", Team: "alpha"},
		{Name: "Le Chi", Team: "beta"},
	}
	for _, m := range staff {
		if err := s.UpsertStaffMember(ctx, m); err != nil {
			return err
		}
	}

	transactions := []recon.TransactionRecord{
		// Exact-tier matches for Nguyen An
		{ID: "tx-1001", Date: "2026-01-05", StaffName: "Nguyen An", Product: "glow-serum", Market: "VN", Amount: amount(150000), Status: recon.StatusOK},
		{ID: "tx-1002", Date: "2026-01-05", StaffName: "Nguyen An", Product: "glow-serum", Market: "VN", Amount: amount(220000), Status: recon.StatusOK},
		{ID: "tx-1003", Date: "2026-01-05", StaffName: "Nguyen An", Product: "glow-serum", Market: "VN", Amount: amount(180000), Status: recon.StatusCancelled},
		// Empty product/market, picked up by the relaxed tier
		{ID: "tx-1004", Date: "2026-01-05", StaffName: "Nguyen An", Product: "", Market: "", Amount: amount(90000), Status: recon.StatusOK},
		// Product typo on the order side; coarse fallback territory
		{ID: "tx-1005", Date: "2026-01-06", StaffName: "Nguyen An", Product: "glw-serum", Market: "VN", Amount: amount(130000), Status: recon.StatusOK},
		// Tran Binh has orders but files no report (backfill)
		{ID: "tx-2001", Date: "2026-01-05", StaffName: "Tran Binh", Product: "glow-serum", Market: "TH", Amount: amount(200000), Status: recon.StatusOK},
		{ID: "tx-2002", Date: "2026-01-06", StaffName: "Tran Binh", Product: "glow-serum", Market: "TH", Amount: amount(175000), Status: recon.StatusCancelled},
	}
	for _, tx := range transactions {
		if err := s.InsertTransaction(ctx, tx); err != nil {
			return err
		}
	}

	entries := []recon.ReportEntry{
		{StaffName: "Nguyen An", Date: "2026-01-05", Product: "glow-serum", Market: "VN", Shift: "morning",
			Manual: recon.ManualMetrics{OrderCount: 2, Revenue: amount(370000)}},
		{StaffName: "Nguyen An", Date: "2026-01-06", Product: "glow-serum", Market: "VN", Shift: "morning",
			Manual: recon.ManualMetrics{OrderCount: 1, Revenue: amount(130000)}},
		{StaffName: "Le Chi", Date: "2026-01-05", Product: "night-cream", Market: "VN", Shift: "evening"},
	}
	for _, e := range entries {
		if err := s.InsertReportEntry(ctx, e); err != nil {
			return err
		}
	}

	support := []recon.SupportEntry{
		{StaffName: "Nguyen An", Date: "2026-01-05", Product: "glow-serum", Market: "VN", Shift: "morning", MessCount: 14, ResponseCount: 11},
		{StaffName: "Nguyen An", Date: "2026-01-06", Product: "glow-serum", Market: "VN", Shift: "morning", MessCount: 9, ResponseCount: 7},
		{StaffName: "Le Chi", Date: "2026-01-05", Product: "night-cream", Market: "VN", Shift: "evening", MessCount: 5, ResponseCount: 2},
	}
	for _, e := range support {
		if err := s.InsertSupportEntry(ctx, e); err != nil {
			return err
		}
	}

	return nil
}
