package sqlite

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantrinhansu123/Luminew-sub000/recon"
	"github.com/quantrinhansu123/Luminew-sub000/report"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore_TransactionRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	rec := recon.TransactionRecord{
		ID:        "tx-1",
		Date:      "2026-01-05",
		StaffName: "An",
		Product:   "X",
		Market:    "VN",
		Amount:    decimal.NewFromInt(100000),
		Status:    recon.StatusOK,
	}
	require.NoError(t, store.InsertTransaction(ctx, rec))

	pool, err := store.FetchTransactions(ctx, recon.TransactionQuery{
		Window: recon.Window{Start: "2026-01-01", End: "2026-01-31"},
	})
	require.NoError(t, err)
	require.Len(t, pool.Records, 1)
	assert.Equal(t, rec.ID, pool.Records[0].ID)
	assert.True(t, pool.Records[0].Amount.Equal(rec.Amount))
	assert.False(t, pool.Truncated)
}

func TestStore_FetchTransactionsFilters(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	seed := []recon.TransactionRecord{
		{ID: "1", Date: "2026-01-05", StaffName: "An", Amount: decimal.NewFromInt(1), Status: recon.StatusOK},
		{ID: "2", Date: "2026-01-05", StaffName: "An", Amount: decimal.NewFromInt(2), Status: recon.StatusCancelled},
		{ID: "3", Date: "2026-01-05", StaffName: "Binh", Amount: decimal.NewFromInt(3), Status: recon.StatusOK},
		{ID: "4", Date: "2026-02-05", StaffName: "An", Amount: decimal.NewFromInt(4), Status: recon.StatusOK},
	}
	for _, rec := range seed {
		require.NoError(t, store.InsertTransaction(ctx, rec))
	}
	window := recon.Window{Start: "2026-01-01", End: "2026-01-31"}

	// Window scoping
	pool, err := store.FetchTransactions(ctx, recon.TransactionQuery{Window: window})
	require.NoError(t, err)
	assert.Len(t, pool.Records, 3, "February row excluded")

	// Cancelled-only family pre-filter
	pool, err = store.FetchTransactions(ctx, recon.TransactionQuery{Window: window, CancelledOnly: true})
	require.NoError(t, err)
	require.Len(t, pool.Records, 1)
	assert.Equal(t, "2", pool.Records[0].ID)

	// Staff scoping
	pool, err = store.FetchTransactions(ctx, recon.TransactionQuery{Window: window, StaffNames: []string{"Binh"}})
	require.NoError(t, err)
	require.Len(t, pool.Records, 1)
	assert.Equal(t, "3", pool.Records[0].ID)
}

func TestStore_DriftedDatesCanonicalizedOnInsert(t *testing.T) {
	// GIVEN: rows written with a day-first slash date
	// WHEN:  fetched by a canonical window
	// THEN:  they land in the window with canonical dates, matching what
	//        recon.SliceSource returns for the same rows
	ctx := context.Background()
	store := newTestStore(t)
	window := recon.Window{Start: "2026-01-01", End: "2026-01-31"}

	rec := recon.TransactionRecord{
		ID: "drift-1", Date: "5/1/2026", StaffName: "An",
		Amount: decimal.NewFromInt(100000), Status: recon.StatusOK,
	}
	require.NoError(t, store.InsertTransaction(ctx, rec))

	pool, err := store.FetchTransactions(ctx, recon.TransactionQuery{Window: window})
	require.NoError(t, err)
	require.Len(t, pool.Records, 1, "drifted date must not fall out of the window")
	assert.Equal(t, "2026-01-05", pool.Records[0].Date)

	mem := &recon.SliceSource{Transactions: []recon.TransactionRecord{rec}}
	memPool, err := mem.FetchTransactions(ctx, recon.TransactionQuery{Window: window})
	require.NoError(t, err)
	assert.Len(t, memPool.Records, len(pool.Records), "store and in-memory source must agree")

	require.NoError(t, store.InsertSupportEntry(ctx, recon.SupportEntry{
		StaffName: "An", Date: "5/1/2026", MessCount: 3,
	}))
	support, err := store.FetchSupportEntries(ctx, window)
	require.NoError(t, err)
	require.Len(t, support.Entries, 1)
	assert.Equal(t, "2026-01-05", support.Entries[0].Date)
}

func TestStore_ReportEntriesKeepUnparseableDates(t *testing.T) {
	// Rows with dates the normalizer cannot resolve stay visible in every
	// fetch so they surface in output with zero derived fields; only
	// canonical out-of-window rows are excluded.
	ctx := context.Background()
	store := newTestStore(t)

	entries := []recon.ReportEntry{
		{StaffName: "An", Date: "5/1/2026"},
		{StaffName: "Binh", Date: "soon"},
		{StaffName: "Chi", Date: "2026-02-10"},
	}
	for _, e := range entries {
		require.NoError(t, store.InsertReportEntry(ctx, e))
	}

	got, err := store.FetchReportEntries(ctx, recon.Window{Start: "2026-01-01", End: "2026-01-31"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "2026-01-05", got[0].Date)
	assert.Equal(t, "soon", got[1].Date)
}

func TestStore_ReportEntryOrderPreserved(t *testing.T) {
	// Entry order is the engine's processing order; the store must return
	// rows in insertion order.
	ctx := context.Background()
	store := newTestStore(t)

	names := []string{"An", "Binh", "Chi"}
	for _, n := range names {
		require.NoError(t, store.InsertReportEntry(ctx, recon.ReportEntry{
			StaffName: n, Date: "2026-01-05", Product: "X", Market: "VN",
		}))
	}

	entries, err := store.FetchReportEntries(ctx, recon.Window{Start: "2026-01-01", End: "2026-01-31"})
	require.NoError(t, err)
	require.Len(t, entries, 3)
	for i, n := range names {
		assert.Equal(t, n, entries[i].StaffName)
	}
}

func TestStore_SupportEntriesAndDirectory(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.InsertSupportEntry(ctx, recon.SupportEntry{
		StaffName: "An", Date: "2026-01-05", Product: "X", Market: "VN", Shift: "morning",
		MessCount: 12, ResponseCount: 9,
	}))
	pool, err := store.FetchSupportEntries(ctx, recon.Window{Start: "2026-01-01", End: "2026-01-31"})
	require.NoError(t, err)
	require.Len(t, pool.Entries, 1)
	assert.Equal(t, 12, pool.Entries[0].MessCount)
	assert.NotEmpty(t, pool.Entries[0].ID)

	require.NoError(t, store.UpsertStaffMember(ctx, report.StaffMember{Name: "An", Team: "alpha"}))
	require.NoError(t, store.UpsertStaffMember(ctx, report.StaffMember{Name: "An", Team: "beta"}))
	members, err := store.Members(ctx)
	require.NoError(t, err)
	require.Len(t, members, 1, "upsert replaces, not duplicates")
	assert.Equal(t, "beta", members[0].Team)
}

func TestStore_SeedDemoSmoke(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, SeedDemo(ctx, store))

	entries, err := store.FetchReportEntries(ctx, recon.Window{Start: "2026-01-01", End: "2026-01-31"})
	require.NoError(t, err)
	assert.NotEmpty(t, entries)

	members, err := store.Members(ctx)
	require.NoError(t, err)
	assert.Len(t, members, 3)

	// Seeding twice resets rather than accumulating.
	require.NoError(t, SeedDemo(ctx, store))
	again, err := store.FetchReportEntries(ctx, recon.Window{Start: "2026-01-01", End: "2026-01-31"})
	require.NoError(t, err)
	assert.Len(t, again, len(entries))
}
