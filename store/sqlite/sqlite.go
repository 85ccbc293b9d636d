/*
Package sqlite provides the SQLite-backed data store for the reporting
service.

PURPOSE:
  Implements every engine source interface (recon.TransactionSource,
  recon.SupportSource, recon.ReportSource) plus the staff directory
  (report.Directory) over one SQLite database. In production the same
  patterns apply to PostgreSQL - only minor SQL dialect differences.

KEY TABLES:
  transactions:     Raw order rows - the system of record
  report_entries:   Manually entered shift-report rows
  support_entries:  Manually entered mess/response rows
  staff_directory:  Roster of staff expected to report, with team

FETCH CAP:
  Every pool query carries LIMIT recon.FetchCap (10,000). A full page
  sets the pool's Truncated flag so the caller can tell a complete pool
  from a possibly clipped one; the engine never silently undercounts.

WAL MODE:
  Opened with WAL (Write-Ahead Logging):
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

USAGE:
  store, err := sqlite.New("./data/reports.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - recon/source.go: Interface definitions and truncation contract
  - report/types.go: Directory interface
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/quantrinhansu123/Luminew-sub000/recon"
	"github.com/quantrinhansu123/Luminew-sub000/report"
)

// Store implements the engine sources and the staff directory over SQLite.
type Store struct {
	db *sql.DB
}

// New creates a store at the given database path. Use ":memory:" for an
// in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Raw order rows (system of record, immutable to the engine)
	CREATE TABLE IF NOT EXISTS transactions (
		id TEXT PRIMARY KEY,
		date TEXT NOT NULL,
		staff_name TEXT NOT NULL,
		product TEXT NOT NULL DEFAULT '',
		market TEXT NOT NULL DEFAULT '',
		amount TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'ok'
	);

	-- Hot path: window scans scoped by staff and status
	CREATE INDEX IF NOT EXISTS idx_transactions_date
		ON transactions(date);
	CREATE INDEX IF NOT EXISTS idx_transactions_staff_date
		ON transactions(staff_name, date);
	CREATE INDEX IF NOT EXISTS idx_transactions_status
		ON transactions(status);

	-- Manually entered shift-report rows. No natural unique id; rowid
	-- preserves entry order, which the engine treats as processing order.
	CREATE TABLE IF NOT EXISTS report_entries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		staff_name TEXT NOT NULL,
		date TEXT NOT NULL,
		product TEXT NOT NULL DEFAULT '',
		market TEXT NOT NULL DEFAULT '',
		shift TEXT NOT NULL DEFAULT '',
		manual_orders INTEGER NOT NULL DEFAULT 0,
		manual_revenue TEXT NOT NULL DEFAULT '0'
	);

	CREATE INDEX IF NOT EXISTS idx_report_entries_date
		ON report_entries(date);

	-- Manually entered mess/response rows (second manual source)
	CREATE TABLE IF NOT EXISTS support_entries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		staff_name TEXT NOT NULL,
		date TEXT NOT NULL,
		product TEXT NOT NULL DEFAULT '',
		market TEXT NOT NULL DEFAULT '',
		shift TEXT NOT NULL DEFAULT '',
		mess_count INTEGER NOT NULL DEFAULT 0,
		response_count INTEGER NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_support_entries_date
		ON support_entries(date);

	-- Staff directory (roster + team membership)
	CREATE TABLE IF NOT EXISTS staff_directory (
		name TEXT PRIMARY KEY,
		team TEXT NOT NULL DEFAULT ''
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// ENGINE SOURCES
// =============================================================================

// FetchTransactions returns the window-scoped pool for one metric family,
// flagging truncation when the query fills a whole page.
func (s *Store) FetchTransactions(ctx context.Context, q recon.TransactionQuery) (recon.Pool, error) {
	query := `SELECT id, date, staff_name, product, market, amount, status
		FROM transactions WHERE date >= ? AND date <= ?`
	args := []any{q.Window.Start, q.Window.End}

	if q.CancelledOnly {
		query += ` AND status = ?`
		args = append(args, recon.StatusCancelled)
	}
	if len(q.StaffNames) > 0 {
		// Compare loosely; the engine normalizes harder, but a raw IN
		// filter here would hide case-drifted rows from matching.
		query += ` AND LOWER(TRIM(staff_name)) IN (?` + strings.Repeat(",?", len(q.StaffNames)-1) + `)`
		for _, n := range q.StaffNames {
			args = append(args, recon.NormalizeText(n))
		}
	}
	query += ` ORDER BY date, id LIMIT ?`
	args = append(args, recon.FetchCap)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return recon.Pool{}, fmt.Errorf("fetch transactions: %w", err)
	}
	defer rows.Close()

	var pool recon.Pool
	for rows.Next() {
		var rec recon.TransactionRecord
		var amount string
		if err := rows.Scan(&rec.ID, &rec.Date, &rec.StaffName, &rec.Product, &rec.Market, &amount, &rec.Status); err != nil {
			return recon.Pool{}, fmt.Errorf("scan transaction: %w", err)
		}
		rec.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return recon.Pool{}, fmt.Errorf("transaction %s: bad amount %q: %w", rec.ID, amount, err)
		}
		pool.Records = append(pool.Records, rec)
	}
	if err := rows.Err(); err != nil {
		return recon.Pool{}, err
	}
	pool.Truncated = len(pool.Records) == recon.FetchCap
	return pool, nil
}

// FetchSupportEntries returns the window-scoped mess/response pool.
func (s *Store) FetchSupportEntries(ctx context.Context, w recon.Window) (recon.SupportPool, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, staff_name, date, product, market, shift, mess_count, response_count
		FROM support_entries WHERE date >= ? AND date <= ?
		ORDER BY id LIMIT ?`, w.Start, w.End, recon.FetchCap)
	if err != nil {
		return recon.SupportPool{}, fmt.Errorf("fetch support entries: %w", err)
	}
	defer rows.Close()

	var pool recon.SupportPool
	for rows.Next() {
		var e recon.SupportEntry
		if err := rows.Scan(&e.ID, &e.StaffName, &e.Date, &e.Product, &e.Market, &e.Shift, &e.MessCount, &e.ResponseCount); err != nil {
			return recon.SupportPool{}, fmt.Errorf("scan support entry: %w", err)
		}
		pool.Entries = append(pool.Entries, e)
	}
	if err := rows.Err(); err != nil {
		return recon.SupportPool{}, err
	}
	pool.Truncated = len(pool.Entries) == recon.FetchCap
	return pool, nil
}

// sqlCanonicalDate matches recon.IsCanonicalDate in SQL: the "YYYY-MM-DD"
// shape with the month and day in calendar range. Zero-padded two-digit
// fields compare correctly as strings.
const sqlCanonicalDate = `(date GLOB '[0-9][0-9][0-9][0-9]-[0-9][0-9]-[0-9][0-9]'
		AND substr(date, 6, 2) BETWEEN '01' AND '12'
		AND substr(date, 9, 2) BETWEEN '01' AND '31')`

// FetchReportEntries returns the window's manual report rows in entry
// order. Entry order is the engine's processing order. Rows whose stored
// date is not canonical are kept regardless of window, matching
// recon.SliceSource; they surface in output with zero derived fields.
func (s *Store) FetchReportEntries(ctx context.Context, w recon.Window) ([]recon.ReportEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT staff_name, date, product, market, shift, manual_orders, manual_revenue
		FROM report_entries WHERE (date >= ? AND date <= ?) OR NOT `+sqlCanonicalDate+`
		ORDER BY id LIMIT ?`, w.Start, w.End, recon.FetchCap)
	if err != nil {
		return nil, fmt.Errorf("fetch report entries: %w", err)
	}
	defer rows.Close()

	var out []recon.ReportEntry
	for rows.Next() {
		var e recon.ReportEntry
		var revenue string
		if err := rows.Scan(&e.StaffName, &e.Date, &e.Product, &e.Market, &e.Shift, &e.Manual.OrderCount, &revenue); err != nil {
			return nil, fmt.Errorf("scan report entry: %w", err)
		}
		e.Manual.Revenue, err = decimal.NewFromString(revenue)
		if err != nil {
			return nil, fmt.Errorf("report entry %s/%s: bad manual revenue %q: %w", e.StaffName, e.Date, revenue, err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// =============================================================================
// STAFF DIRECTORY
// =============================================================================

// Members returns the full staff directory ordered by name.
func (s *Store) Members(ctx context.Context) ([]report.StaffMember, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, team FROM staff_directory ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("fetch staff directory: %w", err)
	}
	defer rows.Close()

	var out []report.StaffMember
	for rows.Next() {
		var m report.StaffMember
		if err := rows.Scan(&m.Name, &m.Team); err != nil {
			return nil, fmt.Errorf("scan staff member: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// =============================================================================
// WRITE HELPERS - Seeding and tests
// =============================================================================

// Dates are canonicalized on insert. The window queries above compare the
// stored date column as a raw string, so a row stored as "5/1/2026" would
// silently fall out of every window fetch even though the engine accepts
// that format. An unparseable date stays as the trimmed original.

// InsertTransaction adds one raw order row.
func (s *Store) InsertTransaction(ctx context.Context, rec recon.TransactionRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO transactions (id, date, staff_name, product, market, amount, status)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, recon.NormalizeDate(rec.Date), rec.StaffName, rec.Product, rec.Market, rec.Amount.String(), rec.Status)
	return err
}

// InsertReportEntry adds one manual report row.
func (s *Store) InsertReportEntry(ctx context.Context, e recon.ReportEntry) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO report_entries (staff_name, date, product, market, shift, manual_orders, manual_revenue)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.StaffName, recon.NormalizeDate(e.Date), e.Product, e.Market, e.Shift, e.Manual.OrderCount, e.Manual.Revenue.String())
	return err
}

// InsertSupportEntry adds one mess/response row.
func (s *Store) InsertSupportEntry(ctx context.Context, e recon.SupportEntry) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO support_entries (staff_name, date, product, market, shift, mess_count, response_count)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.StaffName, recon.NormalizeDate(e.Date), e.Product, e.Market, e.Shift, e.MessCount, e.ResponseCount)
	return err
}

// UpsertStaffMember adds or updates one directory row.
func (s *Store) UpsertStaffMember(ctx context.Context, m report.StaffMember) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO staff_directory (name, team) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET team = excluded.team`,
		m.Name, m.Team)
	return err
}

// Reset clears all tables. Dev/test only.
func (s *Store) Reset(ctx context.Context) error {
	for _, table := range []string{"transactions", "report_entries", "support_entries", "staff_directory"} {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}
