/*
Package report is the shift-report domain layer.

PURPOSE:
  Wraps the recon engine with the concerns a report page actually needs:
  window parsing, visibility filters, team resolution through the staff
  directory, and aggregation over the filtered (visible) row set.

KEY CONCEPTS IN THIS FILE (types.go):
  - Filter:      Staff/team/product/market visibility restrictions
  - StaffMember: A directory row (name + team)
  - View:        The assembled response for one report request

SEE ALSO:
  - service.go: Orchestration
  - filter.go:  Filter semantics
*/
package report

import (
	"context"

	"github.com/quantrinhansu123/Luminew-sub000/recon"
)

// StaffMember is one staff directory row.
type StaffMember struct {
	Name string
	Team string
}

// Directory is the injected staff-directory collaborator. It doubles as
// the backfill roster: everyone in the directory is expected to report.
type Directory interface {
	Members(ctx context.Context) ([]StaffMember, error)
}

// Filter restricts the visible row set. Zero value means no restriction.
type Filter struct {
	Staff   []string
	Team    string
	Product string
	Market  string
}

// Empty reports whether the filter restricts nothing.
func (f Filter) Empty() bool {
	return len(f.Staff) == 0 && f.Team == "" && f.Product == "" && f.Market == ""
}

// View is the assembled result for one report request: the visible rows,
// per-staff aggregates and grand total over exactly those rows, and the
// pass-level data-quality flags.
type View struct {
	PassID    string
	Window    recon.Window
	Rows      []recon.ReconciledRow
	Staff     []recon.AggregateRow
	Total     recon.AggregateRow
	Truncated map[string]bool
	Degraded  []string
}
