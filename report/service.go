/*
service.go - Report orchestration

PURPOSE:
  One entry point per report page. ShiftReport fetches the manual rows for
  the window, runs a reconciliation pass, applies visibility filters, and
  aggregates the visible rows.

WINDOW PARSING:
  Window bounds accept the same formats as every other date in the system
  (see recon.NormalizeDate); bounds that fail to normalize reject the
  request up front instead of producing an empty report.

SEE ALSO:
  - recon/engine.go: The pass itself
*/
package report

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/quantrinhansu123/Luminew-sub000/recon"
)

// Service serves report requests. Directory is the injected staff
// directory; Engine carries the reconciliation sources.
type Service struct {
	Engine    *recon.Engine
	Reports   recon.ReportSource
	Directory Directory
	Logger    *zap.Logger
}

// ParseWindow normalizes and validates a raw start/end pair.
func ParseWindow(start, end string) (recon.Window, error) {
	w := recon.Window{Start: recon.NormalizeDate(start), End: recon.NormalizeDate(end)}
	if !w.Valid() {
		return recon.Window{}, fmt.Errorf("%w: start=%q end=%q", recon.ErrInvalidWindow, start, end)
	}
	return w, nil
}

// ShiftReport runs one reconciled shift report for the window and filter.
func (s *Service) ShiftReport(ctx context.Context, w recon.Window, f Filter) (*View, error) {
	entries, err := s.Reports.FetchReportEntries(ctx, w)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", recon.ErrReportFetchFailed, err)
	}

	result, err := s.Engine.Reconcile(ctx, w, entries)
	if err != nil {
		return nil, err
	}

	teamMembers, err := s.teamMembers(ctx, f.Team)
	if err != nil {
		// An unresolvable team filters like a team with no members. The
		// caller asked for a restriction we cannot honor, so showing
		// nothing beats showing everything.
		s.logger().Warn("team filter unavailable", zap.String("team", f.Team), zap.Error(err))
		teamMembers = map[string]struct{}{}
	}

	visible := f.Apply(result.Rows, teamMembers)
	staff, total := recon.AggregateRows(visible)

	return &View{
		PassID:    result.PassID,
		Window:    w,
		Rows:      visible,
		Staff:     staff,
		Total:     total,
		Truncated: result.Truncated,
		Degraded:  result.Degraded,
	}, nil
}

// teamMembers resolves a team name to its normalized member-name set.
// Returns nil (no restriction) when no team filter is active.
func (s *Service) teamMembers(ctx context.Context, team string) (map[string]struct{}, error) {
	if team == "" {
		return nil, nil
	}
	members, err := s.Directory.Members(ctx)
	if err != nil {
		return nil, err
	}
	want := recon.NormalizeText(team)
	out := make(map[string]struct{})
	for _, m := range members {
		if recon.NormalizeText(m.Team) == want {
			out[recon.NormalizeText(m.Name)] = struct{}{}
		}
	}
	return out, nil
}

func (s *Service) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.NewNop()
}

// DirectoryRoster adapts a Directory to the engine's RosterSource.
type DirectoryRoster struct {
	Directory Directory
}

// FetchRoster returns the directory's member names.
func (d DirectoryRoster) FetchRoster(ctx context.Context) ([]string, error) {
	members, err := d.Directory.Members(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(members))
	for _, m := range members {
		names = append(names, m.Name)
	}
	return names, nil
}
