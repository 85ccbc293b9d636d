/*
errors.go - Error types for the reconciliation engine

PURPOSE:
  Sentinel errors for the conditions callers branch on. Family-level fetch
  failures are deliberately NOT errors at the pass level: one family
  failing degrades that family's fields to zero and is reported through
  Result.Degraded, while the pass as a whole still returns a usable
  partial result. Truncation is likewise a flag, not an error.
*/
package recon

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidWindow is returned when a window is empty, non-canonical,
	// or ends before it starts.
	ErrInvalidWindow = errors.New("invalid window: bounds must be canonical dates with start <= end")

	// ErrReportFetchFailed is returned when the report-entry fetch itself
	// fails. Unlike family fetches there is nothing to reconcile without
	// the rows, so this one is terminal for the pass.
	ErrReportFetchFailed = errors.New("report entry fetch failed")
)

// FamilyError records which metric family's fetch failed and why. The pass
// continues; the family's fields stay zero on every row.
type FamilyError struct {
	Family string
	Err    error
}

func (e *FamilyError) Error() string {
	return fmt.Sprintf("family %q fetch failed: %v", e.Family, e.Err)
}

func (e *FamilyError) Unwrap() error {
	return e.Err
}
