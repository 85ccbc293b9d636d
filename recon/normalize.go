/*
normalize.go - Canonicalization of free-text and date fields

PURPOSE:
  Report rows and transaction rows are entered by different people in
  different tools. " Nguyen An " and "nguyen an" must build the same key,
  and "5/1/2026", "2026-01-05" and "2026-01-05 14:30" must land on the same
  calendar day. Everything in this file is idempotent:
  normalize(normalize(x)) == normalize(x).

DATE HANDLING:
  NormalizeDate only ever reads local calendar fields (Year/Month/Day).
  Converting through UTC shifts the day for anyone east or west of UTC,
  which silently breaks every key built from the date. Unparseable input
  comes back as the trimmed original so callers can keep the row visible
  while excluding it from matching (see IsCanonicalDate).

SEE ALSO:
  - key.go: Consumes normalized fields
*/
package recon

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// =============================================================================
// TEXT
// =============================================================================

// NormalizeText trims, lowercases, and collapses internal whitespace runs
// to a single space. Empty input normalizes to "".
func NormalizeText(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// =============================================================================
// DATES
// =============================================================================

// dateLayouts are the generic fallback formats tried after the explicit
// branches below. Parsed in time.Local so the calendar day never shifts.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// NormalizeDate canonicalizes a date string to "YYYY-MM-DD".
//
// Accepted inputs: already-canonical dates, ISO strings with a T or
// space-separated time component, and slash- or dash-delimited numeric
// dates. Both delimiters resolve "a?b?c" the same way: a > 31 means
// year-first; else a > 12 means day-first; else b > 12 means
// month-first; else day/month/year wins by default (the entry tools in
// use are day-first). Two-digit years are 2000-based.
//
// Input that fails every branch is returned trimmed but otherwise
// unchanged; IsCanonicalDate distinguishes the two outcomes.
func NormalizeDate(s string) string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return ""
	}

	// Strip a time component: "2026-01-05T14:30:00" or "2026-01-05 14:30".
	datePart := trimmed
	if i := strings.IndexAny(datePart, "T "); i > 0 {
		datePart = datePart[:i]
	}

	if IsCanonicalDate(datePart) {
		return datePart
	}

	for _, sep := range []string{"/", "-"} {
		if strings.Contains(datePart, sep) {
			if out, ok := normalizeNumericDate(datePart, sep); ok {
				return out
			}
		}
	}

	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, trimmed, time.Local); err == nil {
			return NormalizeDay(t)
		}
		if t, err := time.ParseInLocation(layout, datePart, time.Local); err == nil {
			return NormalizeDay(t)
		}
	}

	return trimmed
}

// NormalizeDay formats a native time value as a canonical date using its
// local calendar fields. Never converts through UTC.
func NormalizeDay(t time.Time) string {
	return fmt.Sprintf("%04d-%02d-%02d", t.Year(), int(t.Month()), t.Day())
}

// normalizeNumericDate handles "a/b/c" or "a-b-c" with three numeric parts.
// Slash- and dash-delimited input share one disambiguation rule.
func normalizeNumericDate(s, sep string) (string, bool) {
	parts := strings.Split(s, sep)
	if len(parts) != 3 {
		return "", false
	}
	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return "", false
		}
		nums[i] = n
	}

	var day, month, year int
	switch {
	case nums[0] > 31:
		year, month, day = nums[0], nums[1], nums[2]
	case nums[0] > 12:
		day, month, year = nums[0], nums[1], nums[2]
	case nums[1] > 12:
		month, day, year = nums[0], nums[1], nums[2]
	default:
		// Ambiguous; the manual entry tools are day-first.
		day, month, year = nums[0], nums[1], nums[2]
	}
	if year < 100 {
		year += 2000
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return "", false
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day), true
}

// IsCanonicalDate reports whether s is exactly "YYYY-MM-DD" with the
// month and day in calendar range. Rows whose normalized date is not
// canonical have no key and are excluded from matching while remaining
// visible in output.
func IsCanonicalDate(s string) bool {
	if len(s) != 10 || s[4] != '-' || s[7] != '-' {
		return false
	}
	for i, c := range s {
		if i == 4 || i == 7 {
			continue
		}
		if c < '0' || c > '9' {
			return false
		}
	}
	month := int(s[5]-'0')*10 + int(s[6]-'0')
	day := int(s[8]-'0')*10 + int(s[9]-'0')
	return month >= 1 && month <= 12 && day >= 1 && day <= 31
}
