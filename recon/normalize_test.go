package recon

import (
	"strings"
	"testing"
	"time"
)

// =============================================================================
// TEXT NORMALIZATION
// =============================================================================

func TestNormalizeText(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"   ", ""},
		{"Nguyen An", "nguyen an"},
		{"  Nguyen   An  ", "nguyen an"},
		{"GLOW-SERUM", "glow-serum"},
		{"a\t b\n c", "a b c"},
	}
	for _, c := range cases {
		if got := NormalizeText(c.in); got != c.want {
			t.Errorf("NormalizeText(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizeText_Idempotent(t *testing.T) {
	inputs := []string{"", "  Mixed  CASE  ", "already normal", "x", " \t "}
	for _, in := range inputs {
		once := NormalizeText(in)
		if twice := NormalizeText(once); twice != once {
			t.Errorf("NormalizeText not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

// =============================================================================
// DATE NORMALIZATION
// =============================================================================

func TestNormalizeDate_Formats(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2026-01-05", "2026-01-05"},
		{" 2026-01-05 ", "2026-01-05"},
		{"2026-01-05T14:30:00Z", "2026-01-05"},
		{"2026-01-05T23:59:59+07:00", "2026-01-05"},
		{"2026-01-05 14:30:00", "2026-01-05"},
		{"2026-01-05 14:30", "2026-01-05"},
		// Slash-delimited: first part > 12 means day-first
		{"15/01/2026", "2026-01-15"},
		// second part > 12 means month-first
		{"01/15/2026", "2026-01-15"},
		// ambiguous defaults to day/month/year
		{"05/01/2026", "2026-01-05"},
		{"5/1/2026", "2026-01-05"},
		// two-digit year
		{"5/1/26", "2026-01-05"},
		// dash-delimited input follows the same rules as slash-delimited
		{"15-01-2026", "2026-01-15"},
		{"01-15-2026", "2026-01-15"},
		{"05-01-2026", "2026-01-05"},
		{"5-1-26", "2026-01-05"},
		{"2026-1-5", "2026-01-05"},
	}
	for _, c := range cases {
		if got := NormalizeDate(c.in); got != c.want {
			t.Errorf("NormalizeDate(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizeDate_UnparseablePassesThroughTrimmed(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"not a date", "not a date"},
		{"  soon  ", "soon"},
		{"99/99/2026", "99/99/2026"},
	}
	for _, c := range cases {
		got := NormalizeDate(c.in)
		if got != c.want {
			t.Errorf("NormalizeDate(%q) = %q, want %q", c.in, got, c.want)
		}
		if IsCanonicalDate(got) && got != "" {
			t.Errorf("NormalizeDate(%q) unexpectedly canonical: %q", c.in, got)
		}
	}
}

func TestNormalizeDate_DashAndSlashAgree(t *testing.T) {
	// GIVEN: the same numeric date with either delimiter
	// WHEN:  normalized
	// THEN:  both resolve to the same canonical day
	pairs := []string{"15?01?2026", "01?15?2026", "05?01?2026", "5?1?26"}
	for _, p := range pairs {
		slash := NormalizeDate(strings.ReplaceAll(p, "?", "/"))
		dash := NormalizeDate(strings.ReplaceAll(p, "?", "-"))
		if slash != dash {
			t.Errorf("delimiters disagree for %q: slash %q, dash %q", p, slash, dash)
		}
	}
}

func TestNormalizeDate_Idempotent(t *testing.T) {
	inputs := []string{"2026-01-05", "5/1/2026", "2026-01-05T14:30:00Z", "garbage", ""}
	for _, in := range inputs {
		once := NormalizeDate(in)
		if twice := NormalizeDate(once); twice != once {
			t.Errorf("NormalizeDate not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestNormalizeDay_UsesLocalCalendarFields(t *testing.T) {
	// GIVEN: a time shortly after local midnight in a zone east of UTC
	// WHEN:  normalized to a calendar day
	// THEN:  the local day is preserved; a UTC conversion would shift it back
	hanoi := time.FixedZone("ICT", 7*60*60)
	early := time.Date(2026, time.January, 5, 0, 30, 0, 0, hanoi)

	if got := NormalizeDay(early); got != "2026-01-05" {
		t.Errorf("NormalizeDay shifted the local day: got %q, want 2026-01-05", got)
	}
	if utcDay := NormalizeDay(early.UTC()); utcDay == "2026-01-05" {
		t.Fatalf("test fixture broken: UTC conversion should land on a different day, got %q", utcDay)
	}
}

func TestIsCanonicalDate(t *testing.T) {
	valid := []string{"2026-01-05", "1999-12-31", "0001-01-01", "2026-12-31"}
	invalid := []string{
		"", "2026-1-5", "2026/01/05", "2026-01-05T00:00:00", "yyyy-mm-dd", "2026-01-0x",
		// right shape, impossible calendar fields
		"2026-99-99", "2026-00-10", "2026-13-01", "2026-01-00", "2026-01-32",
	}
	for _, s := range valid {
		if !IsCanonicalDate(s) {
			t.Errorf("IsCanonicalDate(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsCanonicalDate(s) {
			t.Errorf("IsCanonicalDate(%q) = true, want false", s)
		}
	}
}

func TestWindowValid_RejectsOutOfRangeBounds(t *testing.T) {
	if (Window{Start: "2026-99-99", End: "2026-99-99"}).Valid() {
		t.Error("window with impossible calendar bounds should not be valid")
	}
	if !(Window{Start: "2026-01-01", End: "2026-01-31"}).Valid() {
		t.Error("well-formed window should be valid")
	}
}
