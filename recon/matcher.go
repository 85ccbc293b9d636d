/*
matcher.go - Tiered matching of transactions to report rows

PURPOSE:
  For one report row, find the transactions attributable to it, consulting
  and updating the pass's ClaimSet so no transaction is handed out twice.
  Three tiers, strictly in order, first non-empty tier wins:

  Tier 1 (exact):   transactions bucketed under the row's four-part key.
  Tier 2 (relaxed): transactions bucketed under (staff, date, "", ""),
                    further restricted to records whose own product or
                    market is empty. The restriction keeps a differently
                    labelled product from sneaking in through an
                    empty-keyed bucket.
  Tier 3 (coarse):  all transactions sharing the row's (staff, date) pair,
                    minus everything already claimed in this pass. The
                    ClaimSet at this point is exactly the union of earlier
                    rows' tier-1/2/3 takes, so subtracting it removes
                    whatever competing rows on the same coarse key already
                    received. When a row's product/market never appears in
                    the transaction data (typos, entry drift) but the
                    staff/day clearly traded, this attributes the leftover
                    rather than reporting zero.

ORDERING:
  Rows must be fed in a single, fixed, caller-chosen order. When two rows
  share a coarse key and the pool cannot satisfy both, the earlier row
  wins the Tier-3 leftover. That is the documented contract, not an
  accident; see the order-sensitivity tests.

SEE ALSO:
  - claim.go:  ClaimSet semantics
  - engine.go: Per-family orchestration
*/
package recon

// Matcher runs the tiered algorithm for one metric family. It owns the
// family's index and ClaimSet for the duration of a pass and is not safe
// for concurrent use.
type Matcher struct {
	index  *TransactionIndex
	claims *ClaimSet
}

// NewMatcher creates a matcher over one family's pre-filtered, indexed
// pool with a fresh ClaimSet.
func NewMatcher(index *TransactionIndex) *Matcher {
	return &Matcher{index: index, claims: NewClaimSet()}
}

// Claims exposes the pass's claim state, mainly for tests and invariant
// checks.
func (m *Matcher) Claims() *ClaimSet {
	return m.claims
}

// Match returns the transactions attributed to this entry and claims them.
// Entries whose date does not normalize to a canonical day have no key and
// match nothing.
func (m *Matcher) Match(entry ReportEntry) []TransactionRecord {
	if !IsCanonicalDate(NormalizeDate(entry.Date)) {
		return nil
	}

	if got := m.take(m.index.ByKey[entry.Key()], nil); len(got) > 0 {
		return got
	}

	relaxedKey := MatchKey(entry.StaffName, entry.Date, "", "")
	relaxed := m.take(m.index.ByKey[relaxedKey], func(t TransactionRecord) bool {
		return NormalizeText(t.Product) == "" || NormalizeText(t.Market) == ""
	})
	if len(relaxed) > 0 {
		return relaxed
	}

	return m.take(m.index.ByCoarse[entry.CoarseKey()], nil)
}

// take filters a bucket down to unclaimed records passing keep (nil keep
// accepts all), then claims and returns them.
func (m *Matcher) take(bucket []TransactionRecord, keep func(TransactionRecord) bool) []TransactionRecord {
	var out []TransactionRecord
	for _, rec := range bucket {
		if m.claims.Claimed(rec.ID) {
			continue
		}
		if keep != nil && !keep(rec) {
			continue
		}
		out = append(out, rec)
	}
	for _, rec := range out {
		m.claims.Claim(rec.ID)
	}
	return out
}

// =============================================================================
// SUPPORT MATCHER - Single tier, five-part key, no fallback
// =============================================================================

// SupportMatcher attributes mess/response rows to report rows on the exact
// five-part key only. Same exactly-once claiming, no fallback tiers and no
// cross-row leftovers.
type SupportMatcher struct {
	index  *SupportIndex
	claims *ClaimSet
}

// NewSupportMatcher creates a single-tier matcher with a fresh ClaimSet.
func NewSupportMatcher(index *SupportIndex) *SupportMatcher {
	return &SupportMatcher{index: index, claims: NewClaimSet()}
}

// Match returns the unclaimed support rows under the entry's five-part key
// and claims them.
func (m *SupportMatcher) Match(entry ReportEntry) []SupportEntry {
	if !IsCanonicalDate(NormalizeDate(entry.Date)) {
		return nil
	}
	var out []SupportEntry
	for _, e := range m.index.ByShiftKey[entry.ShiftKey()] {
		if m.claims.Claimed(e.ID) {
			continue
		}
		out = append(out, e)
		m.claims.Claim(e.ID)
	}
	return out
}
