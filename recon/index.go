/*
index.go - Key-bucketed lookup structures over the transaction pool

PURPOSE:
  One family pass does O(rows × tiers) lookups against its pool, so the
  pool is bucketed once up front: by full four-part key for Tier 1/2 and
  by coarse (staff, date) key for Tier 3. Buckets preserve pool order,
  which keeps matching deterministic for a fixed input order.
*/
package recon

// TransactionIndex buckets one family's pre-filtered pool by business key.
type TransactionIndex struct {
	ByKey    map[string][]TransactionRecord
	ByCoarse map[string][]TransactionRecord
	Stats    IndexStats
}

// IndexStats carries aggregate counts for logging and sanity checks.
type IndexStats struct {
	TotalRecords int
	SkippedDates int // records whose date failed normalization
	UniqueKeys   int
	UniqueCoarse int
}

// BuildTransactionIndex buckets records by their own four-part and coarse
// keys. Records whose date does not normalize to a canonical day have no
// key and are left out of both maps.
func BuildTransactionIndex(records []TransactionRecord) *TransactionIndex {
	idx := &TransactionIndex{
		ByKey:    make(map[string][]TransactionRecord, len(records)),
		ByCoarse: make(map[string][]TransactionRecord, len(records)),
	}
	for _, rec := range records {
		idx.Stats.TotalRecords++
		if !IsCanonicalDate(NormalizeDate(rec.Date)) {
			idx.Stats.SkippedDates++
			continue
		}
		idx.ByKey[rec.Key()] = append(idx.ByKey[rec.Key()], rec)
		idx.ByCoarse[rec.CoarseKey()] = append(idx.ByCoarse[rec.CoarseKey()], rec)
	}
	idx.Stats.UniqueKeys = len(idx.ByKey)
	idx.Stats.UniqueCoarse = len(idx.ByCoarse)
	return idx
}

// SupportIndex buckets the mess/response pool by five-part key.
type SupportIndex struct {
	ByShiftKey map[string][]SupportEntry
}

// BuildSupportIndex buckets support rows by their own five-part key,
// skipping rows with non-canonical dates.
func BuildSupportIndex(entries []SupportEntry) *SupportIndex {
	idx := &SupportIndex{ByShiftKey: make(map[string][]SupportEntry, len(entries))}
	for _, e := range entries {
		if !IsCanonicalDate(NormalizeDate(e.Date)) {
			continue
		}
		k := e.ShiftKey()
		idx.ByShiftKey[k] = append(idx.ByShiftKey[k], e)
	}
	return idx
}
