package core

// Item is one raw catalog entry as supplied by a loader: an opaque
// identifier plus a mapping from attribute key to its value strings.
// Identifiers are not deduplicated; if a load contains the same ID twice,
// both records appear in filter results.
type Item struct {
	ID         string              `json:"id"`
	Name       string              `json:"name,omitempty"`
	Attributes map[string][]string `json:"attributes"`
}

// Record is one encoded inventory entry: the item identifier and one
// fingerprint per tier. Single-tier kits produce exactly one fingerprint.
type Record struct {
	ID           string   `json:"id"`
	Fingerprints []uint64 `json:"fingerprints"`
}

// Fingerprint returns the first tier's fingerprint, the only one a
// single-tier kit has.
func (r Record) Fingerprint() uint64 {
	if len(r.Fingerprints) == 0 {
		return 1
	}
	return r.Fingerprints[0]
}

// clone returns a copy that shares no storage with the original
func (r Record) clone() Record {
	out := Record{ID: r.ID}
	out.Fingerprints = make([]uint64, len(r.Fingerprints))
	copy(out.Fingerprints, r.Fingerprints)
	return out
}

// LoadStats summarizes one inventory load
type LoadStats struct {
	Total      int `json:"total"`      // raw items presented to the load
	Loaded     int `json:"loaded"`     // records now in the store
	Malformed  int `json:"malformed"`  // skipped: structurally invalid
	Overflowed int `json:"overflowed"` // dropped: fingerprint overflow
}

// Store holds the encoded inventory as an ordered sequence of records,
// insertion order preserved. It is replaced in full on each load, never
// partially updated, and provides no internal locking: the host serializes
// loads against queries.
type Store struct {
	tiers   int
	records []Record
}

// NewStore creates an empty store for the given number of tiers
func NewStore(tiers int) *Store {
	if tiers < 1 {
		tiers = 1
	}
	return &Store{tiers: tiers}
}

// Tiers returns the number of fingerprint tiers
func (s *Store) Tiers() int {
	return s.tiers
}

// Len returns the number of records currently loaded
func (s *Store) Len() int {
	return len(s.records)
}

// Replace swaps the entire record sequence. The caller builds the new
// sequence completely before handing it over, so a failed load never leaves
// the store half-replaced.
func (s *Store) Replace(records []Record) {
	s.records = records
}

// Records returns a copy of every record in original input order
func (s *Store) Records() []Record {
	out := make([]Record, len(s.records))
	for i, rec := range s.records {
		out[i] = rec.clone()
	}
	return out
}
