package core

import "fmt"

// Filter answers a divisibility query against the store: a record matches
// iff every tier's fingerprint is divisible by that tier's query, i.e. the
// query's prime factorization (with multiplicity) is fully contained in the
// fingerprint's. Results keep the store's insertion order; there is no
// ranking.
//
// A query of 1 is that tier's wildcard. A query of 0 is rejected with
// ErrInvalidQuery rather than coerced to the wildcard, since silent
// coercion hides caller bugs. The number of queries must equal the store's
// tier count.
func (s *Store) Filter(queries ...uint64) ([]Record, error) {
	if len(queries) != s.tiers {
		return nil, wrapError("filter",
			fmt.Errorf("got %d queries for %d tiers: %w", len(queries), s.tiers, ErrTierMismatch))
	}
	wildcard := true
	for i, q := range queries {
		if q == 0 {
			return nil, wrapError("filter", fmt.Errorf("tier %d: %w", i, ErrInvalidQuery))
		}
		if q != 1 {
			wildcard = false
		}
	}

	// All-wildcard fast path: no modulo needed, x % 1 == 0 always.
	if wildcard {
		return s.Records(), nil
	}

	matches := make([]Record, 0)
	for _, rec := range s.records {
		if rec.matches(queries) {
			matches = append(matches, rec.clone())
		}
	}
	return matches, nil
}

func (r Record) matches(queries []uint64) bool {
	if len(r.Fingerprints) < len(queries) {
		return false
	}
	for i, q := range queries {
		if q == 1 {
			continue
		}
		if r.Fingerprints[i]%q != 0 {
			return false
		}
	}
	return true
}
