package core

import "testing"

func TestStoreReplace(t *testing.T) {
	s := NewStore(1)
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}

	s.Replace([]Record{
		{ID: "A", Fingerprints: []uint64{22}},
		{ID: "B", Fingerprints: []uint64{231}},
	})
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}

	// A reload fully replaces the prior sequence, never merges.
	s.Replace([]Record{{ID: "C", Fingerprints: []uint64{5}}})
	recs := s.Records()
	if len(recs) != 1 || recs[0].ID != "C" {
		t.Errorf("Records() = %v, want just C", recs)
	}
}

func TestStoreRecordsOrder(t *testing.T) {
	s := NewStore(1)
	want := []string{"z", "a", "m", "a"} // insertion order, duplicates kept
	records := make([]Record, len(want))
	for i, id := range want {
		records[i] = Record{ID: id, Fingerprints: []uint64{uint64(2)}}
	}
	s.Replace(records)

	got := s.Records()
	if len(got) != len(want) {
		t.Fatalf("Records() returned %d records, want %d", len(got), len(want))
	}
	for i, rec := range got {
		if rec.ID != want[i] {
			t.Errorf("Records()[%d].ID = %q, want %q", i, rec.ID, want[i])
		}
	}
}

func TestStoreRecordsAreCopies(t *testing.T) {
	s := NewStore(1)
	s.Replace([]Record{{ID: "A", Fingerprints: []uint64{22}}})

	got := s.Records()
	got[0].Fingerprints[0] = 999

	again := s.Records()
	if again[0].Fingerprints[0] != 22 {
		t.Errorf("mutating a returned record changed internal storage: %d", again[0].Fingerprints[0])
	}
}

func TestRecordFingerprint(t *testing.T) {
	if got := (Record{ID: "x"}).Fingerprint(); got != 1 {
		t.Errorf("Fingerprint() with no tiers = %d, want identity 1", got)
	}
	if got := (Record{ID: "x", Fingerprints: []uint64{42, 7}}).Fingerprint(); got != 42 {
		t.Errorf("Fingerprint() = %d, want first tier 42", got)
	}
}
