package core

import (
	"errors"
	"math"
	"testing"
)

func testRegistry(t *testing.T) *Registry {
	t.Helper()
	reg := NewRegistry()
	err := reg.ReplaceAll(map[string]map[string]uint64{
		"color": {"red": 2, "blue": 3, "green": 5},
		"size":  {"S": 7, "M": 11, "L": 13},
	})
	if err != nil {
		t.Fatalf("ReplaceAll() error = %v", err)
	}
	return reg
}

func TestEncode(t *testing.T) {
	tests := []struct {
		name     string
		attrs    map[string][]string
		excluded []string
		want     uint64
	}{
		{
			name:  "empty attributes encode to the identity",
			attrs: map[string][]string{},
			want:  1,
		},
		{
			name:  "nil attributes encode to the identity",
			attrs: nil,
			want:  1,
		},
		{
			name:  "single value",
			attrs: map[string][]string{"color": {"red"}},
			want:  2,
		},
		{
			name:  "multiple attributes",
			attrs: map[string][]string{"color": {"red"}, "size": {"M"}},
			want:  22, // 2 * 11
		},
		{
			name:  "multi-valued attribute",
			attrs: map[string][]string{"color": {"blue"}, "size": {"S", "M"}},
			want:  231, // 3 * 7 * 11
		},
		{
			name:  "unknown value contributes nothing",
			attrs: map[string][]string{"color": {"red", "chartreuse"}},
			want:  2,
		},
		{
			name:  "unknown attribute contributes nothing",
			attrs: map[string][]string{"color": {"red"}, "flavor": {"sour"}},
			want:  2,
		},
		{
			name:     "excluded attribute contributes nothing even when registered",
			attrs:    map[string][]string{"color": {"red"}, "size": {"M"}},
			excluded: []string{"size"},
			want:     2,
		},
		{
			name:     "everything excluded",
			attrs:    map[string][]string{"color": {"red"}},
			excluded: []string{"color"},
			want:     1,
		},
	}

	reg := testRegistry(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc := NewEncoder(OverflowReject, tt.excluded...)
			got, err := enc.Encode(tt.attrs, reg)
			if err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Encode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestEncodeCommutes(t *testing.T) {
	reg := testRegistry(t)
	enc := NewEncoder(OverflowReject)

	a, err := enc.Encode(map[string][]string{"color": {"red", "blue"}, "size": {"S", "L"}}, reg)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	b, err := enc.Encode(map[string][]string{"size": {"L", "S"}, "color": {"blue", "red"}}, reg)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if a != b {
		t.Errorf("reordered attributes encode differently: %d vs %d", a, b)
	}
}

func TestEncodeDeterministic(t *testing.T) {
	reg := testRegistry(t)
	enc := NewEncoder(OverflowReject)
	attrs := map[string][]string{"color": {"red", "green"}, "size": {"M"}}

	first, err := enc.Encode(attrs, reg)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	for i := 0; i < 50; i++ {
		got, err := enc.Encode(attrs, reg)
		if err != nil {
			t.Fatalf("Encode() error = %v", err)
		}
		if got != first {
			t.Fatalf("Encode() run %d = %d, want %d", i, got, first)
		}
	}
}

func TestEncodeRestrict(t *testing.T) {
	reg := testRegistry(t)
	enc := NewEncoder(OverflowReject).Restrict("color")

	got, err := enc.Encode(map[string][]string{"color": {"green"}, "size": {"L"}}, reg)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if got != 5 {
		t.Errorf("Encode() = %d, want 5 (size outside the tier)", got)
	}
}

func TestEncodeOverflow(t *testing.T) {
	// Two primes whose product exceeds uint64.
	reg := NewRegistry()
	err := reg.ReplaceAll(map[string]map[string]uint64{
		"huge": {
			"a": 18446744073709551557, // largest uint64 prime
			"b": 13,
		},
	})
	if err != nil {
		t.Fatalf("ReplaceAll() error = %v", err)
	}
	attrs := map[string][]string{"huge": {"a", "b"}}

	t.Run("reject", func(t *testing.T) {
		enc := NewEncoder(OverflowReject)
		_, err := enc.Encode(attrs, reg)
		if !errors.Is(err, ErrFingerprintOverflow) {
			t.Errorf("Encode() error = %v, want ErrFingerprintOverflow", err)
		}
	})

	t.Run("saturate", func(t *testing.T) {
		enc := NewEncoder(OverflowSaturate)
		got, err := enc.Encode(attrs, reg)
		if err != nil {
			t.Fatalf("Encode() error = %v", err)
		}
		if got != math.MaxUint64 {
			t.Errorf("Encode() = %d, want MaxUint64", got)
		}
	})

	t.Run("no overflow below the limit", func(t *testing.T) {
		enc := NewEncoder(OverflowReject)
		got, err := enc.Encode(map[string][]string{"huge": {"a"}}, reg)
		if err != nil {
			t.Fatalf("Encode() error = %v", err)
		}
		if got != 18446744073709551557 {
			t.Errorf("Encode() = %d, want the single prime", got)
		}
	})
}
