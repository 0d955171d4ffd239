package core

import (
	"fmt"
	"math"
)

// Encoder turns one item's attribute map into a single fingerprint: the
// product of the primes of every recognized attribute value.
//
// The fingerprint starts at 1, the multiplicative identity, so an empty
// attribute map always encodes to 1. Attribute keys are visited in sorted
// order for reproducible behavior; the result itself does not depend on
// order since multiplication commutes.
type Encoder struct {
	keys     map[string]struct{} // tier restriction, nil means every attribute
	excluded map[string]struct{}
	policy   OverflowPolicy
}

// NewEncoder creates an encoder with the given overflow policy. Values under
// an excluded attribute key never contribute factors, even when the key
// exists in the registry.
func NewEncoder(policy OverflowPolicy, excluded ...string) *Encoder {
	e := &Encoder{policy: policy}
	if len(excluded) > 0 {
		e.excluded = make(map[string]struct{}, len(excluded))
		for _, attr := range excluded {
			e.excluded[attr] = struct{}{}
		}
	}
	return e
}

// Restrict returns a copy of the encoder that only considers the given
// attribute keys. Used to carve one tier's fingerprint space out of a
// shared attribute map.
func (e *Encoder) Restrict(keys ...string) *Encoder {
	restricted := &Encoder{policy: e.policy, excluded: e.excluded}
	restricted.keys = make(map[string]struct{}, len(keys))
	for _, attr := range keys {
		restricted.keys[attr] = struct{}{}
	}
	return restricted
}

// Encode computes the fingerprint for one attribute map against the
// registry. Unknown attributes and values are silently skipped; that is
// policy, not an error.
//
// When the product would exceed the uint64 range the behavior depends on
// the overflow policy: OverflowReject returns ErrFingerprintOverflow and
// the item should be dropped, OverflowSaturate clamps at MaxUint64.
func (e *Encoder) Encode(attrs map[string][]string, reg *Registry) (uint64, error) {
	fingerprint := uint64(1)
	for _, attr := range sortedKeys(attrs) {
		if e.skipped(attr) {
			continue
		}
		for _, value := range attrs[attr] {
			prime, ok := reg.Lookup(attr, value)
			if !ok {
				continue
			}
			if fingerprint > math.MaxUint64/prime {
				if e.policy == OverflowSaturate {
					return math.MaxUint64, nil
				}
				return 1, fmt.Errorf("%s=%s (prime %d): %w", attr, value, prime, ErrFingerprintOverflow)
			}
			fingerprint *= prime
		}
	}
	return fingerprint, nil
}

func (e *Encoder) skipped(attr string) bool {
	if _, ok := e.excluded[attr]; ok {
		return true
	}
	if e.keys != nil {
		if _, ok := e.keys[attr]; !ok {
			return true
		}
	}
	return false
}
