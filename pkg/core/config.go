package core

import "fmt"

// OverflowPolicy controls what happens when an item's fingerprint would
// exceed the uint64 range during encoding.
type OverflowPolicy int

const (
	// OverflowReject drops the item from the load. This is the default and
	// the only policy that keeps the divisibility check correct: a capped
	// fingerprint produces false negatives that look like ordinary
	// non-matches.
	OverflowReject OverflowPolicy = iota

	// OverflowSaturate clamps the fingerprint at MaxUint64 instead of
	// dropping the item. Legacy behavior, opt-in only: saturated
	// fingerprints no longer factor into their contributing primes, so such
	// records match almost nothing.
	OverflowSaturate
)

// String returns the string representation of the policy
func (p OverflowPolicy) String() string {
	switch p {
	case OverflowReject:
		return "reject"
	case OverflowSaturate:
		return "saturate"
	default:
		return fmt.Sprintf("OverflowPolicy(%d)", int(p))
	}
}

// TierConfig declares one independent fingerprint space over a subset of
// attribute keys. Tiers are combined by logical AND at filter time.
type TierConfig struct {
	Name       string   `json:"name"`
	Attributes []string `json:"attributes"`
}

// Config represents kit configuration
type Config struct {
	// Excluded lists attribute keys that never contribute factors,
	// regardless of registry contents (e.g. an identifying attribute such
	// as "brand"). A policy constant, not derived from the registry.
	Excluded []string `json:"excluded,omitempty"`

	// Tiers declares independent fingerprint spaces. Empty means a single
	// tier spanning every non-excluded attribute.
	Tiers []TierConfig `json:"tiers,omitempty"`

	// Overflow selects the encoding overflow policy
	Overflow OverflowPolicy `json:"overflow"`

	// Logger receives load warnings and debug output. Nil disables logging.
	Logger Logger `json:"-"`
}

// DefaultConfig returns a default configuration: single tier, no excluded
// attributes, reject-on-overflow, no logging.
func DefaultConfig() Config {
	return Config{
		Overflow: OverflowReject,
	}
}
