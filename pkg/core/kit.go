package core

import (
	"fmt"
	"math"
)

// tier is one independent fingerprint space: its own registry slice and an
// encoder restricted to its attribute keys.
type tier struct {
	name     string
	keys     map[string]struct{} // nil means every non-excluded attribute
	registry *Registry
	encoder  *Encoder
}

func (t *tier) contains(attr string) bool {
	if t.keys == nil {
		return true
	}
	_, ok := t.keys[attr]
	return ok
}

// Kit is the main entry point: it owns the prime registries and the encoded
// inventory, and answers divisibility filter queries.
//
// A Kit is single-threaded by contract. It holds no locks; the host must
// not call LoadPrimes or LoadInventory concurrently with any other method.
// Every operation is a bounded synchronous computation over the current
// inventory.
type Kit struct {
	config   Config
	logger   Logger
	excluded map[string]struct{}
	tiers    []tier
	store    *Store
	closed   bool
}

// New creates a kit with the default configuration: a single fingerprint
// tier over every attribute, reject-on-overflow.
func New() *Kit {
	k, err := NewWithConfig(DefaultConfig())
	if err != nil {
		// DefaultConfig is always valid
		panic(err)
	}
	return k
}

// NewWithConfig creates a kit with custom configuration
func NewWithConfig(config Config) (*Kit, error) {
	logger := config.Logger
	if logger == nil {
		logger = NopLogger()
	}

	excluded := make(map[string]struct{}, len(config.Excluded))
	for _, attr := range config.Excluded {
		excluded[attr] = struct{}{}
	}

	base := NewEncoder(config.Overflow, config.Excluded...)

	var tiers []tier
	if len(config.Tiers) == 0 {
		tiers = []tier{{name: "default", registry: NewRegistry(), encoder: base}}
	} else {
		claimed := make(map[string]string) // attribute -> owning tier
		names := make(map[string]struct{})
		for _, tc := range config.Tiers {
			if tc.Name == "" {
				return nil, wrapError("init", fmt.Errorf("tier name cannot be empty: %w", ErrInvalidConfig))
			}
			if _, ok := names[tc.Name]; ok {
				return nil, wrapError("init", fmt.Errorf("duplicate tier %q: %w", tc.Name, ErrInvalidConfig))
			}
			names[tc.Name] = struct{}{}
			if len(tc.Attributes) == 0 {
				return nil, wrapError("init", fmt.Errorf("tier %q has no attributes: %w", tc.Name, ErrInvalidConfig))
			}
			keys := make(map[string]struct{}, len(tc.Attributes))
			for _, attr := range tc.Attributes {
				if owner, ok := claimed[attr]; ok {
					return nil, wrapError("init",
						fmt.Errorf("attribute %q in tiers %q and %q: %w", attr, owner, tc.Name, ErrInvalidConfig))
				}
				claimed[attr] = tc.Name
				keys[attr] = struct{}{}
			}
			tiers = append(tiers, tier{
				name:     tc.Name,
				keys:     keys,
				registry: NewRegistry(),
				encoder:  base.Restrict(tc.Attributes...),
			})
		}
	}

	return &Kit{
		config:   config,
		logger:   logger,
		excluded: excluded,
		tiers:    tiers,
		store:    NewStore(len(tiers)),
	}, nil
}

// TierInfo describes one tier for introspection
type TierInfo struct {
	Name       string   `json:"name"`
	Registered int      `json:"registered"` // (attribute, value) pairs in its registry
	Attributes []string `json:"attributes"` // registered attribute keys, sorted
}

// Tiers returns one TierInfo per tier, in tier order
func (k *Kit) Tiers() []TierInfo {
	infos := make([]TierInfo, len(k.tiers))
	for i, t := range k.tiers {
		infos[i] = TierInfo{
			Name:       t.name,
			Registered: t.registry.Len(),
			Attributes: t.registry.Attributes(),
		}
	}
	return infos
}

// Len returns the number of records currently loaded
func (k *Kit) Len() int {
	return k.store.Len()
}

// LoadPrimes bulk-replaces every tier's registry from a single
// attribute -> value -> prime entry set. The whole set is validated first
// (prime uniqueness is global across all tiers); on any violation the call
// fails with every offense reported and the prior registries are retained.
// Entries whose attribute belongs to no tier are dropped.
func (k *Kit) LoadPrimes(entries map[string]map[string]uint64) error {
	if k.closed {
		return wrapError("load_primes", ErrKitClosed)
	}

	// Global validation pass: a scratch registry collects every duplicate
	// and non-prime across the full entry set before any tier is touched.
	if err := NewRegistry().ReplaceAll(entries); err != nil {
		return wrapError("load_primes", err)
	}

	fresh := make([]*Registry, len(k.tiers))
	for i, t := range k.tiers {
		sub := make(map[string]map[string]uint64)
		for attr, values := range entries {
			if _, ok := k.excluded[attr]; ok {
				continue
			}
			if !t.contains(attr) {
				continue
			}
			sub[attr] = values
		}
		reg := NewRegistry()
		if err := reg.ReplaceAll(sub); err != nil {
			// Unreachable after global validation
			return wrapError("load_primes", err)
		}
		fresh[i] = reg
	}

	for i := range k.tiers {
		k.tiers[i].registry = fresh[i]
	}
	k.logger.Info("primes loaded", "entries", countEntries(entries), "tiers", len(k.tiers))
	return nil
}

func countEntries(entries map[string]map[string]uint64) int {
	n := 0
	for _, values := range entries {
		n += len(values)
	}
	return n
}

// LoadInventory bulk-replaces the inventory by re-encoding every item
// against the current registries. Malformed items (missing identifier) are
// skipped with a warning; under OverflowReject an item whose fingerprint
// overflows is dropped. Neither aborts the load. The store is swapped only
// after the new sequence is fully built, so the prior inventory stays
// visible until then.
func (k *Kit) LoadInventory(items []Item) (LoadStats, error) {
	if k.closed {
		return LoadStats{}, wrapError("load_inventory", ErrKitClosed)
	}

	stats := LoadStats{Total: len(items)}
	records := make([]Record, 0, len(items))
	for i, item := range items {
		if item.ID == "" {
			stats.Malformed++
			k.logger.Warn("skipping item", "index", i, "err",
				fmt.Errorf("missing id: %w", ErrMalformedItem))
			continue
		}

		fingerprints := make([]uint64, len(k.tiers))
		dropped := false
		for ti, t := range k.tiers {
			fp, err := t.encoder.Encode(item.Attributes, t.registry)
			if err != nil {
				k.logger.Warn("dropping item", "id", item.ID, "tier", t.name, "err", err)
				dropped = true
				break
			}
			fingerprints[ti] = fp
		}
		if dropped {
			stats.Overflowed++
			continue
		}
		records = append(records, Record{ID: item.ID, Fingerprints: fingerprints})
	}

	stats.Loaded = len(records)
	k.store.Replace(records)
	k.logger.Info("inventory loaded",
		"total", stats.Total, "loaded", stats.Loaded,
		"malformed", stats.Malformed, "overflowed", stats.Overflowed)
	return stats, nil
}

// Filter runs a single-tier divisibility query. For multi-tier kits use
// FilterTiers; calling Filter on one returns ErrTierMismatch.
func (k *Kit) Filter(query uint64) ([]Record, error) {
	return k.FilterTiers(query)
}

// FilterTiers runs one query per tier, combined by logical AND. A query of
// 1 is that tier's wildcard; 0 is rejected.
func (k *Kit) FilterTiers(queries ...uint64) ([]Record, error) {
	if k.closed {
		return nil, wrapError("filter", ErrKitClosed)
	}
	return k.store.Filter(queries...)
}

// EncodeQuery builds per-tier query values from attribute selections, the
// same way item fingerprints are built. Unlike item encoding, a selection
// the registry does not know is an error: silently dropping it would widen
// the query toward the wildcard and return records the caller never asked
// for.
func (k *Kit) EncodeQuery(selections map[string][]string) ([]uint64, error) {
	if k.closed {
		return nil, wrapError("encode_query", ErrKitClosed)
	}

	queries := make([]uint64, len(k.tiers))
	for i := range queries {
		queries[i] = 1
	}
	for _, attr := range sortedKeys(selections) {
		for _, value := range selections[attr] {
			matched := false
			for i, t := range k.tiers {
				if _, ok := k.excluded[attr]; ok {
					continue
				}
				if !t.contains(attr) {
					continue
				}
				prime, ok := t.registry.Lookup(attr, value)
				if !ok {
					continue
				}
				if queries[i] > math.MaxUint64/prime {
					return nil, wrapError("encode_query",
						fmt.Errorf("%s=%s (prime %d): %w", attr, value, prime, ErrFingerprintOverflow))
				}
				queries[i] *= prime
				matched = true
			}
			if !matched {
				return nil, wrapError("encode_query", fmt.Errorf("%s=%s: %w", attr, value, ErrUnknownValue))
			}
		}
	}
	return queries, nil
}

// Close releases the kit. Further calls return ErrKitClosed. Closing twice
// is harmless.
func (k *Kit) Close() error {
	if k.closed {
		return nil
	}
	k.closed = true
	k.tiers = nil
	k.store = NewStore(1)
	return nil
}
