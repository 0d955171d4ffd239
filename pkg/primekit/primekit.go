// Package primekit is the high-level catalog API: it wires the core
// fingerprint engine to the file loaders so a host can open a primes file
// plus an inventory and start filtering in a few lines.
package primekit

import (
	"context"
	"fmt"

	"github.com/qyire/primekit/pkg/core"
	"github.com/qyire/primekit/pkg/loader"
)

// DefaultExcluded is the stock excluded-attribute policy: the brand key
// identifies a catalog segment and is never filterable.
var DefaultExcluded = []string{"brand"}

// Config represents catalog configuration
type Config struct {
	PrimesPath    string              // primes file (.json, .yaml, .yml)
	InventoryPath string              // inventory file (.json) or catalog database (.db, .sqlite)
	Excluded      []string            // attribute keys that never contribute factors
	Tiers         []core.TierConfig   // independent fingerprint spaces; empty = single tier
	Overflow      core.OverflowPolicy // encoding overflow policy
	Logger        core.Logger         // nil disables logging
}

// DefaultConfig returns the default configuration for the given primes and
// inventory paths: single tier, brand excluded, reject-on-overflow.
func DefaultConfig(primesPath, inventoryPath string) Config {
	return Config{
		PrimesPath:    primesPath,
		InventoryPath: inventoryPath,
		Excluded:      DefaultExcluded,
		Overflow:      core.OverflowReject,
	}
}

// Catalog is an opened, filterable inventory
type Catalog struct {
	config Config
	kit    *core.Kit
	stats  core.LoadStats
}

// Open creates a catalog from the configuration. When PrimesPath is set the
// registry is loaded from it; when InventoryPath is also set the inventory
// is loaded and encoded. Either path may be empty if the host prefers to
// push data through LoadPrimes and LoadInventory itself.
func Open(ctx context.Context, config Config) (*Catalog, error) {
	kit, err := core.NewWithConfig(core.Config{
		Excluded: config.Excluded,
		Tiers:    config.Tiers,
		Overflow: config.Overflow,
		Logger:   config.Logger,
	})
	if err != nil {
		return nil, err
	}

	c := &Catalog{config: config, kit: kit}
	if config.PrimesPath != "" {
		if err := c.ReloadPrimes(); err != nil {
			_ = kit.Close()
			return nil, err
		}
		if config.InventoryPath != "" {
			if _, err := c.ReloadInventory(ctx); err != nil {
				_ = kit.Close()
				return nil, err
			}
		}
	} else if config.InventoryPath != "" {
		return nil, fmt.Errorf("inventory path set without a primes path")
	}
	return c, nil
}

// ReloadPrimes re-reads the primes file and bulk-replaces the registry.
// On failure the previous registry is retained.
func (c *Catalog) ReloadPrimes() error {
	entries, err := loader.Primes(c.config.PrimesPath)
	if err != nil {
		return err
	}
	return c.kit.LoadPrimes(entries)
}

// ReloadInventory re-reads the inventory source and re-encodes every item
// against the current registry.
func (c *Catalog) ReloadInventory(ctx context.Context) (core.LoadStats, error) {
	items, err := loader.Inventory(ctx, c.config.InventoryPath)
	if err != nil {
		return core.LoadStats{}, err
	}
	return c.LoadInventory(items)
}

// LoadPrimes bulk-replaces the registry from an in-memory entry set
func (c *Catalog) LoadPrimes(entries map[string]map[string]uint64) error {
	return c.kit.LoadPrimes(entries)
}

// LoadInventory bulk-replaces the inventory from in-memory items
func (c *Catalog) LoadInventory(items []core.Item) (core.LoadStats, error) {
	stats, err := c.kit.LoadInventory(items)
	if err == nil {
		c.stats = stats
	}
	return stats, err
}

// Filter runs raw fingerprint queries, one per tier. A query of 1 is that
// tier's wildcard; 0 is rejected.
func (c *Catalog) Filter(queries ...uint64) ([]core.Record, error) {
	return c.kit.FilterTiers(queries...)
}

// Select filters by attribute selections: the selections are encoded into
// per-tier queries with the same prime tables the inventory was encoded
// with, then matched by divisibility. A selection the registry does not
// know is an error, not an empty result.
func (c *Catalog) Select(selections map[string][]string) ([]core.Record, error) {
	queries, err := c.kit.EncodeQuery(selections)
	if err != nil {
		return nil, err
	}
	return c.kit.FilterTiers(queries...)
}

// Kit returns the underlying core engine
func (c *Catalog) Kit() *core.Kit {
	return c.kit
}

// Len returns the number of records currently loaded
func (c *Catalog) Len() int {
	return c.kit.Len()
}

// Stats returns the statistics of the most recent successful inventory load
func (c *Catalog) Stats() core.LoadStats {
	return c.stats
}

// Close releases the catalog
func (c *Catalog) Close() error {
	return c.kit.Close()
}
