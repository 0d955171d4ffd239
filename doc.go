// Package primekit provides prime-fingerprint faceted filtering for catalogs.
//
// Each recognized (attribute, value) pair is assigned a distinct prime, and an
// item's fingerprint is the product of the primes of all its attribute values.
// A filter query is such a product too, so membership reduces to one integer
// divisibility test per record: the query's factorization is contained in the
// record's fingerprint iff fingerprint % query == 0.
//
// # Quick Start
//
//	import (
//	    "context"
//	    "github.com/qyire/primekit/pkg/primekit"
//	)
//
//	func main() {
//	    // 1. Open a catalog from a primes file and an inventory
//	    config := primekit.DefaultConfig("primes.json", "inventory.json")
//	    catalog, _ := primekit.Open(context.Background(), config)
//	    defer catalog.Close()
//
//	    // 2. Filter by attribute selections
//	    records, _ := catalog.Select(map[string][]string{
//	        "color": {"Red"},
//	        "size":  {"M"},
//	    })
//	    _ = records
//	}
//
// # Core Engine
//
// For direct control over the registry, encoding and tiering, use pkg/core:
//
//	import "github.com/qyire/primekit/pkg/core"
//
//	kit, _ := core.NewWithConfig(core.Config{Excluded: []string{"brand"}})
//	_ = kit.LoadPrimes(map[string]map[string]uint64{
//	    "color": {"red": 2, "blue": 3, "green": 5},
//	})
//
// # Multi-Tier Queries
//
// Independent fingerprint spaces (for example a master tier over color and a
// local tier over size and material) are declared with core.TierConfig and
// queried with one value per tier, combined by logical AND. A tier query of 1
// is that tier's wildcard; 0 is always rejected.
//
// # Input Formats
//
// pkg/loader reads the primes table from JSON or YAML and the inventory from
// a JSON array or a SQLite catalog database. The core itself owns no wire or
// file format.
//
// # Observability
//
// Loads report skipped and dropped items through the pluggable Logger
// interface via core.Config.Logger; logging is off by default.
//
// For command-line usage, see cmd/primekit.
package primekit
