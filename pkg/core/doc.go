// Package core provides the prime-fingerprint encoding and filtering engine
// for primekit.
//
// Each recognized (attribute, value) pair carries a distinct prime, and an
// item's fingerprint is the product of the primes of all its attribute
// values. A filter query is itself such a product, so membership reduces to
// one integer divisibility test per record instead of per-attribute
// comparison loops.
//
// # Key Components
//
//   - Registry: the attribute/value -> prime lookup table, with a global
//     prime-uniqueness invariant backing the unique-factorization guarantee.
//   - Encoder: folds one item's attribute map into a uint64 fingerprint,
//     with an explicit overflow policy.
//   - Store: the ordered encoded inventory, replaced wholesale on each load.
//   - Kit: the host-facing entry point wiring registries, encoding, and
//     divisibility filtering together, including multi-tier queries.
//
// The engine is single-threaded by contract: the host serializes loads
// against queries, and the engine takes no locks of its own.
//
// # Observability
//
// Load warnings and progress are reported through the pluggable Logger
// interface via Config.Logger; logging is off by default.
package core
