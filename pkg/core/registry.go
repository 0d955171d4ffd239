package core

import (
	"errors"
	"fmt"
	"math/big"
	"sort"
)

// Registry holds the attribute/value to prime lookup table.
//
// Every prime is distinct across the entire registry, not just within one
// attribute. This is what makes a fingerprint's factorization uniquely
// identify the contributing (attribute, value) pairs.
//
// A Registry is built once and then only read; ReplaceAll swaps the whole
// table. It provides no internal locking.
type Registry struct {
	primes map[string]map[string]uint64
	owners map[uint64]entryKey // prime -> the pair that claimed it
}

type entryKey struct {
	attr  string
	value string
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		primes: make(map[string]map[string]uint64),
		owners: make(map[uint64]entryKey),
	}
}

// Register inserts one (attribute, value) -> prime mapping.
// The prime must be an actual prime number greater than 1 and must not be
// assigned to any other pair in the registry.
func (r *Registry) Register(attr, value string, prime uint64) error {
	if !isPrime(prime) {
		return fmt.Errorf("%s=%s: %d: %w", attr, value, prime, ErrInvalidPrime)
	}
	if _, ok := r.primes[attr][value]; ok {
		return fmt.Errorf("%s=%s is already registered: %w", attr, value, ErrDuplicatePrime)
	}
	if owner, ok := r.owners[prime]; ok {
		return fmt.Errorf("%s=%s: %d is already assigned to %s=%s: %w",
			attr, value, prime, owner.attr, owner.value, ErrDuplicatePrime)
	}

	values, ok := r.primes[attr]
	if !ok {
		values = make(map[string]uint64)
		r.primes[attr] = values
	}
	values[value] = prime
	r.owners[prime] = entryKey{attr: attr, value: value}
	return nil
}

// Lookup returns the prime for an (attribute, value) pair. An unknown
// attribute or value is not an error; it simply contributes no factor.
func (r *Registry) Lookup(attr, value string) (uint64, bool) {
	prime, ok := r.primes[attr][value]
	return prime, ok
}

// Has reports whether the registry knows the attribute at all
func (r *Registry) Has(attr string) bool {
	return len(r.primes[attr]) > 0
}

// Len returns the number of registered (attribute, value) pairs
func (r *Registry) Len() int {
	return len(r.owners)
}

// Attributes returns the registered attribute keys in sorted order
func (r *Registry) Attributes() []string {
	return sortedKeys(r.primes)
}

// Values returns the registered value strings for an attribute in sorted order
func (r *Registry) Values(attr string) []string {
	return sortedKeys(r.primes[attr])
}

// ReplaceAll atomically swaps the entire table for the given entries.
// The whole entry set is validated first, collecting every violation, and
// the previous table is retained untouched if any entry is rejected.
func (r *Registry) ReplaceAll(entries map[string]map[string]uint64) error {
	fresh := NewRegistry()
	var errs []error
	for _, attr := range sortedKeys(entries) {
		for _, value := range sortedKeys(entries[attr]) {
			if err := fresh.Register(attr, value, entries[attr][value]); err != nil {
				errs = append(errs, err)
			}
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	r.primes = fresh.primes
	r.owners = fresh.owners
	return nil
}

// isPrime reports whether n is a prime number. ProbablyPrime is exact for
// all inputs below 2^64.
func isPrime(n uint64) bool {
	if n <= 1 {
		return false
	}
	return new(big.Int).SetUint64(n).ProbablyPrime(0)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
