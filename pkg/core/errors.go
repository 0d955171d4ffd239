package core

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// ErrDuplicatePrime is returned when a prime is already assigned to
	// another (attribute, value) pair anywhere in the registry
	ErrDuplicatePrime = errors.New("prime already assigned")

	// ErrInvalidPrime is returned when a registry entry is not a prime > 1
	ErrInvalidPrime = errors.New("invalid prime")

	// ErrInvalidQuery is returned when a filter query is zero
	ErrInvalidQuery = errors.New("invalid query value")

	// ErrFingerprintOverflow is returned when an item's fingerprint would
	// exceed the uint64 range
	ErrFingerprintOverflow = errors.New("fingerprint overflow")

	// ErrMalformedItem is returned when a raw item is structurally invalid
	ErrMalformedItem = errors.New("malformed item")

	// ErrTierMismatch is returned when a filter call supplies the wrong
	// number of tier queries
	ErrTierMismatch = errors.New("tier count mismatch")

	// ErrUnknownValue is returned when a query selection names an
	// attribute value the registry does not know
	ErrUnknownValue = errors.New("unknown attribute value")

	// ErrKitClosed is returned when trying to use a closed kit
	ErrKitClosed = errors.New("kit is closed")

	// ErrInvalidConfig is returned when configuration is invalid
	ErrInvalidConfig = errors.New("invalid configuration")
)

// KitError wraps errors with operation context
type KitError struct {
	Op  string // Operation name
	Err error  // Underlying error
}

// Error implements the error interface
func (e *KitError) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("primekit: %v", e.Err)
	}
	return fmt.Sprintf("primekit: %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error
func (e *KitError) Unwrap() error {
	return e.Err
}

// Is checks if the error matches the target
func (e *KitError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// wrapError wraps an error with operation context
func wrapError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &KitError{Op: op, Err: err}
}
