// Package loader reads prime registry and inventory data from the formats
// the engine's hosts produce: JSON or YAML primes files, JSON inventory
// dumps, and SQLite catalog databases. The core never touches serialization
// itself; everything here feeds plain Go values into pkg/core.
package loader

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// primesFile matches the on-disk primes shape:
//
//	{"attribute_to_prime": {"color": {"Red": 2, ...}, ...}}
type primesFile struct {
	AttributeToPrime map[string]map[string]uint64 `json:"attribute_to_prime" yaml:"attribute_to_prime"`
}

// Primes reads an attribute -> value -> prime table from a file. Files
// ending in .yaml or .yml are parsed as YAML, everything else as JSON.
func Primes(path string) (map[string]map[string]uint64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open primes file: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return PrimesYAML(f)
	default:
		return PrimesJSON(f)
	}
}

// PrimesJSON decodes a JSON primes document
func PrimesJSON(r io.Reader) (map[string]map[string]uint64, error) {
	var doc primesFile
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode primes JSON: %w", err)
	}
	return checkPrimes(doc)
}

// PrimesYAML decodes a YAML primes document
func PrimesYAML(r io.Reader) (map[string]map[string]uint64, error) {
	var doc primesFile
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode primes YAML: %w", err)
	}
	return checkPrimes(doc)
}

func checkPrimes(doc primesFile) (map[string]map[string]uint64, error) {
	if len(doc.AttributeToPrime) == 0 {
		return nil, fmt.Errorf("primes document has no attribute_to_prime entries")
	}
	return doc.AttributeToPrime, nil
}
