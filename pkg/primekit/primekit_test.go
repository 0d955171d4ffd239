package primekit

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qyire/primekit/pkg/core"
)

const testPrimes = `{
  "attribute_to_prime": {
    "color": {"Red": 2, "Blue": 3, "Green": 5},
    "size": {"S": 7, "M": 11, "L": 13}
  }
}`

const testInventory = `[
  {"id": "A", "attributes": {"brand": ["BrandA"], "color": ["Red"], "size": ["M"]}},
  {"id": "B", "attributes": {"brand": ["BrandA"], "color": ["Blue"], "size": ["S", "M"]}}
]`

func fixtures(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	primesPath := filepath.Join(dir, "primes.json")
	inventoryPath := filepath.Join(dir, "inventory.json")
	require.NoError(t, os.WriteFile(primesPath, []byte(testPrimes), 0o644))
	require.NoError(t, os.WriteFile(inventoryPath, []byte(testInventory), 0o644))
	return primesPath, inventoryPath
}

func openCatalog(t *testing.T) *Catalog {
	t.Helper()
	primesPath, inventoryPath := fixtures(t)
	c, err := Open(context.Background(), DefaultConfig(primesPath, inventoryPath))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestOpen(t *testing.T) {
	c := openCatalog(t)
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, 2, c.Stats().Loaded)
}

func TestOpenMissingPrimes(t *testing.T) {
	_, inventoryPath := fixtures(t)
	config := DefaultConfig(filepath.Join(t.TempDir(), "nope.json"), inventoryPath)
	_, err := Open(context.Background(), config)
	require.Error(t, err)
}

func TestOpenInventoryWithoutPrimes(t *testing.T) {
	_, inventoryPath := fixtures(t)
	_, err := Open(context.Background(), Config{InventoryPath: inventoryPath})
	require.Error(t, err)
}

func TestCatalogFilter(t *testing.T) {
	c := openCatalog(t)

	records, err := c.Filter(11)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "A", records[0].ID)
	assert.Equal(t, uint64(22), records[0].Fingerprint())
	assert.Equal(t, "B", records[1].ID)
	assert.Equal(t, uint64(231), records[1].Fingerprint())

	records, err = c.Filter(26) // 2 * 13: neither divisible
	require.NoError(t, err)
	assert.Empty(t, records)

	_, err = c.Filter(0)
	assert.ErrorIs(t, err, core.ErrInvalidQuery)
}

func TestCatalogSelect(t *testing.T) {
	c := openCatalog(t)

	records, err := c.Select(map[string][]string{"color": {"Blue"}, "size": {"S"}})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "B", records[0].ID)

	// Empty selection is the wildcard.
	records, err = c.Select(nil)
	require.NoError(t, err)
	assert.Len(t, records, 2)

	// Unknown values are an error, not an empty result.
	_, err = c.Select(map[string][]string{"color": {"Chartreuse"}})
	assert.ErrorIs(t, err, core.ErrUnknownValue)

	// brand is excluded by the default policy and therefore unqueryable.
	_, err = c.Select(map[string][]string{"brand": {"BrandA"}})
	assert.ErrorIs(t, err, core.ErrUnknownValue)
}

func TestCatalogReload(t *testing.T) {
	primesPath, inventoryPath := fixtures(t)
	c, err := Open(context.Background(), DefaultConfig(primesPath, inventoryPath))
	require.NoError(t, err)
	defer c.Close()

	// Shrink the inventory on disk and reload: the store is replaced in
	// full, not merged.
	smaller := `[{"id": "C", "attributes": {"color": ["Green"]}}]`
	require.NoError(t, os.WriteFile(inventoryPath, []byte(smaller), 0o644))

	stats, err := c.ReloadInventory(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Loaded)

	records, err := c.Filter(1)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "C", records[0].ID)
	assert.Equal(t, uint64(5), records[0].Fingerprint())
}

func TestCatalogTwoTier(t *testing.T) {
	primesPath, inventoryPath := fixtures(t)
	config := DefaultConfig(primesPath, inventoryPath)
	config.Tiers = []core.TierConfig{
		{Name: "master", Attributes: []string{"color"}},
		{Name: "local", Attributes: []string{"size"}},
	}
	c, err := Open(context.Background(), config)
	require.NoError(t, err)
	defer c.Close()

	records, err := c.Select(map[string][]string{"color": {"Red"}, "size": {"M"}})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "A", records[0].ID)
	assert.Equal(t, []uint64{2, 11}, records[0].Fingerprints)

	// A single-tier query against a two-tier catalog is a mismatch.
	_, err = c.Filter(2)
	assert.ErrorIs(t, err, core.ErrTierMismatch)
}
