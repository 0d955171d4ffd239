package main

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/qyire/primekit/pkg/core"
)

// Attribute pools for the sample catalog
var (
	genColors = []string{
		"Red", "Blue", "Green", "Yellow", "Black", "White",
		"Orange", "Purple", "Gray", "Pink", "Brown", "Cyan",
	}
	genSizes     = []string{"XS", "S", "M", "L", "XL", "XXL", "3XL"}
	genMaterials = []string{
		"Cotton", "Polyester", "Wool", "Silk", "Rayon", "Spandex Blend",
		"Linen", "Denim", "Fleece", "Nylon", "Leatherette", "Corduroy",
	}
	genItemTypes = []string{
		"T-Shirt", "Polo Shirt", "Blouse", "Long-Sleeve Shirt",
		"Tank Top", "Henley", "Dress Shirt", "Sweater",
	}
	genBrands = []string{"BrandA", "BrandB", "BrandC"}
)

var genCmd = &cobra.Command{
	Use:   "gen",
	Short: "Generate a sample brand-segmented catalog",
	Long: `Generates a brand-segmented sample catalog: one directory per brand with
an inventory.json and a matching primes.json. Each brand gets its own prime
table, shuffled so fingerprints differ across brands.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		count, _ := cmd.Flags().GetInt("count")
		outDir, _ := cmd.Flags().GetString("out")
		seed, _ := cmd.Flags().GetInt64("seed")
		useUUID, _ := cmd.Flags().GetBool("uuid")
		return runGen(count, outDir, seed, useUUID)
	},
}

func runGen(count int, outDir string, seed int64, useUUID bool) error {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	byBrand := make(map[string][]core.Item, len(genBrands))
	for i := 1; i <= count; i++ {
		brand := genBrands[rng.Intn(len(genBrands))]
		item := genItem(rng, i, brand, useUUID)
		byBrand[brand] = append(byBrand[brand], item)
	}

	for _, brand := range genBrands {
		items := byBrand[brand]
		if len(items) == 0 {
			continue
		}
		brandDir := filepath.Join(outDir, brand)
		if err := os.MkdirAll(brandDir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", brandDir, err)
		}

		primesDoc := map[string]any{"attribute_to_prime": genBrandPrimes(rng)}
		if err := writeJSON(filepath.Join(brandDir, "primes.json"), primesDoc); err != nil {
			return err
		}
		if err := writeJSON(filepath.Join(brandDir, "inventory.json"), items); err != nil {
			return err
		}
		fmt.Printf("%s: %d items\n", brand, len(items))
	}
	fmt.Printf("Generated %d SKUs across %d brands in %s (seed %d)\n",
		count, len(genBrands), outDir, seed)
	return nil
}

func genItem(rng *rand.Rand, index int, brand string, useUUID bool) core.Item {
	colors := sample(rng, genColors, weightedCount(rng))
	materials := sample(rng, genMaterials, weightedCount(rng))
	size := genSizes[rng.Intn(len(genSizes))]
	itemType := genItemTypes[rng.Intn(len(genItemTypes))]

	id := fmt.Sprintf("SKU%05d", index)
	if useUUID {
		id = uuid.NewString()
	}
	name := fmt.Sprintf("%s %s %s %s %s",
		brand, size, strings.Join(colors, " & "), strings.Join(materials, " & "), itemType)

	return core.Item{
		ID:   id,
		Name: name,
		Attributes: map[string][]string{
			"brand":    {brand},
			"color":    colors,
			"size":     {size},
			"material": materials,
		},
	}
}

// weightedCount picks 1 or 2 values, favoring 1 (70/30)
func weightedCount(rng *rand.Rand) int {
	if rng.Float64() < 0.7 {
		return 1
	}
	return 2
}

// sample picks k distinct values from the pool
func sample(rng *rand.Rand, pool []string, k int) []string {
	out := make([]string, 0, k)
	for _, i := range rng.Perm(len(pool))[:k] {
		out = append(out, pool[i])
	}
	return out
}

// genBrandPrimes assigns a freshly shuffled run of small primes to the
// brand's attribute values, keeping every prime distinct within the brand.
func genBrandPrimes(rng *rand.Rand) map[string]map[string]uint64 {
	need := len(genColors) + len(genSizes) + len(genMaterials)
	primes := firstPrimes(need)
	rng.Shuffle(len(primes), func(i, j int) { primes[i], primes[j] = primes[j], primes[i] })

	next := 0
	take := func(values []string) map[string]uint64 {
		m := make(map[string]uint64, len(values))
		for _, v := range values {
			m[v] = primes[next]
			next++
		}
		return m
	}
	return map[string]map[string]uint64{
		"color":    take(genColors),
		"size":     take(genSizes),
		"material": take(genMaterials),
	}
}

// firstPrimes returns the first n primes
func firstPrimes(n int) []uint64 {
	primes := make([]uint64, 0, n)
	for candidate := uint64(2); len(primes) < n; candidate++ {
		composite := false
		for _, p := range primes {
			if p*p > candidate {
				break
			}
			if candidate%p == 0 {
				composite = true
				break
			}
		}
		if !composite {
			primes = append(primes, candidate)
		}
	}
	return primes
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
