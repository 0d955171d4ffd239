package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/qyire/primekit/pkg/core"
	"github.com/qyire/primekit/pkg/loader"
	"github.com/qyire/primekit/pkg/primekit"
)

var (
	primesPath    string
	inventoryPath string
	excluded      []string
	verbose       bool
)

var rootCmd = &cobra.Command{
	Use:   "primekit",
	Short: "Prime-fingerprint faceted filtering for catalogs",
	Long: `A command-line interface for encoding catalog items into prime-product
fingerprints and filtering them with integer divisibility queries.`,
}

func openCatalog(ctx context.Context) (*primekit.Catalog, error) {
	config := primekit.DefaultConfig(primesPath, inventoryPath)
	config.Excluded = excluded
	if verbose {
		config.Logger = core.NewStdLogger(core.LevelDebug)
	}
	return primekit.Open(ctx, config)
}

// parseSelections turns attr=value arguments into a selection map.
// Repeating an attribute ANDs another required value onto it.
func parseSelections(args []string) (map[string][]string, error) {
	selections := make(map[string][]string)
	for _, arg := range args {
		attr, value, ok := strings.Cut(arg, "=")
		if !ok || attr == "" || value == "" {
			return nil, fmt.Errorf("invalid selection %q, want attribute=value", arg)
		}
		selections[attr] = append(selections[attr], value)
	}
	return selections, nil
}

var checkCmd = &cobra.Command{
	Use:   "check <primes-file>",
	Short: "Validate a primes file",
	Long: `Checks that every entry is an actual prime greater than 1 and that no
prime is assigned to more than one (attribute, value) pair. All violations
are reported at once.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := loader.Primes(args[0])
		if err != nil {
			return err
		}
		if err := core.NewRegistry().ReplaceAll(entries); err != nil {
			return err
		}

		n := 0
		for _, values := range entries {
			n += len(values)
		}
		fmt.Printf("OK: %d attributes, %d primes, all distinct\n", len(entries), n)
		return nil
	},
}

var encodeCmd = &cobra.Command{
	Use:   "encode <attr=value>...",
	Short: "Compute the fingerprint for a set of attribute values",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		selections, err := parseSelections(args)
		if err != nil {
			return err
		}

		// Encoding needs only the primes, not the inventory.
		config := primekit.DefaultConfig(primesPath, "")
		config.Excluded = excluded
		catalog, err := primekit.Open(cmd.Context(), config)
		if err != nil {
			return err
		}
		defer catalog.Close()

		queries, err := catalog.Kit().EncodeQuery(selections)
		if err != nil {
			return err
		}
		if len(queries) == 1 {
			fmt.Println(queries[0])
			return nil
		}
		for i, info := range catalog.Kit().Tiers() {
			fmt.Printf("%s: %d\n", info.Name, queries[i])
		}
		return nil
	},
}

var filterCmd = &cobra.Command{
	Use:   "filter [attr=value]...",
	Short: "Filter the inventory by attribute selections",
	Long: `Loads the primes and inventory, encodes the selections into divisibility
queries and prints the matching records in catalog order. With no
selections, every record is printed. Use --query to supply raw fingerprint
queries instead of selections.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := openCatalog(cmd.Context())
		if err != nil {
			return err
		}
		defer catalog.Close()

		rawQuery, _ := cmd.Flags().GetString("query")
		asJSON, _ := cmd.Flags().GetBool("json")

		var records []core.Record
		switch {
		case rawQuery != "":
			if len(args) > 0 {
				return fmt.Errorf("--query and attribute selections are mutually exclusive")
			}
			queries, err := parseQueries(rawQuery)
			if err != nil {
				return err
			}
			records, err = catalog.Filter(queries...)
			if err != nil {
				return err
			}
		default:
			selections, err := parseSelections(args)
			if err != nil {
				return err
			}
			records, err = catalog.Select(selections)
			if err != nil {
				return err
			}
		}

		if asJSON {
			out, err := json.MarshalIndent(records, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		}
		for _, rec := range records {
			fmt.Printf("%s\t%v\n", rec.ID, rec.Fingerprints)
		}
		fmt.Fprintf(os.Stderr, "%d of %d records match\n", len(records), catalog.Len())
		return nil
	},
}

func parseQueries(raw string) ([]uint64, error) {
	parts := strings.Split(raw, ",")
	queries := make([]uint64, len(parts))
	for i, part := range parts {
		q, err := strconv.ParseUint(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid query %q: %w", part, err)
		}
		queries[i] = q
	}
	return queries, nil
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show registry and inventory statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := openCatalog(cmd.Context())
		if err != nil {
			return err
		}
		defer catalog.Close()

		asJSON, _ := cmd.Flags().GetBool("json")
		out := struct {
			Records int             `json:"records"`
			Load    core.LoadStats  `json:"load"`
			Tiers   []core.TierInfo `json:"tiers"`
		}{
			Records: catalog.Len(),
			Load:    catalog.Stats(),
			Tiers:   catalog.Kit().Tiers(),
		}

		if asJSON {
			data, err := json.MarshalIndent(out, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		}

		fmt.Printf("Records:    %d\n", out.Records)
		fmt.Printf("Load:       %d total, %d loaded, %d malformed, %d overflowed\n",
			out.Load.Total, out.Load.Loaded, out.Load.Malformed, out.Load.Overflowed)
		for _, tier := range out.Tiers {
			fmt.Printf("Tier %-10s %d primes over %s\n",
				tier.Name+":", tier.Registered, strings.Join(tier.Attributes, ", "))
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&primesPath, "primes", "p", "primes.json", "Primes file (.json, .yaml)")
	rootCmd.PersistentFlags().StringVarP(&inventoryPath, "inventory", "i", "inventory.json", "Inventory file (.json) or catalog database (.db)")
	rootCmd.PersistentFlags().StringSliceVar(&excluded, "exclude", primekit.DefaultExcluded, "Attribute keys excluded from fingerprints")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	filterCmd.Flags().String("query", "", "Raw fingerprint queries, comma-separated (one per tier)")
	filterCmd.Flags().Bool("json", false, "Output as JSON")

	statsCmd.Flags().Bool("json", false, "Output as JSON")

	genCmd.Flags().Int("count", 1000, "Number of SKUs to generate")
	genCmd.Flags().String("out", "data/segments", "Output directory")
	genCmd.Flags().Int64("seed", 0, "Random seed (0 uses the current time)")
	genCmd.Flags().Bool("uuid", false, "Use UUIDs instead of sequential SKU identifiers")

	rootCmd.AddCommand(
		checkCmd,
		encodeCmd,
		filterCmd,
		statsCmd,
		genCmd,
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
