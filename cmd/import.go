package cmd

import (
	"fmt"
	"shopfeed/config"
	"shopfeed/importer"
	"shopfeed/internal/classify"
	"shopfeed/prune"
	"shopfeed/storage"
	"strings"

	"github.com/spf13/cobra"
)

var (
	importInputs     []string
	importFormat     string
	importCollection string
	importDBPath     string
	importPruneMode  string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import store exports into the local catalog database",
	Long: `Read source files, normalize each row into a catalog product, and persist
results in SQLite.

Rows without a product name or image are dropped. When --format is omitted,
format is inferred from each input file extension. Rows without a collection
column value get the collection from --collection, or from the first config
rule whose file_template matches the input file name.

Rows whose content matches a stored product are skipped as duplicates. Rows
that share a handle with a stored product but differ in content are imported
alongside it; prune keeps the newest row per handle.`,
	Example: `
  # Import a store CSV export
  shopfeed import -i catalog_products.csv

  # Import multiple files with an explicit format
  shopfeed import -i spring.xlsx -i summer.xlsx --format excel

  # Assign a collection to rows that carry none
  shopfeed import -i mugs.csv --collection "Mugs"

  # Explicitly enable prune after import
  shopfeed import -i catalog_products.csv --prune on

  # Import with custom config file
  shopfeed --configFile ./custom-shopfeed.yaml import -i catalog_products.csv
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}

		result, err := importer.Run(importInputs, importFormat, *cfg, importer.RunOptions{
			Collection: importCollection,
		})
		if err != nil {
			return err
		}

		store, err := storage.OpenSQLite(resolveDatabasePath(importDBPath, cfg))
		if err != nil {
			return err
		}
		defer store.Close()

		stored, err := store.ListProducts()
		if err != nil {
			return err
		}

		toAdd, conflicts, duplicates := classify.ClassifyProducts(result.Products, stored)

		inserted, err := store.InsertProducts(toAdd)
		if err != nil {
			return err
		}

		for _, run := range result.Runs {
			if err := store.RecordImport(run); err != nil {
				return err
			}
		}

		fmt.Printf("Import completed. Files: %d, Rows read: %d, Products kept: %d, Rows dropped: %d, Duplicates skipped: %d, Handle conflicts: %d, Rows persisted: %d\n",
			result.FilesProcessed,
			result.RowsRead,
			result.RecordsKept,
			result.RowsDropped,
			duplicates,
			len(conflicts),
			inserted,
		)

		shouldPrune, err := resolvePruneMode(importPruneMode, cfg.Import.PruneAfterImport)
		if err != nil {
			return err
		}
		if shouldPrune {
			pruneResult, err := prune.Run(store)
			if err != nil {
				return err
			}
			fmt.Printf(
				"Auto-prune completed. Handles processed: %d, Duplicates found: %d, Rows deleted: %d, Rows remaining: %d\n",
				pruneResult.HandlesProcessed,
				pruneResult.DuplicatesFound,
				pruneResult.RowsDeleted,
				pruneResult.RowsRemaining,
			)
		} else if len(conflicts) > 0 {
			fmt.Printf("Note: %d rows share a handle with stored products. Run 'shopfeed prune' to keep the newest row per handle.\n", len(conflicts))
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringArrayVarP(&importInputs, "input", "i", nil, "Input file path (repeatable)")
	importCmd.Flags().StringVarP(&importFormat, "format", "f", "", "Input format: csv|excel|tsv (optional, inferred from extension when omitted)")
	importCmd.Flags().StringVarP(&importCollection, "collection", "c", "", "Collection for rows without one (overrides matching config rule)")
	importCmd.Flags().StringVar(&importDBPath, "db", "", "Path to local SQLite database (default: catalog.path from config)")
	importCmd.Flags().StringVar(&importPruneMode, "prune", "auto", "Prune mode after import: auto|on|off")

	_ = importCmd.MarkFlagRequired("input")
}

func resolvePruneMode(mode string, configDefault bool) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "auto":
		return configDefault, nil
	case "on", "true", "yes":
		return true, nil
	case "off", "false", "no":
		return false, nil
	default:
		return false, fmt.Errorf("invalid prune mode %q (supported: auto|on|off)", mode)
	}
}
