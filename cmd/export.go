package cmd

import (
	"fmt"
	"shopfeed/catalog"
	"shopfeed/config"
	"shopfeed/output"
	"shopfeed/storage"
	"strings"

	"github.com/spf13/cobra"
)

var (
	exportFormat     string
	exportMode       string
	exportOutput     string
	exportDBPath     string
	exportCollection string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the catalog from SQLite to CSV, Excel, or JSON",
	Long: `Export catalog products from SQLite.

Modes:
- raw: export each stored product row
- collections: export per-collection aggregates (product counts, price range, newest upload)

Output format can be selected explicitly via --format or inferred from the
--output extension. The collections mode supports csv and excel.`,
	Example: `
  # Export raw rows to CSV
  shopfeed export --output ./products.csv

  # Export raw rows to Excel
  shopfeed export --output ./products.xlsx

  # Export raw rows to JSON
  shopfeed export --output ./products.json

  # Export only one collection
  shopfeed export --collection "Mugs" --output ./mugs.csv

  # Export per-collection summary
  shopfeed export --mode collections --output ./collections.csv

  # Force Excel format independent of extension
  shopfeed export --mode collections --format excel --output ./collections.out
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}

		format, err := output.DetectFormat(exportOutput, exportFormat)
		if err != nil {
			return err
		}

		store, err := storage.OpenSQLite(resolveDatabasePath(exportDBPath, cfg))
		if err != nil {
			return err
		}
		defer store.Close()

		var products []catalog.Product
		if strings.TrimSpace(exportCollection) != "" {
			products, err = store.ListProductsByCollection(exportCollection)
		} else {
			products, err = store.ListProducts()
		}
		if err != nil {
			return err
		}

		mode := strings.TrimSpace(strings.ToLower(exportMode))
		switch mode {
		case "", "raw":
			writer, writerErr := output.WriterForFormat(format)
			if writerErr != nil {
				return writerErr
			}
			if err := writer.Write(exportOutput, products); err != nil {
				return err
			}
			fmt.Printf("Export completed. Rows: %d, Mode: raw, Format: %s, File: %s\n", len(products), format, exportOutput)
		case "collections":
			summaries := output.BuildCollectionSummaries(products)
			if err := output.WriteCollectionSummaries(exportOutput, format, summaries); err != nil {
				return err
			}
			fmt.Printf("Export completed. Collections: %d, Mode: collections, Format: %s, File: %s\n", len(summaries), format, exportOutput)
		default:
			return fmt.Errorf("unsupported export mode: %s (supported: raw, collections)", exportMode)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportMode, "mode", "raw", "Export mode: raw|collections")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "Output format: csv|excel|json (optional, inferred from output extension)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file path")
	exportCmd.Flags().StringVarP(&exportCollection, "collection", "c", "", "Only export products of this collection")
	exportCmd.Flags().StringVar(&exportDBPath, "db", "", "Path to local SQLite database (default: catalog.path from config)")

	_ = exportCmd.MarkFlagRequired("output")
}
