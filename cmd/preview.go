package cmd

import (
	"fmt"
	"shopfeed/config"
	"shopfeed/importer"

	"github.com/spf13/cobra"
)

var (
	previewInputs     []string
	previewFormat     string
	previewCollection string
	previewLimit      int
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Preview normalized products from source files without persisting",
	Long: `Read source files and show how rows normalize into catalog products.

Nothing is written to the database. Use this to check header resolution,
image URL handling, and size extraction before a real import.`,
	Example: `
  # Preview a store CSV export
  shopfeed preview -i catalog_products.csv

  # Preview more rows
  shopfeed preview -i catalog_products.csv --limit 50
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}

		result, err := importer.Run(previewInputs, previewFormat, *cfg, importer.RunOptions{
			Collection: previewCollection,
		})
		if err != nil {
			return err
		}

		products := result.Products
		total := len(products)
		if previewLimit > 0 && len(products) > previewLimit {
			products = products[:previewLimit]
		}

		fmt.Print(renderProductTable(products))
		fmt.Printf("Previewed %d of %d kept products. Rows read: %d, Rows dropped: %d\n",
			len(products), total, result.RowsRead, result.RowsDropped)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(previewCmd)

	previewCmd.Flags().StringArrayVarP(&previewInputs, "input", "i", nil, "Input file path (repeatable)")
	previewCmd.Flags().StringVarP(&previewFormat, "format", "f", "", "Input format: csv|excel|tsv (optional, inferred from extension when omitted)")
	previewCmd.Flags().StringVarP(&previewCollection, "collection", "c", "", "Collection for rows without one (overrides matching config rule)")
	previewCmd.Flags().IntVar(&previewLimit, "limit", 20, "Maximum rows to show (0 shows all)")

	_ = previewCmd.MarkFlagRequired("input")
}
