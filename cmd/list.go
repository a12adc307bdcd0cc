package cmd

import (
	"fmt"
	"shopfeed/catalog"
	"shopfeed/config"
	"shopfeed/internal/tabular"
	"shopfeed/storage"
	"strings"

	"github.com/spf13/cobra"
)

var (
	listDBPath     string
	listCollection string
	listLimit      int
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored catalog products",
	Long: `List products from the local catalog database, newest upload first.

Use --collection to narrow the listing to one collection.`,
	Example: `
  # List all products
  shopfeed list

  # List one collection
  shopfeed list --collection "Summer 2026"

  # Show only the first ten rows
  shopfeed list --limit 10
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}

		store, err := storage.OpenSQLite(resolveDatabasePath(listDBPath, cfg))
		if err != nil {
			return err
		}
		defer store.Close()

		var products []catalog.Product
		if strings.TrimSpace(listCollection) != "" {
			products, err = store.ListProductsByCollection(listCollection)
		} else {
			products, err = store.ListProducts()
		}
		if err != nil {
			return err
		}

		total := len(products)
		if listLimit > 0 && len(products) > listLimit {
			products = products[:listLimit]
		}

		fmt.Print(renderProductTable(products))
		fmt.Printf("Showing %d of %d products\n", len(products), total)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVar(&listDBPath, "db", "", "Path to local SQLite database (default: catalog.path from config)")
	listCmd.Flags().StringVarP(&listCollection, "collection", "c", "", "Only list products of this collection")
	listCmd.Flags().IntVar(&listLimit, "limit", 0, "Maximum rows to show (0 shows all)")
}

func renderProductTable(products []catalog.Product) string {
	headers := []string{"Handle", "Name", "Price", "Collection", "Size", "Uploaded", "Image"}
	rows := make([][]string, 0, len(products))
	for _, product := range products {
		rows = append(rows, []string{
			product.HandleID,
			tabular.Truncate(product.Name, 32),
			product.Price,
			product.Collection,
			product.Size,
			product.UploadedAt().Format("2006-01-02"),
			tabular.Truncate(product.ImageURL, 40),
		})
	}
	return tabular.Render(headers, rows)
}
