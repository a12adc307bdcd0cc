package cmd

import (
	"fmt"
	"shopfeed/config"
	"shopfeed/prune"
	"shopfeed/storage"

	"github.com/spf13/cobra"
)

var pruneDBPath string

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Keep one product per handle, deleting older duplicate rows",
	Long: `Group stored products by handle and delete all but the newest row of each
group.

The newest row is the one with the latest upload timestamp; ties fall back to
the highest row id. Re-importing a changed feed leaves older rows behind, and
prune is how they get cleaned up.`,
	Example: `
  # Prune the default database
  shopfeed prune

  # Prune a specific database file
  shopfeed prune --db ./shopfeed.db
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}

		store, err := storage.OpenSQLite(resolveDatabasePath(pruneDBPath, cfg))
		if err != nil {
			return err
		}
		defer store.Close()

		result, err := prune.Run(store)
		if err != nil {
			return err
		}

		fmt.Printf(
			"Prune completed. Handles processed: %d, Duplicates found: %d, Rows deleted: %d, Rows remaining: %d\n",
			result.HandlesProcessed,
			result.DuplicatesFound,
			result.RowsDeleted,
			result.RowsRemaining,
		)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pruneCmd)

	pruneCmd.Flags().StringVar(&pruneDBPath, "db", "", "Path to local SQLite database (default: catalog.path from config)")
}
