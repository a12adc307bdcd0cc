package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"shopfeed/config"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "shopfeed",
	Short: "Import, normalize, browse, and export product catalogs from store exports.",
	Long: `
**********************************************
*                SHOP FEED                   *
**********************************************

This CLI imports store exports (CSV, TSV, Excel), normalizes each row into a
catalog product in a local SQLite database, serves a local browsing UI, and
exports the catalog to CSV, Excel, or JSON.

Supported input formats:
- Excel: .xlsx, .xlsm, .xls
- CSV: .csv
- TSV: .tsv, .txt
`,
	Example: `
  # Create configuration file
  shopfeed config create

  # Import a store export
  shopfeed import -i catalog_products.csv

  # Preview normalization without persisting
  shopfeed preview -i catalog_products.csv

  # List stored products of one collection
  shopfeed list --collection "Summer 2026"

  # Remove older rows that share a handle with a newer import
  shopfeed prune

  # Browse the catalog locally
  shopfeed serve

  # Export raw products
  shopfeed export --output ./products.xlsx

  # Export per-collection summary
  shopfeed export --mode collections --output ./collections.csv
`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	config.SetDefaults()

	rootCmd.PersistentFlags().StringVar(&cfgFile, "configFile", "", "Config file override (default discovery: $HOME/.shopfeed.yaml, then ./.shopfeed.yaml)")
}

// resolveDatabasePath picks the catalog database path: explicit flag first,
// then catalog.path from config, then the built-in default.
func resolveDatabasePath(flagValue string, cfg *config.Config) string {
	if strings.TrimSpace(flagValue) != "" {
		return flagValue
	}
	if cfg != nil && strings.TrimSpace(cfg.Catalog.Path) != "" {
		return cfg.Catalog.Path
	}
	return "./shopfeed.db"
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// A local .env can supply SHOPFEED_* variables without exporting them.
	_ = godotenv.Load()

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".shopfeed" (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".shopfeed")
	}

	viper.SetEnvPrefix("SHOPFEED")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintln(os.Stderr, "No config file found. Create one first with: shopfeed config create")
	}
}
