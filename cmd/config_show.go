package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"shopfeed/config"
)

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show active configuration values.",
	Long: `Display the currently loaded configuration and the resolved config file path.

This command validates the configuration before printing values.`,
	Example: `
  # Show active configuration
  shopfeed config show
`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			fmt.Println("Invalid config:", err)
			return
		}

		if configPath := viper.ConfigFileUsed(); configPath != "" {
			fmt.Println("Config file loaded from:", configPath)
		} else {
			fmt.Println("No config file loaded; showing defaults.")
		}

		fmt.Println("Configuration:")
		fmt.Printf("catalog.path: %s\n", cfg.Catalog.Path)
		fmt.Printf("server.port: %d\n", cfg.Server.Port)
		fmt.Printf("server.max_upload_mb: %d\n", cfg.Server.MaxUploadMB)
		fmt.Printf("import.prune_after_import: %t\n", cfg.Import.PruneAfterImport)

		if len(cfg.Import.HeaderAliases) > 0 {
			fields := make([]string, 0, len(cfg.Import.HeaderAliases))
			for field := range cfg.Import.HeaderAliases {
				fields = append(fields, field)
			}
			sort.Strings(fields)
			for _, field := range fields {
				fmt.Printf("import.header_aliases.%s: %s\n", field, strings.Join(cfg.Import.HeaderAliases[field], ", "))
			}
		}

		fmt.Printf("rules: %d\n", len(cfg.Rules))
		for i, rule := range cfg.Rules {
			fmt.Printf("rules[%d].name: %s\n", i, rule.Name)
			fmt.Printf("rules[%d].file_template: %s\n", i, rule.FileTemplate)
			fmt.Printf("rules[%d].collection: %s\n", i, rule.Collection)
		}
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
}
