package cmd

import "github.com/spf13/cobra"

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage shopfeed configuration file values.",
	Long: `Create, edit, display, and delete the shopfeed configuration file.

The configuration stores application-wide values and import rules:
- catalog.path
- server.port / server.max_upload_mb
- import.prune_after_import / import.header_aliases
- rules[].file_template / collection`,
	Example: `
  # Create default config in $HOME/.shopfeed.yaml
  shopfeed config create

  # Show active config and source file
  shopfeed config show

  # Open active config in editor (creates example if missing)
  shopfeed config edit

  # Add one collection rule interactively
  shopfeed config rule add

  # Delete active config file
  shopfeed config delete
`,
}

func init() {
	rootCmd.AddCommand(configCmd)
}
