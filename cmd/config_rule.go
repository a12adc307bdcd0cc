package cmd

import "github.com/spf13/cobra"

var configRuleCmd = &cobra.Command{
	Use:   "rule",
	Short: "Manage collection rules in config.",
	Long: `Manage import rules stored under config key rules.

Rules match imported files by name template and supply a default collection
for rows that carry none.`,
}

func init() {
	configCmd.AddCommand(configRuleCmd)
}
