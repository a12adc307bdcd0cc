package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"shopfeed/config"
	"shopfeed/storage"
)

var configRuleAddDBPath string

var configRuleAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Interactively add one collection rule to config.",
	Long: `Prompt for a rule name, a file name template, and a collection, then store
a new rules entry in config.

Collections already present in the catalog database are offered for selection;
a new collection name can be entered as well.`,
	Example: `
  # Add one rule interactively
  shopfeed config rule add

  # Offer collections from a specific database
  shopfeed config rule add --db ./shopfeed.db
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, err := resolveConfigEditPath(cfgFile, viper.ConfigFileUsed())
		if err != nil {
			return err
		}

		if _, err := ensureConfigFileWithTemplate(configPath); err != nil {
			return err
		}

		viper.SetConfigFile(configPath)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %q: %w", configPath, err)
		}

		reader := bufio.NewReader(os.Stdin)

		ruleName, err := promptRequiredString(reader, os.Stdout, "Rule name")
		if err != nil {
			return err
		}
		fileTemplate, err := promptRequiredString(reader, os.Stdout, "File template (example: catalog_products*.csv)")
		if err != nil {
			return err
		}
		collection, err := promptCollection(reader, os.Stdout, loadKnownCollections(configRuleAddDBPath))
		if err != nil {
			return err
		}

		newRule := config.Rule{
			Name:         ruleName,
			FileTemplate: fileTemplate,
			Collection:   collection,
		}

		current, err := os.ReadFile(configPath)
		if err != nil {
			return fmt.Errorf("read config file: %w", err)
		}

		updated, err := appendRuleToConfigYAML(current, newRule)
		if err != nil {
			return err
		}

		if err := os.WriteFile(configPath, updated, 0o600); err != nil {
			return fmt.Errorf("write config file: %w", err)
		}

		fmt.Println("Rule added successfully.")
		fmt.Printf("Config:     %s\n", configPath)
		fmt.Printf("Name:       %s\n", newRule.Name)
		fmt.Printf("Template:   %s\n", newRule.FileTemplate)
		fmt.Printf("Collection: %s\n", newRule.Collection)
		return nil
	},
}

// loadKnownCollections reads distinct collection names from the catalog
// database, if one exists. An empty result just means free-text entry.
func loadKnownCollections(dbPath string) []string {
	path := resolveDatabasePath(dbPath, nil)
	if _, err := os.Stat(path); err != nil {
		return nil
	}

	store, err := storage.OpenSQLite(path)
	if err != nil {
		return nil
	}
	defer store.Close()

	products, err := store.ListProducts()
	if err != nil {
		return nil
	}

	seen := make(map[string]struct{})
	names := make([]string, 0)
	for _, product := range products {
		name := strings.TrimSpace(product.Collection)
		if name == "" {
			continue
		}
		if _, exists := seen[name]; exists {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func promptCollection(reader *bufio.Reader, out io.Writer, known []string) (string, error) {
	if len(known) == 0 {
		return promptRequiredString(reader, out, "Collection")
	}

	options := append(append([]string(nil), known...), "Enter a new collection name")
	choice, err := promptSelectIndex(reader, out, "Select collection:", options)
	if err != nil {
		return "", err
	}
	if choice < len(known) {
		return known[choice], nil
	}
	return promptRequiredString(reader, out, "Collection")
}

func promptSelectIndex(reader *bufio.Reader, out io.Writer, title string, options []string) (int, error) {
	if len(options) == 0 {
		return -1, fmt.Errorf("no options available for %q", title)
	}

	for {
		fmt.Fprintln(out, title)
		for i, option := range options {
			fmt.Fprintf(out, "  %d) %s\n", i+1, option)
		}
		fmt.Fprintf(out, "Choose [1-%d]: ", len(options))

		input, err := reader.ReadString('\n')
		if err != nil {
			return -1, fmt.Errorf("read selection input: %w", err)
		}
		input = strings.TrimSpace(input)
		choice, err := strconv.Atoi(input)
		if err != nil || choice < 1 || choice > len(options) {
			fmt.Fprintln(out, "Invalid selection. Please enter a valid number.")
			continue
		}
		return choice - 1, nil
	}
}

func promptRequiredString(reader *bufio.Reader, out io.Writer, label string) (string, error) {
	for {
		fmt.Fprintf(out, "%s: ", strings.TrimSpace(label))
		input, err := reader.ReadString('\n')
		if err != nil {
			return "", fmt.Errorf("read %s: %w", strings.TrimSpace(strings.ToLower(label)), err)
		}
		value := strings.TrimSpace(input)
		if value == "" {
			fmt.Fprintln(out, "Value must not be empty.")
			continue
		}
		return value, nil
	}
}

func appendRuleToConfigYAML(content []byte, rule config.Rule) ([]byte, error) {
	if strings.TrimSpace(rule.Name) == "" {
		return nil, fmt.Errorf("rule name is required")
	}
	if strings.TrimSpace(rule.FileTemplate) == "" {
		return nil, fmt.Errorf("file template is required")
	}
	if strings.TrimSpace(rule.Collection) == "" {
		return nil, fmt.Errorf("collection is required")
	}

	doc := map[string]any{}
	if strings.TrimSpace(string(content)) != "" {
		if err := yaml.Unmarshal(content, &doc); err != nil {
			return nil, fmt.Errorf("parse config yaml: %w", err)
		}
	}

	rulesList, err := ensureSliceAny(doc, "rules")
	if err != nil {
		return nil, err
	}

	for _, existing := range rulesList {
		ruleMap, ok := existing.(map[string]any)
		if !ok {
			continue
		}
		existingName, _ := ruleMap["name"].(string)
		if strings.EqualFold(strings.TrimSpace(existingName), strings.TrimSpace(rule.Name)) {
			return nil, fmt.Errorf("rule with name %q already exists", rule.Name)
		}
	}

	rulesList = append(rulesList, map[string]any{
		"name":          rule.Name,
		"file_template": rule.FileTemplate,
		"collection":    rule.Collection,
	})
	doc["rules"] = rulesList

	updated, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal updated config yaml: %w", err)
	}
	if _, err := config.ValidateYAMLContent(updated); err != nil {
		return nil, fmt.Errorf("updated config is invalid: %w", err)
	}
	return updated, nil
}

func ensureSliceAny(doc map[string]any, key string) ([]any, error) {
	raw, exists := doc[key]
	if !exists || raw == nil {
		result := []any{}
		doc[key] = result
		return result, nil
	}
	result, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("config key %q must be a list", key)
	}
	return result, nil
}

func init() {
	configRuleCmd.AddCommand(configRuleAddCmd)

	configRuleAddCmd.Flags().StringVar(&configRuleAddDBPath, "db", "", "Catalog database to offer existing collections from (default: ./shopfeed.db)")
}
