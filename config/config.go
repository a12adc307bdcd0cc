package config

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"shopfeed/ingest"
	"shopfeed/internal/textutil"
)

const (
	KeyCatalogPath         = "catalog.path"
	KeyServerPort          = "server.port"
	KeyServerMaxUploadMB   = "server.max_upload_mb"
	KeyImportPruneAfter    = "import.prune_after_import"
	KeyImportHeaderAliases = "import.header_aliases"
	KeyRules               = "rules"
)

type Config struct {
	Catalog CatalogConfig `mapstructure:"catalog"`
	Server  ServerConfig  `mapstructure:"server" validate:"required"`
	Import  ImportConfig  `mapstructure:"import"`
	Rules   []Rule        `mapstructure:"rules"`
}

type CatalogConfig struct {
	Path string `mapstructure:"path"`
}

type ServerConfig struct {
	Port        int `mapstructure:"port" validate:"gte=1,lte=65535"`
	MaxUploadMB int `mapstructure:"max_upload_mb" validate:"gte=1,lte=1024"`
}

// MaxUploadBytes converts the configured upload cap to bytes.
func (s ServerConfig) MaxUploadBytes() int64 {
	return int64(s.MaxUploadMB) << 20
}

type ImportConfig struct {
	PruneAfterImport bool                `mapstructure:"prune_after_import"`
	HeaderAliases    map[string][]string `mapstructure:"header_aliases"`
}

// Rule matches imported files by name template and supplies a default
// collection for rows that carry none.
type Rule struct {
	Name         string `mapstructure:"name"`
	FileTemplate string `mapstructure:"file_template"`
	Collection   string `mapstructure:"collection"`
}

// SetDefaults sets default values if not provided
func SetDefaults() {
	setDefaults(viper.GetViper())
}

// LoadAndValidate loads config from Viper and validates it
func LoadAndValidate() (*Config, error) {
	return loadAndValidateFromViper(viper.GetViper())
}

// ValidateYAMLContent validates configuration from raw YAML content.
func ValidateYAMLContent(content []byte) (*Config, error) {
	local := viper.New()
	setDefaults(local)
	local.SetConfigType("yaml")
	if err := local.ReadConfig(bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("read config content: %w", err)
	}
	return loadAndValidateFromViper(local)
}

// ExampleYAML returns the default configuration template.
func ExampleYAML() string {
	return `# shopfeed configuration
catalog:
  path: "./shopfeed.db"

server:
  port: 8080
  max_upload_mb: 32

import:
  prune_after_import: false
  # header_aliases extend the recognized header spellings per canonical
  # field:
  # header_aliases:
  #   imageUrl: ["bild", "imagen"]

# rules match imported files by name and set a default collection:
# rules:
#   - name: "wix catalog"
#     file_template: "catalog_products*.csv"
#     collection: "Imported"
rules: []
`
}

func loadAndValidateFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if err := validateRules(cfg.Rules); err != nil {
		return nil, err
	}
	if err := validateHeaderAliases(cfg.Import.HeaderAliases); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyCatalogPath, "./shopfeed.db")
	v.SetDefault(KeyServerPort, 8080)
	v.SetDefault(KeyServerMaxUploadMB, 32)
	v.SetDefault(KeyImportPruneAfter, false)
	v.SetDefault(KeyRules, []map[string]any{})
}

func validateRules(rules []Rule) error {
	seen := make(map[string]struct{}, len(rules))
	for i, rule := range rules {
		name := strings.TrimSpace(rule.Name)
		if name == "" {
			return fmt.Errorf("validation failed: rules[%d].name is required", i)
		}
		key := strings.ToLower(name)
		if _, exists := seen[key]; exists {
			return fmt.Errorf("validation failed: duplicate rule name %q", name)
		}
		seen[key] = struct{}{}

		template := strings.TrimSpace(rule.FileTemplate)
		if template == "" {
			return fmt.Errorf("validation failed: rules[%d].file_template is required", i)
		}
		if _, err := filepath.Match(template, "probe"); err != nil {
			return fmt.Errorf("validation failed: rules[%d].file_template %q is not a valid pattern", i, rule.FileTemplate)
		}
		if strings.TrimSpace(rule.Collection) == "" {
			return fmt.Errorf("validation failed: rules[%d].collection is required", i)
		}
	}
	return nil
}

func validateHeaderAliases(aliases map[string][]string) error {
	if len(aliases) == 0 {
		return nil
	}
	canonical := make(map[string]struct{})
	for _, field := range ingest.CanonicalFields() {
		canonical[strings.ToLower(field)] = struct{}{}
	}
	for field, spellings := range aliases {
		if _, ok := canonical[strings.ToLower(field)]; !ok {
			return fmt.Errorf(
				"validation failed: header_aliases key %q is not a canonical field (valid: %s)",
				field,
				strings.Join(ingest.CanonicalFields(), ", "),
			)
		}
		for _, spelling := range spellings {
			if textutil.NormalizeKey(spelling) == "" {
				return fmt.Errorf("validation failed: header_aliases[%s] contains an empty spelling", field)
			}
		}
	}
	return nil
}
