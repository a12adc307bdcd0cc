package config

import (
	"strings"
	"testing"
)

func TestValidateYAMLContent_AcceptsFullConfig(t *testing.T) {
	t.Parallel()

	content := []byte(`catalog:
  path: "./catalog.db"
server:
  port: 9090
  max_upload_mb: 64
import:
  prune_after_import: true
  header_aliases:
    imageUrl: ["bild", "imagen"]
rules:
  - name: "wix catalog"
    file_template: "catalog_products*.csv"
    collection: "Imported"
`)

	cfg, err := ValidateYAMLContent(content)
	if err != nil {
		t.Fatalf("expected config to validate: %v", err)
	}
	if cfg.Catalog.Path != "./catalog.db" {
		t.Errorf("unexpected catalog path: %q", cfg.Catalog.Path)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("unexpected port: %d", cfg.Server.Port)
	}
	if !cfg.Import.PruneAfterImport {
		t.Errorf("expected prune_after_import to be true")
	}
	if len(cfg.Rules) != 1 || cfg.Rules[0].Collection != "Imported" {
		t.Errorf("unexpected rules: %+v", cfg.Rules)
	}
	if got := cfg.Server.MaxUploadBytes(); got != 64<<20 {
		t.Errorf("unexpected upload cap: %d", got)
	}
}

func TestValidateYAMLContent_AppliesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := ValidateYAMLContent([]byte("catalog:\n  path: \"./x.db\"\n"))
	if err != nil {
		t.Fatalf("expected config to validate: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Server.MaxUploadMB != 32 {
		t.Errorf("expected default upload cap 32, got %d", cfg.Server.MaxUploadMB)
	}
	if cfg.Import.PruneAfterImport {
		t.Errorf("expected prune_after_import to default to false")
	}
}

func TestValidateYAMLContent_RejectsInvalidPort(t *testing.T) {
	t.Parallel()

	content := []byte(`server:
  port: 70000
  max_upload_mb: 32
`)

	_, err := ValidateYAMLContent(content)
	if err == nil {
		t.Fatalf("expected validation error for out-of-range port")
	}
	if !strings.Contains(err.Error(), "validation failed") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateYAMLContent_RejectsRuleWithoutTemplate(t *testing.T) {
	t.Parallel()

	content := []byte(`rules:
  - name: "wix catalog"
    collection: "Imported"
`)

	_, err := ValidateYAMLContent(content)
	if err == nil {
		t.Fatalf("expected validation error for rule without file_template")
	}
	if !strings.Contains(err.Error(), "file_template") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateYAMLContent_RejectsDuplicateRuleNames(t *testing.T) {
	t.Parallel()

	content := []byte(`rules:
  - name: "wix catalog"
    file_template: "a*.csv"
    collection: "A"
  - name: "Wix Catalog"
    file_template: "b*.csv"
    collection: "B"
`)

	_, err := ValidateYAMLContent(content)
	if err == nil {
		t.Fatalf("expected validation error for duplicate rule names")
	}
	if !strings.Contains(err.Error(), "duplicate rule name") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateYAMLContent_RejectsUnknownAliasField(t *testing.T) {
	t.Parallel()

	content := []byte(`import:
  header_aliases:
    basePrice: ["grundpreis"]
`)

	_, err := ValidateYAMLContent(content)
	if err == nil {
		t.Fatalf("expected validation error for unknown alias field")
	}
	if !strings.Contains(err.Error(), "not a canonical field") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateYAMLContent_RejectsEmptyAliasSpelling(t *testing.T) {
	t.Parallel()

	content := []byte(`import:
  header_aliases:
    imageUrl: ["  "]
`)

	_, err := ValidateYAMLContent(content)
	if err == nil {
		t.Fatalf("expected validation error for empty alias spelling")
	}
	if !strings.Contains(err.Error(), "empty spelling") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestExampleYAMLValidates(t *testing.T) {
	t.Parallel()

	if _, err := ValidateYAMLContent([]byte(ExampleYAML())); err != nil {
		t.Fatalf("example config should validate: %v", err)
	}
}
