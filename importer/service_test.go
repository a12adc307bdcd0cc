package importer

import (
	"os"
	"path/filepath"
	"shopfeed/config"
	"testing"
	"time"
)

func writeSourceFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write source file: %v", err)
	}
	return path
}

func fixedClock(t *testing.T) func() time.Time {
	t.Helper()
	anchor := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time { return anchor }
}

func TestRun_ImportsCSVFile(t *testing.T) {
	t.Parallel()

	path := writeSourceFile(t, "products_spring.csv",
		"Name,Description,Price,Image Src,SKU\n"+
			"Straw Hat,Wide brim,25.00,https://example.com/hat.jpg,HAT-1\n"+
			",,10.00,https://example.com/x.jpg,X-1\n"+
			"Camp Mug,Enamel,12.00,https://example.com/mug.jpg,MUG-1\n")

	result, err := Run([]string{path}, "", config.Config{}, RunOptions{Now: fixedClock(t)})
	if err != nil {
		t.Fatalf("run import: %v", err)
	}

	if result.FilesProcessed != 1 {
		t.Fatalf("expected 1 file processed, got %d", result.FilesProcessed)
	}
	if result.RowsRead != 3 || result.RecordsKept != 2 || result.RowsDropped != 1 {
		t.Fatalf("unexpected stats: read=%d kept=%d dropped=%d", result.RowsRead, result.RecordsKept, result.RowsDropped)
	}
	if len(result.Products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(result.Products))
	}

	first := result.Products[0]
	if first.HandleID != "item-0" || first.Name != "Straw Hat" || first.Price != "25.00" {
		t.Fatalf("unexpected first product: %+v", first)
	}
	if first.SourceFormat != "csv" || first.SourceFile != "products_spring.csv" {
		t.Fatalf("unexpected provenance: format=%q file=%q", first.SourceFormat, first.SourceFile)
	}

	second := result.Products[1]
	if second.HandleID != "item-2" || second.Name != "Camp Mug" {
		t.Fatalf("unexpected second product: %+v", second)
	}

	anchor := fixedClock(t)().UnixMilli()
	if first.DateUploaded != anchor {
		t.Errorf("expected first product at anchor %d, got %d", anchor, first.DateUploaded)
	}
	if second.DateUploaded != anchor-2000 {
		t.Errorf("expected second product at anchor-2000, got %d", second.DateUploaded)
	}

	if len(result.Runs) != 1 {
		t.Fatalf("expected 1 import run, got %d", len(result.Runs))
	}
	run := result.Runs[0]
	if run.ID == "" {
		t.Errorf("expected run id to be set")
	}
	if run.SourceFile != "products_spring.csv" || run.SourceFormat != "csv" {
		t.Errorf("unexpected run provenance: %+v", run)
	}
	if run.RowsRead != 3 || run.ProductsKept != 2 || run.RowsDropped != 1 {
		t.Errorf("unexpected run stats: %+v", run)
	}
}

func TestRun_MultipleFilesAccumulate(t *testing.T) {
	t.Parallel()

	first := writeSourceFile(t, "first.csv",
		"Name,Image\nHat,https://example.com/hat.jpg\n")
	second := writeSourceFile(t, "second.csv",
		"Name,Image\nMug,https://example.com/mug.jpg\nBowl,https://example.com/bowl.jpg\n")

	result, err := Run([]string{first, second}, "csv", config.Config{}, RunOptions{Now: fixedClock(t)})
	if err != nil {
		t.Fatalf("run import: %v", err)
	}

	if result.FilesProcessed != 2 {
		t.Fatalf("expected 2 files processed, got %d", result.FilesProcessed)
	}
	if result.RowsRead != 3 || result.RecordsKept != 3 {
		t.Fatalf("unexpected stats: read=%d kept=%d", result.RowsRead, result.RecordsKept)
	}
	if len(result.Runs) != 2 {
		t.Fatalf("expected 2 import runs, got %d", len(result.Runs))
	}
	if result.Runs[0].ID == result.Runs[1].ID {
		t.Fatalf("expected distinct run ids, got %q twice", result.Runs[0].ID)
	}
	if result.Products[0].SourceFile != "first.csv" || result.Products[1].SourceFile != "second.csv" {
		t.Fatalf("unexpected product provenance: %+v", result.Products)
	}
}

func TestRun_RuleAssignsCollection(t *testing.T) {
	t.Parallel()

	path := writeSourceFile(t, "summer_catalog.csv",
		"Name,Image\nHat,https://example.com/hat.jpg\n")

	cfg := config.Config{
		Rules: []config.Rule{
			{Name: "summer", FileTemplate: "summer_*.csv", Collection: "Summer 2026"},
		},
	}

	result, err := Run([]string{path}, "", cfg, RunOptions{Now: fixedClock(t)})
	if err != nil {
		t.Fatalf("run import: %v", err)
	}
	if len(result.Products) != 1 {
		t.Fatalf("expected 1 product, got %d", len(result.Products))
	}
	if result.Products[0].Collection != "Summer 2026" {
		t.Fatalf("expected rule collection, got %q", result.Products[0].Collection)
	}
}

func TestRun_ExplicitCollectionOverridesRule(t *testing.T) {
	t.Parallel()

	path := writeSourceFile(t, "summer_catalog.csv",
		"Name,Image\nHat,https://example.com/hat.jpg\n")

	cfg := config.Config{
		Rules: []config.Rule{
			{Name: "summer", FileTemplate: "summer_*.csv", Collection: "Summer 2026"},
		},
	}

	result, err := Run([]string{path}, "", cfg, RunOptions{Collection: "Clearance", Now: fixedClock(t)})
	if err != nil {
		t.Fatalf("run import: %v", err)
	}
	if result.Products[0].Collection != "Clearance" {
		t.Fatalf("expected explicit collection, got %q", result.Products[0].Collection)
	}
}

func TestRun_CollectionColumnBeatsDefault(t *testing.T) {
	t.Parallel()

	path := writeSourceFile(t, "mixed.csv",
		"Name,Image,Collection\n"+
			"Hat,https://example.com/hat.jpg,Headwear\n"+
			"Mug,https://example.com/mug.jpg,\n")

	result, err := Run([]string{path}, "", config.Config{}, RunOptions{Collection: "Clearance", Now: fixedClock(t)})
	if err != nil {
		t.Fatalf("run import: %v", err)
	}
	if result.Products[0].Collection != "Headwear" {
		t.Fatalf("expected column value to win, got %q", result.Products[0].Collection)
	}
	if result.Products[1].Collection != "Clearance" {
		t.Fatalf("expected default for blank cell, got %q", result.Products[1].Collection)
	}
}

func TestRun_UnsupportedExtensionFails(t *testing.T) {
	t.Parallel()

	path := writeSourceFile(t, "products.pdf", "not tabular")

	_, err := Run([]string{path}, "", config.Config{}, RunOptions{})
	if err == nil {
		t.Fatalf("expected error for unsupported extension, got nil")
	}
}

func TestRun_MissingFileFails(t *testing.T) {
	t.Parallel()

	_, err := Run([]string{filepath.Join(t.TempDir(), "absent.csv")}, "", config.Config{}, RunOptions{})
	if err == nil {
		t.Fatalf("expected error for missing file, got nil")
	}
}

func TestMatchRuleByTemplate(t *testing.T) {
	t.Parallel()

	rules := []config.Rule{
		{Name: "summer", FileTemplate: "summer_*.csv", Collection: "Summer"},
		{Name: "winter", FileTemplate: "winter_*.csv", Collection: "Winter"},
	}

	rule := MatchRuleByTemplate("/data/feeds/winter_catalog.csv", rules)
	if rule.Name != "winter" {
		t.Fatalf("expected winter rule, got %+v", rule)
	}

	rule = MatchRuleByTemplate("spring_catalog.csv", rules)
	if rule.Name != "" {
		t.Fatalf("expected no rule match, got %+v", rule)
	}
}
