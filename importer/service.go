package importer

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"shopfeed/catalog"
	"shopfeed/config"
	"shopfeed/ingest"
)

// Result aggregates one import run across all processed files.
type Result struct {
	FilesProcessed int
	RowsRead       int
	RecordsKept    int
	RowsDropped    int
	Products       []catalog.Product
	Runs           []catalog.ImportRun
}

// RunOptions carry per-invocation overrides.
type RunOptions struct {
	// Collection overrides any rule-derived collection default.
	Collection string
	// Now is forwarded to the normalizer; nil means wall clock.
	Now func() time.Time
}

// Run reads every path, normalizes the rows into canonical products and
// stamps provenance. Unknown formats and unreadable files abort the run;
// content-level oddities never do, they just yield fewer records.
func Run(paths []string, format string, cfg config.Config, options RunOptions) (*Result, error) {
	result := &Result{Products: make([]catalog.Product, 0, 256)}
	for _, path := range paths {
		sourceFormat, err := InferFormat(path, format)
		if err != nil {
			return nil, err
		}
		reader, err := ReaderForFormat(sourceFormat)
		if err != nil {
			return nil, err
		}

		started := time.Now()
		rows, err := reader.Read(path)
		if err != nil {
			return nil, err
		}

		products := ingest.Normalize(rows, ingest.Options{
			Now:               options.Now,
			ExtraAliases:      cfg.Import.HeaderAliases,
			DefaultCollection: resolveCollection(path, cfg, options),
		})

		sourceFile := filepath.Base(path)
		for i := range products {
			products[i].SourceFormat = sourceFormat
			products[i].SourceFile = sourceFile
		}

		dataRows := 0
		if len(rows) > 1 {
			dataRows = len(rows) - 1
		}

		result.FilesProcessed++
		result.RowsRead += dataRows
		result.RecordsKept += len(products)
		result.RowsDropped += dataRows - len(products)
		result.Products = append(result.Products, products...)
		result.Runs = append(result.Runs, catalog.ImportRun{
			ID:           uuid.NewString(),
			SourceFile:   sourceFile,
			SourceFormat: sourceFormat,
			RowsRead:     dataRows,
			ProductsKept: len(products),
			RowsDropped:  dataRows - len(products),
			StartedAt:    started,
			FinishedAt:   time.Now(),
		})
	}

	return result, nil
}

// resolveCollection picks the default collection for a file: an explicit
// option wins, then the first config rule whose template matches.
func resolveCollection(path string, cfg config.Config, options RunOptions) string {
	if strings.TrimSpace(options.Collection) != "" {
		return strings.TrimSpace(options.Collection)
	}
	return MatchRuleByTemplate(path, cfg.Rules).Collection
}

// MatchRuleByTemplate returns the first rule whose file template matches
// the path's base name or the full path.
func MatchRuleByTemplate(path string, rules []config.Rule) config.Rule {
	baseName := filepath.Base(path)
	for _, rule := range rules {
		template := strings.TrimSpace(rule.FileTemplate)
		if template == "" {
			continue
		}
		matchesBase, err := filepath.Match(template, baseName)
		if err == nil && matchesBase {
			return rule
		}
		matchesFull, err := filepath.Match(template, path)
		if err == nil && matchesFull {
			return rule
		}
	}
	return config.Rule{}
}
