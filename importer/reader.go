package importer

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Reader loads a source file into a row matrix, header row first. Header
// resolution and field normalization happen downstream in the ingest
// package.
type Reader interface {
	Read(path string) ([][]string, error)
}

func ReaderForFormat(format string) (Reader, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "csv":
		return &CSVReader{}, nil
	case "excel", "xlsx", "xlsm", "xls":
		return &ExcelReader{}, nil
	case "tsv":
		return &TSVReader{}, nil
	default:
		return nil, fmt.Errorf("unsupported input format: %s", format)
	}
}

// InferFormat resolves the reader format for a path. An explicit format
// wins; otherwise the file extension decides.
func InferFormat(path, format string) (string, error) {
	if strings.TrimSpace(format) != "" {
		return strings.ToLower(strings.TrimSpace(format)), nil
	}

	extension := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch extension {
	case "csv":
		return "csv", nil
	case "xlsx", "xlsm", "xls":
		return "excel", nil
	case "tsv", "txt":
		return "tsv", nil
	default:
		return "", fmt.Errorf("unsupported file extension for %s", path)
	}
}
