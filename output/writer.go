package output

import (
	"fmt"
	"path/filepath"
	"shopfeed/catalog"
	"strings"
)

type Writer interface {
	Write(path string, products []catalog.Product) error
}

func WriterForFormat(format string) (Writer, error) {
	switch normalizeFormat(format) {
	case "csv":
		return &CSVWriter{}, nil
	case "excel", "xlsx":
		return &ExcelWriter{}, nil
	case "json":
		return &JSONWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// DetectFormat resolves the output format for a path. An explicit format
// wins; otherwise the file extension decides.
func DetectFormat(path, format string) (string, error) {
	if normalizeFormat(format) != "" {
		return normalizeFormat(format), nil
	}

	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")) {
	case "csv":
		return "csv", nil
	case "xlsx":
		return "excel", nil
	case "json":
		return "json", nil
	default:
		return "", fmt.Errorf("cannot detect output format for %s", path)
	}
}

func normalizeFormat(value string) string {
	return strings.TrimSpace(strings.ToLower(value))
}
