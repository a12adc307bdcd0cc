package importer

import (
	"fmt"
	"os"

	"shopfeed/ingest"
	"shopfeed/internal/textutil"
)

// CSVReader loads comma-separated exports. Tokenizing is done by the
// ingest scanner, which tolerates the quoting and line-ending mixtures
// real shop exports carry.
type CSVReader struct{}

func (r *CSVReader) Read(path string) ([][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open csv file %s: %w", path, err)
	}
	return ingest.ParseRows(textutil.StripBOM(string(data))), nil
}
