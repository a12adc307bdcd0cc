package ingest

import (
	"fmt"
	"strings"
	"time"

	"shopfeed/catalog"
	"shopfeed/internal/mediaurl"
)

// Options tune one normalization pass. The zero value is ready to use.
type Options struct {
	// Now supplies the anchor for synthesized upload timestamps; nil means
	// time.Now. Rows without a parseable date get the anchor minus one
	// second per data-row index, so a newest-first sort reproduces file
	// order.
	Now func() time.Time

	// ExtraAliases extends the built-in header vocabulary. Keys are
	// canonical field names, values additional accepted spellings.
	ExtraAliases map[string][]string

	// DefaultCollection fills the collection field for rows where the
	// file carries none.
	DefaultCollection string
}

// Normalize turns a row matrix (header row first) into canonical products.
// Inputs with fewer than two rows yield an empty, non-nil slice. Rows
// whose name or image URL come out empty are dropped; surviving records
// keep file order. Normalize never fails: malformed content degrades to
// fewer records, not errors.
func Normalize(rows [][]string, opts Options) []catalog.Product {
	products := []catalog.Product{}
	if len(rows) < 2 {
		return products
	}

	cols := resolveColumns(rows[0], opts.ExtraAliases)
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	anchor := now().UnixMilli()

	for i, row := range rows[1:] {
		product := buildProduct(row, i, cols, anchor, opts.DefaultCollection)
		if product.Name == "" || product.ImageURL == "" {
			continue
		}
		products = append(products, product)
	}
	return products
}

// ParseText tokenizes raw CSV text and normalizes the result in one step.
func ParseText(text string, opts Options) []catalog.Product {
	return Normalize(ParseRows(text), opts)
}

func buildProduct(row []string, index int, cols columns, anchor int64, defaultCollection string) catalog.Product {
	name := cellAt(row, cols.name)
	image := mediaurl.Resolve(cellAt(row, cols.image))

	handle := cellAt(row, cols.handle)
	if handle == "" {
		handle = fmt.Sprintf("item-%d", index)
	}
	collection := cellAt(row, cols.collection)
	if collection == "" {
		collection = defaultCollection
	}

	return catalog.Product{
		HandleID:     handle,
		Name:         name,
		Description:  cellAt(row, cols.description),
		ImageURL:     image.Full,
		ThumbnailURL: image.Thumb,
		Price:        cellAt(row, cols.price),
		SKU:          cellAt(row, cols.sku),
		Collection:   collection,
		Size:         ExtractSize(cellAt(row, cols.size), name),
		DateUploaded: uploadTimestamp(cellAt(row, cols.date), index, anchor),
	}
}

func uploadTimestamp(value string, index int, anchor int64) int64 {
	if parsed, err := parseUploadDate(value); err == nil {
		return parsed.UnixMilli()
	}
	return anchor - int64(index)*1000
}

// cellAt treats out-of-range indexes as empty cells so ragged rows never
// panic.
func cellAt(row []string, index int) string {
	if index < 0 || index >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[index])
}
