package output

import (
	"encoding/json"
	"fmt"
	"os"
	"shopfeed/catalog"
)

type JSONWriter struct{}

// productExport keeps the JSON keys aligned with the normalized record
// fields instead of the Go struct names.
type productExport struct {
	HandleID     string `json:"handleId"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	ImageURL     string `json:"imageUrl"`
	ThumbnailURL string `json:"thumbnailUrl"`
	Price        string `json:"price"`
	SKU          string `json:"sku"`
	Collection   string `json:"collection"`
	Size         string `json:"size"`
	DateUploaded int64  `json:"dateUploaded"`
	SourceFormat string `json:"sourceFormat"`
	SourceFile   string `json:"sourceFile"`
}

func (w *JSONWriter) Write(path string, products []catalog.Product) error {
	exports := make([]productExport, 0, len(products))
	for _, product := range products {
		exports = append(exports, productExport{
			HandleID:     product.HandleID,
			Name:         product.Name,
			Description:  product.Description,
			ImageURL:     product.ImageURL,
			ThumbnailURL: product.ThumbnailURL,
			Price:        product.Price,
			SKU:          product.SKU,
			Collection:   product.Collection,
			Size:         product.Size,
			DateUploaded: product.DateUploaded,
			SourceFormat: product.SourceFormat,
			SourceFile:   product.SourceFile,
		})
	}

	data, err := json.MarshalIndent(exports, "", "  ")
	if err != nil {
		return fmt.Errorf("encode json output: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json output %s: %w", path, err)
	}

	return nil
}
