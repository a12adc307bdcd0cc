package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"shopfeed/catalog"
	"strconv"
)

type CSVWriter struct{}

func (w *CSVWriter) Write(path string, products []catalog.Product) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv output %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	headers := []string{"HandleID", "Name", "Description", "ImageURL", "ThumbnailURL", "Price", "SKU", "Collection", "Size", "DateUploaded", "SourceFormat", "SourceFile"}
	if err := writer.Write(headers); err != nil {
		return fmt.Errorf("write csv headers: %w", err)
	}

	for _, product := range products {
		row := []string{
			product.HandleID,
			product.Name,
			product.Description,
			product.ImageURL,
			product.ThumbnailURL,
			product.Price,
			product.SKU,
			product.Collection,
			product.Size,
			strconv.FormatInt(product.DateUploaded, 10),
			product.SourceFormat,
			product.SourceFile,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv output: %w", err)
	}

	return nil
}
