package output

import (
	"fmt"
	"shopfeed/catalog"
	"strconv"

	"github.com/xuri/excelize/v2"
)

type ExcelWriter struct{}

func (w *ExcelWriter) Write(path string, products []catalog.Product) error {
	file := excelize.NewFile()
	defer file.Close()

	sheet := file.GetSheetName(0)
	headers := []string{"HandleID", "Name", "Description", "ImageURL", "ThumbnailURL", "Price", "SKU", "Collection", "Size", "DateUploaded", "SourceFormat", "SourceFile"}

	for col, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := file.SetCellValue(sheet, cell, header); err != nil {
			return fmt.Errorf("set excel header %s: %w", cell, err)
		}
	}

	for i, product := range products {
		row := i + 2
		values := []string{
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

		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := file.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("set excel value %s: %w", cell, err)
			}
		}
	}

	if err := file.SaveAs(path); err != nil {
		return fmt.Errorf("save excel output %s: %w", path, err)
	}

	return nil
}
