package output

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

func writeCollectionSummariesExcel(path string, summaries []CollectionSummary) error {
	file := excelize.NewFile()
	defer file.Close()

	sheet := file.GetSheetName(0)
	headers := []string{"Collection", "Products", "Priced", "MinPrice", "MaxPrice", "AvgPrice", "NewestUpload"}

	for col, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := file.SetCellValue(sheet, cell, header); err != nil {
			return fmt.Errorf("set excel header %s: %w", cell, err)
		}
	}

	for i, summary := range summaries {
		row := i + 2
		values := []string{
			summary.Collection,
			fmt.Sprintf("%d", summary.ProductCount),
			fmt.Sprintf("%d", summary.PricedCount),
			fmt.Sprintf("%.2f", summary.MinPrice),
			fmt.Sprintf("%.2f", summary.MaxPrice),
			fmt.Sprintf("%.2f", summary.AvgPrice),
			summary.NewestUpload.Format("2006-01-02"),
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
