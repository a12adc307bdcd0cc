package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

func writeCollectionSummariesCSV(path string, summaries []CollectionSummary) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv output %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	headers := []string{"Collection", "Products", "Priced", "MinPrice", "MaxPrice", "AvgPrice", "NewestUpload"}
	if err := writer.Write(headers); err != nil {
		return fmt.Errorf("write csv headers: %w", err)
	}

	for _, summary := range summaries {
		row := []string{
			summary.Collection,
			strconv.Itoa(summary.ProductCount),
			strconv.Itoa(summary.PricedCount),
			fmt.Sprintf("%.2f", summary.MinPrice),
			fmt.Sprintf("%.2f", summary.MaxPrice),
			fmt.Sprintf("%.2f", summary.AvgPrice),
			summary.NewestUpload.Format("2006-01-02"),
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
