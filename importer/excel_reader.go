package importer

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ExcelReader loads the first sheet of an xlsx/xls workbook as a row
// matrix. Cell values arrive formatted the way excelize renders them.
type ExcelReader struct{}

func (r *ExcelReader) Read(path string) ([][]string, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open excel file %s: %w", path, err)
	}
	defer file.Close()

	sheetName := file.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("excel file has no sheets: %s", path)
	}

	rows, err := file.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("read rows from sheet %s: %w", sheetName, err)
	}
	return rows, nil
}
