// pkg/export/xlsx.go
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"datagroom/pkg/dataset"
)

// WriteXLSX writes a dataset to a single-sheet workbook with a header row.
// Missing cells are left blank.
func WriteXLSX(path string, ds dataset.Dataset) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for c, col := range ds.Columns {
		cell, err := excelize.CoordinatesToCellName(c+1, 1)
		if err != nil {
			return fmt.Errorf("failed to build cell reference: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, col.Name); err != nil {
			return fmt.Errorf("failed to write header cell %s: %w", cell, err)
		}
	}

	for i := 0; i < ds.Rows(); i++ {
		for c, col := range ds.Columns {
			if col.Nulls[i] {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, i+2)
			if err != nil {
				return fmt.Errorf("failed to build cell reference: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, col.CellValue(i)); err != nil {
				return fmt.Errorf("failed to write cell %s: %w", cell, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}
