// pkg/export/json.go
package export

import (
	"encoding/json"
	"fmt"
	"os"

	"datagroom/pkg/dataset"
)

// WriteJSON writes a dataset as an indented array of objects. Missing
// cells become JSON nulls; object keys marshal in sorted order.
func WriteJSON(path string, ds dataset.Dataset) error {
	records := make([]map[string]interface{}, ds.Rows())
	for i := range records {
		record := make(map[string]interface{}, ds.Cols())
		for _, col := range ds.Columns {
			record[col.Name] = col.CellValue(i)
		}
		records[i] = record
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal dataset: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
