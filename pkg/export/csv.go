// pkg/export/csv.go
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"datagroom/pkg/dataset"
)

// WriteCSV writes a dataset as delimited text, tab-separated when the path
// ends in .tsv. Missing cells become empty fields.
func WriteCSV(path string, ds dataset.Dataset) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if ds.Cols() == 0 {
		return f.Close()
	}

	w := csv.NewWriter(f)
	if strings.EqualFold(filepath.Ext(path), ".tsv") {
		w.Comma = '\t'
	}

	if err := w.Write(ds.ColumnNames()); err != nil {
		return fmt.Errorf("failed to write header to %s: %w", path, err)
	}

	record := make([]string, ds.Cols())
	for i := 0; i < ds.Rows(); i++ {
		for c, col := range ds.Columns {
			record[c] = col.CellString(i)
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write row %d to %s: %w", i, path, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}
