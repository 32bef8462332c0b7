// pkg/export/export.go
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"datagroom/pkg/dataset"
)

// WriteDataset writes a dataset to path, picking the format by extension
func WriteDataset(path string, ds dataset.Dataset) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".tsv":
		return WriteCSV(path, ds)
	case ".json":
		return WriteJSON(path, ds)
	case ".xlsx":
		return WriteXLSX(path, ds)
	default:
		return fmt.Errorf("unsupported export format %q: expected .csv, .tsv, .json, or .xlsx", filepath.Ext(path))
	}
}

// WriteArtifact persists a report structure as indented JSON
func WriteArtifact(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal artifact: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
