// pkg/source/xlsx.go
package source

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"datagroom/pkg/dataset"
)

// XLSXSource reads the first sheet of an Excel workbook. The first row is
// the header; excelize trims trailing empty cells per row, so short rows
// are padded back out as missing.
type XLSXSource struct {
	path string
	opts Options
}

// NewXLSXSource creates a source for a .xlsx file
func NewXLSXSource(path string, opts Options) *XLSXSource {
	return &XLSXSource{path: path, opts: opts}
}

// Name returns the file name without its directory
func (s *XLSXSource) Name() string {
	return filepath.Base(s.path)
}

// Load reads the first sheet into a dataset
func (s *XLSXSource) Load(ctx context.Context) (dataset.Dataset, error) {
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return dataset.Dataset{}, fmt.Errorf("failed to open %s: %w", s.path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return dataset.Dataset{}, fmt.Errorf("%s has no sheets", s.path)
	}
	sheet := sheets[0]

	raw, err := f.GetRows(sheet)
	if err != nil {
		return dataset.Dataset{}, fmt.Errorf("failed to read sheet %q in %s: %w", sheet, s.path, err)
	}
	if len(raw) == 0 {
		return dataset.Dataset{}, nil
	}

	header := raw[0]
	body := raw[1:]
	if s.opts.MaxRows > 0 && len(body) > s.opts.MaxRows {
		body = body[:s.opts.MaxRows]
	}

	rows := make([][]dataset.Value, len(body))
	for i, record := range body {
		if err := ctx.Err(); err != nil {
			return dataset.Dataset{}, err
		}
		if len(record) > len(header) {
			return dataset.Dataset{}, fmt.Errorf("row %d in %s has %d cells, expected %d", i+1, s.path, len(record), len(header))
		}

		cells := make([]dataset.Value, len(header))
		for c := range header {
			if c < len(record) {
				cells[c] = dataset.FromString(record[c])
			} else {
				cells[c] = dataset.Value{Null: true}
			}
		}
		rows[i] = cells
	}

	ds, err := dataset.Assemble(header, rows)
	if err != nil {
		return dataset.Dataset{}, fmt.Errorf("failed to assemble dataset from %s: %w", s.path, err)
	}
	return ds, nil
}
