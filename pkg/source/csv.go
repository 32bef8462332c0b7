// pkg/source/csv.go
package source

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"datagroom/pkg/dataset"
)

// CSVSource reads a delimited text file. The delimiter is chosen by
// extension: comma for .csv, tab for .tsv. The first record is the header.
type CSVSource struct {
	path  string
	comma rune
	opts  Options
}

// NewCSVSource creates a source for a .csv or .tsv file
func NewCSVSource(path string, opts Options) *CSVSource {
	comma := ','
	if strings.EqualFold(filepath.Ext(path), ".tsv") {
		comma = '\t'
	}
	return &CSVSource{path: path, comma: comma, opts: opts}
}

// Name returns the file name without its directory
func (s *CSVSource) Name() string {
	return filepath.Base(s.path)
}

// Load reads the whole file into a dataset
func (s *CSVSource) Load(ctx context.Context) (dataset.Dataset, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return dataset.Dataset{}, fmt.Errorf("failed to open %s: %w", s.path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = s.comma

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return dataset.Dataset{}, nil
	}
	if err != nil {
		return dataset.Dataset{}, fmt.Errorf("failed to read header from %s: %w", s.path, err)
	}

	rows := make([][]dataset.Value, 0)
	for {
		if err := ctx.Err(); err != nil {
			return dataset.Dataset{}, err
		}
		if s.opts.MaxRows > 0 && len(rows) >= s.opts.MaxRows {
			break
		}

		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return dataset.Dataset{}, fmt.Errorf("failed to read row %d from %s: %w", len(rows)+1, s.path, err)
		}

		cells := make([]dataset.Value, len(record))
		for i, raw := range record {
			cells[i] = dataset.FromString(raw)
		}
		rows = append(rows, cells)
	}

	ds, err := dataset.Assemble(header, rows)
	if err != nil {
		return dataset.Dataset{}, fmt.Errorf("failed to assemble dataset from %s: %w", s.path, err)
	}
	return ds, nil
}
