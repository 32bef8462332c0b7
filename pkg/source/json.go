// pkg/source/json.go
package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"datagroom/pkg/dataset"
)

// JSONSource reads a file holding an array of flat objects. Object keys
// union into columns in first-encountered order; null or absent values are
// missing cells.
type JSONSource struct {
	path string
	opts Options
}

// NewJSONSource creates a source for a .json file
func NewJSONSource(path string, opts Options) *JSONSource {
	return &JSONSource{path: path, opts: opts}
}

// Name returns the file name without its directory
func (s *JSONSource) Name() string {
	return filepath.Base(s.path)
}

// Load reads the whole file into a dataset
func (s *JSONSource) Load(ctx context.Context) (dataset.Dataset, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return dataset.Dataset{}, fmt.Errorf("failed to read %s: %w", s.path, err)
	}

	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return dataset.Dataset{}, fmt.Errorf("failed to parse %s as an array of objects: %w", s.path, err)
	}

	if s.opts.MaxRows > 0 && len(records) > s.opts.MaxRows {
		records = records[:s.opts.MaxRows]
	}

	// First pass: fix the column order from the keys as they first appear.
	header := make([]string, 0)
	seen := make(map[string]int)
	values := make([]map[string]interface{}, len(records))
	for i, raw := range records {
		if err := ctx.Err(); err != nil {
			return dataset.Dataset{}, err
		}

		keys, err := objectKeys(raw)
		if err != nil {
			return dataset.Dataset{}, fmt.Errorf("failed to parse record %d in %s: %w", i, s.path, err)
		}
		for _, key := range keys {
			if _, ok := seen[key]; !ok {
				seen[key] = len(header)
				header = append(header, key)
			}
		}

		if err := json.Unmarshal(raw, &values[i]); err != nil {
			return dataset.Dataset{}, fmt.Errorf("failed to parse record %d in %s: %w", i, s.path, err)
		}
	}

	// Second pass: lay the records out against the full header.
	rows := make([][]dataset.Value, len(records))
	for i, record := range values {
		cells := make([]dataset.Value, len(header))
		for c, key := range header {
			val, ok := record[key]
			if !ok {
				cells[c] = dataset.Value{Null: true}
				continue
			}
			cells[c] = jsonCell(val)
		}
		rows[i] = cells
	}

	ds, err := dataset.Assemble(header, rows)
	if err != nil {
		return dataset.Dataset{}, fmt.Errorf("failed to assemble dataset from %s: %w", s.path, err)
	}
	return ds, nil
}

// jsonCell converts a decoded JSON value to a cell. Nested objects and
// arrays are kept as their JSON text.
func jsonCell(v interface{}) dataset.Value {
	switch v.(type) {
	case map[string]interface{}, []interface{}:
		text, err := json.Marshal(v)
		if err != nil {
			return dataset.Value{Null: true}
		}
		return dataset.Value{Str: string(text)}
	default:
		return dataset.FromAny(v)
	}
}

// objectKeys returns an object's keys in document order
func objectKeys(raw json.RawMessage) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected an object, got %v", tok)
	}

	keys := make([]string, 0)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected an object key, got %v", tok)
		}
		keys = append(keys, key)

		if err := skipValue(dec); err != nil {
			return nil, err
		}
	}

	return keys, nil
}

// skipValue consumes one JSON value, descending through nested composites
func skipValue(dec *json.Decoder) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}

	delim, ok := tok.(json.Delim)
	if !ok || (delim != '{' && delim != '[') {
		return nil
	}

	depth := 1
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		if delim, ok := tok.(json.Delim); ok {
			switch delim {
			case '{', '[':
				depth++
			case '}', ']':
				depth--
			}
		}
	}
	return nil
}
