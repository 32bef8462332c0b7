// pkg/dataset/value.go
package dataset

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// Value is a single raw cell as delivered by a source, before column
// kinds are fixed. Sources collect values row by row; Assemble then
// infers each column's kind and builds typed storage.
type Value struct {
	Num   float64
	Str   string
	IsNum bool
	Null  bool
}

// missingTokens are the cell spellings treated as missing on ingestion,
// matched case-insensitively after trimming.
var missingTokens = map[string]struct{}{
	"":     {},
	"na":   {},
	"n/a":  {},
	"null": {},
	"nan":  {},
}

// IsMissingToken reports whether a raw string cell denotes a missing value.
func IsMissingToken(s string) bool {
	_, ok := missingTokens[strings.ToLower(strings.TrimSpace(s))]
	return ok
}

// FromString parses a raw text cell: missing tokens become null, values
// that parse as numbers are flagged numeric, everything else stays text.
func FromString(s string) Value {
	if IsMissingToken(s) {
		return Value{Null: true}
	}
	trimmed := strings.TrimSpace(s)
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return Value{Num: f, Str: trimmed, IsNum: true}
	}
	return Value{Str: s}
}

// FromAny converts an arbitrary scanned value (database drivers, decoded
// JSON) into a cell. Numeric types coerce through cast; booleans and
// timestamps become text.
func FromAny(v interface{}) Value {
	switch val := v.(type) {
	case nil:
		return Value{Null: true}
	case bool:
		return Value{Str: strconv.FormatBool(val)}
	case time.Time:
		return Value{Str: val.Format(time.RFC3339)}
	case string:
		return FromString(val)
	case []byte:
		return FromString(string(val))
	default:
		if f, err := cast.ToFloat64E(v); err == nil {
			return Value{Num: f, Str: cast.ToString(v), IsNum: true}
		}
		return FromString(cast.ToString(v))
	}
}

// Assemble builds a dataset from a header and row-major raw cells. A
// column is Numeric when no non-missing cell is non-numeric; otherwise it
// is Categorical and numeric cells keep their trimmed text form.
func Assemble(header []string, rows [][]Value) (Dataset, error) {
	for i, row := range rows {
		if len(row) != len(header) {
			return Dataset{}, fmt.Errorf("row %d has %d cells, expected %d", i, len(row), len(header))
		}
	}
	columns := make([]Column, len(header))
	for c, name := range header {
		numeric := true
		for _, row := range rows {
			cell := row[c]
			if !cell.Null && !cell.IsNum {
				numeric = false
				break
			}
		}

		col := Column{Name: name, Nulls: make([]bool, len(rows))}
		if numeric {
			col.Kind = Numeric
			col.Floats = make([]float64, len(rows))
			for i, row := range rows {
				col.Nulls[i] = row[c].Null
				col.Floats[i] = row[c].Num
			}
		} else {
			col.Kind = Categorical
			col.Strs = make([]string, len(rows))
			for i, row := range rows {
				col.Nulls[i] = row[c].Null
				col.Strs[i] = row[c].Str
			}
		}
		columns[c] = col
	}
	return New(columns)
}
