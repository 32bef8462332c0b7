// pkg/dataset/dataset.go
package dataset

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Kind classifies a column's storage type. Classification happens once,
// when a dataset is assembled; downstream code switches on Kind and
// never re-infers it from cell contents.
type Kind int

const (
	// Numeric columns store float64 cells.
	Numeric Kind = iota
	// Categorical columns store string cells.
	Categorical
)

// String returns the label used in summaries and reports
func (k Kind) String() string {
	switch k {
	case Numeric:
		return "numeric"
	case Categorical:
		return "categorical"
	default:
		return "unknown"
	}
}

// Column is a single named column with row-aligned cell storage.
// Floats is populated for Numeric columns, Strs for Categorical ones;
// Nulls marks missing cells and is always row-aligned.
type Column struct {
	Name   string
	Kind   Kind
	Floats []float64
	Strs   []string
	Nulls  []bool
}

// Dataset is an ordered collection of equal-length columns. Column order
// is significant and duplicate names are representable.
type Dataset struct {
	Columns []Column
}

// New builds a dataset from columns, validating that every column's cell
// storage matches its kind and that all columns have the same length.
func New(columns []Column) (Dataset, error) {
	rows := -1
	for i, col := range columns {
		var n int
		switch col.Kind {
		case Numeric:
			n = len(col.Floats)
			if col.Strs != nil {
				return Dataset{}, fmt.Errorf("column %q: numeric column carries string cells", col.Name)
			}
		case Categorical:
			n = len(col.Strs)
			if col.Floats != nil {
				return Dataset{}, fmt.Errorf("column %q: categorical column carries float cells", col.Name)
			}
		default:
			return Dataset{}, fmt.Errorf("column %q: unknown kind %d", col.Name, col.Kind)
		}
		if len(col.Nulls) != n {
			return Dataset{}, fmt.Errorf("column %q: null mask length %d does not match cell count %d",
				col.Name, len(col.Nulls), n)
		}
		if rows == -1 {
			rows = n
		} else if n != rows {
			return Dataset{}, fmt.Errorf("column %q has %d rows, expected %d", columns[i].Name, n, rows)
		}
	}
	return Dataset{Columns: columns}, nil
}

// Rows returns the number of rows (0 for a dataset with no columns).
func (d Dataset) Rows() int {
	if len(d.Columns) == 0 {
		return 0
	}
	return d.Columns[0].len()
}

// Cols returns the number of columns.
func (d Dataset) Cols() int {
	return len(d.Columns)
}

// Shape returns (rows, columns).
func (d Dataset) Shape() (int, int) {
	return d.Rows(), d.Cols()
}

// ColumnNames returns the column names in order.
func (d Dataset) ColumnNames() []string {
	names := make([]string, len(d.Columns))
	for i, col := range d.Columns {
		names[i] = col.Name
	}
	return names
}

// CountKind returns the number of columns of the given kind.
func (d Dataset) CountKind(k Kind) int {
	n := 0
	for _, col := range d.Columns {
		if col.Kind == k {
			n++
		}
	}
	return n
}

// TotalMissing returns the number of missing cells across all columns.
func (d Dataset) TotalMissing() int {
	total := 0
	for _, col := range d.Columns {
		total += col.Missing()
	}
	return total
}

// Clone returns a deep copy. Cleaning stages operate on clones so the
// caller's dataset is never mutated.
func (d Dataset) Clone() Dataset {
	out := Dataset{Columns: make([]Column, len(d.Columns))}
	for i, col := range d.Columns {
		out.Columns[i] = col.clone()
	}
	return out
}

// MemoryEstimateMB returns an approximate deep size of the cell storage
// in megabytes. The estimate is informational only.
func (d Dataset) MemoryEstimateMB() float64 {
	var bytes int
	for _, col := range d.Columns {
		switch col.Kind {
		case Numeric:
			bytes += 8 * len(col.Floats)
		case Categorical:
			for _, s := range col.Strs {
				bytes += len(s) + stringCellOverhead
			}
		}
		bytes += len(col.Nulls)
	}
	return float64(bytes) / (1024 * 1024)
}

// stringCellOverhead approximates the per-cell header cost of a string.
const stringCellOverhead = 16

// RowKey returns a signature for row i that is equal for two rows exactly
// when every cell matches, missing flags included.
func (d Dataset) RowKey(i int) string {
	var b strings.Builder
	for c, col := range d.Columns {
		if c > 0 {
			b.WriteByte(0x1f)
		}
		if col.Nulls[i] {
			b.WriteByte(0x00)
			continue
		}
		switch col.Kind {
		case Numeric:
			b.WriteString(strconv.FormatFloat(col.Floats[i], 'g', -1, 64))
		case Categorical:
			b.WriteString(col.Strs[i])
		}
	}
	return b.String()
}

// TakeRows returns a new dataset containing the given row indices in order.
func (d Dataset) TakeRows(indices []int) Dataset {
	out := Dataset{Columns: make([]Column, len(d.Columns))}
	for c, col := range d.Columns {
		nc := Column{Name: col.Name, Kind: col.Kind, Nulls: make([]bool, len(indices))}
		switch col.Kind {
		case Numeric:
			nc.Floats = make([]float64, len(indices))
			for j, i := range indices {
				nc.Floats[j] = col.Floats[i]
				nc.Nulls[j] = col.Nulls[i]
			}
		case Categorical:
			nc.Strs = make([]string, len(indices))
			for j, i := range indices {
				nc.Strs[j] = col.Strs[i]
				nc.Nulls[j] = col.Nulls[i]
			}
		}
		out.Columns[c] = nc
	}
	return out
}

func (c Column) len() int {
	return len(c.Nulls)
}

func (c Column) clone() Column {
	out := Column{Name: c.Name, Kind: c.Kind}
	if c.Floats != nil {
		out.Floats = append([]float64(nil), c.Floats...)
	}
	if c.Strs != nil {
		out.Strs = append([]string(nil), c.Strs...)
	}
	out.Nulls = append([]bool(nil), c.Nulls...)
	return out
}

// Missing returns the number of missing cells in the column.
func (c Column) Missing() int {
	n := 0
	for _, isNull := range c.Nulls {
		if isNull {
			n++
		}
	}
	return n
}

// NonMissingFloats returns the non-missing values of a numeric column.
func (c Column) NonMissingFloats() ([]float64, error) {
	if c.Kind != Numeric {
		return nil, errors.New("column is not numeric")
	}
	out := make([]float64, 0, len(c.Floats))
	for i, v := range c.Floats {
		if !c.Nulls[i] {
			out = append(out, v)
		}
	}
	return out, nil
}

// NonMissingStrs returns the non-missing values of a categorical column.
func (c Column) NonMissingStrs() ([]string, error) {
	if c.Kind != Categorical {
		return nil, errors.New("column is not categorical")
	}
	out := make([]string, 0, len(c.Strs))
	for i, v := range c.Strs {
		if !c.Nulls[i] {
			out = append(out, v)
		}
	}
	return out, nil
}

// CellString renders cell i for text output: empty string for missing,
// minimal decimal form for numeric values.
func (c Column) CellString(i int) string {
	if c.Nulls[i] {
		return ""
	}
	switch c.Kind {
	case Numeric:
		return strconv.FormatFloat(c.Floats[i], 'f', -1, 64)
	case Categorical:
		return c.Strs[i]
	default:
		return ""
	}
}

// CellValue returns cell i as a plain value: nil for missing, float64 for
// numeric, string for categorical. Used by JSON output.
func (c Column) CellValue(i int) interface{} {
	if c.Nulls[i] {
		return nil
	}
	switch c.Kind {
	case Numeric:
		return c.Floats[i]
	case Categorical:
		return c.Strs[i]
	default:
		return nil
	}
}
