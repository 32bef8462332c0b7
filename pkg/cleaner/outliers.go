// pkg/cleaner/outliers.go
package cleaner

import (
	"fmt"

	"datagroom/pkg/dataset"
	"datagroom/pkg/stats"
)

// iqrMultiplier sets the fence width around the interquartile range.
const iqrMultiplier = 1.5

// Fences returns the lower and upper IQR fences for a set of values.
// With zero variance both fences collapse onto the same point.
func Fences(values []float64) (float64, float64) {
	q1, q3 := stats.Quartiles(values)
	iqr := q3 - q1
	return q1 - iqrMultiplier*iqr, q3 + iqrMultiplier*iqr
}

// CapOutliers clamps every numeric value lying strictly outside the IQR
// fences of its column onto the nearest fence. Values are moved, never
// removed, so row count and alignment are unchanged. Missing cells are
// ignored both when deriving fences and when capping.
func CapOutliers(ds dataset.Dataset) (dataset.Dataset, []Action) {
	out := ds.Clone()
	var actions []Action
	for i := range out.Columns {
		col := &out.Columns[i]
		if col.Kind != dataset.Numeric {
			continue
		}
		values, _ := col.NonMissingFloats()
		if len(values) == 0 {
			continue
		}
		lower, upper := Fences(values)

		capped := 0
		for j := range col.Floats {
			if col.Nulls[j] {
				continue
			}
			switch {
			case col.Floats[j] < lower:
				col.Floats[j] = lower
				capped++
			case col.Floats[j] > upper:
				col.Floats[j] = upper
				capped++
			}
		}
		if capped > 0 {
			actions = append(actions, Action{
				Kind:    ActionCapOutliers,
				Column:  col.Name,
				Count:   capped,
				Message: fmt.Sprintf("Capped %d outliers in '%s'", capped, col.Name),
			})
		}
	}
	if len(actions) == 0 {
		actions = append(actions, Action{
			Kind:    ActionCapOutliers,
			Message: "No outliers detected in numeric columns",
		})
	}
	return out, actions
}
