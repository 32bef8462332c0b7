// pkg/cleaner/missing.go
package cleaner

import (
	"fmt"

	"datagroom/pkg/dataset"
	"datagroom/pkg/stats"
)

// missingDropThreshold is the missing-cell ratio above which a column is
// removed instead of imputed.
const missingDropThreshold = 0.95

// ResolveMissing removes columns that are almost entirely missing, then
// fills the remaining gaps: median for numeric columns, most frequent
// value for categorical ones, the literal "Unknown" when a categorical
// column has no values at all.
func ResolveMissing(ds dataset.Dataset) (dataset.Dataset, []Action) {
	out := ds.Clone()
	rows := out.Rows()
	var actions []Action

	kept := make([]dataset.Column, 0, len(out.Columns))
	for _, col := range out.Columns {
		ratio := 0.0
		if rows > 0 {
			ratio = float64(col.Missing()) / float64(rows)
		}
		if ratio > missingDropThreshold {
			actions = append(actions, Action{
				Kind:    ActionDropColumn,
				Column:  col.Name,
				Count:   1,
				Message: fmt.Sprintf("Dropped column '%s' (%.1f%% missing)", col.Name, ratio*100),
			})
			continue
		}
		kept = append(kept, col)
	}
	if len(actions) == 0 {
		actions = append(actions, Action{
			Kind:    ActionDropColumn,
			Message: "No columns dropped (all below 95% missing threshold)",
		})
	}
	out.Columns = kept

	filledColumns := 0
	for i := range out.Columns {
		col := &out.Columns[i]
		missing := col.Missing()
		if missing == 0 {
			continue
		}
		var strategy string
		switch col.Kind {
		case dataset.Numeric:
			values, _ := col.NonMissingFloats()
			median := stats.Median(values)
			for j := range col.Nulls {
				if col.Nulls[j] {
					col.Floats[j] = median
					col.Nulls[j] = false
				}
			}
			strategy = "median"
		case dataset.Categorical:
			values, _ := col.NonMissingStrs()
			fill, ok := stats.Mode(values)
			strategy = "mode"
			if !ok {
				fill = "Unknown"
				strategy = "'Unknown'"
			}
			for j := range col.Nulls {
				if col.Nulls[j] {
					col.Strs[j] = fill
					col.Nulls[j] = false
				}
			}
		}
		filledColumns++
		actions = append(actions, Action{
			Kind:    ActionFillMissing,
			Column:  col.Name,
			Count:   missing,
			Message: fmt.Sprintf("Filled %d missing values in '%s' with %s", missing, col.Name, strategy),
		})
	}
	if filledColumns == 0 {
		actions = append(actions, Action{
			Kind:    ActionFillMissing,
			Message: "No missing values to fill",
		})
	}

	return out, actions
}
