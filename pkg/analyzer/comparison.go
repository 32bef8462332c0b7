// pkg/analyzer/comparison.go
package analyzer

import "datagroom/pkg/stats"

// Delta captures how a cleaned dataset's summary differs from the raw
// one. Count deltas are cleaned minus raw, so reductions are negative;
// MissingValuesRemoved runs the other way and is expected non-negative,
// though the computation does not assume a sign.
type Delta struct {
	RowsChange               int     `json:"rows_change"`
	ColumnsChange            int     `json:"columns_change"`
	MissingValuesRemoved     int     `json:"missing_values_removed"`
	NumericColumnsChange     int     `json:"numeric_columns_change"`
	CategoricalColumnsChange int     `json:"categorical_columns_change"`
	RawCompleteness          float64 `json:"raw_completeness"`
	CleanedCompleteness      float64 `json:"cleaned_completeness"`
}

// Compare builds the before/after delta from two summaries.
func Compare(raw, cleaned Summary) Delta {
	return Delta{
		RowsChange:               cleaned.BasicInfo.Rows - raw.BasicInfo.Rows,
		ColumnsChange:            cleaned.BasicInfo.Columns - raw.BasicInfo.Columns,
		MissingValuesRemoved:     raw.BasicInfo.TotalMissing - cleaned.BasicInfo.TotalMissing,
		NumericColumnsChange:     cleaned.BasicInfo.NumericColumns - raw.BasicInfo.NumericColumns,
		CategoricalColumnsChange: cleaned.BasicInfo.CategoricalColumns - raw.BasicInfo.CategoricalColumns,
		RawCompleteness:          completeness(raw.BasicInfo),
		CleanedCompleteness:      completeness(cleaned.BasicInfo),
	}
}

// completeness is the share of cells that hold a value, in percent. An
// empty dataset counts as fully complete.
func completeness(info BasicInfo) float64 {
	total := info.Rows * info.Columns
	if total == 0 {
		return 100
	}
	return stats.Round((1-float64(info.TotalMissing)/float64(total))*100, 1)
}
