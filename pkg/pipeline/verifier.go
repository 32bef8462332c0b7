package pipeline

import (
	"fmt"

	"go.uber.org/zap"

	"datagroom/pkg/cleaner"
	"datagroom/pkg/dataset"
)

// Issue represents a cleaning guarantee that does not hold on the output
type Issue struct {
	Check  string `json:"check"`
	Column string `json:"column,omitempty"`
	Count  int    `json:"count,omitempty"`
	Detail string `json:"detail"`
}

// Verifier re-checks cleaning guarantees on a cleaned dataset
type Verifier struct {
	logger *zap.Logger
}

// NewVerifier creates a new verifier
func NewVerifier(logger *zap.Logger) *Verifier {
	return &Verifier{logger: logger}
}

// Verify runs every check and collects the issues found. Findings are
// advisory: the runner surfaces them as warnings, not failures.
func (v *Verifier) Verify(ds dataset.Dataset) []Issue {
	issues := make([]Issue, 0)
	issues = append(issues, v.checkColumnNames(ds)...)
	issues = append(issues, v.checkMissingValues(ds)...)
	issues = append(issues, v.checkDuplicateRows(ds)...)
	issues = append(issues, v.checkOutliers(ds)...)

	if v.logger != nil {
		if len(issues) == 0 {
			v.logger.Info("Verification successful",
				zap.Int("rows", ds.Rows()),
				zap.Int("columns", ds.Cols()))
		} else {
			v.logger.Warn("Verification found issues",
				zap.Int("issues", len(issues)))
		}
	}

	return issues
}

// checkColumnNames verifies every column name is in canonical form
func (v *Verifier) checkColumnNames(ds dataset.Dataset) []Issue {
	issues := make([]Issue, 0)

	for _, col := range ds.Columns {
		if canonical := cleaner.NormalizeName(col.Name); canonical != col.Name {
			issues = append(issues, Issue{
				Check:  "COLUMN_NAME_FORMAT",
				Column: col.Name,
				Detail: fmt.Sprintf("column name %q is not canonical (expected %q)", col.Name, canonical),
			})
		}
	}

	return issues
}

// checkMissingValues verifies no missing cells survived cleaning
func (v *Verifier) checkMissingValues(ds dataset.Dataset) []Issue {
	issues := make([]Issue, 0)

	for _, col := range ds.Columns {
		if missing := col.Missing(); missing > 0 {
			issues = append(issues, Issue{
				Check:  "MISSING_VALUES_REMAIN",
				Column: col.Name,
				Count:  missing,
				Detail: fmt.Sprintf("column %q still has %d missing values", col.Name, missing),
			})
		}
	}

	return issues
}

// checkDuplicateRows verifies no two rows share the same cell values
func (v *Verifier) checkDuplicateRows(ds dataset.Dataset) []Issue {
	issues := make([]Issue, 0)

	seen := make(map[string]struct{}, ds.Rows())
	duplicates := 0
	for i := 0; i < ds.Rows(); i++ {
		key := ds.RowKey(i)
		if _, ok := seen[key]; ok {
			duplicates++
			continue
		}
		seen[key] = struct{}{}
	}

	if duplicates > 0 {
		issues = append(issues, Issue{
			Check:  "DUPLICATE_ROWS_REMAIN",
			Count:  duplicates,
			Detail: fmt.Sprintf("%d duplicate rows remain after cleaning", duplicates),
		})
	}

	return issues
}

// checkOutliers verifies numeric values sit within freshly derived IQR
// fences. Capping can shift the quartiles, so a residual outlier here is
// expected on some shapes of data and reported for awareness only.
func (v *Verifier) checkOutliers(ds dataset.Dataset) []Issue {
	issues := make([]Issue, 0)

	for _, col := range ds.Columns {
		if col.Kind != dataset.Numeric {
			continue
		}

		values, err := col.NonMissingFloats()
		if err != nil || len(values) == 0 {
			continue
		}

		lower, upper := cleaner.Fences(values)
		outliers := 0
		for _, value := range values {
			if value < lower || value > upper {
				outliers++
			}
		}

		if outliers > 0 {
			issues = append(issues, Issue{
				Check:  "OUTLIERS_REMAIN",
				Column: col.Name,
				Count:  outliers,
				Detail: fmt.Sprintf("column %q has %d values outside [%g, %g]", col.Name, outliers, lower, upper),
			})
		}
	}

	return issues
}
