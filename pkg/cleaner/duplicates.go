// pkg/cleaner/duplicates.go
package cleaner

import (
	"fmt"

	"datagroom/pkg/dataset"
)

// DropDuplicates removes rows whose every cell, missing flags included,
// matches an earlier row. The first occurrence survives and row order is
// preserved.
func DropDuplicates(ds dataset.Dataset) (dataset.Dataset, []Action) {
	rows := ds.Rows()
	seen := make(map[string]struct{}, rows)
	keep := make([]int, 0, rows)
	for i := 0; i < rows; i++ {
		key := ds.RowKey(i)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		keep = append(keep, i)
	}

	removed := rows - len(keep)
	if removed == 0 {
		return ds.Clone(), []Action{{
			Kind:    ActionDropDuplicates,
			Message: "No duplicate rows found",
		}}
	}
	return ds.TakeRows(keep), []Action{{
		Kind:    ActionDropDuplicates,
		Count:   removed,
		Message: fmt.Sprintf("Removed %d duplicate rows", removed),
	}}
}
