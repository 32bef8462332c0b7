// pkg/cleaner/normalize.go
package cleaner

import (
	"fmt"
	"regexp"
	"strings"

	"datagroom/pkg/dataset"
)

var nonIdentifier = regexp.MustCompile(`[^a-z0-9_]`)

// NormalizeName standardizes a single column name: surrounding whitespace
// trimmed, lowercased, spaces and hyphens replaced with underscores, every
// remaining special character removed. Applying it twice is a no-op.
func NormalizeName(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	return nonIdentifier.ReplaceAllString(s, "")
}

// NormalizeColumns standardizes every column name in the dataset. Names
// that collide after normalization are left as duplicates; columns are
// positional and never merged.
func NormalizeColumns(ds dataset.Dataset) (dataset.Dataset, []Action) {
	out := ds.Clone()
	for i := range out.Columns {
		out.Columns[i].Name = NormalizeName(out.Columns[i].Name)
	}
	return out, []Action{{
		Kind:    ActionNormalize,
		Count:   len(out.Columns),
		Message: fmt.Sprintf("Standardized %d column names", len(out.Columns)),
	}}
}
