// pkg/cleaner/action.go
package cleaner

import (
	"encoding/json"
	"fmt"
)

// ActionKind identifies which pipeline stage produced an action record
type ActionKind int

const (
	// ActionNormalize covers column-name standardization
	ActionNormalize ActionKind = iota
	// ActionDropColumn covers near-empty column removal
	ActionDropColumn
	// ActionFillMissing covers missing-value imputation
	ActionFillMissing
	// ActionDropDuplicates covers duplicate-row removal
	ActionDropDuplicates
	// ActionCapOutliers covers IQR fence capping
	ActionCapOutliers
	// ActionSummary is the final shape-change record
	ActionSummary
)

// String returns the stage label used in logs and serialized output
func (k ActionKind) String() string {
	switch k {
	case ActionNormalize:
		return "normalize_columns"
	case ActionDropColumn:
		return "drop_column"
	case ActionFillMissing:
		return "fill_missing"
	case ActionDropDuplicates:
		return "drop_duplicates"
	case ActionCapOutliers:
		return "cap_outliers"
	case ActionSummary:
		return "summary"
	default:
		return fmt.Sprintf("unknown(%d)", k)
	}
}

// MarshalJSON serializes the kind as its stage label
func (k ActionKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// Action is one immutable record of something the cleaning pipeline did.
// Count holds the number of affected units (columns standardized, cells
// filled, rows removed, values capped); a stage that found nothing to do
// still emits a record with Count 0.
type Action struct {
	Kind    ActionKind `json:"kind"`
	Column  string     `json:"column,omitempty"`
	Count   int        `json:"count"`
	Message string     `json:"message"`
}

// Mutating reports whether the record describes an actual data change,
// as opposed to a no-op notice or the summary line.
func (a Action) Mutating() bool {
	switch a.Kind {
	case ActionDropColumn, ActionFillMissing, ActionDropDuplicates, ActionCapOutliers:
		return a.Count > 0
	default:
		return false
	}
}
