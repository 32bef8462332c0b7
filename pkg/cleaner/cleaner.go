// pkg/cleaner/cleaner.go
package cleaner

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"datagroom/pkg/dataset"
)

// Cleaner runs the fixed cleaning pipeline over a dataset: column-name
// normalization, missing-value resolution, duplicate removal, outlier
// capping. The stage order never changes and no stage can be skipped.
type Cleaner struct {
	logger   *zap.Logger
	observer Observer
}

// NewCleaner creates a Cleaner instance
func NewCleaner(logger *zap.Logger) (*Cleaner, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	return &Cleaner{logger: logger.Named("cleaner")}, nil
}

// WithObserver sets an observer notified of every action record as it is
// appended. Passing nil disables notification.
func (c *Cleaner) WithObserver(o Observer) *Cleaner {
	c.observer = o
	return c
}

// Clean runs the full pipeline on a copy of ds and returns the cleaned
// dataset together with the ordered action log. The input dataset is not
// modified. Cleaning a dataset twice is a fixed point: the second run
// emits no mutating records.
func (c *Cleaner) Clean(ds dataset.Dataset) (dataset.Dataset, []Action) {
	startRows, startCols := ds.Shape()
	start := time.Now()
	c.logger.Info("Starting cleaning pipeline",
		zap.Int("rows", startRows),
		zap.Int("columns", startCols))

	var log []Action

	out, actions := NormalizeColumns(ds)
	log = c.append(log, actions)

	out, actions = ResolveMissing(out)
	log = c.append(log, actions)

	out, actions = DropDuplicates(out)
	log = c.append(log, actions)

	out, actions = CapOutliers(out)
	log = c.append(log, actions)

	endRows, endCols := out.Shape()
	log = c.append(log, []Action{{
		Kind:    ActionSummary,
		Message: fmt.Sprintf("Cleaning complete: %dx%d -> %dx%d", startRows, startCols, endRows, endCols),
	}})

	c.logger.Info("Cleaning pipeline finished",
		zap.Int("rows", endRows),
		zap.Int("columns", endCols),
		zap.Int("actions", len(log)),
		zap.Duration("duration", time.Since(start)))
	return out, log
}

func (c *Cleaner) append(log []Action, actions []Action) []Action {
	for _, a := range actions {
		log = append(log, a)
		if c.observer != nil {
			c.observer.OnAction(a)
		}
	}
	return log
}
