// pkg/source/database.go
package source

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"datagroom/pkg/dataset"
)

// connectTimeout bounds the initial ping when opening a database source
const connectTimeout = 10 * time.Second

// applyPoolSettings configures the connection pool, skipping unset values
func applyPoolSettings(db *sqlx.DB, maxOpen, maxIdle int, maxLifetime, maxIdleTime time.Duration) {
	if maxOpen > 0 {
		db.SetMaxOpenConns(maxOpen)
	}
	if maxIdle > 0 {
		db.SetMaxIdleConns(maxIdle)
	}
	if maxLifetime > 0 {
		db.SetConnMaxLifetime(maxLifetime)
	}
	if maxIdleTime > 0 {
		db.SetConnMaxIdleTime(maxIdleTime)
	}
}

// buildSelect returns a full-table SELECT, bounded by maxRows when positive
func buildSelect(table string, maxRows int) string {
	query := "SELECT * FROM " + table
	if maxRows > 0 {
		query += fmt.Sprintf(" LIMIT %d", maxRows)
	}
	return query
}

// scanDataset drains a result set into a dataset, stopping after maxRows
// rows when the cap is positive
func scanDataset(ctx context.Context, rows *sqlx.Rows, maxRows int) (dataset.Dataset, error) {
	header, err := rows.Columns()
	if err != nil {
		return dataset.Dataset{}, fmt.Errorf("failed to read result columns: %w", err)
	}

	var records [][]dataset.Value
	for rows.Next() {
		if err := ctx.Err(); err != nil {
			return dataset.Dataset{}, err
		}

		raw, err := rows.SliceScan()
		if err != nil {
			return dataset.Dataset{}, fmt.Errorf("failed to scan row: %w", err)
		}

		cells := make([]dataset.Value, len(raw))
		for i, v := range raw {
			cells[i] = dataset.FromAny(v)
		}
		records = append(records, cells)

		if maxRows > 0 && len(records) >= maxRows {
			break
		}
	}
	if err := rows.Err(); err != nil {
		return dataset.Dataset{}, fmt.Errorf("failed to iterate result rows: %w", err)
	}

	return dataset.Assemble(header, records)
}
