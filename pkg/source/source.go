// pkg/source/source.go
package source

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"datagroom/pkg/config"
	"datagroom/pkg/dataset"
)

// Source loads a dataset from a file or a database
type Source interface {
	// Name identifies the source in logs, reports, and artifact names
	Name() string

	// Load reads the full dataset into memory
	Load(ctx context.Context) (dataset.Dataset, error)
}

// Options adjusts how sources read data
type Options struct {
	// MaxRows caps the number of data rows read; 0 means unlimited
	MaxRows int
	// Table selects a database table to read in full
	Table string
	// Query overrides Table with an arbitrary SELECT statement
	Query string
}

// New picks a source implementation for the given target. File targets are
// matched by extension, database targets by DSN scheme ("postgres://...",
// "snowflake://...") or by the bare scheme name with connection details
// taken from the configuration.
func New(target string, cfg *config.Config, opts Options) (Source, error) {
	switch {
	case target == "postgres", strings.HasPrefix(target, "postgres://"), strings.HasPrefix(target, "postgresql://"):
		dsn := ""
		if target != "postgres" {
			dsn = target
		}
		var pgCfg *config.PostgresConfig
		if cfg != nil {
			pgCfg = cfg.Postgres
		}
		return NewPostgresSource(dsn, pgCfg, opts)

	case target == "snowflake", strings.HasPrefix(target, "snowflake://"):
		dsn := strings.TrimPrefix(target, "snowflake://")
		if dsn == target {
			dsn = ""
		}
		var sfCfg *config.SnowflakeConfig
		if cfg != nil {
			sfCfg = cfg.Snowflake
		}
		return NewSnowflakeSource(dsn, sfCfg, opts)
	}

	switch strings.ToLower(filepath.Ext(target)) {
	case ".csv", ".tsv":
		return NewCSVSource(target, opts), nil
	case ".json":
		return NewJSONSource(target, opts), nil
	case ".xlsx":
		return NewXLSXSource(target, opts), nil
	default:
		return nil, fmt.Errorf("unsupported source %q: expected a .csv, .tsv, .json, or .xlsx file, or a postgres/snowflake DSN", target)
	}
}
