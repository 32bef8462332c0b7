// pkg/source/snowflake.go
package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/snowflakedb/gosnowflake" // Snowflake driver
	"go.uber.org/zap"

	"datagroom/pkg/config"
	"datagroom/pkg/dataset"
)

// SnowflakeSource loads a dataset from a Snowflake table or query. Table
// names are passed through unquoted, so Snowflake resolves them
// case-insensitively.
type SnowflakeSource struct {
	dsn    string
	cfg    *config.SnowflakeConfig
	opts   Options
	logger *zap.Logger
}

// NewSnowflakeSource creates a snowflake source. When dsn is empty it is
// built from cfg, which must then validate.
func NewSnowflakeSource(dsn string, cfg *config.SnowflakeConfig, opts Options) (*SnowflakeSource, error) {
	if opts.Table == "" && opts.Query == "" {
		return nil, errors.New("a table or query is required for a snowflake source")
	}

	if dsn == "" {
		if cfg == nil {
			return nil, errors.New("snowflake configuration is required when no DSN is given")
		}
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid snowflake configuration: %w", err)
		}
		built, err := cfg.DSN()
		if err != nil {
			return nil, err
		}
		dsn = built
	}

	return &SnowflakeSource{
		dsn:    dsn,
		cfg:    cfg,
		opts:   opts,
		logger: zap.L().Named("snowflake-source"),
	}, nil
}

// Name returns the table name, or a fixed label for ad hoc queries
func (s *SnowflakeSource) Name() string {
	if s.opts.Table != "" {
		return s.opts.Table
	}
	return "snowflake-query"
}

// Load connects, runs the query and drains the result set
func (s *SnowflakeSource) Load(ctx context.Context) (dataset.Dataset, error) {
	db, err := sqlx.Open("snowflake", s.dsn)
	if err != nil {
		return dataset.Dataset{}, fmt.Errorf("failed to open snowflake connection: %w", err)
	}
	defer db.Close()

	if s.cfg != nil {
		applyPoolSettings(db, s.cfg.MaxOpenConns, s.cfg.MaxIdleConns, s.cfg.ConnMaxLifetime, s.cfg.ConnMaxIdleTime)
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		return dataset.Dataset{}, fmt.Errorf("failed to connect to snowflake: %w", err)
	}

	queryCtx := ctx
	if s.cfg != nil && s.cfg.QueryTimeout > 0 {
		var cancelQuery context.CancelFunc
		queryCtx, cancelQuery = context.WithTimeout(ctx, s.cfg.QueryTimeout)
		defer cancelQuery()
	}

	query := s.opts.Query
	if query == "" {
		query = buildSelect(s.opts.Table, s.opts.MaxRows)
	}
	s.logger.Debug("Running snowflake query", zap.String("query", query))

	rows, err := db.QueryxContext(queryCtx, query)
	if err != nil {
		return dataset.Dataset{}, fmt.Errorf("failed to run snowflake query: %w", err)
	}
	defer rows.Close()

	ds, err := scanDataset(queryCtx, rows, s.opts.MaxRows)
	if err != nil {
		return dataset.Dataset{}, fmt.Errorf("failed to read snowflake rows: %w", err)
	}

	s.logger.Info("Loaded dataset from snowflake",
		zap.Int("rows", ds.Rows()),
		zap.Int("columns", ds.Cols()))
	return ds, nil
}
