// pkg/source/postgres.go
package source

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"datagroom/pkg/config"
	"datagroom/pkg/dataset"
)

// PostgresSource loads a dataset from a PostgreSQL table or query
type PostgresSource struct {
	dsn    string
	cfg    *config.PostgresConfig
	opts   Options
	logger *zap.Logger
}

// NewPostgresSource creates a postgres source. When dsn is empty the
// connection string is built from cfg, which must then validate.
func NewPostgresSource(dsn string, cfg *config.PostgresConfig, opts Options) (*PostgresSource, error) {
	if opts.Table == "" && opts.Query == "" {
		return nil, errors.New("a table or query is required for a postgres source")
	}

	if dsn == "" {
		if cfg == nil {
			return nil, errors.New("postgres configuration is required when no DSN is given")
		}
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid postgres configuration: %w", err)
		}
		dsn = cfg.ConnectionString()
	}

	return &PostgresSource{
		dsn:    dsn,
		cfg:    cfg,
		opts:   opts,
		logger: zap.L().Named("postgres-source"),
	}, nil
}

// Name returns the table name, or a fixed label for ad hoc queries
func (s *PostgresSource) Name() string {
	if s.opts.Table != "" {
		return s.opts.Table
	}
	return "postgres-query"
}

// Load connects, runs the query and drains the result set
func (s *PostgresSource) Load(ctx context.Context) (dataset.Dataset, error) {
	db, err := sqlx.Open("postgres", s.dsn)
	if err != nil {
		return dataset.Dataset{}, fmt.Errorf("failed to open postgres connection: %w", err)
	}
	defer db.Close()

	if s.cfg != nil {
		applyPoolSettings(db, s.cfg.MaxOpenConns, s.cfg.MaxIdleConns, s.cfg.ConnMaxLifetime, s.cfg.ConnMaxIdleTime)
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		return dataset.Dataset{}, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	queryCtx := ctx
	if s.cfg != nil && s.cfg.QueryTimeout > 0 {
		var cancelQuery context.CancelFunc
		queryCtx, cancelQuery = context.WithTimeout(ctx, s.cfg.QueryTimeout)
		defer cancelQuery()
	}

	query := s.opts.Query
	if query == "" {
		query = buildSelect(quotePostgresTable(s.opts.Table), s.opts.MaxRows)
	}
	s.logger.Debug("Running postgres query", zap.String("query", query))

	rows, err := db.QueryxContext(queryCtx, query)
	if err != nil {
		return dataset.Dataset{}, fmt.Errorf("failed to run postgres query: %w", err)
	}
	defer rows.Close()

	ds, err := scanDataset(queryCtx, rows, s.opts.MaxRows)
	if err != nil {
		return dataset.Dataset{}, fmt.Errorf("failed to read postgres rows: %w", err)
	}

	s.logger.Info("Loaded dataset from postgres",
		zap.Int("rows", ds.Rows()),
		zap.Int("columns", ds.Cols()))
	return ds, nil
}

// quotePostgresTable quotes a possibly schema-qualified table name
func quotePostgresTable(name string) string {
	parts := strings.Split(name, ".")
	for i, part := range parts {
		parts[i] = pq.QuoteIdentifier(part)
	}
	return strings.Join(parts, ".")
}
