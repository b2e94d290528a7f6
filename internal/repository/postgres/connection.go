package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"nicenote/internal/domain/repositories"
)

// RepositoryConfig holds configuration for repository implementations
type RepositoryConfig struct {
	Pool   *pgxpool.Pool
	Tables *TableNames
	Logger *slog.Logger
}

// TableNames holds dynamically prefixed table names
type TableNames struct {
	Folders          string
	Notes            string
	Tags             string
	NoteTags         string
	NotesSearch      string
	SchemaMigrations string
}

// NewTableNames creates table names with the given prefix
func NewTableNames(prefix string) *TableNames {
	return &TableNames{
		Folders:          fmt.Sprintf("%sfolders", prefix),
		Notes:            fmt.Sprintf("%snotes", prefix),
		Tags:             fmt.Sprintf("%stags", prefix),
		NoteTags:         fmt.Sprintf("%snote_tags", prefix),
		NotesSearch:      fmt.Sprintf("%snotes_search", prefix),
		SchemaMigrations: fmt.Sprintf("%sschema_migrations", prefix),
	}
}

// CreateConnectionPool creates a pgx pool and verifies connectivity.
//
// Port 6543 is the conventional PgBouncer transaction-pooler port, which cannot hold
// prepared statements across transactions; for it the pool switches to
// QueryExecModeCacheDescribe unless the connection string already chose a mode via
// default_query_exec_mode. Table names are interpolated with fmt.Sprintf before the
// SQL reaches the server, so each prefix gets its own statement cache entries.
func CreateConnectionPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	config.MaxConns = 25
	config.MinConns = 2
	config.MaxConnIdleTime = 5 * time.Minute

	if config.ConnConfig.Port == 6543 && config.ConnConfig.DefaultQueryExecMode == pgx.QueryExecModeCacheStatement {
		config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeCacheDescribe
		slog.Debug("auto-configured cache_describe mode for PgBouncer compatibility", "port", 6543)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	// Test connection
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

// GetExecutor returns the transaction carried by ctx, or the pool when there is none,
// so repositories join an enclosing transaction without knowing about it.
func GetExecutor(ctx context.Context, pool *pgxpool.Pool) repositories.DBTX {
	if tx := repositories.GetTx(ctx); tx != nil {
		return tx
	}
	return pool
}
