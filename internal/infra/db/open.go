// Package db selects and opens the configured storage backend.
package db

import (
	"context"
	"fmt"

	"telegram-schedule-notifier/internal/config"
	"telegram-schedule-notifier/internal/domain/ports/repository"
	"telegram-schedule-notifier/internal/infra/db/postgres"
	"telegram-schedule-notifier/internal/infra/db/sqlite"
)

// Store is a repository.Store that can also publish pool gauges.
type Store interface {
	repository.Store
	ReportPoolStats()
}

const postgresMaxConns = 10

// Open connects to the backend named by cfg.Driver and creates the schema.
func Open(ctx context.Context, cfg config.DatabaseConfig) (Store, error) {
	var st Store
	switch cfg.Driver {
	case config.DriverPostgres:
		pool, err := postgres.NewPgxPool(ctx, cfg.URL, postgresMaxConns)
		if err != nil {
			return nil, fmt.Errorf("postgres: %w", err)
		}
		st = postgres.NewStore(pool)
	case config.DriverSQLite:
		sqlDB, err := sqlite.Open(ctx, cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("sqlite: %w", err)
		}
		st = sqlite.NewStore(sqlDB)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	if err := st.EnsureSchema(ctx); err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return st, nil
}
