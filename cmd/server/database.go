package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	"github.com/phrazzld/worldbench/internal/config"
	"github.com/phrazzld/worldbench/internal/domain"
	"github.com/phrazzld/worldbench/internal/platform/memory"
	"github.com/phrazzld/worldbench/internal/platform/postgres"
	"github.com/phrazzld/worldbench/internal/platform/sqlitedb"
)

// setupAppDatabase opens the database the configured backend needs. It
// returns nil for the memory backend. A new SQLite database is seeded with
// the benchmark data set; PostgreSQL is seeded by migrations.
func setupAppDatabase(
	ctx context.Context,
	cfg config.DatabaseConfig,
	logger *slog.Logger,
	tp trace.TracerProvider,
) (*sql.DB, error) {
	dbLogger := logger.With(slog.String("component", "database"))

	switch cfg.Backend {
	case config.BackendMemory:
		return nil, nil

	case config.BackendSQLite:
		db, err := sqlitedb.Open(ctx, cfg.SQLitePath, dbLogger)
		if err != nil {
			return nil, err
		}
		seeded, err := sqlitedb.SeedIfEmpty(ctx, db,
			memory.Seed(domain.WorldRowCount, nil), memory.DefaultFortunes())
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to seed sqlite database: %w", err)
		}
		if seeded {
			dbLogger.Info("sqlite database seeded", slog.Int("worlds", domain.WorldRowCount))
		}
		return db, nil

	default:
		return postgres.Open(ctx, cfg, dbLogger, postgres.WithTracerProvider(tp))
	}
}
