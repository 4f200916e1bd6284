package main

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/phrazzld/worldbench/internal/config"
	"github.com/phrazzld/worldbench/internal/platform/postgres"
)

// handleMigrations runs one goose command against the configured database.
func handleMigrations(ctx context.Context, cfg *config.Config, command string, logger *slog.Logger) error {
	if !slices.Contains(postgres.MigrationCommands, command) {
		return fmt.Errorf("unknown migration command %q (want one of %v)", command, postgres.MigrationCommands)
	}
	if cfg.Database.Backend == config.BackendMemory || cfg.Database.Backend == config.BackendSQLite ||
		cfg.Database.URL == "" {
		return fmt.Errorf("migrations need a database URL and a postgres backend")
	}

	db, err := postgres.Open(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("error closing database connection", slog.String("error", err.Error()))
		}
	}()

	logger.Info("executing migrations", slog.String("command", command))
	if err := postgres.Migrate(ctx, db, command, logger); err != nil {
		return fmt.Errorf("migration %s failed: %w", command, err)
	}
	return nil
}
