package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/phrazzld/worldbench/internal/config"
	"github.com/phrazzld/worldbench/internal/domain"
	"github.com/phrazzld/worldbench/internal/platform/gormdb"
	"github.com/phrazzld/worldbench/internal/platform/memory"
	"github.com/phrazzld/worldbench/internal/platform/postgres"
	"github.com/phrazzld/worldbench/internal/platform/sqlitedb"
	"github.com/phrazzld/worldbench/internal/platform/tracing"
	"github.com/phrazzld/worldbench/internal/repository"
	"github.com/phrazzld/worldbench/internal/store"
)

// ShutdownTimeout bounds graceful shutdown of the HTTP server and the
// flushing of tracing data.
const ShutdownTimeout = 10 * time.Second

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	// db is nil for the memory backend and SQLite for the sqlite backend
	db      *sql.DB
	tracing *tracing.Provider

	repo   store.DbRepository
	random domain.RandomSource
}

// newApplication sets up tracing, the database connection and the
// repository for the configured backend.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		random: domain.RandomWorldNumber,
	}

	var err error
	app.tracing, err = tracing.Setup(cfg.Tracing, logger)
	if err != nil {
		return nil, err
	}

	app.db, err = setupAppDatabase(ctx, cfg.Database, logger, app.tracing.TracerProvider())
	if err != nil {
		app.cleanup()
		return nil, err
	}

	app.repo, err = buildRepository(cfg.Database, app.db, logger, app.tracing.TracerProvider())
	if err != nil {
		app.cleanup()
		return nil, err
	}

	logger.Info("application initialized",
		slog.String("backend", cfg.Database.Backend),
		slog.Int("port", cfg.Server.Port))
	return app, nil
}

// buildRepository wires the accessors for the configured backend into a
// traced repository. db may be nil only for the memory backend.
func buildRepository(
	cfg config.DatabaseConfig,
	db *sql.DB,
	logger *slog.Logger,
	tp trace.TracerProvider,
) (store.DbRepository, error) {
	var (
		worlds   store.WorldAccessor
		fortunes store.FortuneAccessor
	)

	switch cfg.Backend {
	case config.BackendGorm:
		if db == nil {
			return nil, errors.New("gorm backend requires a database connection")
		}
		gdb, err := gormdb.Open(db, logger, cfg.LogQueries)
		if err != nil {
			return nil, err
		}
		worlds = gormdb.NewGormWorldStore(gdb, logger)
		fortunes = gormdb.NewGormFortuneStore(gdb, logger)

	case config.BackendSQL:
		if db == nil {
			return nil, errors.New("sql backend requires a database connection")
		}
		worlds = postgres.NewPostgresWorldStore(db, logger)
		fortunes = postgres.NewPostgresFortuneStore(db, logger)

	case config.BackendSQLite:
		if db == nil {
			return nil, errors.New("sqlite backend requires a database connection")
		}
		worlds = sqlitedb.NewWorldStore(db, logger)
		fortunes = sqlitedb.NewFortuneStore(db, logger)

	case config.BackendMemory:
		worlds = memory.NewWorldStore(memory.Seed(domain.WorldRowCount, nil)...)
		fortunes = memory.NewFortuneStore(memory.DefaultFortunes()...)

	default:
		return nil, fmt.Errorf("unknown database backend %q", cfg.Backend)
	}

	return repository.New(worlds, fortunes,
		repository.WithTracer(tp.Tracer(repository.TracerName)),
		repository.WithLogger(logger),
	), nil
}

// Run serves HTTP until ctx is canceled, then shuts down and cleans up.
func (app *application) Run(ctx context.Context) error {
	defer app.cleanup()

	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", slog.String("error", err.Error()))
		}
	}

	if app.tracing != nil {
		ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		if err := app.tracing.Shutdown(ctx); err != nil {
			app.logger.Error("error shutting down tracing", slog.String("error", err.Error()))
		}
	}

	app.logger.Info("application shutdown completed")
}
