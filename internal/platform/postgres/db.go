package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"go.opentelemetry.io/otel/trace"

	"github.com/phrazzld/worldbench/internal/config"
)

// PingTimeout bounds the connectivity check performed by Open.
const PingTimeout = 5 * time.Second

// OpenOption configures Open.
type OpenOption func(*openOptions)

type openOptions struct {
	tracerProvider trace.TracerProvider
}

// WithTracerProvider sets the provider used for per-query spans. The default
// is the global provider.
func WithTracerProvider(tp trace.TracerProvider) OpenOption {
	return func(o *openOptions) { o.tracerProvider = tp }
}

// Open parses cfg.URL with pgx, installs query tracing, and returns a
// database/sql handle backed by the pgx stdlib driver. The pool is sized
// from cfg and the connection is verified with a ping.
func Open(
	ctx context.Context,
	cfg config.DatabaseConfig,
	logger *slog.Logger,
	opts ...OpenOption,
) (*sql.DB, error) {
	if logger == nil {
		logger = slog.Default()
	}
	var o openOptions
	for _, opt := range opts {
		opt(&o)
	}

	connConfig, err := ParseConnConfig(cfg, logger, o.tracerProvider)
	if err != nil {
		return nil, err
	}

	db := stdlib.OpenDB(*connConfig)
	ConfigurePool(db, cfg)

	pingCtx, cancel := context.WithTimeout(ctx, PingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("database connection established",
		slog.String("host", connConfig.Host),
		slog.String("database", connConfig.Database),
		slog.Int("max_open_conns", cfg.MaxOpenConns))
	return db, nil
}

// ParseConnConfig builds the pgx connection config for cfg. Every query gets
// an OpenTelemetry span. When cfg.LogQueries is set, queries are also logged
// at debug level.
func ParseConnConfig(
	cfg config.DatabaseConfig,
	logger *slog.Logger,
	tp trace.TracerProvider,
) (*pgx.ConnConfig, error) {
	connConfig, err := pgx.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	if logger == nil {
		logger = slog.Default()
	}

	tracers := []queryTracer{newSpanTracer(tp)}
	if cfg.LogQueries {
		tracers = append(tracers, newQueryLogTracer(logger))
	}
	connConfig.Tracer = &multiTracer{tracers: tracers}

	return connConfig, nil
}

// ConfigurePool applies the pool limits from cfg. Zero values leave the
// database/sql defaults in place.
func ConfigurePool(db *sql.DB, cfg config.DatabaseConfig) {
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetimeMinutes > 0 {
		db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetimeMinutes) * time.Minute)
	}
}
