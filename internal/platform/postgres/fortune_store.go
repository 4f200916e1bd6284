package postgres

import (
	"context"
	"log/slog"

	"github.com/phrazzld/worldbench/internal/domain"
	"github.com/phrazzld/worldbench/internal/platform/logger"
	"github.com/phrazzld/worldbench/internal/store"
)

const selectFortunesQuery = `SELECT id, message FROM fortune`

// PostgresFortuneStore implements store.FortuneAccessor with hand-written SQL.
type PostgresFortuneStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresFortuneStore creates a fortune accessor. If logger is nil, a
// default logger will be used.
func NewPostgresFortuneStore(db store.DBTX, logger *slog.Logger) *PostgresFortuneStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresFortuneStore{
		db:     db,
		logger: logger.With(slog.String("component", "fortune_store")),
	}
}

// Ensure PostgresFortuneStore implements store.FortuneAccessor interface
var _ store.FortuneAccessor = (*PostgresFortuneStore)(nil)

// FindAll implements store.FortuneAccessor.FindAll.
// Rows are returned in the order PostgreSQL yields them.
func (s *PostgresFortuneStore) FindAll(ctx context.Context) ([]*domain.Fortune, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, selectFortunesQuery)
	if err != nil {
		log.Error("failed to query fortunes", slog.String("error", err.Error()))
		return nil, store.NewStoreError("fortune", "list", "query failed", MapError(err))
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Error("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	fortunes := make([]*domain.Fortune, 0, 16)
	for rows.Next() {
		var f domain.Fortune
		if err := rows.Scan(&f.ID, &f.Message); err != nil {
			log.Error("failed to scan fortune row", slog.String("error", err.Error()))
			return nil, store.NewStoreError("fortune", "list", "scan failed", MapError(err))
		}
		fortunes = append(fortunes, &f)
	}

	if err := rows.Err(); err != nil {
		log.Error("error iterating fortune rows", slog.String("error", err.Error()))
		return nil, store.NewStoreError("fortune", "list", "row iteration failed", MapError(err))
	}

	log.Debug("retrieved fortunes", slog.Int("count", len(fortunes)))
	return fortunes, nil
}
