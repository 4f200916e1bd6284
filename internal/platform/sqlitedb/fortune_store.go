package sqlitedb

import (
	"context"
	"log/slog"

	"github.com/phrazzld/worldbench/internal/domain"
	"github.com/phrazzld/worldbench/internal/platform/logger"
	"github.com/phrazzld/worldbench/internal/store"
)

// FortuneStore implements store.FortuneAccessor on SQLite.
type FortuneStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewFortuneStore creates a fortune accessor.
func NewFortuneStore(db store.DBTX, logger *slog.Logger) *FortuneStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &FortuneStore{
		db:     db,
		logger: logger.With(slog.String("component", "sqlite_fortune_store")),
	}
}

var _ store.FortuneAccessor = (*FortuneStore)(nil)

// FindAll implements store.FortuneAccessor.FindAll.
func (s *FortuneStore) FindAll(ctx context.Context) ([]*domain.Fortune, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, `SELECT id, message FROM fortune`)
	if err != nil {
		log.Error("failed to query fortunes", slog.String("error", err.Error()))
		return nil, store.NewStoreError("fortune", "list", "query failed", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	fortunes := make([]*domain.Fortune, 0, 16)
	for rows.Next() {
		var f domain.Fortune
		if err := rows.Scan(&f.ID, &f.Message); err != nil {
			return nil, store.NewStoreError("fortune", "list", "scan failed", MapError(err))
		}
		fortunes = append(fortunes, &f)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("fortune", "list", "row iteration failed", MapError(err))
	}
	return fortunes, nil
}
