package sqlitedb

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/phrazzld/worldbench/internal/domain"
	"github.com/phrazzld/worldbench/internal/platform/logger"
	"github.com/phrazzld/worldbench/internal/store"
)

const (
	selectWorldQuery = `SELECT id, randomnumber FROM world WHERE id = ?`

	saveWorldQuery = `
		INSERT INTO world (id, randomnumber)
		VALUES (?, ?)
		ON CONFLICT (id) DO UPDATE SET randomnumber = excluded.randomnumber
	`
)

// WorldStore implements store.WorldAccessor on SQLite.
type WorldStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewWorldStore creates a world accessor. If logger is nil, a default
// logger will be used.
func NewWorldStore(db store.DBTX, logger *slog.Logger) *WorldStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &WorldStore{
		db:     db,
		logger: logger.With(slog.String("component", "sqlite_world_store")),
	}
}

// Ensure WorldStore implements store.WorldAccessor interface
var _ store.WorldAccessor = (*WorldStore)(nil)

// FindByID implements store.WorldAccessor.FindByID.
func (s *WorldStore) FindByID(ctx context.Context, id int32) (*domain.World, error) {
	var w domain.World
	err := s.db.QueryRowContext(ctx, selectWorldQuery, id).Scan(&w.ID, &w.RandomNumber)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrWorldNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to query world",
			slog.String("error", err.Error()),
			slog.Int("world_id", int(id)))
		return nil, store.NewStoreError("world", "find", "query failed", MapError(err))
	}
	return &w, nil
}

// Save implements store.WorldAccessor.Save with an upsert on the primary key.
func (s *WorldStore) Save(ctx context.Context, w *domain.World) (*domain.World, error) {
	if w == nil {
		return nil, store.ErrInvalidEntity
	}

	if _, err := s.db.ExecContext(ctx, saveWorldQuery, w.ID, w.RandomNumber); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to save world",
			slog.String("error", err.Error()),
			slog.Int("world_id", int(w.ID)))
		return nil, store.NewStoreError("world", "save", "upsert failed", MapError(err))
	}

	return w.Clone(), nil
}
