package postgres

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
	selectWorldQuery = `SELECT id, randomnumber FROM world WHERE id = $1`

	saveWorldQuery = `
		INSERT INTO world (id, randomnumber)
		VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET randomnumber = EXCLUDED.randomnumber
	`
)

// PostgresWorldStore implements store.WorldAccessor with hand-written SQL.
type PostgresWorldStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresWorldStore creates a world accessor over a database connection
// or transaction managed by the caller. If logger is nil, a default logger
// will be used.
func NewPostgresWorldStore(db store.DBTX, logger *slog.Logger) *PostgresWorldStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresWorldStore{
		db:     db,
		logger: logger.With(slog.String("component", "world_store")),
	}
}

// Ensure PostgresWorldStore implements store.WorldAccessor interface
var _ store.WorldAccessor = (*PostgresWorldStore)(nil)

// FindByID implements store.WorldAccessor.FindByID.
// Returns store.ErrWorldNotFound if no row has the id.
func (s *PostgresWorldStore) FindByID(ctx context.Context, id int32) (*domain.World, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var w domain.World
	err := s.db.QueryRowContext(ctx, selectWorldQuery, id).Scan(&w.ID, &w.RandomNumber)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrWorldNotFound
		}
		log.Error("failed to query world",
			slog.String("error", err.Error()),
			slog.Int("world_id", int(id)))
		return nil, store.NewStoreError("world", "find", "query failed", MapError(err))
	}

	return &w, nil
}

// Save implements store.WorldAccessor.Save with an upsert on the primary key.
func (s *PostgresWorldStore) Save(ctx context.Context, w *domain.World) (*domain.World, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if w == nil {
		return nil, store.ErrInvalidEntity
	}

	if _, err := s.db.ExecContext(ctx, saveWorldQuery, w.ID, w.RandomNumber); err != nil {
		log.Error("failed to save world",
			slog.String("error", err.Error()),
			slog.Int("world_id", int(w.ID)))
		return nil, store.NewStoreError("world", "save", "upsert failed", MapError(err))
	}

	return w.Clone(), nil
}
