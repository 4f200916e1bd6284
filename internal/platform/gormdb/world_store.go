package gormdb

import (
	"context"
	"errors"
	"log/slog"

	"gorm.io/gorm"

	"github.com/phrazzld/worldbench/internal/domain"
	"github.com/phrazzld/worldbench/internal/platform/logger"
	"github.com/phrazzld/worldbench/internal/platform/postgres"
	"github.com/phrazzld/worldbench/internal/store"
)

// GormWorldStore implements store.WorldAccessor with gorm.
type GormWorldStore struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewGormWorldStore creates a world accessor. If logger is nil, a default
// logger will be used.
func NewGormWorldStore(db *gorm.DB, logger *slog.Logger) *GormWorldStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &GormWorldStore{
		db:     db,
		logger: logger.With(slog.String("component", "gorm_world_store")),
	}
}

// Ensure GormWorldStore implements store.WorldAccessor interface
var _ store.WorldAccessor = (*GormWorldStore)(nil)

// FindByID implements store.WorldAccessor.FindByID.
// Returns store.ErrWorldNotFound if no row has the id.
func (s *GormWorldStore) FindByID(ctx context.Context, id int32) (*domain.World, error) {
	var row worldRow
	if err := s.db.WithContext(ctx).First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrWorldNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to query world",
			slog.String("error", err.Error()),
			slog.Int("world_id", int(id)))
		return nil, store.NewStoreError("world", "find", "first failed", postgres.MapError(err))
	}
	return row.toDomain(), nil
}

// Save implements store.WorldAccessor.Save. gorm updates the row by primary
// key and inserts it when the update matches nothing.
func (s *GormWorldStore) Save(ctx context.Context, w *domain.World) (*domain.World, error) {
	if w == nil {
		return nil, store.ErrInvalidEntity
	}

	row := worldRow{ID: w.ID, RandomNumber: w.RandomNumber}
	if err := s.db.WithContext(ctx).Save(&row).Error; err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to save world",
			slog.String("error", err.Error()),
			slog.Int("world_id", int(w.ID)))
		return nil, store.NewStoreError("world", "save", "save failed", postgres.MapError(err))
	}
	return row.toDomain(), nil
}
