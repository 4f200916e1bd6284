package gormdb

import (
	"context"
	"log/slog"

	"gorm.io/gorm"

	"github.com/phrazzld/worldbench/internal/domain"
	"github.com/phrazzld/worldbench/internal/platform/logger"
	"github.com/phrazzld/worldbench/internal/platform/postgres"
	"github.com/phrazzld/worldbench/internal/store"
)

// GormFortuneStore implements store.FortuneAccessor with gorm.
type GormFortuneStore struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewGormFortuneStore creates a fortune accessor.
func NewGormFortuneStore(db *gorm.DB, logger *slog.Logger) *GormFortuneStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &GormFortuneStore{
		db:     db,
		logger: logger.With(slog.String("component", "gorm_fortune_store")),
	}
}

// Ensure GormFortuneStore implements store.FortuneAccessor interface
var _ store.FortuneAccessor = (*GormFortuneStore)(nil)

// FindAll implements store.FortuneAccessor.FindAll.
func (s *GormFortuneStore) FindAll(ctx context.Context) ([]*domain.Fortune, error) {
	var rows []fortuneRow
	if err := s.db.WithContext(ctx).Find(&rows).Error; err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to query fortunes",
			slog.String("error", err.Error()))
		return nil, store.NewStoreError("fortune", "list", "find failed", postgres.MapError(err))
	}

	fortunes := make([]*domain.Fortune, len(rows))
	for i, r := range rows {
		fortunes[i] = r.toDomain()
	}
	return fortunes, nil
}
