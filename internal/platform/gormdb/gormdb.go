package gormdb

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// SlowQueryThreshold is the duration above which gorm logs a query as slow.
const SlowQueryThreshold = 200 * time.Millisecond

// Open wraps an existing *sql.DB in a gorm session. Writes are not wrapped
// in implicit transactions. gorm's own logging goes through logger, with
// every statement logged when logQueries is set and only slow queries and
// errors otherwise.
func Open(sqlDB *sql.DB, logger *slog.Logger, logQueries bool) (*gorm.DB, error) {
	if sqlDB == nil {
		return nil, fmt.Errorf("gormdb: nil *sql.DB")
	}
	if logger == nil {
		logger = slog.Default()
	}

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 NewLogger(logger, logQueries),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm session: %w", err)
	}
	return db, nil
}

// NewLogger returns a gorm logger writing through slog.
func NewLogger(logger *slog.Logger, logQueries bool) gormlogger.Interface {
	level := gormlogger.Warn
	slogLevel := slog.LevelWarn
	if logQueries {
		level = gormlogger.Info
		slogLevel = slog.LevelDebug
	}

	writer := slog.NewLogLogger(
		logger.With(slog.String("component", "gorm")).Handler(),
		slogLevel,
	)
	return gormlogger.New(writer, gormlogger.Config{
		SlowThreshold:             SlowQueryThreshold,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}
