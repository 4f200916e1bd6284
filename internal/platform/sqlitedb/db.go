package sqlitedb

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/phrazzld/worldbench/internal/domain"
	"github.com/phrazzld/worldbench/internal/store"
)

// DriverName is the database/sql driver registered by modernc.org/sqlite.
const DriverName = "sqlite"

const schema = `
CREATE TABLE IF NOT EXISTS world (
	id           INTEGER PRIMARY KEY,
	randomnumber INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS fortune (
	id      INTEGER PRIMARY KEY,
	message VARCHAR(2048) NOT NULL
);
`

// Open opens the database at path (":memory:" for a private in-memory
// database) and creates the tables if they are missing. SQLite serializes
// writers, so the pool is limited to one connection; this also keeps an
// in-memory database shared by every query.
func Open(ctx context.Context, path string, logger *slog.Logger) (*sql.DB, error) {
	if logger == nil {
		logger = slog.Default()
	}

	dsn := path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	if path == ":memory:" {
		dsn = path
	}

	db, err := sql.Open(DriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create sqlite schema: %w", err)
	}

	logger.Info("sqlite database opened", slog.String("path", path))
	return db, nil
}

// SeedIfEmpty loads worlds and fortunes when the world table has no rows.
// It reports whether anything was inserted.
func SeedIfEmpty(
	ctx context.Context,
	db *sql.DB,
	worlds []*domain.World,
	fortunes []*domain.Fortune,
) (bool, error) {
	var count int
	if err := db.QueryRowContext(ctx, "SELECT count(*) FROM world").Scan(&count); err != nil {
		return false, fmt.Errorf("failed to count worlds: %w", MapError(err))
	}
	if count > 0 {
		return false, nil
	}

	err := store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
		for _, w := range worlds {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO world (id, randomnumber) VALUES (?, ?)", w.ID, w.RandomNumber); err != nil {
				return fmt.Errorf("failed to insert world %d: %w", w.ID, MapError(err))
			}
		}
		for _, f := range fortunes {
			if err := f.Validate(); err != nil {
				return fmt.Errorf("%w: fortune %d: %v", store.ErrInvalidEntity, f.ID, err)
			}
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO fortune (id, message) VALUES (?, ?)", f.ID, f.Message); err != nil {
				return fmt.Errorf("failed to insert fortune %d: %w", f.ID, MapError(err))
			}
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return true, nil
}
