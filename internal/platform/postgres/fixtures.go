package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/phrazzld/worldbench/internal/domain"
	"github.com/phrazzld/worldbench/internal/store"
)

// LoadFixtures replaces the contents of the world and fortune tables with
// the given rows in a single transaction.
func LoadFixtures(
	ctx context.Context,
	db *sql.DB,
	worlds []*domain.World,
	fortunes []*domain.Fortune,
) error {
	return store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "TRUNCATE world, fortune"); err != nil {
			return fmt.Errorf("failed to truncate tables: %w", MapError(err))
		}

		for _, w := range worlds {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO world (id, randomnumber) VALUES ($1, $2)",
				w.ID, w.RandomNumber); err != nil {
				return fmt.Errorf("failed to insert world %d: %w", w.ID, MapError(err))
			}
		}

		for _, f := range fortunes {
			if err := f.Validate(); err != nil {
				return fmt.Errorf("%w: fortune %d: %v", store.ErrInvalidEntity, f.ID, err)
			}
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO fortune (id, message) VALUES ($1, $2)",
				f.ID, f.Message); err != nil {
				return fmt.Errorf("failed to insert fortune %d: %w", f.ID, MapError(err))
			}
		}
		return nil
	})
}
