//go:build integration

package postgres_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/worldbench/internal/domain"
	"github.com/phrazzld/worldbench/internal/platform/memory"
	"github.com/phrazzld/worldbench/internal/platform/postgres"
	"github.com/phrazzld/worldbench/internal/repository"
	"github.com/phrazzld/worldbench/internal/store"
	"github.com/phrazzld/worldbench/internal/store/storetest"
	"github.com/phrazzld/worldbench/internal/testdb"
)

// loadSeed replaces the table contents with seed and restores the benchmark
// data set when the test finishes.
func loadSeed(t *testing.T, db *sql.DB, seed storetest.Seed) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, postgres.LoadFixtures(ctx, db, seed.Worlds, seed.Fortunes))
	t.Cleanup(func() {
		err := postgres.LoadFixtures(context.Background(), db,
			memory.Seed(domain.WorldRowCount, nil), memory.DefaultFortunes())
		if err != nil {
			t.Logf("Warning: failed to restore benchmark data: %v", err)
		}
	})
}

func TestSQLRepositoryAcceptance(t *testing.T) {
	db := testdb.GetTestDBWithT(t)
	seed := storetest.DefaultSeed()
	loadSeed(t, db, seed)

	repo := repository.New(
		postgres.NewPostgresWorldStore(db, nil),
		postgres.NewPostgresFortuneStore(db, nil),
	)
	storetest.AcceptanceTest(t, context.Background(), repo, seed)
}

func TestMigrationsSeedBenchmarkData(t *testing.T) {
	db := testdb.GetTestDBWithT(t)
	ctx := context.Background()

	require.NoError(t, postgres.Migrate(ctx, db, "reset", nil))
	require.NoError(t, postgres.Migrate(ctx, db, "up", nil))

	var worlds, fortunes int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT count(*) FROM world").Scan(&worlds))
	require.NoError(t, db.QueryRowContext(ctx, "SELECT count(*) FROM fortune").Scan(&fortunes))
	assert.Equal(t, domain.WorldRowCount, worlds)
	assert.Equal(t, 12, fortunes)
}

func TestWorldStoreInTransaction(t *testing.T) {
	db := testdb.GetTestDBWithT(t)
	loadSeed(t, db, storetest.DefaultSeed())

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		ctx := context.Background()
		s := postgres.NewPostgresWorldStore(tx, nil)

		saved, err := s.Save(ctx, &domain.World{ID: 2, RandomNumber: 7777})
		require.NoError(t, err)
		assert.Equal(t, int32(7777), saved.RandomNumber)

		got, err := s.FindByID(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, int32(7777), got.RandomNumber)

		_, err = s.FindByID(ctx, storetest.AbsentWorldID)
		assert.ErrorIs(t, err, store.ErrWorldNotFound)
	})

	// The rolled back write is not visible outside the transaction.
	got, err := postgres.NewPostgresWorldStore(db, nil).FindByID(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, int32(20), got.RandomNumber)
}
