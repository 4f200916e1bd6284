// Package storetest provides a backend-independent acceptance suite for
// store.DbRepository implementations.
package storetest

import (
	"context"
	"testing"

	"github.com/phrazzld/worldbench/internal/domain"
	"github.com/phrazzld/worldbench/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AbsentWorldID is an id that no seed contains.
const AbsentWorldID int32 = 999999

// Seed is the data a repository under test must be loaded with before
// AcceptanceTest runs.
type Seed struct {
	Worlds   []*domain.World
	Fortunes []*domain.Fortune
}

// DefaultSeed returns World{1, 100}, worlds 2 through 10 with
// RandomNumber = id*10, and three fortunes.
func DefaultSeed() Seed {
	worlds := []*domain.World{{ID: 1, RandomNumber: 100}}
	for id := int32(2); id <= 10; id++ {
		worlds = append(worlds, &domain.World{ID: id, RandomNumber: id * 10})
	}
	return Seed{
		Worlds: worlds,
		Fortunes: []*domain.Fortune{
			{ID: 1, Message: "fortune: No such file or directory"},
			{ID: 2, Message: "A computer scientist is someone who fixes things that aren't broken."},
			{ID: 3, Message: "After enough decimal places, nobody gives a damn."},
		},
	}
}

// AcceptanceTest is the acceptance test that every DbRepository
// implementation should pass. The repository must be freshly loaded with
// seed and is modified by the test. It should be called from a test case in
// each implementation:
//
//	func TestRepository(t *testing.T) {
//	    seed := storetest.DefaultSeed()
//	    repo := newRepoLoadedWith(seed)
//	    storetest.AcceptanceTest(t, context.Background(), repo, seed)
//	}
func AcceptanceTest(t *testing.T, ctx context.Context, repo store.DbRepository, seed Seed) {
	t.Helper()
	require.GreaterOrEqual(t, len(seed.Worlds), 2, "seed needs at least two worlds")
	require.Equal(t, int32(1), seed.Worlds[0].ID, "first seeded world must have id 1")

	first := *seed.Worlds[0]
	second := *seed.Worlds[1]

	// Present id yields the stored world.
	w, err := repo.GetWorld(ctx, first.ID)
	require.NoError(t, err)
	require.NotNil(t, w, "seeded world %d should be found", first.ID)
	assert.Equal(t, first.ID, w.ID)
	assert.Equal(t, first.RandomNumber, w.RandomNumber)

	// Absent id is not an error.
	w, err = repo.GetWorld(ctx, AbsentWorldID)
	assert.NoError(t, err)
	assert.Nil(t, w)

	// Update then get returns the new value under the same id.
	newNumber := second.RandomNumber + 1
	target := &domain.World{ID: second.ID, RandomNumber: second.RandomNumber}
	saved, err := repo.UpdateWorld(ctx, target, newNumber)
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, second.ID, saved.ID)
	assert.Equal(t, newNumber, saved.RandomNumber)
	assert.Equal(t, newNumber, target.RandomNumber, "caller's world should be mutated")

	w, err = repo.GetWorld(ctx, second.ID)
	require.NoError(t, err)
	require.NotNil(t, w)
	assert.Equal(t, second.ID, w.ID)
	assert.Equal(t, newNumber, w.RandomNumber)

	// Fortunes returns every seeded row exactly once.
	fortunes, err := repo.Fortunes(ctx)
	require.NoError(t, err)
	assert.Len(t, fortunes, len(seed.Fortunes))
	seen := make(map[int32]string, len(fortunes))
	for _, f := range fortunes {
		_, dup := seen[f.ID]
		assert.False(t, dup, "fortune id %d returned twice", f.ID)
		seen[f.ID] = f.Message
	}
	for _, f := range seed.Fortunes {
		assert.Equal(t, f.Message, seen[f.ID], "fortune %d", f.ID)
	}

	// World{1, 100} updated through a bare value carrying only the id.
	saved, err = repo.UpdateWorld(ctx, &domain.World{ID: first.ID}, 42)
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, domain.World{ID: first.ID, RandomNumber: 42}, *saved)

	w, err = repo.GetWorld(ctx, first.ID)
	require.NoError(t, err)
	require.NotNil(t, w)
	assert.Equal(t, domain.World{ID: first.ID, RandomNumber: 42}, *w)

	// A store without id 999 reports it as absent.
	for _, sw := range seed.Worlds {
		if sw.ID == 999 {
			t.Fatal("seed must not contain world 999")
		}
	}
	w, err = repo.GetWorld(ctx, 999)
	assert.NoError(t, err)
	assert.Nil(t, w)
}
