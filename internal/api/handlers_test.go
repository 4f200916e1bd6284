package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/worldbench/internal/api/shared"
	"github.com/phrazzld/worldbench/internal/domain"
	"github.com/phrazzld/worldbench/internal/mocks"
	"github.com/phrazzld/worldbench/internal/platform/logger"
	"github.com/phrazzld/worldbench/internal/store"
)

// sequence returns a random source that yields vals in order and then
// repeats the last value.
func sequence(vals ...int32) domain.RandomSource {
	var mu sync.Mutex
	i := 0
	return func() int32 {
		mu.Lock()
		defer mu.Unlock()
		v := vals[i]
		if i < len(vals)-1 {
			i++
		}
		return v
	}
}

func newTestHandler(t *testing.T, repo store.DbRepository, random domain.RandomSource) *WorldHandler {
	t.Helper()
	log, _ := logger.GetTestLogger(t)
	return NewWorldHandler(repo, random, log)
}

func serve(t *testing.T, h http.HandlerFunc, target string) *httptest.ResponseRecorder {
	t.Helper()
	ctx, _ := logger.NewTestContext(t)
	req := httptest.NewRequest(http.MethodGet, target, nil).WithContext(ctx)
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func decodeWorlds(t *testing.T, rec *httptest.ResponseRecorder) []domain.World {
	t.Helper()
	var worlds []domain.World
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &worlds))
	return worlds
}

func TestNewWorldHandlerPanicsOnNilRepository(t *testing.T) {
	assert.Panics(t, func() { NewWorldHandler(nil, nil, nil) })
}

func TestPlaintextAndJSON(t *testing.T) {
	h := newTestHandler(t, &mocks.MockDbRepository{}, sequence(1))

	rec := serve(t, h.Plaintext, "/plaintext")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, shared.ContentTypeText, rec.Header().Get("Content-Type"))
	assert.Equal(t, "Hello, World!", rec.Body.String())

	rec = serve(t, h.JSON, "/json")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Hello, World!"}`, rec.Body.String())

	rec = serve(t, h.Health, "/health")
	assert.Equal(t, "OK", rec.Body.String())
}

func TestDB(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo := &mocks.MockDbRepository{}
		h := newTestHandler(t, repo, sequence(7))

		rec := serve(t, h.DB, "/db")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"id":7,"randomNumber":7}`, rec.Body.String())
		assert.Equal(t, []int32{7}, repo.GetCalls())
	})

	t.Run("absent", func(t *testing.T) {
		repo := &mocks.MockDbRepository{
			GetWorldFn: func(ctx context.Context, id int32) (*domain.World, error) {
				return nil, nil
			},
		}
		h := newTestHandler(t, repo, sequence(9999))

		rec := serve(t, h.DB, "/db")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "World not found")
	})

	t.Run("repository error", func(t *testing.T) {
		repo := &mocks.MockDbRepository{
			GetWorldFn: func(ctx context.Context, id int32) (*domain.World, error) {
				return nil, errors.New("dial tcp tfb-database:5432: connection refused")
			},
		}
		h := newTestHandler(t, repo, sequence(1))

		rec := serve(t, h.DB, "/db")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), "An unexpected error occurred")
		assert.NotContains(t, rec.Body.String(), "tfb-database")
	})
}

func TestQueriesCount(t *testing.T) {
	tests := []struct {
		query    string
		expected int
	}{
		{"", 1},
		{"?queries=abc", 1},
		{"?queries=0", 1},
		{"?queries=-3", 1},
		{"?queries=5", 5},
		{"?queries=500", 500},
		{"?queries=1000", 500},
	}

	for _, tc := range tests {
		t.Run(tc.query, func(t *testing.T) {
			repo := &mocks.MockDbRepository{}
			h := newTestHandler(t, repo, domain.RandomWorldNumber)

			rec := serve(t, h.Queries, "/queries"+tc.query)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Len(t, decodeWorlds(t, rec), tc.expected)
			assert.Len(t, repo.GetCalls(), tc.expected)
		})
	}
}

func TestQueriesSkipsAbsentWorlds(t *testing.T) {
	repo := &mocks.MockDbRepository{
		GetWorldFn: func(ctx context.Context, id int32) (*domain.World, error) {
			if id == 2 {
				return nil, nil
			}
			return &domain.World{ID: id, RandomNumber: id * 10}, nil
		},
	}
	h := newTestHandler(t, repo, sequence(1, 2, 3))

	rec := serve(t, h.Queries, "/queries?queries=3")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []domain.World{{ID: 1, RandomNumber: 10}, {ID: 3, RandomNumber: 30}}, decodeWorlds(t, rec))
}

func TestQueriesError(t *testing.T) {
	repo := &mocks.MockDbRepository{
		GetWorldFn: func(ctx context.Context, id int32) (*domain.World, error) {
			return nil, context.DeadlineExceeded
		},
	}
	h := newTestHandler(t, repo, sequence(1))

	rec := serve(t, h.Queries, "/queries?queries=4")

	assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
}

func TestUpdates(t *testing.T) {
	repo := &mocks.MockDbRepository{}
	// ids 1 and 2 are fetched, then numbers 100 and 200 are assigned
	h := newTestHandler(t, repo, sequence(1, 2, 100, 200))

	rec := serve(t, h.Updates, "/updates?queries=2")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []domain.World{{ID: 1, RandomNumber: 100}, {ID: 2, RandomNumber: 200}}, decodeWorlds(t, rec))
	assert.ElementsMatch(t, []mocks.UpdateCall{
		{ID: 1, RandomNumber: 100},
		{ID: 2, RandomNumber: 200},
	}, repo.UpdateCalls())
}

func TestUpdatesSkipsAbsentWorlds(t *testing.T) {
	repo := &mocks.MockDbRepository{
		GetWorldFn: func(ctx context.Context, id int32) (*domain.World, error) {
			return nil, nil
		},
	}
	h := newTestHandler(t, repo, sequence(5))

	rec := serve(t, h.Updates, "/updates?queries=3")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeWorlds(t, rec))
	assert.Empty(t, repo.UpdateCalls())
}

func TestUpdatesError(t *testing.T) {
	repo := &mocks.MockDbRepository{
		UpdateWorldFn: func(ctx context.Context, w *domain.World, n int32) (*domain.World, error) {
			return nil, store.ErrUpdateFailed
		},
	}
	h := newTestHandler(t, repo, sequence(1))

	rec := serve(t, h.Updates, "/updates?queries=2")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "Database busy, please retry")
}

func TestFortunes(t *testing.T) {
	repo := &mocks.MockDbRepository{
		FortunesFn: func(ctx context.Context) ([]*domain.Fortune, error) {
			return []*domain.Fortune{
				{ID: 11, Message: "<script>alert(\"This should not be displayed in a browser alert box.\");</script>"},
				{ID: 4, Message: "A bad random number generator: 1, 1, 1, 1, 1, 4.33e+67, 1, 1, 1"},
				{ID: 1, Message: "fortune: No such file or directory"},
			}, nil
		},
	}
	h := newTestHandler(t, repo, sequence(1))

	rec := serve(t, h.Fortunes, "/fortunes")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, shared.ContentTypeHTML, rec.Header().Get("Content-Type"))

	body := rec.Body.String()
	assert.Contains(t, body, "<title>Fortunes</title>")
	assert.Contains(t, body, "&lt;script&gt;")
	assert.NotContains(t, body, "<script>")
	assert.Contains(t, body, "<td>0</td><td>Additional fortune added at request time.</td>")

	// Sorted by message: "<script..." < "A bad..." < "Additional..." < "fortune:..."
	order := []string{"<td>11</td>", "<td>4</td>", "<td>0</td>", "<td>1</td>"}
	last := -1
	for _, cell := range order {
		idx := strings.Index(body, cell)
		require.NotEqual(t, -1, idx, cell)
		assert.Greater(t, idx, last, "%s out of order", cell)
		last = idx
	}
}

func TestFortunesError(t *testing.T) {
	repo := &mocks.MockDbRepository{
		FortunesFn: func(ctx context.Context) ([]*domain.Fortune, error) {
			return nil, errors.New("relation \"fortune\" does not exist")
		},
	}
	h := newTestHandler(t, repo, sequence(1))

	rec := serve(t, h.Fortunes, "/fortunes")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "relation")
}
