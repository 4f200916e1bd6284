package api

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/phrazzld/worldbench/internal/api/shared"
	"github.com/phrazzld/worldbench/internal/domain"
	"github.com/phrazzld/worldbench/internal/platform/logger"
	"github.com/phrazzld/worldbench/internal/store"
)

//go:embed templates/*.html
var templateFS embed.FS

// MaxConcurrentQueries bounds the number of repository calls a single
// /queries or /updates request keeps in flight.
const MaxConcurrentQueries = 16

// QueriesParam is the query string parameter holding the query count.
const QueriesParam = "queries"

// WorldHandler serves the benchmark endpoints over a store.DbRepository.
type WorldHandler struct {
	repo     store.DbRepository
	random   domain.RandomSource
	fortunes *template.Template
	logger   *slog.Logger
}

// NewWorldHandler creates a handler. A nil random source selects
// domain.RandomWorldNumber. It panics if repo is nil.
func NewWorldHandler(repo store.DbRepository, random domain.RandomSource, logger *slog.Logger) *WorldHandler {
	if repo == nil {
		panic("repository cannot be nil")
	}
	if random == nil {
		random = domain.RandomWorldNumber
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &WorldHandler{
		repo:     repo,
		random:   random,
		fortunes: template.Must(template.ParseFS(templateFS, "templates/fortunes.html")),
		logger:   logger.With(slog.String("component", "world_handler")),
	}
}

// Plaintext handles GET /plaintext.
func (h *WorldHandler) Plaintext(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithText(w, http.StatusOK, HelloWorld)
}

// JSON handles GET /json.
func (h *WorldHandler) JSON(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: HelloWorld})
}

// Health handles GET /health.
func (h *WorldHandler) Health(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithText(w, http.StatusOK, "OK")
}

// DB handles GET /db, returning one random world.
func (h *WorldHandler) DB(w http.ResponseWriter, r *http.Request) {
	id := h.random()

	world, err := h.repo.GetWorld(r.Context(), id)
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}
	if world == nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusNotFound,
			GetSafeErrorMessage(store.ErrWorldNotFound),
			fmt.Errorf("world %d: %w", id, store.ErrWorldNotFound))
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, world)
}

// Queries handles GET /queries?queries=N, returning up to N random worlds.
// Ids with no row are left out of the result.
func (h *WorldHandler) Queries(w http.ResponseWriter, r *http.Request) {
	worlds, err := h.fetchWorlds(r, domain.ClampQueries(r.URL.Query().Get(QueriesParam)))
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, worlds)
}

// Updates handles GET /updates?queries=N. Each fetched world receives a new
// random number through UpdateWorld and the updated worlds are returned.
func (h *WorldHandler) Updates(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	worlds, err := h.fetchWorlds(r, domain.ClampQueries(r.URL.Query().Get(QueriesParam)))
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}

	// Random numbers are drawn up front so a deterministic source yields
	// deterministic results regardless of goroutine scheduling.
	numbers := make([]int32, len(worlds))
	for i := range numbers {
		numbers[i] = h.random()
	}

	updated := make([]*domain.World, len(worlds))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(MaxConcurrentQueries)
	for i, world := range worlds {
		g.Go(func() error {
			saved, err := h.repo.UpdateWorld(gctx, world, numbers[i])
			if err != nil {
				return fmt.Errorf("update world %d: %w", world.ID, err)
			}
			updated[i] = saved
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		h.respondWithError(w, r, err)
		return
	}

	logger.FromContextOrDefault(ctx, h.logger).Debug("worlds updated",
		slog.Int("count", len(updated)))
	shared.RespondWithJSON(w, r, http.StatusOK, updated)
}

// Fortunes handles GET /fortunes, rendering every stored fortune plus one
// added at request time, sorted by message.
func (h *WorldHandler) Fortunes(w http.ResponseWriter, r *http.Request) {
	fortunes, err := h.repo.Fortunes(r.Context())
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}

	fortunes = append(fortunes, domain.AdditionalFortune())
	domain.SortFortunes(fortunes)

	var buf bytes.Buffer
	if err := h.fortunes.Execute(&buf, fortunesPage{Fortunes: fortunes}); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"An unexpected error occurred", fmt.Errorf("render fortunes: %w", err))
		return
	}

	w.Header().Set("Content-Type", shared.ContentTypeHTML)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// fetchWorlds looks up n random ids concurrently. The result keeps request
// order and omits ids with no row.
func (h *WorldHandler) fetchWorlds(r *http.Request, n int) ([]*domain.World, error) {
	ids := make([]int32, n)
	for i := range ids {
		ids[i] = h.random()
	}

	found := make([]*domain.World, n)
	g, ctx := errgroup.WithContext(r.Context())
	g.SetLimit(MaxConcurrentQueries)
	for i, id := range ids {
		g.Go(func() error {
			world, err := h.repo.GetWorld(ctx, id)
			if err != nil {
				return fmt.Errorf("get world %d: %w", id, err)
			}
			found[i] = world
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	worlds := make([]*domain.World, 0, n)
	for _, world := range found {
		if world != nil {
			worlds = append(worlds, world)
		}
	}
	return worlds, nil
}

func (h *WorldHandler) respondWithError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
}
