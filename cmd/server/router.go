package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/phrazzld/worldbench/internal/api"
	apiMiddleware "github.com/phrazzld/worldbench/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(app.tracing.Middleware)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))
	r.Use(apiMiddleware.ServerHeader)

	h := api.NewWorldHandler(app.repo, app.random, app.logger)

	r.Get("/plaintext", h.Plaintext)
	r.Get("/json", h.JSON)
	r.Get("/db", h.DB)
	r.Get("/queries", h.Queries)
	r.Get("/updates", h.Updates)
	r.Get("/update", h.Updates)
	r.Get("/fortunes", h.Fortunes)
	r.Get("/fortune-quick", h.Fortunes)
	r.Get("/health", h.Health)

	// The server span wraps the whole chain so the trace id middleware and
	// repository spans share its trace.
	return otelhttp.NewHandler(r, "http.server",
		otelhttp.WithTracerProvider(app.tracing.TracerProvider()),
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
	)
}
