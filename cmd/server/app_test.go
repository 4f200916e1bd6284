package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/phrazzld/worldbench/internal/config"
	"github.com/phrazzld/worldbench/internal/domain"
	"github.com/phrazzld/worldbench/internal/platform/logger"
	"github.com/phrazzld/worldbench/internal/platform/tracing"
)

func newMemoryApp(t *testing.T) *application {
	t.Helper()

	log, _ := logger.GetTestLogger(t)
	cfg := &config.Config{
		Server:   config.ServerConfig{Port: 8080, LogLevel: "debug"},
		Database: config.DatabaseConfig{Backend: config.BackendMemory},
	}

	provider, err := tracing.Setup(cfg.Tracing, log)
	require.NoError(t, err)

	repo, err := buildRepository(cfg.Database, nil, log, provider.TracerProvider())
	require.NoError(t, err)

	return &application{
		config:  cfg,
		logger:  log,
		tracing: provider,
		repo:    repo,
		random:  func() int32 { return 42 },
	}
}

func get(t *testing.T, srv *httptest.Server, path string) (*http.Response, string) {
	t.Helper()

	resp, err := srv.Client().Get(srv.URL + path)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestBuildRepository(t *testing.T) {
	log, _ := logger.GetTestLogger(t)
	tp := noop.NewTracerProvider()

	t.Run("memory", func(t *testing.T) {
		repo, err := buildRepository(config.DatabaseConfig{Backend: config.BackendMemory}, nil, log, tp)
		require.NoError(t, err)

		w, err := repo.GetWorld(context.Background(), domain.WorldRowCount)
		require.NoError(t, err)
		require.NotNil(t, w)
		assert.Equal(t, int32(domain.WorldRowCount), w.ID)

		fortunes, err := repo.Fortunes(context.Background())
		require.NoError(t, err)
		assert.Len(t, fortunes, 12)
	})

	t.Run("database backends need a connection", func(t *testing.T) {
		for _, backend := range []string{config.BackendGorm, config.BackendSQL, config.BackendSQLite} {
			_, err := buildRepository(config.DatabaseConfig{Backend: backend}, nil, log, tp)
			assert.Error(t, err, backend)
		}
	})

	t.Run("unknown backend", func(t *testing.T) {
		_, err := buildRepository(config.DatabaseConfig{Backend: "mongo"}, nil, log, tp)
		assert.ErrorContains(t, err, "unknown database backend")
	})
}

func TestRouter(t *testing.T) {
	srv := httptest.NewServer(newMemoryApp(t).setupRouter())
	defer srv.Close()

	t.Run("plaintext", func(t *testing.T) {
		resp, body := get(t, srv, "/plaintext")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "Hello, World!", body)
		assert.Equal(t, "worldbench", resp.Header.Get("Server"))
	})

	t.Run("json", func(t *testing.T) {
		resp, body := get(t, srv, "/json")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `{"message":"Hello, World!"}`, body)
	})

	t.Run("db", func(t *testing.T) {
		resp, body := get(t, srv, "/db")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var w domain.World
		require.NoError(t, json.Unmarshal([]byte(body), &w))
		assert.Equal(t, int32(42), w.ID)
	})

	t.Run("queries", func(t *testing.T) {
		_, body := get(t, srv, "/queries?queries=3")
		var worlds []domain.World
		require.NoError(t, json.Unmarshal([]byte(body), &worlds))
		assert.Len(t, worlds, 3)
	})

	for _, path := range []string{"/updates?queries=2", "/update?queries=2"} {
		t.Run(path, func(t *testing.T) {
			resp, body := get(t, srv, path)
			require.Equal(t, http.StatusOK, resp.StatusCode)

			var worlds []domain.World
			require.NoError(t, json.Unmarshal([]byte(body), &worlds))
			require.Len(t, worlds, 2)
			for _, w := range worlds {
				assert.Equal(t, domain.World{ID: 42, RandomNumber: 42}, w)
			}
		})
	}

	for _, path := range []string{"/fortunes", "/fortune-quick"} {
		t.Run(path, func(t *testing.T) {
			resp, body := get(t, srv, path)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, "text/html; charset=utf-8", resp.Header.Get("Content-Type"))
			assert.Contains(t, body, "Additional fortune added at request time.")
			assert.Contains(t, body, "&lt;script&gt;")
		})
	}

	t.Run("health", func(t *testing.T) {
		_, body := get(t, srv, "/health")
		assert.Equal(t, "OK", body)
	})

	t.Run("unknown route", func(t *testing.T) {
		resp, _ := get(t, srv, "/cached-worlds")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestStartHTTPServerStopsOnCancel(t *testing.T) {
	app := newMemoryApp(t)
	app.config.Server.Port = 0

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.startHTTPServer(ctx, app.setupRouter()) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestHandleMigrationsRejectsBadInput(t *testing.T) {
	log, _ := logger.GetTestLogger(t)

	cfg := &config.Config{Database: config.DatabaseConfig{Backend: config.BackendMemory}}
	err := handleMigrations(context.Background(), cfg, "sideways", log)
	assert.ErrorContains(t, err, "unknown migration command")

	err = handleMigrations(context.Background(), cfg, "up", log)
	assert.ErrorContains(t, err, "need a database URL")
}

func TestRunRejectsUnknownFlag(t *testing.T) {
	err := run([]string{"-no-such-flag"})
	assert.Error(t, err)
}

func TestRunMigrateUnknownCommand(t *testing.T) {
	t.Setenv("WORLDBENCH_DATABASE_BACKEND", "memory")
	err := run([]string{"-migrate", "sideways"})
	assert.ErrorContains(t, err, "unknown migration command")
}

func TestSetupAppDatabase(t *testing.T) {
	log, _ := logger.GetTestLogger(t)
	tp := noop.NewTracerProvider()
	ctx := context.Background()

	t.Run("memory needs no database", func(t *testing.T) {
		db, err := setupAppDatabase(ctx, config.DatabaseConfig{Backend: config.BackendMemory}, log, tp)
		require.NoError(t, err)
		assert.Nil(t, db)
	})

	t.Run("sqlite is opened and seeded", func(t *testing.T) {
		cfg := config.DatabaseConfig{Backend: config.BackendSQLite, SQLitePath: ":memory:"}
		db, err := setupAppDatabase(ctx, cfg, log, tp)
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		repo, err := buildRepository(cfg, db, log, tp)
		require.NoError(t, err)

		w, err := repo.GetWorld(ctx, 1)
		require.NoError(t, err)
		require.NotNil(t, w)
		assert.Equal(t, int32(1), w.ID)

		absent, err := repo.GetWorld(ctx, domain.WorldRowCount+1)
		require.NoError(t, err)
		assert.Nil(t, absent)

		fortunes, err := repo.Fortunes(ctx)
		require.NoError(t, err)
		assert.Len(t, fortunes, 12)
	})
}
