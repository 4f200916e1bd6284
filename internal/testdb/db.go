package testdb

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/phrazzld/worldbench/internal/config"
	"github.com/phrazzld/worldbench/internal/platform/logger"
	"github.com/phrazzld/worldbench/internal/platform/postgres"
)

// TestTimeout defines a default timeout for test database operations.
const TestTimeout = 30 * time.Second

// Environment variables checked for the test database URL, in order.
const (
	EnvDatabaseURL       = "DATABASE_URL"
	EnvWorldbenchTestURL = "WORLDBENCH_TEST_DB_URL"
)

// lockKey is the advisory lock that serializes test packages sharing the
// world and fortune tables.
const lockKey = 0x776f726c64 // "world"

// GetTestDatabaseURL returns the first non-empty database URL from the
// environment, or "" when none is set.
func GetTestDatabaseURL() string {
	for _, name := range []string{EnvDatabaseURL, EnvWorldbenchTestURL} {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

// IsIntegrationTestEnvironment reports whether a test database is configured.
func IsIntegrationTestEnvironment() bool {
	return GetTestDatabaseURL() != ""
}

// GetTestDBWithT returns a migrated database connection for testing. It
// skips the test if no database URL is set. The connection holds an
// advisory lock until the test finishes so that tests in different
// packages do not rewrite the shared tables concurrently.
func GetTestDBWithT(t *testing.T) *sql.DB {
	t.Helper()

	dbURL := GetTestDatabaseURL()
	if dbURL == "" {
		t.Skipf("%s or %s not set - skipping integration test", EnvDatabaseURL, EnvWorldbenchTestURL)
	}

	log, _ := logger.GetTestLogger(t)
	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	db, err := postgres.Open(ctx, config.DatabaseConfig{
		URL:          dbURL,
		Backend:      config.BackendSQL,
		MaxOpenConns: 10,
		MaxIdleConns: 5,
	}, log)
	require.NoError(t, err, "Failed to open database connection")
	t.Cleanup(func() { CleanupDB(t, db) })

	lockConn, err := db.Conn(ctx)
	require.NoError(t, err, "Failed to reserve connection for advisory lock")
	_, err = lockConn.ExecContext(ctx, "SELECT pg_advisory_lock($1)", lockKey)
	require.NoError(t, err, "Failed to acquire advisory lock")
	t.Cleanup(func() {
		_, _ = lockConn.ExecContext(context.Background(), "SELECT pg_advisory_unlock($1)", lockKey)
		_ = lockConn.Close()
	})

	require.NoError(t, postgres.Migrate(ctx, db, "up", log), "Failed to run migrations")
	return db
}

// CleanupDB properly closes a database connection, logging any errors.
func CleanupDB(t *testing.T, db *sql.DB) {
	t.Helper()
	if db == nil {
		return
	}

	if err := db.Close(); err != nil {
		t.Logf("Warning: failed to close database connection: %v", err)
	}
}

// WithTx executes a test function within a transaction, automatically rolling back
// after the test completes. This ensures test isolation and prevents side effects.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err, "Failed to begin transaction")

	defer func() {
		err := tx.Rollback()
		// sql.ErrTxDone is expected if tx is already committed or rolled back
		if err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Logf("Warning: failed to rollback transaction: %v", err)
		}
	}()

	fn(t, tx)
}
