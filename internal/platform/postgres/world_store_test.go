package postgres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/worldbench/internal/domain"
	"github.com/phrazzld/worldbench/internal/platform/logger"
	"github.com/phrazzld/worldbench/internal/store"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func TestPostgresWorldStore_FindByID(t *testing.T) {
	ctx := context.Background()
	query := regexp.QuoteMeta(selectWorldQuery)

	t.Run("found", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresWorldStore(db, nil)

		mock.ExpectQuery(query).
			WithArgs(int32(7)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "randomnumber"}).AddRow(7, 4242))

		w, err := s.FindByID(ctx, 7)
		require.NoError(t, err)
		assert.Equal(t, &domain.World{ID: 7, RandomNumber: 4242}, w)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresWorldStore(db, nil)

		mock.ExpectQuery(query).
			WithArgs(int32(999)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "randomnumber"}))

		w, err := s.FindByID(ctx, 999)
		assert.Nil(t, w)
		assert.ErrorIs(t, err, store.ErrWorldNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database fault is logged and returned", func(t *testing.T) {
		db, mock := newMockDB(t)
		log, buf := logger.GetTestLogger(t)
		s := NewPostgresWorldStore(db, log)

		fault := errors.New("connection refused")
		mock.ExpectQuery(query).WithArgs(int32(1)).WillReturnError(fault)

		w, err := s.FindByID(ctx, 1)
		assert.Nil(t, w)
		assert.ErrorIs(t, err, fault)
		assert.False(t, store.IsNotFoundError(err))
		var storeErr *store.StoreError
		require.ErrorAs(t, err, &storeErr)
		assert.Equal(t, "world", storeErr.Entity)
		assert.Equal(t, "find", storeErr.Operation)
		logger.AssertLogContains(t, buf, "failed to query world")
		logger.AssertLogField(t, buf, "component", "world_store")
	})
}

func TestPostgresWorldStore_Save(t *testing.T) {
	ctx := context.Background()
	upsert := `INSERT INTO world \(id, randomnumber\)`

	t.Run("upserts by primary key", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresWorldStore(db, nil)

		mock.ExpectExec(upsert).
			WithArgs(int32(1), int32(42)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		in := &domain.World{ID: 1, RandomNumber: 42}
		saved, err := s.Save(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, in, saved)
		assert.NotSame(t, in, saved)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("deadlock maps to update failure", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresWorldStore(db, nil)

		mock.ExpectExec(upsert).
			WithArgs(int32(2), int32(5)).
			WillReturnError(&pgconn.PgError{Code: deadlockDetectedCode, Message: "deadlock detected"})

		saved, err := s.Save(ctx, &domain.World{ID: 2, RandomNumber: 5})
		assert.Nil(t, saved)
		assert.ErrorIs(t, err, store.ErrUpdateFailed)
		var storeErr *store.StoreError
		require.ErrorAs(t, err, &storeErr)
		assert.Equal(t, "save", storeErr.Operation)
	})

	t.Run("nil world", func(t *testing.T) {
		db, _ := newMockDB(t)
		s := NewPostgresWorldStore(db, nil)

		_, err := s.Save(ctx, nil)
		assert.ErrorIs(t, err, store.ErrInvalidEntity)
	})
}

func TestNewPostgresWorldStorePanicsOnNilDB(t *testing.T) {
	assert.Panics(t, func() { NewPostgresWorldStore(nil, nil) })
	assert.Panics(t, func() { NewPostgresFortuneStore(nil, nil) })
}
