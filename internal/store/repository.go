package store

import (
	"context"

	"github.com/phrazzld/worldbench/internal/domain"
)

// DbRepository is the data access capability used by request handlers.
//
// Implementations must be safe for concurrent use. They impose no locking of
// their own: concurrent updates of the same world race at the storage layer.
type DbRepository interface {
	// GetWorld returns the world with the given id. An absent row is not an
	// error: it yields a nil world and a nil error.
	GetWorld(ctx context.Context, id int32) (*domain.World, error)

	// UpdateWorld sets w.RandomNumber to randomNumber, persists w by primary
	// key and returns the persisted value. The mutation of w is visible to
	// the caller.
	UpdateWorld(ctx context.Context, w *domain.World, randomNumber int32) (*domain.World, error)

	// Fortunes returns every stored fortune in the order the store yields
	// them. No ordering is imposed.
	Fortunes(ctx context.Context) ([]*domain.Fortune, error)
}

// WorldAccessor is the keyed lookup/persist collaborator for worlds.
type WorldAccessor interface {
	// FindByID returns ErrWorldNotFound when no row has the given id.
	FindByID(ctx context.Context, id int32) (*domain.World, error)

	// Save writes w by primary key, inserting the row if it does not exist,
	// and returns the stored value.
	Save(ctx context.Context, w *domain.World) (*domain.World, error)
}

// FortuneAccessor is the bulk read collaborator for fortunes.
type FortuneAccessor interface {
	// FindAll returns all fortunes. An empty table yields an empty slice.
	FindAll(ctx context.Context) ([]*domain.Fortune, error)
}
