package memory

import (
	"context"
	"sync"

	"github.com/phrazzld/worldbench/internal/domain"
	"github.com/phrazzld/worldbench/internal/store"
)

// WorldStore keeps worlds in a map keyed by id. Values are copied on the way
// in and out so callers never share memory with the store.
type WorldStore struct {
	mu     sync.RWMutex
	worlds map[int32]*domain.World
}

// Ensure WorldStore implements store.WorldAccessor.
var _ store.WorldAccessor = (*WorldStore)(nil)

// NewWorldStore returns a store holding copies of worlds.
func NewWorldStore(worlds ...*domain.World) *WorldStore {
	s := &WorldStore{worlds: make(map[int32]*domain.World, len(worlds))}
	for _, w := range worlds {
		if w == nil {
			continue
		}
		s.worlds[w.ID] = w.Clone()
	}
	return s
}

// FindByID returns a copy of the world, or store.ErrWorldNotFound.
func (s *WorldStore) FindByID(ctx context.Context, id int32) (*domain.World, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	w, ok := s.worlds[id]
	s.mu.RUnlock()

	if !ok {
		return nil, store.ErrWorldNotFound
	}
	return w.Clone(), nil
}

// Save stores a copy of w under w.ID, inserting it if absent.
func (s *WorldStore) Save(ctx context.Context, w *domain.World) (*domain.World, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if w == nil {
		return nil, store.ErrInvalidEntity
	}

	stored := w.Clone()
	s.mu.Lock()
	s.worlds[stored.ID] = stored
	s.mu.Unlock()

	return stored.Clone(), nil
}

// Len reports the number of stored worlds.
func (s *WorldStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.worlds)
}
