package memory

import (
	"context"
	"sync"

	"github.com/phrazzld/worldbench/internal/domain"
	"github.com/phrazzld/worldbench/internal/store"
)

// FortuneStore keeps fortunes in insertion order.
type FortuneStore struct {
	mu       sync.RWMutex
	fortunes []domain.Fortune
}

// Ensure FortuneStore implements store.FortuneAccessor.
var _ store.FortuneAccessor = (*FortuneStore)(nil)

// NewFortuneStore returns a store holding copies of fortunes.
func NewFortuneStore(fortunes ...*domain.Fortune) *FortuneStore {
	s := &FortuneStore{fortunes: make([]domain.Fortune, 0, len(fortunes))}
	for _, f := range fortunes {
		s.fortunes = append(s.fortunes, *f)
	}
	return s
}

// FindAll returns copies of every fortune in insertion order.
func (s *FortuneStore) FindAll(ctx context.Context) ([]*domain.Fortune, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Fortune, len(s.fortunes))
	for i := range s.fortunes {
		f := s.fortunes[i]
		out[i] = &f
	}
	return out, nil
}

// Add appends a copy of f.
func (s *FortuneStore) Add(f *domain.Fortune) {
	s.mu.Lock()
	s.fortunes = append(s.fortunes, *f)
	s.mu.Unlock()
}
