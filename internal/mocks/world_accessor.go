package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/worldbench/internal/domain"
	"github.com/phrazzld/worldbench/internal/store"
)

// MockWorldAccessor implements store.WorldAccessor for testing.
type MockWorldAccessor struct {
	// Custom behavior functions
	FindByIDFn func(ctx context.Context, id int32) (*domain.World, error)
	SaveFn     func(ctx context.Context, w *domain.World) (*domain.World, error)

	// Default response values
	World *domain.World
	Err   error

	mu        sync.Mutex
	findCalls []int32
	saveCalls []domain.World
}

var _ store.WorldAccessor = (*MockWorldAccessor)(nil)

// FindByID implements store.WorldAccessor.
func (m *MockWorldAccessor) FindByID(ctx context.Context, id int32) (*domain.World, error) {
	m.mu.Lock()
	m.findCalls = append(m.findCalls, id)
	m.mu.Unlock()

	if m.FindByIDFn != nil {
		return m.FindByIDFn(ctx, id)
	}
	return m.World, m.Err
}

// Save implements store.WorldAccessor. The world is recorded as it was at
// the time of the call.
func (m *MockWorldAccessor) Save(ctx context.Context, w *domain.World) (*domain.World, error) {
	m.mu.Lock()
	m.saveCalls = append(m.saveCalls, *w)
	m.mu.Unlock()

	if m.SaveFn != nil {
		return m.SaveFn(ctx, w)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return w, nil
}

// FindCalls returns the ids passed to FindByID, in call order.
func (m *MockWorldAccessor) FindCalls() []int32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]int32(nil), m.findCalls...)
}

// SaveCalls returns the worlds passed to Save, in call order.
func (m *MockWorldAccessor) SaveCalls() []domain.World {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.World(nil), m.saveCalls...)
}
