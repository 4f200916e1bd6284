package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/worldbench/internal/domain"
	"github.com/phrazzld/worldbench/internal/store"
)

// MockFortuneAccessor implements store.FortuneAccessor for testing.
type MockFortuneAccessor struct {
	FindAllFn func(ctx context.Context) ([]*domain.Fortune, error)

	Fortunes []*domain.Fortune
	Err      error

	mu    sync.Mutex
	calls int
}

var _ store.FortuneAccessor = (*MockFortuneAccessor)(nil)

// FindAll implements store.FortuneAccessor.
func (m *MockFortuneAccessor) FindAll(ctx context.Context) ([]*domain.Fortune, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	if m.FindAllFn != nil {
		return m.FindAllFn(ctx)
	}
	return m.Fortunes, m.Err
}

// Calls returns how many times FindAll ran.
func (m *MockFortuneAccessor) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
