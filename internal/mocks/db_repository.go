package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/worldbench/internal/domain"
	"github.com/phrazzld/worldbench/internal/store"
)

// MockDbRepository implements store.DbRepository for handler tests.
type MockDbRepository struct {
	GetWorldFn    func(ctx context.Context, id int32) (*domain.World, error)
	UpdateWorldFn func(ctx context.Context, w *domain.World, randomNumber int32) (*domain.World, error)
	FortunesFn    func(ctx context.Context) ([]*domain.Fortune, error)

	mu          sync.Mutex
	getCalls    []int32
	updateCalls []UpdateCall
}

// UpdateCall records the arguments of one UpdateWorld call.
type UpdateCall struct {
	ID           int32
	RandomNumber int32
}

var _ store.DbRepository = (*MockDbRepository)(nil)

// GetWorld implements store.DbRepository. Without GetWorldFn it returns a
// world whose random number equals its id.
func (m *MockDbRepository) GetWorld(ctx context.Context, id int32) (*domain.World, error) {
	m.mu.Lock()
	m.getCalls = append(m.getCalls, id)
	m.mu.Unlock()

	if m.GetWorldFn != nil {
		return m.GetWorldFn(ctx, id)
	}
	return &domain.World{ID: id, RandomNumber: id}, nil
}

// UpdateWorld implements store.DbRepository. Without UpdateWorldFn it sets
// the random number and returns w.
func (m *MockDbRepository) UpdateWorld(
	ctx context.Context,
	w *domain.World,
	randomNumber int32,
) (*domain.World, error) {
	m.mu.Lock()
	m.updateCalls = append(m.updateCalls, UpdateCall{ID: w.ID, RandomNumber: randomNumber})
	m.mu.Unlock()

	if m.UpdateWorldFn != nil {
		return m.UpdateWorldFn(ctx, w, randomNumber)
	}
	w.RandomNumber = randomNumber
	return w, nil
}

// Fortunes implements store.DbRepository.
func (m *MockDbRepository) Fortunes(ctx context.Context) ([]*domain.Fortune, error) {
	if m.FortunesFn != nil {
		return m.FortunesFn(ctx)
	}
	return []*domain.Fortune{}, nil
}

// GetCalls returns the ids passed to GetWorld, in call order.
func (m *MockDbRepository) GetCalls() []int32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]int32(nil), m.getCalls...)
}

// UpdateCalls returns the arguments of every UpdateWorld call, in order.
func (m *MockDbRepository) UpdateCalls() []UpdateCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]UpdateCall(nil), m.updateCalls...)
}
