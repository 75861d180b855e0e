package state

import (
	"context"
	"sync"
)

// InMemoryStateManager is an in-memory implementation of StateManager.
type InMemoryStateManager struct {
	lock   sync.RWMutex
	status *Status
}

var _ StateManager = &InMemoryStateManager{}

func NewInMemoryStateManager() *InMemoryStateManager {
	return &InMemoryStateManager{}
}

func (m *InMemoryStateManager) Get(ctx context.Context) (*Status, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()
	if m.status == nil {
		return nil, nil
	}
	return m.status.Copy(), nil
}

func (m *InMemoryStateManager) Set(ctx context.Context, status *Status) error {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.status = status
	return nil
}
