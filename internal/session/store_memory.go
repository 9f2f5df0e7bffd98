package session

import (
	"context"
	"sync"

	"go-storefront-admin/internal/model"
)

type MemoryStore struct {
	mu   sync.Mutex
	data *model.SessionData
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load(_ context.Context) (*model.SessionData, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return nil, ErrNoSession
	}
	cp := *m.data
	return &cp, nil
}

func (m *MemoryStore) Save(_ context.Context, data *model.SessionData) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *data
	m.data = &cp
	return nil
}

func (m *MemoryStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = nil
	return nil
}
