package storage

import (
	"context"
	"sync"
)

// KV is the durable local store the cart persists through. Get reports
// whether the key was present; a missing key is not an error.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// MemStore is an in-memory KV for tests and throwaway sessions.
type MemStore struct {
	mu    sync.RWMutex
	store map[string]string
}

func NewMemStore() *MemStore {
	return &MemStore{
		store: make(map[string]string),
	}
}

func (m *MemStore) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	val, ok := m.store[key]
	return val, ok, nil
}

func (m *MemStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store[key] = value
	return nil
}
