// Package memory is a map-backed storage.KeyValue used by tests and by
// commands that must not touch disk.
package memory

import (
	"context"
	"sync"
)

// Memory implements storage.KeyValue.
type Memory struct {
	mu    sync.RWMutex
	items map[string]string
}

// New returns an empty store.
func New() *Memory {
	return &Memory{items: make(map[string]string)}
}

func (m *Memory) GetItem(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.items[key]
	return v, ok, nil
}

func (m *Memory) SetItem(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.items[key] = value
	return nil
}

func (m *Memory) RemoveItem(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.items, key)
	return nil
}

func (m *Memory) Close() error { return nil }
