package store

import (
	"context"
	"sync"
)

// Memory is an in-process Gateway. It lives as long as the process, like a browser tab's session storage.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemory creates an empty in-memory gateway.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

// Write stores a copy of value under key.
func (m *Memory) Write(_ context.Context, key string, value []byte) error {
	buf := make([]byte, len(value))
	copy(buf, value)

	m.mu.Lock()
	m.data[key] = buf
	m.mu.Unlock()
	return nil
}

// Read returns a copy of the value stored under key.
func (m *Memory) Read(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	v, ok := m.data[key]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}

	buf := make([]byte, len(v))
	copy(buf, v)
	return buf, nil
}

// Len returns the number of stored keys.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}
