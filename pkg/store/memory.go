package store

import (
	"context"
	"sync"
)

// Memory is a KV held in a map; nothing survives the process.
type Memory struct {
	mu     sync.Mutex
	values map[string]string
}

// check it meets the interface
var _ KV = &Memory{}

func NewMemory() *Memory {
	return &Memory{values: map[string]string{}}
}

func (m *Memory) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.values[key]
	return v, ok, nil
}

func (m *Memory) SetMany(ctx context.Context, values map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for k, v := range values {
		m.values[k] = v
	}
	return nil
}

func (m *Memory) Close() error {
	return nil
}
