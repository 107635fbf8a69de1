package store

import (
	"bytes"
	"context"
	"sync"
)

// Mem is an in-process KV, lost when the process ends.
type Mem struct {
	mu     sync.Mutex
	values map[string][]byte
}

func NewMem() *Mem { return &Mem{values: make(map[string][]byte)} }

func (m *Mem) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	if !ok {
		return nil, ErrNotFound
	}
	return bytes.Clone(v), nil
}

func (m *Mem) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = bytes.Clone(value)
	return nil
}

func (m *Mem) Close() error { return nil }
