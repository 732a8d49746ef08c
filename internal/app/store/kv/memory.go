// internal/app/store/kv/memory.go
package kv

import (
	"context"
	"sync"
)

// Memory is an in-process Store used by tests and local development.
// It honors the same version semantics as the networked backends.
type Memory struct {
	mu   sync.RWMutex
	docs map[string]Versioned
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{docs: make(map[string]Versioned)}
}

func (m *Memory) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	doc, ok := m.docs[key]
	return doc.Value, ok, nil
}

func (m *Memory) GetVersioned(ctx context.Context, key string) (Versioned, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	doc, ok := m.docs[key]
	return doc, ok, nil
}

func (m *Memory) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[key] = Versioned{Value: value, Version: m.docs[key].Version + 1}
	return nil
}

func (m *Memory) SetIfVersion(ctx context.Context, key, value string, version int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.docs[key].Version != version {
		return ErrVersionMismatch
	}
	m.docs[key] = Versioned{Value: value, Version: version + 1}
	return nil
}

func (m *Memory) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.docs, key)
	return nil
}

func (m *Memory) Ping(ctx context.Context) error {
	return nil
}
