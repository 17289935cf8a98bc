package kv

import (
	"context"
	"sync"
)

// Memory is an in-process Store.
type Memory struct {
	mu      sync.Mutex
	entries map[string]Entry
	seq     int64
}

var _ Store = (*Memory)(nil)

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]Entry)}
}

// Get implements Store.
func (m *Memory) Get(_ context.Context, key string) (Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return Entry{}, ErrNotFound
	}
	return e, nil
}

// Put implements Store.
func (m *Memory) Put(_ context.Context, key, value string, expect int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.entries[key].Version != expect {
		return 0, ErrVersionConflict
	}
	m.seq++
	m.entries[key] = Entry{Key: key, Value: value, Version: m.seq}
	return m.seq, nil
}

// Remove implements Store.
func (m *Memory) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, key)
	return nil
}

// Close implements Store.
func (m *Memory) Close() error {
	return nil
}
