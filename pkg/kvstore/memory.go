package kvstore

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
)

// Memory is an in-process Store used in tests and for running without a
// database. Values are kept as JSON so load/save behaves exactly like the
// durable implementation.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

// Load implements Store.
func (m *Memory) Load(_ context.Context, key string, dest any) bool {
	m.mu.RLock()
	raw, ok := m.data[key]
	m.mu.RUnlock()
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		slog.Warn("discarding malformed stored value", "key", key, "error", err)
		return false
	}
	return true
}

// Save implements Store.
func (m *Memory) Save(_ context.Context, key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		slog.Error("failed to marshal value for persistence", "key", key, "error", err)
		return
	}
	m.mu.Lock()
	m.data[key] = raw
	m.mu.Unlock()
}
