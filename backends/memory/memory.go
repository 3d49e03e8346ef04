package memory

import (
	"context"
	"sync"
	"time"
)

// Backend keeps values in process memory. Expired keys are dropped lazily on read.
type Backend struct {
	mu     sync.RWMutex
	values map[string]memoryValue
}

type memoryValue struct {
	value      string
	expiration time.Time // zero means no expiration
}

func (v memoryValue) expired(now time.Time) bool {
	return !v.expiration.IsZero() && now.After(v.expiration)
}

// New initializes a new in-memory storage instance.
func New() *Backend {
	return &Backend{
		values: make(map[string]memoryValue),
	}
}

func (m *Backend) Get(ctx context.Context, key string) (string, error) {
	m.mu.RLock()
	val, exists := m.values[key]
	m.mu.RUnlock()
	if !exists {
		return "", nil
	}

	if val.expired(time.Now()) {
		m.mu.Lock()
		// re-check, a concurrent Set may have refreshed it
		if cur, ok := m.values[key]; ok && cur.expired(time.Now()) {
			delete(m.values, key)
		}
		m.mu.Unlock()
		return "", nil
	}

	return val.value, nil
}

func (m *Backend) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	val := memoryValue{value: value}
	if expiration > 0 {
		val.expiration = time.Now().Add(expiration)
	}

	m.mu.Lock()
	m.values[key] = val
	m.mu.Unlock()
	return nil
}

func (m *Backend) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	delete(m.values, key)
	m.mu.Unlock()
	return nil
}

// Len returns the number of stored keys, expired ones included
func (m *Backend) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.values)
}

func (m *Backend) Close() error {
	m.mu.Lock()
	m.values = make(map[string]memoryValue)
	m.mu.Unlock()
	return nil
}
