// Package cache provides TTL payload stores behind the contracts.Cache
// interface: an in-process map store and a Redis-backed store for
// deployments where several gateway instances should share one TTL window.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/XavierBriggs/Hermes/pkg/contracts"
)

type entry struct {
	data      []byte
	expiresAt time.Time
}

// Memory is an in-process TTL store. The TTL is fixed at construction and
// applies uniformly; Set overwrites any existing entry and restarts its
// clock. Entries are replaced whole, never mutated, so a half-written value
// is never observable.
type Memory struct {
	ttl     time.Duration
	mu      sync.RWMutex
	entries map[string]entry
}

var _ contracts.Cache = (*Memory)(nil)

// NewMemory creates an in-memory store with the given TTL
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		ttl:     ttl,
		entries: make(map[string]entry),
	}
}

// Get returns the value stored under key. Expired entries are treated as
// absent and evicted.
func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok {
		return nil, false, nil
	}

	if time.Now().After(e.expiresAt) {
		m.mu.Lock()
		// Re-check under the write lock: a concurrent Set may have
		// refreshed the entry since the read above.
		if cur, ok := m.entries[key]; ok && time.Now().After(cur.expiresAt) {
			delete(m.entries, key)
		}
		m.mu.Unlock()
		return nil, false, nil
	}

	// Callers get their own copy so mutating a returned payload can never
	// corrupt the entry for later hits.
	out := make([]byte, len(e.data))
	copy(out, e.data)
	return out, true, nil
}

// Set stores value under key, replacing any existing entry and resetting its
// TTL clock
func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	m.entries[key] = entry{
		data:      value,
		expiresAt: time.Now().Add(m.ttl),
	}
	m.mu.Unlock()
	return nil
}

// Len returns the number of entries currently held, including not yet
// evicted expired ones
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
