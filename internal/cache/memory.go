package cache

import (
	"context"
	"sync"
	"time"

	"padeltime/internal/availability"
)

type memoryEntry struct {
	value     *availability.CourtAvailability
	expiresAt time.Time
}

// Memory is an in-process Store: a map guarded by an RWMutex with an
// absolute per-entry expiry stamped at insertion. Expired entries read as
// absent and are overwritten by the write-through that follows a miss; the
// lock is held only for map access, never during a scrape.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
}

// NewMemory creates an in-memory store whose entries expire ttl after
// insertion.
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
	}
}

func (m *Memory) Get(_ context.Context, key string) (*availability.CourtAvailability, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.entries[key]
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.value, true
}

func (m *Memory) Set(_ context.Context, key string, value *availability.CourtAvailability) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = memoryEntry{value: value, expiresAt: time.Now().Add(m.ttl)}
}

func (m *Memory) Contains(_ context.Context, key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.entries[key]
	return ok && !time.Now().After(entry.expiresAt)
}

func (m *Memory) Clear(_ context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string]memoryEntry)
}
