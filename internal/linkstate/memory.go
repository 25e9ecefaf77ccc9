package linkstate

import (
	"context"
	"sync"
	"time"

	"github.com/Reblayzer/BachelorCode-sub000/internal/core"
	"github.com/Reblayzer/BachelorCode-sub000/internal/models"
)

var _ core.StateStore = (*Memory)(nil)

type memoryEntry struct {
	entry     models.LinkState
	expiresAt time.Time
}

// Memory is a process-local StateStore. Suitable for single-instance deployments.
type Memory struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemory creates an empty in-memory state store.
func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

// Save stores entry under state for ttl.
func (m *Memory) Save(_ context.Context, state string, entry models.LinkState, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[state] = memoryEntry{
		entry:     entry,
		expiresAt: m.now().Add(ttl),
	}
	return nil
}

// Take removes and returns the entry; expired entries are removed and reported as missing.
func (m *Memory) Take(_ context.Context, state string) (*models.LinkState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	item, ok := m.entries[state]
	if !ok {
		return nil, nil
	}
	delete(m.entries, state)

	if !m.now().Before(item.expiresAt) {
		return nil, nil
	}
	entry := item.entry
	return &entry, nil
}

// Cleanup drops expired entries and returns how many were removed.
func (m *Memory) Cleanup(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	var removed int64
	for state, item := range m.entries {
		if !now.Before(item.expiresAt) {
			delete(m.entries, state)
			removed++
		}
	}
	return removed, nil
}

// Len returns the number of stored entries, expired or not.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
