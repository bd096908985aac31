package session

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// DefaultTTL is how long an idle session is kept.
const DefaultTTL = 24 * time.Hour

type memoryEntry struct {
	state     State
	expiresAt time.Time
}

// MemoryStore keeps session state in process memory. Entries expire after
// the configured TTL of inactivity.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryStore creates an in-memory store. A non-positive ttl selects DefaultTTL.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Load implements Store.
func (m *MemoryStore) Load(_ context.Context, id string) (*State, error) {
	if id == "" {
		return nil, ErrInvalidSessionID
	}
	m.mu.RLock()
	entry, ok := m.entries[id]
	m.mu.RUnlock()

	if !ok || !m.now().Before(entry.expiresAt) {
		return nil, ErrSessionNotFound
	}
	state := entry.state
	return &state, nil
}

// Save implements Store.
func (m *MemoryStore) Save(_ context.Context, id string, state *State) error {
	if id == "" {
		return ErrInvalidSessionID
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[id] = memoryEntry{state: *state, expiresAt: m.now().Add(m.ttl)}
	return nil
}

// Delete implements Store.
func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, id)
	return nil
}

// Ping implements Store. Memory is always reachable.
func (m *MemoryStore) Ping(context.Context) error {
	return nil
}

// Len returns the number of stored sessions, expired ones included.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// Cleanup removes expired sessions and returns how many were removed.
func (m *MemoryStore) Cleanup() int {
	now := m.now()
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, entry := range m.entries {
		if !now.Before(entry.expiresAt) {
			delete(m.entries, id)
			removed++
		}
	}
	return removed
}

// RunCleanup calls Cleanup every interval until ctx is cancelled.
func (m *MemoryStore) RunCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := m.Cleanup(); removed > 0 {
				slog.Debug("expired sessions removed",
					slog.Int("removed", removed),
					slog.Int("remaining", m.Len()))
			}
		}
	}
}
