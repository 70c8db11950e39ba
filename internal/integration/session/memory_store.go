package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/okr-bot/backend/internal/application/adapter"
)

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// MemoryStore is the fallback session store when Redis is not configured.
// Values are JSON encoded so both stores behave identically.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryStore creates a new MemoryStore instance.
func NewMemoryStore(clock adapter.Clock) adapter.SessionStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     clock.Now,
	}
}

// Get loads the session stored under key into dest. Expired entries are dropped.
func (s *MemoryStore) Get(_ context.Context, key string, dest any) (bool, error) {
	s.mu.Lock()
	entry, ok := s.entries[key]
	if ok && !entry.expiresAt.IsZero() && !s.now().Before(entry.expiresAt) {
		delete(s.entries, key)
		ok = false
	}
	s.mu.Unlock()

	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(entry.data, dest); err != nil {
		return false, fmt.Errorf("failed to decode session: %w", err)
	}
	return true, nil
}

// Set stores value under key. A zero ttl never expires.
func (s *MemoryStore) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	entry := memoryEntry{data: data}
	if ttl > 0 {
		entry.expiresAt = s.now().Add(ttl)
	}

	s.mu.Lock()
	s.entries[key] = entry
	s.mu.Unlock()
	return nil
}

// Delete removes the session stored under key.
func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
	return nil
}
