package dismissal

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-process Store for the CLI and tests
type MemoryStore struct {
	mu   sync.Mutex
	ttl  time.Duration
	keys map[int]map[string]time.Time // userID -> key -> expires at
}

// NewMemoryStore создаёт хранилище в памяти
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:  ttl,
		keys: make(map[int]map[string]time.Time),
	}
}

func (m *MemoryStore) Dismiss(_ context.Context, userID int, key string, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.keys[userID]
	if !ok {
		user = make(map[string]time.Time)
		m.keys[userID] = user
	}
	user[key] = now.Add(m.ttl)
	return nil
}

func (m *MemoryStore) Active(_ context.Context, userID int, now time.Time) (map[string]bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	active := make(map[string]bool)
	for key, expires := range m.keys[userID] {
		if now.Before(expires) {
			active[key] = true
			continue
		}
		delete(m.keys[userID], key)
	}
	return active, nil
}
