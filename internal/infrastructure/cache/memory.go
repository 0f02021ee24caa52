package cache

import (
	"context"
	"sync"
	"time"

	"vidhub/internal/domain/repositories"
)

// MemoryDedupCache is a process-local DedupCache for the memory store driver
// and tests.
type MemoryDedupCache struct {
	mu      sync.Mutex
	entries map[string]time.Time
	now     func() time.Time
}

func NewMemoryDedupCache(now func() time.Time) *MemoryDedupCache {
	if now == nil {
		now = time.Now
	}
	return &MemoryDedupCache{entries: make(map[string]time.Time), now: now}
}

func (c *MemoryDedupCache) Seen(_ context.Context, key string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	exp, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	if !c.now().Before(exp) {
		delete(c.entries, key)
		return false, nil
	}
	return true, nil
}

func (c *MemoryDedupCache) Mark(_ context.Context, key string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = c.now().Add(ttl)
	return nil
}

type MemoryPendingStore struct {
	mu     sync.Mutex
	events map[string]repositories.ParkedEvent
}

func NewMemoryPendingStore() *MemoryPendingStore {
	return &MemoryPendingStore{events: make(map[string]repositories.ParkedEvent)}
}

func (s *MemoryPendingStore) Park(_ context.Context, ev repositories.ParkedEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[ev.UploadHandle]; !ok {
		s.events[ev.UploadHandle] = ev
	}
	return nil
}

func (s *MemoryPendingStore) List(_ context.Context) ([]repositories.ParkedEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]repositories.ParkedEvent, 0, len(s.events))
	for _, ev := range s.events {
		out = append(out, ev)
	}
	return out, nil
}

func (s *MemoryPendingStore) Remove(_ context.Context, handle string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.events, handle)
	return nil
}
