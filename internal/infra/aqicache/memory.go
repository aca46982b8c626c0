package aqicache

import (
	"context"
	"sync"
	"time"

	"github.com/SnackOverflow707/NASA-Space-Apps-2025/internal/domain/aqi"
)

type entry struct {
	rating    aqi.Rating
	expiresAt time.Time
}

// MemoryStore keeps ratings in process memory for tests/dev.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

// NewMemoryStore constructs a store backed by process memory.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Get implements aqi.Cache.
func (s *MemoryStore) Get(_ context.Context, key string) (aqi.Rating, bool, error) {
	s.mu.RLock()
	item, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return aqi.Rating{}, false, nil
	}
	if s.expired(item.expiresAt) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return aqi.Rating{}, false, nil
	}
	return item.rating, true, nil
}

// Set caches the rating with optional TTL.
func (s *MemoryStore) Set(_ context.Context, key string, rating aqi.Rating, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	exp := time.Time{}
	if ttl > 0 {
		exp = s.now().Add(ttl)
	}
	s.entries[key] = entry{rating: rating, expiresAt: exp}
	return nil
}

// Len reports how many entries are held, expired ones included.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *MemoryStore) expired(ts time.Time) bool {
	if ts.IsZero() {
		return false
	}
	return ts.Before(s.now())
}

var _ aqi.Cache = (*MemoryStore)(nil)
