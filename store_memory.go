package paramcache

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryStore is an in-process parameter store for tests and development.
// Entries live forever by default; a positive defaultTTL expires them,
// which is handy for simulating rotation.
type MemoryStore struct {
	cache      *gocache.Cache
	defaultTTL time.Duration
}

// NewMemoryStore creates an empty memory store with non-expiring entries.
func NewMemoryStore() *MemoryStore {
	return newMemoryStore(nil, 0, defaultMemoryCleanupInterval)
}

func newMemoryStore(seed map[string]string, defaultTTL, cleanupInterval time.Duration) *MemoryStore {
	if defaultTTL <= 0 {
		defaultTTL = gocache.NoExpiration
	}
	if cleanupInterval <= 0 {
		cleanupInterval = defaultMemoryCleanupInterval
	}
	s := &MemoryStore{
		cache:      gocache.New(defaultTTL, cleanupInterval),
		defaultTTL: defaultTTL,
	}
	for name, value := range seed {
		s.Seed(name, value)
	}
	return s
}

// Driver implements Store.
func (s *MemoryStore) Driver() Driver { return DriverMemory }

// FetchParameters implements Store.
func (s *MemoryStore) FetchParameters(_ context.Context, names []string, _ bool) (map[string]string, error) {
	values := make(map[string]string, len(names))
	for _, name := range names {
		item, ok := s.cache.Get(name)
		if !ok {
			return nil, fmt.Errorf("parameter %q: %w", name, ErrParameterNotFound)
		}
		value, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("parameter %q holds a non-string value", name)
		}
		values[name] = value
	}
	return values, nil
}

// Seed stores a value under name using the store's default TTL.
func (s *MemoryStore) Seed(name, value string) {
	s.cache.Set(name, value, s.defaultTTL)
}

// SeedTTL stores a value that expires after ttl.
func (s *MemoryStore) SeedTTL(name, value string, ttl time.Duration) {
	s.cache.Set(name, value, ttl)
}

// Delete removes a value, making subsequent fetches fail with
// ErrParameterNotFound.
func (s *MemoryStore) Delete(name string) {
	s.cache.Delete(name)
}
