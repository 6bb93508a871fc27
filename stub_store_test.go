package paramcache

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// stubStore is the in-package test double: deterministic values, recorded
// calls, switchable failure.
type stubStore struct {
	mu      sync.Mutex
	values  map[string]string
	extra   map[string]string // returned on every fetch without being asked for
	err     error
	calls   [][]string
	decrypt []bool
	delay   time.Duration
}

func newStubStore(values map[string]string) *stubStore {
	if values == nil {
		values = make(map[string]string)
	}
	return &stubStore{values: values}
}

func (s *stubStore) Driver() Driver { return Driver("stub") }

func (s *stubStore) FetchParameters(_ context.Context, names []string, withDecryption bool) (map[string]string, error) {
	s.mu.Lock()
	recorded := make([]string, len(names))
	copy(recorded, names)
	s.calls = append(s.calls, recorded)
	s.decrypt = append(s.decrypt, withDecryption)
	err := s.err
	delay := s.delay
	out := make(map[string]string, len(names))
	var missing string
	for _, name := range names {
		value, ok := s.values[name]
		if !ok {
			missing = name
			break
		}
		out[name] = value
	}
	for name, value := range s.extra {
		out[name] = value
	}
	s.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}
	if err != nil {
		return nil, err
	}
	if missing != "" {
		return nil, fmt.Errorf("parameter %q: %w", missing, ErrParameterNotFound)
	}
	return out, nil
}

func (s *stubStore) set(name, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[name] = value
}

func (s *stubStore) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func (s *stubStore) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func (s *stubStore) call(i int) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[i]
}

// fakeClock drives refresh policies deterministically in tests.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

// newTestCache wires a stub store and fake clock into a cache.
func newTestCache(store Store, clk *fakeClock, opts ...Option) *Cache {
	c := New(store, opts...)
	if clk != nil {
		c.now = clk.Now
	}
	return c
}
