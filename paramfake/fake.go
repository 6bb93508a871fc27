package paramfake

import (
	"context"
	"sync"
	"testing"

	"github.com/goforj/paramcache"
)

// Fake exposes a deterministic in-memory parameter store plus assertion
// helpers for tests. It wraps the memory store so no external services are
// needed, and counts every backend fetch the cache performs.
type Fake struct {
	cache *paramcache.Cache
	store *paramcache.MemoryStore

	mu      sync.Mutex
	total   int
	byName  map[string]int
	fetches [][]string
}

// New creates a Fake using an in-memory store. Options are forwarded to
// the cache under test.
func New(opts ...paramcache.Option) *Fake {
	f := &Fake{
		store:  paramcache.NewMemoryStore(),
		byName: make(map[string]int),
	}
	f.cache = paramcache.New(&countingStore{inner: f.store, onFetch: f.record}, opts...)
	return f
}

// Cache returns the cache facade to inject into code under test.
func (f *Fake) Cache() *paramcache.Cache { return f.cache }

// Seed stores a backend value.
func (f *Fake) Seed(name, value string) { f.store.Seed(name, value) }

// Rotate replaces a backend value, simulating an out-of-band rotation. The
// cache keeps serving the old value until it refreshes.
func (f *Fake) Rotate(name, value string) { f.store.Seed(name, value) }

// Delete removes a backend value so fetches fail with
// paramcache.ErrParameterNotFound.
func (f *Fake) Delete(name string) { f.store.Delete(name) }

// Reset clears recorded fetch counts. Seeded values are kept.
func (f *Fake) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.total = 0
	f.byName = make(map[string]int)
	f.fetches = nil
}

// Fetches returns the total number of backend round-trips.
func (f *Fake) Fetches() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.total
}

// FetchesFor returns how many round-trips included name.
func (f *Fake) FetchesFor(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.byName[name]
}

// LastFetch returns the names of the most recent round-trip, or nil when
// none happened.
func (f *Fake) LastFetch() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.fetches) == 0 {
		return nil
	}
	last := f.fetches[len(f.fetches)-1]
	out := make([]string, len(last))
	copy(out, last)
	return out
}

// AssertFetches verifies the total number of backend round-trips.
func (f *Fake) AssertFetches(t *testing.T, total int) {
	t.Helper()
	if got := f.Fetches(); got != total {
		t.Fatalf("expected %d backend fetches, got %d", total, got)
	}
}

// AssertFetched verifies name was part of a round-trip the expected number
// of times.
func (f *Fake) AssertFetched(t *testing.T, name string, times int) {
	t.Helper()
	if got := f.FetchesFor(name); got != times {
		t.Fatalf("expected %q fetched %d times, got %d", name, times, got)
	}
}

// AssertNotFetched ensures name never reached the backend.
func (f *Fake) AssertNotFetched(t *testing.T, name string) {
	t.Helper()
	if got := f.FetchesFor(name); got != 0 {
		t.Fatalf("expected %q not fetched, got %d", name, got)
	}
}

func (f *Fake) record(names []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.total++
	recorded := make([]string, len(names))
	copy(recorded, names)
	f.fetches = append(f.fetches, recorded)
	for _, name := range names {
		f.byName[name]++
	}
}

// countingStore wraps a Store to record fetches.
type countingStore struct {
	inner   paramcache.Store
	onFetch func(names []string)
}

func (s *countingStore) Driver() paramcache.Driver { return s.inner.Driver() }

func (s *countingStore) FetchParameters(ctx context.Context, names []string, withDecryption bool) (map[string]string, error) {
	s.onFetch(names)
	return s.inner.FetchParameters(ctx, names, withDecryption)
}
