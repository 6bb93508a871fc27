package paramcache

import (
	"context"
	"fmt"
	"sync"
)

// Parameter is a single named remote value with optional caching. Reads go
// through Value, which fetches lazily and re-fetches once the value is
// older than the configured max age.
//
// A Parameter is safe for concurrent use. The read-check-refresh sequence
// runs under a mutex with a double-checked staleness test, so concurrent
// readers past the staleness threshold trigger at most one backend fetch.
type Parameter struct {
	cache          *Cache
	name           string
	withDecryption bool

	// group is the owning group when the parameter was declared through
	// one. It is a plain back-reference: the group owns the member list,
	// the member only delegates refresh. Immutable after construction.
	group *Group

	mu     sync.Mutex
	policy refreshPolicy
	value  *string
}

// Name returns the backend lookup key.
func (p *Parameter) Name() string {
	return p.name
}

// Value returns the cached value, fetching it first when it has never been
// read or has gone stale. A fetch failure propagates as-is; a stale value
// is never returned silently.
func (p *Parameter) Value(ctx context.Context) (string, error) {
	if p.group != nil {
		if err := p.group.refreshMemberIfStale(ctx, p); err != nil {
			return "", err
		}
		return p.cached()
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.value == nil || p.policy.shouldRefresh() {
		if err := p.policy.run(ctx, p.fetchLocked); err != nil {
			return "", err
		}
	}
	return *p.value, nil
}

// Peek returns the cached value without triggering any backend call. The
// second return reports whether a value has been fetched at all.
func (p *Parameter) Peek() (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.value == nil {
		return "", false
	}
	return *p.value, true
}

// Refresh forces a fetch regardless of staleness. A group member delegates
// entirely to its group, which re-fetches every member in one batched
// call.
func (p *Parameter) Refresh(ctx context.Context) error {
	if p.group != nil {
		return p.group.Refresh(ctx)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.policy.run(ctx, p.fetchLocked)
}

// fetchLocked issues the single-name backend fetch. Caller holds p.mu.
func (p *Parameter) fetchLocked(ctx context.Context) error {
	values, err := p.cache.fetch(ctx, "fetch", []string{p.name}, p.withDecryption)
	if err != nil {
		return err
	}
	value, ok := values[p.name]
	if !ok {
		return fmt.Errorf("parameter %q: %w", p.name, ErrParameterNotFound)
	}
	p.value = &value
	return nil
}

func (p *Parameter) cached() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.value == nil {
		return "", fmt.Errorf("parameter %q: %w", p.name, ErrParameterNotFound)
	}
	return *p.value, nil
}

func (p *Parameter) hasValue() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.value != nil
}

func (p *Parameter) setValue(value string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.value = &value
}
