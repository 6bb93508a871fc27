package paramcache

import (
	"context"
	"fmt"
	"sync"
)

// Group is an ordered, append-only collection of Parameters sharing one
// refresh policy. Refreshing the group resolves every member in a single
// batched backend call, which is the reason groups exist.
//
// A Group is safe for concurrent use; the group mutex serializes the
// batched fetch so simultaneous stale readers cause one round-trip.
type Group struct {
	cache *Cache

	mu     sync.Mutex
	policy refreshPolicy
	params []*Parameter
	names  map[string]struct{}
}

// Parameter declares a new member of the group. The member delegates all
// refresh decisions and fetches to the group; a max age passed here is
// accepted but superseded by the group policy. Names must be unique within
// the group.
func (g *Group) Parameter(name string, opts ...ParameterOption) (*Parameter, error) {
	p, err := g.cache.newParameter(name, opts...)
	if err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, dup := g.names[p.name]; dup {
		return nil, fmt.Errorf("parameter %q already declared in group: %w", p.name, ErrInvalidParameter)
	}
	p.group = g
	g.names[p.name] = struct{}{}
	g.params = append(g.params, p)
	return p, nil
}

// Parameters returns the members in declaration order.
func (g *Group) Parameters() []*Parameter {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]*Parameter, len(g.params))
	copy(out, g.params)
	return out
}

// Len reports the number of declared members.
func (g *Group) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.params)
}

// Refresh re-fetches every member in one batched backend call per
// decryption flag (normally a single call). On failure no member value
// changes and the group's refresh time is not stamped.
func (g *Group) Refresh(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.policy.run(ctx, g.fetchLocked)
}

// refreshMemberIfStale backs a member's Value read: refresh the whole
// group when the member has never been fetched or the group policy says
// the values are stale. Caller must not hold the member mutex.
func (g *Group) refreshMemberIfStale(ctx context.Context, member *Parameter) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if member.hasValue() && !g.policy.shouldRefresh() {
		return nil
	}
	return g.policy.run(ctx, g.fetchLocked)
}

// fetchLocked resolves all member names and assigns values only after the
// full response is known good, so a failing fetch leaves every cached
// value untouched. Response entries for names the group never declared are
// ignored; a declared name missing from the response is an error. Caller
// holds g.mu.
func (g *Group) fetchLocked(ctx context.Context) error {
	if len(g.params) == 0 {
		return nil
	}

	// Backends take one decryption flag per call, so members are batched
	// per flag. In the common case every member uses the default and this
	// is a single round-trip.
	values := make(map[string]string, len(g.params))
	for _, withDecryption := range [...]bool{true, false} {
		names := make([]string, 0, len(g.params))
		for _, p := range g.params {
			if p.withDecryption == withDecryption {
				names = append(names, p.name)
			}
		}
		if len(names) == 0 {
			continue
		}
		fetched, err := g.cache.fetch(ctx, "fetch_group", names, withDecryption)
		if err != nil {
			return err
		}
		for _, name := range names {
			value, ok := fetched[name]
			if !ok {
				return fmt.Errorf("parameter %q: %w", name, ErrParameterNotFound)
			}
			values[name] = value
		}
	}

	for _, p := range g.params {
		p.setValue(values[p.name])
	}
	return nil
}
