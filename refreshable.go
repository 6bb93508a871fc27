package paramcache

import (
	"context"
	"time"
)

// Refresher is implemented by cache entities whose value can be forced to
// re-fetch: Parameter and Group. RefreshOnError binds to it.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// refreshPolicy holds the staleness bookkeeping shared by Parameter and
// Group. Callers synchronize access; the policy itself does not lock.
type refreshPolicy struct {
	maxAge      time.Duration
	lastRefresh time.Time
	now         func() time.Time
}

func (p *refreshPolicy) clock() time.Time {
	if p.now != nil {
		return p.now()
	}
	return time.Now()
}

// shouldRefresh is a pure function of the policy state and the current
// time. A zero maxAge means the value never goes stale on its own.
func (p *refreshPolicy) shouldRefresh() bool {
	if p.maxAge <= 0 {
		return false
	}
	if p.lastRefresh.IsZero() {
		return true
	}
	return p.clock().After(p.lastRefresh.Add(p.maxAge))
}

// run executes fetch and stamps the refresh time only when it returns nil.
// A failed fetch leaves lastRefresh untouched so the entity stays stale.
func (p *refreshPolicy) run(ctx context.Context, fetch func(context.Context) error) error {
	if fetch == nil {
		return ErrUnimplemented
	}
	if err := fetch(ctx); err != nil {
		return err
	}
	p.lastRefresh = p.clock()
	return nil
}
