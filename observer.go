package paramcache

import (
	"context"
	"time"
)

// Observer receives events for backend fetches.
// It is called after each store round-trip completes.
type Observer interface {
	OnFetch(ctx context.Context, op string, names []string, err error, dur time.Duration, driver Driver)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(ctx context.Context, op string, names []string, err error, dur time.Duration, driver Driver)

// OnFetch implements Observer.
func (f ObserverFunc) OnFetch(ctx context.Context, op string, names []string, err error, dur time.Duration, driver Driver) {
	if f == nil {
		return
	}
	f(ctx, op, names, err, dur, driver)
}
