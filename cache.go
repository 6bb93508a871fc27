package paramcache

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Cache is the entry point of the package. It owns the injected Store and
// acts as the factory for Parameters and Groups, replacing any process-wide
// client singleton with an explicit dependency.
type Cache struct {
	store         Store
	defaultMaxAge time.Duration
	observer      Observer
	now           func() time.Time
}

// Option configures a Cache.
type Option func(*Cache)

// WithDefaultMaxAge sets the max age applied to parameters and groups that
// do not set their own. Zero (the default) means values never go stale on
// their own and are only replaced by explicit or error-driven refreshes.
func WithDefaultMaxAge(maxAge time.Duration) Option {
	return func(c *Cache) {
		c.defaultMaxAge = maxAge
	}
}

// WithObserver attaches an observer to receive fetch events.
func WithObserver(o Observer) Option {
	return func(c *Cache) {
		c.observer = o
	}
}

// New creates a cache bound to a concrete store.
//
// Example: SSM-backed cache
//
//	ctx := context.Background()
//	store := paramcache.NewStoreWith(ctx, paramcache.DriverSSM,
//		paramcache.WithSSMRegion("us-east-1"),
//	)
//	pc := paramcache.New(store, paramcache.WithDefaultMaxAge(5*time.Minute))
//	dbPassword, _ := pc.Parameter("/prod/db/password")
//	value, err := dbPassword.Value(ctx)
//	_ = value
//	_ = err
func New(store Store, opts ...Option) *Cache {
	c := &Cache{store: store}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Store returns the underlying store implementation.
func (c *Cache) Store() Store {
	return c.store
}

// Driver reports the underlying store driver.
func (c *Cache) Driver() Driver {
	return c.store.Driver()
}

// Parameter declares a single cached parameter. The name is validated
// eagerly; no backend call happens until the first Value read or an
// explicit Refresh.
func (c *Cache) Parameter(name string, opts ...ParameterOption) (*Parameter, error) {
	return c.newParameter(name, opts...)
}

// Group declares an empty parameter group sharing one refresh policy.
// Members are added through the group's Parameter factory and are fetched
// together in a single batched backend call.
func (c *Cache) Group(opts ...GroupOption) *Group {
	cfg := groupConfig{maxAge: c.defaultMaxAge}
	for _, opt := range opts {
		cfg = opt(cfg)
	}
	return &Group{
		cache:  c,
		policy: refreshPolicy{maxAge: cfg.maxAge, now: c.now},
		names:  make(map[string]struct{}),
	}
}

func (c *Cache) newParameter(name string, opts ...ParameterOption) (*Parameter, error) {
	if strings.TrimSpace(name) == "" || name != strings.TrimSpace(name) {
		return nil, fmt.Errorf("parameter name %q: %w", name, ErrInvalidParameter)
	}
	cfg := parameterConfig{maxAge: c.defaultMaxAge, withDecryption: true}
	for _, opt := range opts {
		cfg = opt(cfg)
	}
	return &Parameter{
		cache:          c,
		name:           name,
		withDecryption: cfg.withDecryption,
		policy:         refreshPolicy{maxAge: cfg.maxAge, now: c.now},
	}, nil
}

// fetch runs one store round-trip and reports it to the observer.
func (c *Cache) fetch(ctx context.Context, op string, names []string, withDecryption bool) (map[string]string, error) {
	start := time.Now()
	values, err := c.store.FetchParameters(ctx, names, withDecryption)
	if c.observer != nil {
		c.observer.OnFetch(ctx, op, names, err, time.Since(start), c.Driver())
	}
	return values, err
}

type parameterConfig struct {
	maxAge         time.Duration
	withDecryption bool
}

// ParameterOption configures a parameter declaration.
type ParameterOption func(parameterConfig) parameterConfig

// WithMaxAge sets the duration after which the cached value is considered
// stale. For a group member this is accepted but superseded by the group's
// policy, since refresh always routes through the group.
func WithMaxAge(maxAge time.Duration) ParameterOption {
	return func(cfg parameterConfig) parameterConfig {
		cfg.maxAge = maxAge
		return cfg
	}
}

// WithDecryption controls whether the backend is asked to decrypt the
// value. Defaults to true; only backends with encrypted storage honor it.
func WithDecryption(enabled bool) ParameterOption {
	return func(cfg parameterConfig) parameterConfig {
		cfg.withDecryption = enabled
		return cfg
	}
}

type groupConfig struct {
	maxAge time.Duration
}

// GroupOption configures a group declaration.
type GroupOption func(groupConfig) groupConfig

// WithGroupMaxAge sets the shared max age governing every member of the
// group.
func WithGroupMaxAge(maxAge time.Duration) GroupOption {
	return func(cfg groupConfig) groupConfig {
		cfg.maxAge = maxAge
		return cfg
	}
}
