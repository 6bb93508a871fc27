package paramcache

import (
	"context"
	"errors"
)

type retryConfig struct {
	match    func(error) bool
	callback func(error)
}

// RetryOption configures RefreshOnError.
type RetryOption func(retryConfig) retryConfig

// WithRetryMatch restricts which failures trigger a refresh and retry.
// Non-matching failures propagate immediately. Default: any failure.
func WithRetryMatch(match func(error) bool) RetryOption {
	return func(cfg retryConfig) retryConfig {
		cfg.match = match
		return cfg
	}
}

// WithRetryErrorIs triggers refresh and retry only for failures matching
// target per errors.Is.
func WithRetryErrorIs(target error) RetryOption {
	return WithRetryMatch(func(err error) bool {
		return errors.Is(err, target)
	})
}

// WithRetryCallback installs a hook invoked after the forced refresh and
// before the retried invocation, with the original failure.
func WithRetryCallback(fn func(error)) RetryOption {
	return func(cfg retryConfig) retryConfig {
		cfg.callback = fn
		return cfg
	}
}

// RefreshOnError wraps op so that a matching failure forces a refresh of r
// and retries op exactly once. Useful when failures are suspected to come
// from stale cached values, e.g. a rotated secret.
//
// The wrapped operation receives isRetry=false on the first invocation and
// isRetry=true on the single retry. A refresh failure propagates instead
// of the retry; a second op failure propagates unchanged. There is never
// more than one retry.
func RefreshOnError[T any](r Refresher, op func(ctx context.Context, isRetry bool) (T, error), opts ...RetryOption) func(context.Context) (T, error) {
	var cfg retryConfig
	for _, opt := range opts {
		cfg = opt(cfg)
	}
	return func(ctx context.Context) (T, error) {
		out, err := op(ctx, false)
		if err == nil {
			return out, nil
		}
		if cfg.match != nil && !cfg.match(err) {
			return out, err
		}
		if refreshErr := r.Refresh(ctx); refreshErr != nil {
			var zero T
			return zero, refreshErr
		}
		if cfg.callback != nil {
			cfg.callback(err)
		}
		return op(ctx, true)
	}
}

// RefreshOnErrorFunc is RefreshOnError for operations without a result.
func RefreshOnErrorFunc(r Refresher, op func(ctx context.Context, isRetry bool) error, opts ...RetryOption) func(context.Context) error {
	wrapped := RefreshOnError(r, func(ctx context.Context, isRetry bool) (struct{}, error) {
		return struct{}{}, op(ctx, isRetry)
	}, opts...)
	return func(ctx context.Context) error {
		_, err := wrapped(ctx)
		return err
	}
}
