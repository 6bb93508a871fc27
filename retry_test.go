package paramcache

import (
	"context"
	"errors"
	"testing"
)

type stubRefresher struct {
	refreshes int
	err       error
}

func (r *stubRefresher) Refresh(context.Context) error {
	r.refreshes++
	return r.err
}

func TestRefreshOnErrorRetriesExactlyOnce(t *testing.T) {
	r := &stubRefresher{}
	opErr := errors.New("auth failed")
	invocations := 0

	wrapped := RefreshOnError(r, func(ctx context.Context, isRetry bool) (string, error) {
		invocations++
		return "", opErr
	})

	if _, err := wrapped(context.Background()); !errors.Is(err, opErr) {
		t.Fatalf("expected second failure to propagate, got %v", err)
	}
	if invocations != 2 {
		t.Fatalf("expected exactly two invocations, got %d", invocations)
	}
	if r.refreshes != 1 {
		t.Fatalf("expected exactly one refresh, got %d", r.refreshes)
	}
}

func TestRefreshOnErrorRetryFlag(t *testing.T) {
	r := &stubRefresher{}
	var flags []bool

	wrapped := RefreshOnError(r, func(ctx context.Context, isRetry bool) (string, error) {
		flags = append(flags, isRetry)
		if !isRetry {
			return "", errors.New("stale secret")
		}
		return "ok", nil
	})

	out, err := wrapped(context.Background())
	if err != nil {
		t.Fatalf("wrapped failed: %v", err)
	}
	if out != "ok" {
		t.Fatalf("expected retry result, got %q", out)
	}
	if len(flags) != 2 || flags[0] || !flags[1] {
		t.Fatalf("expected flags [false true], got %v", flags)
	}
}

func TestRefreshOnErrorNonMatchingBypasses(t *testing.T) {
	r := &stubRefresher{}
	matched := errors.New("matched")
	other := errors.New("other")
	invocations := 0

	wrapped := RefreshOnError(r, func(ctx context.Context, isRetry bool) (int, error) {
		invocations++
		return 0, other
	}, WithRetryErrorIs(matched))

	if _, err := wrapped(context.Background()); !errors.Is(err, other) {
		t.Fatalf("expected original error, got %v", err)
	}
	if invocations != 1 {
		t.Fatalf("expected a single invocation, got %d", invocations)
	}
	if r.refreshes != 0 {
		t.Fatalf("expected no refresh, got %d", r.refreshes)
	}
}

func TestRefreshOnErrorCallbackOrder(t *testing.T) {
	var events []string
	r := &stubRefresher{}
	opErr := errors.New("boom")

	wrapped := RefreshOnErrorFunc(&eventRefresher{inner: r, events: &events}, func(ctx context.Context, isRetry bool) error {
		if !isRetry {
			events = append(events, "op")
			return opErr
		}
		events = append(events, "retry")
		return nil
	}, WithRetryCallback(func(err error) {
		if !errors.Is(err, opErr) {
			t.Fatalf("callback expected original error, got %v", err)
		}
		events = append(events, "callback")
	}))

	if err := wrapped(context.Background()); err != nil {
		t.Fatalf("wrapped failed: %v", err)
	}
	want := []string{"op", "refresh", "callback", "retry"}
	if len(events) != len(want) {
		t.Fatalf("expected events %v, got %v", want, events)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Fatalf("expected events %v, got %v", want, events)
		}
	}
}

type eventRefresher struct {
	inner  Refresher
	events *[]string
}

func (r *eventRefresher) Refresh(ctx context.Context) error {
	*r.events = append(*r.events, "refresh")
	return r.inner.Refresh(ctx)
}

func TestRefreshOnErrorSuccessSkipsRefresh(t *testing.T) {
	r := &stubRefresher{}
	wrapped := RefreshOnError(r, func(ctx context.Context, isRetry bool) (int, error) {
		return 42, nil
	})
	out, err := wrapped(context.Background())
	if err != nil || out != 42 {
		t.Fatalf("unexpected result %d err %v", out, err)
	}
	if r.refreshes != 0 {
		t.Fatalf("expected no refresh on success, got %d", r.refreshes)
	}
}

func TestRefreshOnErrorRefreshFailurePropagates(t *testing.T) {
	refreshErr := errors.New("refresh failed")
	r := &stubRefresher{err: refreshErr}
	invocations := 0

	wrapped := RefreshOnError(r, func(ctx context.Context, isRetry bool) (int, error) {
		invocations++
		return 0, errors.New("op failed")
	})

	if _, err := wrapped(context.Background()); !errors.Is(err, refreshErr) {
		t.Fatalf("expected refresh error, got %v", err)
	}
	if invocations != 1 {
		t.Fatalf("expected no retry after failed refresh, got %d invocations", invocations)
	}
}

func TestRefreshOnErrorRepairsRotatedSecret(t *testing.T) {
	store := newStubStore(map[string]string{"/app/secret": "old"})
	c := newTestCache(store, nil)
	ctx := context.Background()

	secret, err := c.Parameter("/app/secret")
	if err != nil {
		t.Fatalf("declare failed: %v", err)
	}
	if _, err := secret.Value(ctx); err != nil {
		t.Fatalf("value failed: %v", err)
	}

	// The backend rotates the secret out-of-band; the cached copy is now
	// useless and authentication starts failing.
	store.set("/app/secret", "new")
	authErr := errors.New("permission denied")

	connect := RefreshOnError(secret, func(ctx context.Context, isRetry bool) (string, error) {
		value, err := secret.Value(ctx)
		if err != nil {
			return "", err
		}
		if value != "new" {
			return "", authErr
		}
		return "connected", nil
	}, WithRetryErrorIs(authErr))

	out, err := connect(ctx)
	if err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	if out != "connected" {
		t.Fatalf("expected connected, got %q", out)
	}
	if value, _ := secret.Peek(); value != "new" {
		t.Fatalf("expected refreshed secret visible to other readers, got %q", value)
	}
}
