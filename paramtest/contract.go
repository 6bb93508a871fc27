package paramtest

import (
	"context"
	"errors"
	"testing"

	"github.com/goforj/paramcache"
)

// Seeder writes a parameter into the backend under test.
type Seeder func(t *testing.T, name, value string)

// Options configures shared store contract checks.
type Options struct {
	// CaseName namespaces parameter names. Defaults to t.Name().
	CaseName string
	// SkipEmptyFetch disables the zero-names assertion for backends where
	// an empty lookup is rejected upstream.
	SkipEmptyFetch bool
}

// RunStoreContract runs a backend-agnostic store contract suite: batched
// resolution of known names, stable values across repeated fetches, and an
// ErrParameterNotFound failure when any requested name is unknown.
func RunStoreContract(t *testing.T, store paramcache.Store, seed Seeder, opts Options) {
	t.Helper()

	caseName := opts.CaseName
	if caseName == "" {
		caseName = t.Name()
	}
	name := func(s string) string {
		return sanitize(caseName) + "/" + s
	}

	ctx := context.Background()
	seed(t, name("alpha"), "one")
	seed(t, name("beta"), "two")

	// Batched resolution of every requested name.
	values, err := store.FetchParameters(ctx, []string{name("alpha"), name("beta")}, true)
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if values[name("alpha")] != "one" || values[name("beta")] != "two" {
		t.Fatalf("unexpected values: %v", values)
	}

	// Repeated fetch returns the same values.
	again, err := store.FetchParameters(ctx, []string{name("alpha")}, false)
	if err != nil {
		t.Fatalf("second fetch failed: %v", err)
	}
	if again[name("alpha")] != "one" {
		t.Fatalf("unexpected second fetch: %v", again)
	}

	// Unknown names fail with ErrParameterNotFound even when mixed with
	// known ones, and no partial result is returned.
	_, err = store.FetchParameters(ctx, []string{name("alpha"), name("missing")}, true)
	if !errors.Is(err, paramcache.ErrParameterNotFound) {
		t.Fatalf("expected ErrParameterNotFound, got %v", err)
	}

	if !opts.SkipEmptyFetch {
		empty, err := store.FetchParameters(ctx, nil, true)
		if err != nil {
			t.Fatalf("empty fetch failed: %v", err)
		}
		if len(empty) != 0 {
			t.Fatalf("expected empty result, got %v", empty)
		}
	}
}

func sanitize(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			out = append(out, r)
		default:
			out = append(out, '_')
		}
	}
	return string(out)
}
