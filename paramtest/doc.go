// Package paramtest provides a backend-agnostic contract suite for
// paramcache.Store implementations. Driver packages and integration tests
// run the same assertions against their backend, so every store resolves
// names and reports unknown parameters the same way.
package paramtest
