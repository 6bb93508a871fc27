package paramcache

import "context"

// Store is the single capability the cache requires from a remote
// parameter store: resolve a batch of names to their current values.
//
// Implementations must return a value for every requested name or an
// error; a name the backend does not recognize yields an error wrapping
// ErrParameterNotFound. The withDecryption flag is honored by backends
// that store encrypted values (SSM) and ignored by the rest.
type Store interface {
	Driver() Driver
	FetchParameters(ctx context.Context, names []string, withDecryption bool) (map[string]string, error)
}
