// Package paramcache caches remote key-value configuration parameters
// (secrets, feature flags, connection strings) on the client side.
//
// Callers declare parameters individually or in groups; values are fetched
// lazily on first read and re-fetched only after a configurable max age
// expires or an explicit refresh is requested. Groups batch the fetch for
// all of their members into a single backend round-trip. RefreshOnError
// wraps an arbitrary operation and, when it fails, forces a refresh of the
// bound parameter or group and retries the operation exactly once — the
// usual repair for a rotated secret.
//
// The remote store is injected as a Store implementation. Backends are
// provided for AWS SSM Parameter Store, DynamoDB, Redis, NATS JetStream KV,
// SQL databases, and an in-process memory store for tests and development.
package paramcache
