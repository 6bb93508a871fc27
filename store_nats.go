package paramcache

import (
	"context"
	"errors"
	"fmt"

	"github.com/nats-io/nats.go"
)

// NATSKeyValue captures the subset of nats.KeyValue used by the store.
type NATSKeyValue interface {
	Get(key string) (nats.KeyValueEntry, error)
}

type natsStore struct {
	kv     NATSKeyValue
	prefix string
}

func newNATSStore(kv NATSKeyValue, prefix string) Store {
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	return &natsStore{
		kv:     kv,
		prefix: prefix,
	}
}

func (s *natsStore) Driver() Driver { return DriverNATS }

// FetchParameters resolves each name with its own KV lookup; JetStream KV
// has no batched read.
func (s *natsStore) FetchParameters(ctx context.Context, names []string, _ bool) (map[string]string, error) {
	if s.kv == nil {
		return nil, errors.New("nats parameter key-value unavailable")
	}
	values := make(map[string]string, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		entry, err := s.kv.Get(s.storeKey(name))
		if errors.Is(err, nats.ErrKeyNotFound) || errors.Is(err, nats.ErrKeyDeleted) {
			return nil, fmt.Errorf("parameter %q: %w", name, ErrParameterNotFound)
		}
		if err != nil {
			return nil, err
		}
		values[name] = string(entry.Value())
	}
	return values, nil
}

func (s *natsStore) storeKey(name string) string {
	return s.prefix + "." + name
}
