package paramcache

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisClient captures the subset of redis.Client used by the store.
type RedisClient interface {
	MGet(ctx context.Context, keys ...string) *redis.SliceCmd
}

type redisStore struct {
	client RedisClient
	prefix string
}

func newRedisStore(client RedisClient, prefix string) Store {
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	return &redisStore{
		client: client,
		prefix: prefix,
	}
}

func (s *redisStore) Driver() Driver { return DriverRedis }

func (s *redisStore) FetchParameters(ctx context.Context, names []string, _ bool) (map[string]string, error) {
	if s.client == nil {
		return nil, errors.New("redis parameter client unavailable")
	}
	if len(names) == 0 {
		return map[string]string{}, nil
	}
	keys := make([]string, 0, len(names))
	for _, name := range names {
		keys = append(keys, s.storeKey(name))
	}
	results, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}
	values := make(map[string]string, len(names))
	for i, raw := range results {
		if raw == nil {
			return nil, fmt.Errorf("parameter %q: %w", names[i], ErrParameterNotFound)
		}
		value, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("parameter %q holds a non-string value", names[i])
		}
		values[names[i]] = value
	}
	return values, nil
}

func (s *redisStore) storeKey(name string) string {
	return s.prefix + ":" + name
}
