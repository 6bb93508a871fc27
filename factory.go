package paramcache

import "context"

// NewStore returns a concrete store for the requested driver. Construction
// failures are preserved as an error store that surfaces the error on
// every fetch, so wiring code can stay linear.
//
// Example: select driver explicitly
//
//	ctx := context.Background()
//	store := paramcache.NewStore(ctx, paramcache.StoreConfig{
//		Driver: paramcache.DriverMemory,
//		Seed:   map[string]string{"/app/token": "t0"},
//	})
//	fmt.Println(store.Driver()) // memory
func NewStore(ctx context.Context, cfg StoreConfig) Store {
	cfg = cfg.withDefaults()
	switch cfg.Driver {
	case DriverSSM:
		store, err := newSSMStore(ctx, cfg)
		if err != nil {
			return &errorStore{driver: DriverSSM, err: err}
		}
		return store
	case DriverDynamo:
		store, err := newDynamoStore(ctx, cfg)
		if err != nil {
			return &errorStore{driver: DriverDynamo, err: err}
		}
		return store
	case DriverRedis:
		return newRedisStore(cfg.RedisClient, cfg.Prefix)
	case DriverNATS:
		return newNATSStore(cfg.NATSKeyValue, cfg.Prefix)
	case DriverSQL:
		store, err := newSQLStore(cfg.DB, cfg.SQLTable, cfg.SQLDialect)
		if err != nil {
			return &errorStore{driver: DriverSQL, err: err}
		}
		return store
	default:
		return newMemoryStore(cfg.Seed, cfg.MemoryTTL, cfg.MemoryCleanupInterval)
	}
}

// NewStoreWith builds a store using a driver and a set of functional
// options. Required dependencies (e.g. the Redis client) must be provided
// via options when the driver needs them.
//
// Example: redis store (options)
//
//	redisClient := redis.NewClient(&redis.Options{Addr: "127.0.0.1:6379"})
//	store := paramcache.NewStoreWith(ctx, paramcache.DriverRedis,
//		paramcache.WithRedisClient(redisClient),
//		paramcache.WithPrefix("app"),
//	)
//	fmt.Println(store.Driver()) // redis
func NewStoreWith(ctx context.Context, driver Driver, opts ...StoreOption) Store {
	cfg := StoreConfig{Driver: driver}
	for _, opt := range opts {
		cfg = opt(cfg)
	}
	return NewStore(ctx, cfg)
}
