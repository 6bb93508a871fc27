package paramcache

import (
	"database/sql"
	"time"
)

// StoreOption mutates StoreConfig when constructing a store.
type StoreOption func(StoreConfig) StoreConfig

// WithSSMClient sets the AWS SSM client used by DriverSSM.
func WithSSMClient(client SSMAPI) StoreOption {
	return func(cfg StoreConfig) StoreConfig {
		cfg.SSMClient = client
		return cfg
	}
}

// WithSSMRegion sets the AWS region used when building an SSM client.
func WithSSMRegion(region string) StoreOption {
	return func(cfg StoreConfig) StoreConfig {
		cfg.SSMRegion = region
		return cfg
	}
}

// WithSSMEndpoint points the SSM client at a custom endpoint (localstack).
func WithSSMEndpoint(endpoint string) StoreOption {
	return func(cfg StoreConfig) StoreConfig {
		cfg.SSMEndpoint = endpoint
		return cfg
	}
}

// WithDynamoClient sets the DynamoDB client used by DriverDynamo.
func WithDynamoClient(client DynamoAPI) StoreOption {
	return func(cfg StoreConfig) StoreConfig {
		cfg.DynamoClient = client
		return cfg
	}
}

// WithDynamoTable overrides the DynamoDB parameter table name.
func WithDynamoTable(table string) StoreOption {
	return func(cfg StoreConfig) StoreConfig {
		cfg.DynamoTable = table
		return cfg
	}
}

// WithDynamoRegion sets the AWS region used when building a DynamoDB client.
func WithDynamoRegion(region string) StoreOption {
	return func(cfg StoreConfig) StoreConfig {
		cfg.DynamoRegion = region
		return cfg
	}
}

// WithDynamoEndpoint points the DynamoDB client at a custom endpoint.
func WithDynamoEndpoint(endpoint string) StoreOption {
	return func(cfg StoreConfig) StoreConfig {
		cfg.DynamoEndpoint = endpoint
		return cfg
	}
}

// WithRedisClient sets the redis client; required when using DriverRedis.
func WithRedisClient(client RedisClient) StoreOption {
	return func(cfg StoreConfig) StoreConfig {
		cfg.RedisClient = client
		return cfg
	}
}

// WithPrefix sets the key prefix for shared backends (redis, nats).
func WithPrefix(prefix string) StoreOption {
	return func(cfg StoreConfig) StoreConfig {
		cfg.Prefix = prefix
		return cfg
	}
}

// WithNATSKeyValue sets the JetStream KV bucket; required for DriverNATS.
func WithNATSKeyValue(kv NATSKeyValue) StoreOption {
	return func(cfg StoreConfig) StoreConfig {
		cfg.NATSKeyValue = kv
		return cfg
	}
}

// WithSQLDB sets the database handle; required when using DriverSQL.
func WithSQLDB(db *sql.DB) StoreOption {
	return func(cfg StoreConfig) StoreConfig {
		cfg.DB = db
		return cfg
	}
}

// WithSQLTable overrides the SQL parameter table name.
func WithSQLTable(table string) StoreOption {
	return func(cfg StoreConfig) StoreConfig {
		cfg.SQLTable = table
		return cfg
	}
}

// WithSQLDialect selects the placeholder style for DriverSQL.
func WithSQLDialect(dialect SQLDialect) StoreOption {
	return func(cfg StoreConfig) StoreConfig {
		cfg.SQLDialect = dialect
		return cfg
	}
}

// WithSeed pre-populates the memory driver.
func WithSeed(values map[string]string) StoreOption {
	return func(cfg StoreConfig) StoreConfig {
		cfg.Seed = values
		return cfg
	}
}

// WithMemoryTTL expires memory driver entries after ttl, simulating
// rotation in tests and development.
func WithMemoryTTL(ttl time.Duration) StoreOption {
	return func(cfg StoreConfig) StoreConfig {
		cfg.MemoryTTL = ttl
		return cfg
	}
}

// WithMemoryCleanupInterval overrides the sweep interval for the memory
// driver.
func WithMemoryCleanupInterval(interval time.Duration) StoreOption {
	return func(cfg StoreConfig) StoreConfig {
		cfg.MemoryCleanupInterval = interval
		return cfg
	}
}
