package paramcache

import (
	"database/sql"
	"time"
)

const (
	defaultKeyPrefix             = "param"
	defaultSQLTable              = "parameters"
	defaultDynamoTable           = "parameters"
	defaultMemoryCleanupInterval = 10 * time.Minute
)

// StoreConfig controls how a Store is constructed.
type StoreConfig struct {
	Driver Driver

	// SSMClient overrides the AWS SSM client; when nil one is built from
	// SSMRegion/SSMEndpoint and the default credential chain.
	SSMClient   SSMAPI
	SSMRegion   string
	SSMEndpoint string

	// DynamoClient overrides the DynamoDB client; when nil one is built
	// from DynamoRegion/DynamoEndpoint.
	DynamoClient   DynamoAPI
	DynamoTable    string
	DynamoRegion   string
	DynamoEndpoint string

	// RedisClient is required when DriverRedis is used.
	RedisClient RedisClient

	// Prefix namespaces keys on shared backends (redis, nats).
	Prefix string

	// NATSKeyValue is required when DriverNATS is used.
	NATSKeyValue NATSKeyValue

	// DB and SQLTable back DriverSQL. SQLDialect selects the placeholder
	// style; it defaults to SQLDialectPostgres.
	DB         *sql.DB
	SQLTable   string
	SQLDialect SQLDialect

	// Seed pre-populates the memory driver. MemoryTTL, when positive,
	// expires seeded entries to simulate rotation.
	Seed                  map[string]string
	MemoryTTL             time.Duration
	MemoryCleanupInterval time.Duration
}

func (c StoreConfig) withDefaults() StoreConfig {
	if c.Driver == "" {
		c.Driver = DriverMemory
	}
	if c.Prefix == "" {
		c.Prefix = defaultKeyPrefix
	}
	if c.SQLTable == "" {
		c.SQLTable = defaultSQLTable
	}
	if c.SQLDialect == "" {
		c.SQLDialect = SQLDialectPostgres
	}
	if c.DynamoTable == "" {
		c.DynamoTable = defaultDynamoTable
	}
	if c.MemoryCleanupInterval <= 0 {
		c.MemoryCleanupInterval = defaultMemoryCleanupInterval
	}
	return c
}
