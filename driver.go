package paramcache

// Driver identifies a parameter store backend.
type Driver string

const (
	DriverSSM    Driver = "ssm"
	DriverDynamo Driver = "dynamodb"
	DriverRedis  Driver = "redis"
	DriverNATS   Driver = "nats"
	DriverSQL    Driver = "sql"
	DriverMemory Driver = "memory"
)
