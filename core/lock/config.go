package lock

// Config holds configuration for the Redis instance used for run locks.
type Config struct {
	// Address is host:port of Redis. Empty selects in-process locks.
	Address string `mapstructure:"address" default:""`
	// Password is the Redis password.
	Password string `mapstructure:"password" default:""`
	// DB is the Redis database number.
	DB int `mapstructure:"db" default:"0" validate:"min=0"`
}
