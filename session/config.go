package session

import "time"

// Supported store backends.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Config holds session store initialization parameters.
//
// TTL is the idle time after which a session may be evicted. The zero value
// keeps sessions for the process lifetime, matching the reference behavior;
// operators who enable it trade long-lived resumability for bounded memory.
type Config struct {
	Backend string        `json:"backend,omitempty" mapstructure:"backend"`
	TTL     time.Duration `json:"ttl,omitempty" mapstructure:"ttl"`
	Redis   RedisConfig   `json:"redis,omitempty" mapstructure:"redis"`
}

// RedisConfig holds connection parameters for the Redis-backed store.
type RedisConfig struct {
	Addr      string `json:"addr,omitempty" mapstructure:"addr"`
	Password  string `json:"password,omitempty" mapstructure:"password"`
	DB        int    `json:"db,omitempty" mapstructure:"db"`
	KeyPrefix string `json:"key_prefix,omitempty" mapstructure:"key_prefix"`
}

// DefaultConfig returns the default session configuration: in-memory
// storage, no eviction.
func DefaultConfig() Config {
	return Config{
		Backend: BackendMemory,
		Redis: RedisConfig{
			Addr:      "localhost:6379",
			KeyPrefix: "apex:session:",
		},
	}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.Backend != "" {
		c.Backend = source.Backend
	}
	if source.TTL != 0 {
		c.TTL = source.TTL
	}
	if source.Redis.Addr != "" {
		c.Redis.Addr = source.Redis.Addr
	}
	if source.Redis.Password != "" {
		c.Redis.Password = source.Redis.Password
	}
	if source.Redis.DB != 0 {
		c.Redis.DB = source.Redis.DB
	}
	if source.Redis.KeyPrefix != "" {
		c.Redis.KeyPrefix = source.Redis.KeyPrefix
	}
}
