package redis

import "time"

// Config describes how to reach Redis. An empty ConnectionURL means Redis is
// not configured and callers should fall back to in-memory state.
type Config struct {
	ConnectionURL  string        `env:"REDIS_URL"`                                   // Format: "redis://:password@localhost:6379/0".
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`         // Connection attempts before giving up.
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"2s"`        // Pause between connection attempts.
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"10s"`      // Upper bound for the whole Connect call.
	KeyPrefix      string        `env:"REDIS_KEY_PREFIX" envDefault:"vectorwriter:"` // Prepended to every Storage key.
}

// Enabled reports whether a connection URL is set.
func (c Config) Enabled() bool {
	return c.ConnectionURL != ""
}
