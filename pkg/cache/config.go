package cache

import "time"

// Config holds configuration for the response cache.
type Config struct {
	// Enabled controls whether caching is active. When false every request
	// reaches its handler.
	Enabled bool

	// TTL is how long a cached response stays valid.
	TTL time.Duration

	// MaxSize is the maximum number of cached responses.
	MaxSize int
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Enabled: true,
		TTL:     30 * time.Second,
		MaxSize: 500,
	}
}
