package idnacache

import "time"

// RedisOption configures the Redis store.
type RedisOption func(*redisOptions)

type redisOptions struct {
	prefix     string
	defaultTTL time.Duration
}

func defaultRedisOptions() *redisOptions {
	return &redisOptions{
		prefix:     "idna",
		defaultTTL: time.Hour,
	}
}

// WithRedisDefaultTTL sets the expiration used when Set is called with a
// zero TTL.
// Default: 1 hour.
func WithRedisDefaultTTL(d time.Duration) RedisOption {
	return func(o *redisOptions) {
		o.defaultTTL = d
	}
}

// WithPrefix sets the key namespace. Keys are stored as "{prefix}:{key}".
// An empty prefix makes Clear flush the whole database.
// Default: "idna".
func WithPrefix(prefix string) RedisOption {
	return func(o *redisOptions) {
		o.prefix = prefix
	}
}
