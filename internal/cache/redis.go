package cache

import (
	"context"
	"crypto/tls"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/owapi/owscrape/internal/logger"
)

// opTimeout bounds each Redis round-trip so a slow cache never stalls the
// request path; failures degrade to a miss.
const opTimeout = 100 * time.Millisecond

// Redis is a Store backed by a Redis server. Bodies for the same URL are
// shared between processes, which also shares the unguarded concurrent-write
// behavior of Memory: last writer wins.
type Redis struct {
	client *redis.Client
	prefix string
}

// RedisConfig holds connection settings for a Redis-backed store.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	UseTLS   bool
}

// NewRedis creates a Redis-backed store. The connection is lazy; a dead server
// shows up as cache misses, not as a construction error.
func NewRedis(cfg RedisConfig) *Redis {
	opts := &redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}

	if cfg.UseTLS {
		opts.TLSConfig = &tls.Config{
			MinVersion: tls.VersionTLS12,
		}
	}

	return &Redis{
		client: redis.NewClient(opts),
		prefix: "page:",
	}
}

// Get retrieves a live value. Any Redis error is logged and reported as a miss.
func (r *Redis) Get(key string) (string, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	val, err := r.client.Get(ctx, r.prefix+key).Result()
	if err == redis.Nil {
		return "", false
	}
	if err != nil {
		logger.Warn("redis get failed", logger.Fields{"key": key})
		return "", false
	}

	return val, true
}

// Put stores a value under key with the given ttl. Redis treats a zero expiry
// as "never expire", which would break the store contract, so non-positive
// ttls are clamped to one millisecond.
func (r *Redis) Put(key, value string, ttl time.Duration) {
	if ttl <= 0 {
		ttl = time.Millisecond
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if err := r.client.Set(ctx, r.prefix+key, value, ttl).Err(); err != nil {
		logger.Warn("redis set failed", logger.Fields{"key": key})
	}
}

// Close releases the underlying connection pool.
func (r *Redis) Close() error {
	return r.client.Close()
}
