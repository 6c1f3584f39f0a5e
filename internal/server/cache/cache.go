// Package cache stores generated reframe solutions so repeated requests for
// the same promise, reason and category skip the collaborator. The cache is
// best effort: every failure degrades to a miss.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/dmitrijs2005/promisekeeper/internal/logging"
	"github.com/redis/go-redis/v9"
)

// SolutionCache is a string cache keyed by SolutionKey.
type SolutionCache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string)
}

// SolutionKey derives the cache key for a solutions request. The fingerprint
// changes whenever the promise is replaced, so stale entries are never hit.
func SolutionKey(fingerprint, reason, category string) string {
	sum := sha256.Sum256([]byte(fingerprint + "|" + strings.TrimSpace(strings.ToLower(reason)) + "|" + category))
	return "promisekeeper:solutions:" + hex.EncodeToString(sum[:])
}

// RedisCache is a SolutionCache on Redis.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger logging.Logger
}

// NewRedisCache connects lazily to addr.
func NewRedisCache(addr, password string, db int, ttl time.Duration, logger logging.Logger) *RedisCache {
	return NewRedisCacheFromClient(redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	}), ttl, logger)
}

func NewRedisCacheFromClient(client *redis.Client, ttl time.Duration, logger logging.Logger) *RedisCache {
	return &RedisCache{client: client, ttl: ttl, logger: logger.With("module", "cache")}
}

func (c *RedisCache) Get(ctx context.Context, key string) (string, bool) {
	v, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false
	}
	if err != nil {
		c.logger.Warn(ctx, "cache get failed", "error", err)
		return "", false
	}
	return v, true
}

func (c *RedisCache) Set(ctx context.Context, key, value string) {
	if err := c.client.Set(ctx, key, value, c.ttl).Err(); err != nil {
		c.logger.Warn(ctx, "cache set failed", "error", err)
	}
}

// Ping checks the connection; used at startup to log the cache state.
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

// Nop never stores anything.
type Nop struct{}

func (Nop) Get(context.Context, string) (string, bool) { return "", false }
func (Nop) Set(context.Context, string, string)        {}
