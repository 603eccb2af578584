package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"smartmail/pkg/metrics"
)

// Store is the minimal key/value surface the cache layer needs:
// TTL-on-write and explicit key deletion.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

type redisStore struct {
	rdb *redis.Client
}

// NewRedisStore wraps a shared go-redis client as a Store.
func NewRedisStore(rdb *redis.Client) Store {
	return &redisStore{rdb: rdb}
}

func (s *redisStore) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := s.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (s *redisStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return s.rdb.Set(ctx, key, value, ttl).Err()
}

func (s *redisStore) Del(ctx context.Context, keys ...string) error {
	return s.rdb.Del(ctx, keys...).Err()
}

// Cache is the read-through cache layer over a Store. Every Store error
// is absorbed: an unreachable cache degrades to always-miss behavior and
// the request proceeds against the underlying handler.
type Cache struct {
	store  Store
	ttl    time.Duration
	logger *zap.Logger
}

func New(store Store, ttl time.Duration, logger *zap.Logger) *Cache {
	return &Cache{
		store:  store,
		ttl:    ttl,
		logger: logger,
	}
}

// TTL returns the configured entry lifetime.
func (c *Cache) TTL() time.Duration {
	return c.ttl
}

// Get returns the live entry for key, if any. Store failures count as misses.
func (c *Cache) Get(ctx context.Context, key string) (string, bool) {
	val, ok, err := c.store.Get(ctx, key)
	if err != nil {
		c.logger.Warn("Cache read failed, treating as miss",
			zap.String("key", key),
			zap.Error(err),
		)
		metrics.IncrementCacheDegraded()
		return "", false
	}

	if ok {
		metrics.IncrementCacheHit(key)
	} else {
		metrics.IncrementCacheMiss(key)
	}
	return val, ok
}

// Put stores a computed response body under key with the configured TTL.
// Store failures are logged and dropped.
func (c *Cache) Put(ctx context.Context, key, body string) {
	if err := c.store.Set(ctx, key, body, c.ttl); err != nil {
		c.logger.Warn("Cache write failed, entry dropped",
			zap.String("key", key),
			zap.Error(err),
		)
		metrics.IncrementCacheDegraded()
	}
}

// Invalidate deletes the view keys affected by a write operation, per the
// invalidation table. Store failures are logged and dropped; the next read
// on an affected key falls through to the handler anyway once its TTL lapses.
func (c *Cache) Invalidate(ctx context.Context, op WriteOp) {
	keys := KeysFor(op)
	if len(keys) == 0 {
		return
	}

	if err := c.store.Del(ctx, keys...); err != nil {
		c.logger.Warn("Cache invalidation failed",
			zap.Strings("keys", keys),
			zap.Error(err),
		)
		metrics.IncrementCacheDegraded()
	}
}
