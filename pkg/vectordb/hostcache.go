package vectordb

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/dmitrymomot/vectorwriter/pkg/cache"
	"github.com/dmitrymomot/vectorwriter/pkg/redis"
)

// DefaultHostTTL bounds how long a resolved Pinecone host is reused.
const DefaultHostTTL = time.Hour

// HostCache stores resolved Pinecone data plane hosts.
type HostCache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, host string) error
	Delete(ctx context.Context, key string) error
}

// HostCacheKey derives the cache key for an API key and index. Only the first
// 16 hex characters of the key's SHA-256 digest are used.
func HostCacheKey(apiKey, index string) string {
	sum := sha256.Sum256([]byte(apiKey))
	return "pinecone:host:" + hex.EncodeToString(sum[:])[:16] + ":" + index
}

// MemoryHostCache is an in-process LRU host cache.
type MemoryHostCache struct {
	lru *cache.LRU[string, string]
}

// NewMemoryHostCache holds up to capacity hosts for ttl each.
func NewMemoryHostCache(capacity int, ttl time.Duration, opts ...cache.Option) *MemoryHostCache {
	if capacity <= 0 {
		capacity = 128
	}
	opts = append([]cache.Option{cache.WithTTL(ttl)}, opts...)
	return &MemoryHostCache{lru: cache.New[string, string](capacity, opts...)}
}

func (c *MemoryHostCache) Get(_ context.Context, key string) (string, bool, error) {
	host, ok := c.lru.Get(key)
	return host, ok, nil
}

func (c *MemoryHostCache) Set(_ context.Context, key, host string) error {
	c.lru.Put(key, host)
	return nil
}

func (c *MemoryHostCache) Delete(_ context.Context, key string) error {
	c.lru.Remove(key)
	return nil
}

// RedisHostCache shares resolved hosts between processes.
type RedisHostCache struct {
	store *redis.Storage
	ttl   time.Duration
}

// NewRedisHostCache stores hosts in store with the given expiry.
func NewRedisHostCache(store *redis.Storage, ttl time.Duration) *RedisHostCache {
	return &RedisHostCache{store: store, ttl: ttl}
}

func (c *RedisHostCache) Get(ctx context.Context, key string) (string, bool, error) {
	return c.store.Get(ctx, key)
}

func (c *RedisHostCache) Set(ctx context.Context, key, host string) error {
	return c.store.Set(ctx, key, host, c.ttl)
}

func (c *RedisHostCache) Delete(ctx context.Context, key string) error {
	return c.store.Delete(ctx, key)
}
