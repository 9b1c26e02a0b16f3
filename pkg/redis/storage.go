package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Storage is a namespaced string key-value store on top of a Redis client.
type Storage struct {
	db     redis.UniversalClient
	prefix string
}

// NewStorage wraps client. Every key is stored as prefix+key.
func NewStorage(client redis.UniversalClient, prefix string) *Storage {
	return &Storage{db: client, prefix: prefix}
}

// Get returns the stored value and whether it was found. Missing keys are not an error.
func (s *Storage) Get(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, nil
	}
	val, err := s.db.Get(ctx, s.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

// Set stores key-value with expiration. Zero duration means no expiration.
// Empty keys and values are ignored.
func (s *Storage) Set(ctx context.Context, key, val string, exp time.Duration) error {
	if key == "" || val == "" {
		return nil
	}
	return s.db.Set(ctx, s.prefix+key, val, exp).Err()
}

// Delete removes a key. Empty keys are ignored.
func (s *Storage) Delete(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	return s.db.Del(ctx, s.prefix+key).Err()
}

// Conn returns the underlying Redis client for advanced operations.
func (s *Storage) Conn() redis.UniversalClient {
	return s.db
}
