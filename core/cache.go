package core

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ContentCache is a thin JSON cache in front of the public content reads.
// Misses and redis failures both fall through to the database; the cache is
// never load-bearing.
type ContentCache interface {
	GetJSON(ctx context.Context, key string, dest any) (bool, error)
	SetJSON(ctx context.Context, key string, value any) error
	Invalidate(ctx context.Context, key string) error
}

// NewRedisClient returns a configured go-redis client from URL (e.g., redis://localhost:6379/0).
func NewRedisClient(redisURL string) (*redis.Client, error) {
	if redisURL == "" {
		return nil, errors.New("empty redis url")
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return client, nil
}

// RedisContentCache implements ContentCache using go-redis.
type RedisContentCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisContentCache(client *redis.Client, ttl time.Duration) *RedisContentCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &RedisContentCache{client: client, ttl: ttl}
}

// GetJSON reports whether the key was present and, if so, unmarshals into dest.
func (c *RedisContentCache) GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		// Stale or corrupt entry: treat as a miss so the caller refreshes it.
		return false, nil
	}
	return true, nil
}

func (c *RedisContentCache) SetJSON(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, raw, c.ttl).Err()
}

func (c *RedisContentCache) Invalidate(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}
