// Package cache keeps recently generated blueprints in Redis. Providers
// run on free tiers, so serving a repeat of the same idea from cache is
// quota we do not burn twice. The cache is optional: a nil *Cache is a
// permanent miss.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func New(url string, ttl time.Duration) (*Cache, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Cache{client: redis.NewClient(opt), ttl: ttl}, nil
}

func (c *Cache) Ping(ctx context.Context) error {
	if c == nil {
		return errors.New("cache not configured")
	}
	return c.client.Ping(ctx).Err()
}

// Key derives the cache key for one generation request.
func Key(mode, idea string) string {
	sum := sha256.Sum256([]byte(mode + "\x00" + idea))
	return "bp:" + hex.EncodeToString(sum[:])
}

// GetBlueprint returns the cached frontend-format JSON, or ok=false.
func (c *Cache) GetBlueprint(ctx context.Context, key string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// PutBlueprint stores the frontend-format JSON. Errors are returned for
// logging but callers treat them as non-fatal.
func (c *Cache) PutBlueprint(ctx context.Context, key string, data []byte) error {
	if c == nil {
		return nil
	}
	return c.client.Set(ctx, key, data, c.ttl).Err()
}

func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
