package services

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ExtractionCache stores extracted text keyed by the SHA-256 of the file
// bytes. Repeated extraction of the same upload is served from here; it is
// a performance optimization, never a correctness requirement.
type ExtractionCache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, text string) error
	Close() error
}

type redisExtractionCache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

func NewRedisExtractionCache(addr, password string, db int, ttl time.Duration) (ExtractionCache, error) {
	if addr == "" {
		return nil, fmt.Errorf("redis addr is required")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &redisExtractionCache{client: client, ttl: ttl, prefix: "extracted_text"}, nil
}

func (c *redisExtractionCache) key(k string) string {
	return fmt.Sprintf("%s:%s", c.prefix, k)
}

func (c *redisExtractionCache) Get(ctx context.Context, key string) (string, bool, error) {
	if c == nil || c.client == nil {
		return "", false, nil
	}
	val, err := c.client.Get(ctx, c.key(key)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (c *redisExtractionCache) Set(ctx context.Context, key string, text string) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Set(ctx, c.key(key), text, c.ttl).Err()
}

func (c *redisExtractionCache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// noopExtractionCache is used when no redis address is configured.
type noopExtractionCache struct{}

func NewNoopExtractionCache() ExtractionCache {
	return &noopExtractionCache{}
}

func (noopExtractionCache) Get(ctx context.Context, key string) (string, bool, error) {
	return "", false, nil
}

func (noopExtractionCache) Set(ctx context.Context, key string, text string) error {
	return nil
}

func (noopExtractionCache) Close() error {
	return nil
}
