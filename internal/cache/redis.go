// Package cache provides an optional Redis page cache so re-runs against
// already-fetched seasons do not hit the source sites again.
package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// PageCache stores fetched page markup keyed by URL.
type PageCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPageCache connects to Redis and verifies the connection.
func NewPageCache(redisURL string, ttl time.Duration) (*PageCache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &PageCache{client: client, ttl: ttl}, nil
}

// Close closes the Redis connection.
func (pc *PageCache) Close() error {
	return pc.client.Close()
}

// Get returns the cached markup for a URL, or "" with false on a miss.
func (pc *PageCache) Get(ctx context.Context, url string) (string, bool) {
	body, err := pc.client.Get(ctx, key(url)).Result()
	if err != nil {
		return "", false
	}
	return body, true
}

// Put stores markup for a URL with the configured TTL.
func (pc *PageCache) Put(ctx context.Context, url, body string) error {
	return pc.client.Set(ctx, key(url), body, pc.ttl).Err()
}

func key(url string) string {
	return "gridiron:page:" + url
}
