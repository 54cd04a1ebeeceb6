package title

import (
	stdctx "context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/revio-app/revio/internal/platform/constants"
)

// RedisCache implements [Cache] on top of go-redis.
//
// Entries are JSON snapshots of the hydrated [Title] keyed by numeric ID.
// A short TTL bounds staleness; mutations in the title and review layers
// additionally invalidate eagerly.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache constructs a title cache with the given entry TTL.
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func cacheKey(id int) string {
	return constants.RedisPrefixTitle + strconv.Itoa(id)
}

// Get returns the cached title, or (nil, nil) on a cache miss.
func (cache *RedisCache) Get(context stdctx.Context, id int) (*Title, error) {
	payload, err := cache.client.Get(context, cacheKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("title cache get: %w", err)
	}

	title := &Title{}
	if err := json.Unmarshal(payload, title); err != nil {
		// A corrupt entry behaves like a miss; the next Set overwrites it.
		return nil, fmt.Errorf("title cache decode: %w", err)
	}

	return title, nil
}

// Set stores a JSON snapshot of the title.
func (cache *RedisCache) Set(context stdctx.Context, title *Title) error {
	payload, err := json.Marshal(title)
	if err != nil {
		return fmt.Errorf("title cache encode: %w", err)
	}

	if err := cache.client.Set(context, cacheKey(title.ID), payload, cache.ttl).Err(); err != nil {
		return fmt.Errorf("title cache set: %w", err)
	}

	return nil
}

// Invalidate drops the cached entry for the given title ID.
func (cache *RedisCache) Invalidate(context stdctx.Context, id int) error {
	if err := cache.client.Del(context, cacheKey(id)).Err(); err != nil {
		return fmt.Errorf("title cache invalidate: %w", err)
	}
	return nil
}
