package storage

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// DirectoryRedisCache caches staff and menu display-name lookups.
type DirectoryRedisCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewDirectoryRedisCache(client *redis.Client, ttl time.Duration) *DirectoryRedisCache {
	return &DirectoryRedisCache{Client: client, TTL: ttl}
}

func (c *DirectoryRedisCache) StaffKey(staffID string) string {
	return "staff:" + staffID
}

func (c *DirectoryRedisCache) MenuItemKey(menuItemID string) string {
	return "menu:" + menuItemID
}

// Get returns the cached name, or "" on a miss.
func (c *DirectoryRedisCache) Get(ctx context.Context, key string) (string, error) {
	val, err := c.Client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	}
	return val, err
}

func (c *DirectoryRedisCache) Set(ctx context.Context, key, name string) error {
	return c.Client.Set(ctx, key, name, c.TTL).Err()
}
