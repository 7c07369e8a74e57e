package cache

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"sort"
	"strings"
	"time"

	"propertydeals_backend/internal/logger"

	"github.com/redis/go-redis/v9"
)

const opTimeout = 2 * time.Second

// Cache is the read-through query cache over listings. The database stays the
// source of truth: entries carry a TTL and every successful mutation on an
// entity invalidates its prefix.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New connects to redis. A nil Cache is valid and disables caching, so callers
// never need to branch on configuration.
func New(addr, password string, db int, ttl time.Duration) *Cache {
	if addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &Cache{client: client, ttl: ttl}
}

// Get loads a cached value into dest. Returns false on miss or disabled cache.
func (c *Cache) Get(key string, dest interface{}) bool {
	if c == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	data, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		logger.Warn("cache get failed", "key", key, "error", err)
		return false
	}
	if err := json.Unmarshal([]byte(data), dest); err != nil {
		logger.Warn("cache entry corrupt", "key", key, "error", err)
		return false
	}
	return true
}

func (c *Cache) Set(key string, value interface{}) {
	if c == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		logger.Warn("cache set failed", "key", key, "error", err)
	}
}

// InvalidatePrefix drops every key under prefix after a mutation.
func (c *Cache) InvalidatePrefix(prefix string) {
	if c == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	iter := c.client.Scan(ctx, 0, prefix+":*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		logger.Warn("cache scan failed", "prefix", prefix, "error", err)
		return
	}
	if len(keys) > 0 {
		if err := c.client.Del(ctx, keys...).Err(); err != nil {
			logger.Warn("cache invalidation failed", "prefix", prefix, "error", err)
		}
	}
}

// QueryKey builds a stable key from query parameters.
func QueryKey(prefix string, params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var builder strings.Builder
	for i, k := range keys {
		if i > 0 {
			builder.WriteString(":")
		}
		builder.WriteString(k)
		builder.WriteString("=")
		builder.WriteString(params[k])
	}

	hash := md5.Sum([]byte(builder.String()))
	return prefix + ":" + hex.EncodeToString(hash[:])
}
