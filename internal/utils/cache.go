package utils

import (
	"context"       // Context for Redis operations
	"encoding/json" // JSON encoding/decoding
	"strconv"       // Key building
	"time"          // Time durations

	"github.com/redis/go-redis/v9" // Redis client
)

// CacheTTL is how long cached responses stay fresh
const CacheTTL = 60 * time.Second

// Cache keys for the entities we cache. Writes must invalidate these.
func ProductsKey() string       { return "products:all" }
func ProductKey(id uint) string { return "products:id:" + strconv.Itoa(int(id)) }
func UserKey(id uint) string    { return "users:id:" + strconv.Itoa(int(id)) }

// GetCache retrieves a value from Redis and unmarshals it into dest.
// A nil client reports a miss, so the cache is optional at runtime.
func GetCache(ctx context.Context, rdb *redis.Client, key string, dest any) (bool, error) {
	if rdb == nil {
		return false, nil
	}
	val, err := rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil // Key does not exist
	} else if err != nil {
		return false, err
	}
	return true, json.Unmarshal([]byte(val), dest)
}

// SetCache stores a value in Redis as JSON with the default TTL
func SetCache(ctx context.Context, rdb *redis.Client, key string, value any) error {
	if rdb == nil {
		return nil
	}
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return rdb.Set(ctx, key, b, CacheTTL).Err()
}

// DeleteCache removes keys from Redis, best effort
func DeleteCache(ctx context.Context, rdb *redis.Client, keys ...string) error {
	if rdb == nil || len(keys) == 0 {
		return nil
	}
	return rdb.Del(ctx, keys...).Err()
}
