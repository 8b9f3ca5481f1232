// Package cache provides a small Redis-backed JSON cache for derived views
// (currently the scrap stats summary). When Redis is unreachable or not
// configured the client stays nil and every call degrades to a miss, so the
// application recomputes instead of failing.
package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

var client *redis.Client

func Init(addr string) {
	if addr == "" {
		return
	}

	c := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := c.Ping(ctx).Err(); err != nil {
		log.Printf("redis: ping failed, caching disabled: %v", err)
		return
	}

	client = c
}

// GetJSON reports whether the key was present and, if so, unmarshals it.
func GetJSON(ctx context.Context, key string, dest any) bool {
	if client == nil {
		return false
	}
	raw, err := client.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false
	}
	return true
}

func SetJSON(ctx context.Context, key string, val any, ttl time.Duration) {
	if client == nil {
		return
	}
	raw, err := json.Marshal(val)
	if err != nil {
		return
	}
	if err := client.Set(ctx, key, raw, ttl).Err(); err != nil {
		log.Printf("redis: set %s failed: %v", key, err)
	}
}

func Invalidate(ctx context.Context, keys ...string) {
	if client == nil || len(keys) == 0 {
		return
	}
	if err := client.Del(ctx, keys...).Err(); err != nil {
		log.Printf("redis: del failed: %v", err)
	}
}
