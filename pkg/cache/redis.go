package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is a Store backed by a shared Redis instance, for multi-instance
// deployments where each pod keeping its own context cache would thrash the
// database. Capacity bounding is delegated to Redis eviction policy.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Redis{
		client: client,
		ttl:    ttl,
		prefix: "agentctx:",
	}
}

func (r *Redis) Get(key string) (string, bool) {
	val, err := r.client.Get(context.Background(), r.prefix+key).Result()
	if err != nil {
		// Treat miss and transport failure the same: the caller refetches.
		return "", false
	}
	return val, true
}

func (r *Redis) Set(key, value string) {
	// Best effort; a failed write only costs a refetch later.
	r.client.Set(context.Background(), r.prefix+key, value, r.ttl)
}
