package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"padeltime/internal/availability"
)

const redisKeyPrefix = "avail:"

// Redis is a Store backed by a shared Redis instance, useful when several
// aggregator processes should reuse each other's scrapes. Values are stored
// as JSON with a server-side TTL so expiry needs no bookkeeping here. Every
// Redis error degrades to a cache miss.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis creates a Redis-backed store. An empty password is allowed.
func NewRedis(addr, password string, db int, ttl time.Duration) *Redis {
	return &Redis{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
		ttl: ttl,
	}
}

func (r *Redis) Get(ctx context.Context, key string) (*availability.CourtAvailability, bool) {
	val, err := r.client.Get(ctx, redisKeyPrefix+key).Result()
	if err != nil {
		return nil, false
	}
	var out availability.CourtAvailability
	if err := json.Unmarshal([]byte(val), &out); err != nil {
		return nil, false
	}
	return &out, true
}

func (r *Redis) Set(ctx context.Context, key string, value *availability.CourtAvailability) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	r.client.Set(ctx, redisKeyPrefix+key, data, r.ttl)
}

func (r *Redis) Contains(ctx context.Context, key string) bool {
	n, err := r.client.Exists(ctx, redisKeyPrefix+key).Result()
	return err == nil && n > 0
}

func (r *Redis) Clear(ctx context.Context) {
	keys, err := r.client.Keys(ctx, redisKeyPrefix+"*").Result()
	if err != nil || len(keys) == 0 {
		return
	}
	r.client.Del(ctx, keys...)
}
