package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "ratelimit:"

// Redis is a fixed-window Limiter backed by a shared Redis counter, so the
// limit holds across replicas.
type Redis struct {
	client *redis.Client
	limit  uint
	period time.Duration
}

// NewRedis constructs a Redis limiter allowing limit requests per period.
func NewRedis(client *redis.Client, limit uint, period time.Duration) *Redis {
	if limit == 0 {
		limit = 1
	}
	if period <= 0 {
		period = time.Minute
	}

	return &Redis{
		client: client,
		limit:  limit,
		period: period,
	}
}

// Allow increments the counter for key within the current window.
//
// The counter key gets its TTL set only on first increment, which is what
// makes the window fixed rather than sliding.
func (r *Redis) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	rkey := redisKeyPrefix + key

	count, err := r.client.Incr(ctx, rkey).Result()
	if err != nil {
		return false, 0, fmt.Errorf("ratelimit: incr: %w", err)
	}

	if count == 1 {
		if err := r.client.Expire(ctx, rkey, r.period).Err(); err != nil {
			return false, 0, fmt.Errorf("ratelimit: expire: %w", err)
		}
	}

	if uint(count) > r.limit {
		ttl, err := r.client.TTL(ctx, rkey).Result()
		if err != nil || ttl < 0 {
			ttl = r.period
		}
		return false, ttl, nil
	}

	return true, 0, nil
}
