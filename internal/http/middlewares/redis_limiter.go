package middlewares

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRateLimiter is a fixed window limiter shared by every API instance
// pointing at the same redis.
type RedisRateLimiter struct {
	rdb    redis.Cmdable
	prefix string
	limit  int
	window time.Duration
}

func NewRedisRateLimiter(rdb redis.Cmdable, limit int, window time.Duration) *RedisRateLimiter {
	return &RedisRateLimiter{
		rdb:    rdb,
		prefix: "categoryhub:ratelimit:",
		limit:  limit,
		window: window,
	}
}

func (l *RedisRateLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	k := l.prefix + key

	var (
		incr *redis.IntCmd
		ttl  *redis.DurationCmd
	)

	_, err := l.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, k)
		ttl = pipe.PTTL(ctx, k)
		return nil
	})

	if err != nil {
		return false, 0, err
	}

	retryAfter := ttl.Val()

	// first hit of a window, or a key left without expiry
	if incr.Val() == 1 || retryAfter < 0 {
		if err := l.rdb.PExpire(ctx, k, l.window).Err(); err != nil {
			return false, 0, err
		}
		retryAfter = l.window
	}

	if incr.Val() > int64(l.limit) {
		return false, retryAfter, nil
	}

	return true, 0, nil
}
