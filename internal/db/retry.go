package db

import (
	"context"
	"log/slog"
	"math"
	"math/rand"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Backoff returns the delay before retry number attempt (0 based):
// 500ms, 1s, 2s, ... capped at 10s, plus up to 250ms of jitter.
func Backoff(attempt int) time.Duration {
	base := 500 * time.Millisecond
	capDelay := 10 * time.Second

	d := float64(base) * math.Pow(2, float64(attempt))

	if d > float64(capDelay) {
		d = float64(capDelay)
	}

	return time.Duration(d) + time.Duration(rand.Intn(250))*time.Millisecond
}

// ConnectWithRetry keeps trying NewPool until it succeeds, attempts run out
// or ctx is done. Useful when the api starts alongside its database.
func ConnectWithRetry(ctx context.Context, dbURL string, attempts int, log *slog.Logger) (*pgxpool.Pool, error) {
	var lastErr error

	for attempt := 0; attempt < attempts; attempt++ {
		pool, err := NewPool(ctx, dbURL)

		if err == nil {
			return pool, nil
		}

		lastErr = err
		delay := Backoff(attempt)

		log.Warn("db connect failed, retrying", "attempt", attempt+1, "of", attempts, "in", delay.String(), "err", err)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}

	return nil, lastErr
}
