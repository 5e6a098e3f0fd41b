package middlewares

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// Limiter decides whether one more request for key fits in the current window.
type Limiter interface {
	Allow(ctx context.Context, key string) (allowed bool, retryAfter time.Duration, err error)
}

// RateLimiter is an in-process fixed window limiter.
type RateLimiter struct {
	mu      sync.Mutex
	window  time.Duration
	limit   int
	clients map[string]*clientBucket
	now     func() time.Time
}

type clientBucket struct {
	count     int
	windowEnd time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:   limit,
		window:  window,
		clients: make(map[string]*clientBucket),
		now:     time.Now,
	}
}

func (rl *RateLimiter) Allow(_ context.Context, key string) (bool, time.Duration, error) {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, ok := rl.clients[key]

	if !ok || now.After(b.windowEnd) {
		rl.sweep(now)
		rl.clients[key] = &clientBucket{
			count:     1,
			windowEnd: now.Add(rl.window),
		}
		return true, 0, nil
	}

	if b.count >= rl.limit {
		return false, b.windowEnd.Sub(now), nil
	}

	b.count++
	return true, 0, nil
}

// sweep drops expired buckets so the map does not grow with every client ever seen.
func (rl *RateLimiter) sweep(now time.Time) {
	if len(rl.clients) < 1024 {
		return
	}

	for k, b := range rl.clients {
		if now.After(b.windowEnd) {
			delete(rl.clients, k)
		}
	}
}

// RateLimit enforces l for the key derived by keyFn. Limiter failures let the
// request through; losing the limiter must not take the API down.
func RateLimit(l Limiter, keyFn func(*gin.Context) string, log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := keyFn(c)

		if key == "" {
			key = clientIP(c)
		}

		allowed, retryAfter, err := l.Allow(c.Request.Context(), key)

		if err != nil {
			log.WarnContext(c.Request.Context(), "rate limiter unavailable", "err", err)
			c.Next()
			return
		}

		if !allowed {
			secs := int(retryAfter.Round(time.Second).Seconds())
			if secs < 1 {
				secs = 1
			}

			c.Header("Retry-After", strconv.Itoa(secs))

			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": gin.H{
					"code":      "rate_limited",
					"message":   "Too many requests. Please try again shortly.",
					"requestId": c.GetString(CtxRequestID),
				},
			})

			return
		}

		c.Next()
	}
}

func KeyByIP(c *gin.Context) string {
	return "ip:" + clientIP(c)
}

func clientIP(c *gin.Context) string {
	ip := c.ClientIP()

	host, _, err := net.SplitHostPort(ip)

	if err == nil && host != "" {
		return host
	}

	return ip
}
