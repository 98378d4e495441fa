// Package ratelimiter throttles repeated requests from the same client.
package ratelimiter

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// window tracks the calls made by one key in the current interval.
type window struct {
	count     int
	lastReset time.Time
}

// RateLimiter allows at most limit calls per key in each interval.
type RateLimiter struct {
	mu       sync.Mutex
	limit    int           // calls allowed per interval
	interval time.Duration // reset period
	now      func() time.Time
	windows  map[string]*window
}

// NewRateLimiter creates a RateLimiter. A non-positive limit disables limiting.
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:    limit,
		interval: interval,
		now:      time.Now,
		windows:  make(map[string]*window),
	}
}

// Allow records a call for key and reports whether it is within the limit.
func (rl *RateLimiter) Allow(key string) bool {
	if rl.limit <= 0 {
		return true
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	w, ok := rl.windows[key]
	if !ok || now.Sub(w.lastReset) >= rl.interval {
		rl.sweep(now)
		rl.windows[key] = &window{count: 1, lastReset: now}
		return true
	}

	w.count++
	return w.count <= rl.limit
}

// sweep drops windows that have already expired. Caller holds mu.
func (rl *RateLimiter) sweep(now time.Time) {
	for k, w := range rl.windows {
		if now.Sub(w.lastReset) >= rl.interval {
			delete(rl.windows, k)
		}
	}
}

// Middleware rejects requests over the limit with 429, keyed by client IP.
func Middleware(rl *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.Allow(c.ClientIP()) {
			slog.Warn("rate limit exceeded", "path", c.FullPath(), "remote_addr", c.ClientIP())
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"message": "too many attempts, try again later"})
			return
		}
		c.Next()
	}
}
