package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/okr-bot/backend/internal/integration/entrypoint/dto"
)

// rateLimitEntry tracks rate limit data for a single key.
type rateLimitEntry struct {
	requests  int
	resetTime time.Time
}

// RateLimiter throttles requests per caller, falling back to the client IP.
type RateLimiter struct {
	mu             sync.Mutex
	entries        map[string]*rateLimitEntry
	maxRequests    int
	windowDuration time.Duration
	now            func() time.Time
}

// NewRateLimiterWithConfig creates a new rate limiter with custom settings.
// A non-positive maxRequests disables limiting.
func NewRateLimiterWithConfig(maxRequests int, windowDuration time.Duration) *RateLimiter {
	return &RateLimiter{
		entries:        make(map[string]*rateLimitEntry),
		maxRequests:    maxRequests,
		windowDuration: windowDuration,
		now:            time.Now,
	}
}

// Middleware returns a Gin middleware handler that enforces rate limiting.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.maxRequests <= 0 {
			c.Next()
			return
		}

		key, ok := GetCallerFromContext(c)
		if !ok {
			key = c.ClientIP()
		}
		if key == "" {
			key = c.Request.RemoteAddr
		}

		if !rl.Allow(key) {
			c.JSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Error: "Too many requests. Please try again later.",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// Allow records a request for key and reports whether it is within the limit.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()

	entry, exists := rl.entries[key]
	if !exists || now.After(entry.resetTime) {
		rl.entries[key] = &rateLimitEntry{
			requests:  1,
			resetTime: now.Add(rl.windowDuration),
		}
		return true
	}

	if entry.requests < rl.maxRequests {
		entry.requests++
		return true
	}

	return false
}

// Reset clears the rate limiter state.
func (rl *RateLimiter) Reset() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.entries = make(map[string]*rateLimitEntry)
}

// Cleanup removes expired entries.
func (rl *RateLimiter) Cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for key, entry := range rl.entries {
		if now.After(entry.resetTime) {
			delete(rl.entries, key)
		}
	}
}
