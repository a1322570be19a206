package middleware

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"dashformance/leads-api/internal/dto"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// clientTTL is how long an idle client's limiter is kept
const clientTTL = 10 * time.Minute

// RateLimiter applies a token bucket per client IP
type RateLimiter struct {
	requestsPerMinute int
	burst             int

	mu       sync.Mutex
	clients  map[string]*rate.Limiter
	lastSeen map[string]time.Time
	stop     chan struct{}
}

// NewRateLimiter creates a RateLimiter and starts its cleanup loop.
// Call Stop to end the loop.
func NewRateLimiter(requestsPerMinute, burst int) *RateLimiter {
	if burst <= 0 {
		burst = 1
	}
	rl := &RateLimiter{
		requestsPerMinute: requestsPerMinute,
		burst:             burst,
		clients:           make(map[string]*rate.Limiter),
		lastSeen:          make(map[string]time.Time),
		stop:              make(chan struct{}),
	}
	go rl.cleanupClients()
	return rl
}

// Middleware rejects requests over the limit with 429
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.requestsPerMinute <= 0 {
			c.Next()
			return
		}

		limiter := rl.getLimiter(c.ClientIP())
		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", rl.requestsPerMinute))

		if !limiter.Allow() {
			retryAfter := rl.retryAfter()
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("Retry-After", fmt.Sprintf("%.0f", retryAfter.Seconds()))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.APIError{
				RequestID: GetRequestID(c),
				Error: dto.ErrorDetail{
					Type:    "RATE_LIMIT",
					Code:    "TOO_MANY_REQUESTS",
					Message: fmt.Sprintf("Too many requests. Try again in %v", retryAfter),
				},
			})
			return
		}

		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", int(limiter.Tokens())))
		c.Next()
	}
}

// Stop ends the cleanup loop
func (rl *RateLimiter) Stop() {
	close(rl.stop)
}

func (rl *RateLimiter) getLimiter(clientID string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.lastSeen[clientID] = time.Now()
	if limiter, ok := rl.clients[clientID]; ok {
		return limiter
	}

	limiter := rate.NewLimiter(rate.Limit(float64(rl.requestsPerMinute)/60.0), rl.burst)
	rl.clients[clientID] = limiter
	return limiter
}

// retryAfter estimates when one token will be available again
func (rl *RateLimiter) retryAfter() time.Duration {
	perSecond := float64(rl.requestsPerMinute) / 60.0
	if perSecond <= 0 {
		return time.Minute
	}
	return time.Duration(float64(time.Second)/perSecond) + time.Second
}

func (rl *RateLimiter) cleanupClients() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.mu.Lock()
			for id, seen := range rl.lastSeen {
				if time.Since(seen) > clientTTL {
					delete(rl.clients, id)
					delete(rl.lastSeen, id)
				}
			}
			rl.mu.Unlock()
		case <-rl.stop:
			return
		}
	}
}
