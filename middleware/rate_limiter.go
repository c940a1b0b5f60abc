package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	// limiterIdleTTL is how long a client's bucket survives without requests
	limiterIdleTTL = 10 * time.Minute
	// limiterSweepInterval bounds how often idle buckets are scanned for
	limiterSweepInterval = time.Minute
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client IP. Buckets idle for longer
// than limiterIdleTTL are dropped.
type RateLimiter struct {
	ips       map[string]*visitor
	mu        sync.Mutex
	rate      rate.Limit
	burst     int
	now       func() time.Time
	lastSweep time.Time
}

// NewRateLimiter creates a limiter refilling at r with bursts of b
func NewRateLimiter(r rate.Limit, b int) *RateLimiter {
	return &RateLimiter{
		ips:       make(map[string]*visitor),
		rate:      r,
		burst:     b,
		now:       time.Now,
		lastSweep: time.Now(),
	}
}

// GetLimiter returns the bucket for ip, creating it on first use
func (rl *RateLimiter) GetLimiter(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.Sub(rl.lastSweep) >= limiterSweepInterval {
		rl.sweep(now)
	}

	if v, exists := rl.ips[ip]; exists {
		v.lastSeen = now
		return v.limiter
	}

	limiter := rate.NewLimiter(rl.rate, rl.burst)
	rl.ips[ip] = &visitor{limiter: limiter, lastSeen: now}
	return limiter
}

// sweep drops idle buckets. Callers hold rl.mu.
func (rl *RateLimiter) sweep(now time.Time) {
	for ip, v := range rl.ips {
		if now.Sub(v.lastSeen) > limiterIdleTTL {
			delete(rl.ips, ip)
		}
	}
	rl.lastSweep = now
}

// size reports how many clients currently have a bucket
func (rl *RateLimiter) size() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.ips)
}

// RateLimit allows perMinute requests per client IP. Zero or less disables it.
func RateLimit(perMinute int) gin.HandlerFunc {
	if perMinute <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	rl := NewRateLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute)

	return func(c *gin.Context) {
		if !rl.GetLimiter(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "RATE_LIMITED",
					"message": "Too many requests, try again later",
				},
			})
			return
		}
		c.Next()
	}
}
