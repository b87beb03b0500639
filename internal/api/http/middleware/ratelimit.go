package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// idleTTL is how long a client's bucket survives without requests.
const idleTTL = time.Hour

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter hands out one token bucket per client IP.
type RateLimiter struct {
	limit rate.Limit
	burst int
	now   func() time.Time

	mu          sync.Mutex
	visitors    map[string]*visitor
	lastCleanup time.Time
}

// NewRateLimiter allows perMinute requests per client IP, with bursts of up
// to perMinute.
func NewRateLimiter(perMinute int) *RateLimiter {
	if perMinute <= 0 {
		perMinute = 1
	}
	return &RateLimiter{
		limit:       rate.Every(time.Minute / time.Duration(perMinute)),
		burst:       perMinute,
		now:         time.Now,
		visitors:    make(map[string]*visitor),
		lastCleanup: time.Now(),
	}
}

func (l *RateLimiter) get(ip string) (*rate.Limiter, time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	// Drop buckets idle for longer than idleTTL to bound memory
	if now.Sub(l.lastCleanup) > idleTTL {
		for key, v := range l.visitors {
			if now.Sub(v.lastSeen) > idleTTL {
				delete(l.visitors, key)
			}
		}
		l.lastCleanup = now
	}

	v, ok := l.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[ip] = v
	}
	v.lastSeen = now
	return v.limiter, now
}

// Allow reports whether a request from ip may proceed now.
func (l *RateLimiter) Allow(ip string) bool {
	limiter, now := l.get(ip)
	return limiter.AllowN(now, 1)
}

// Middleware rejects requests over the limit with 429.
func (l *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow(c.ClientIP()) {
			rateLimitedTotal.WithLabelValues(routeLabel(c)).Inc()
			c.Header("Retry-After", "60")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"message": "Too Many Attempts."})
			return
		}
		c.Next()
	}
}
