package mw

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// clientIdleTimeout is how long a client's bucket is kept after its last request.
const clientIdleTimeout = 10 * time.Minute

// ClientLimiters hands out one token bucket per client address. Buckets of clients that
// stay idle for clientIdleTimeout are evicted.
type ClientLimiters struct {
	mu      sync.Mutex
	buckets *cache.Cache
	limit   rate.Limit
	burst   int
}

// NewClientLimiters creates buckets refilling at limit tokens per second up to burst.
func NewClientLimiters(limit rate.Limit, burst int) *ClientLimiters {
	return &ClientLimiters{
		buckets: cache.New(clientIdleTimeout, clientIdleTimeout),
		limit:   limit,
		burst:   burst,
	}
}

// For returns the bucket of client, creating it on first use.
func (l *ClientLimiters) For(client string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	if v, found := l.buckets.Get(client); found {
		limiter := v.(*rate.Limiter)
		l.buckets.Set(client, limiter, cache.DefaultExpiration)
		return limiter
	}
	limiter := rate.NewLimiter(l.limit, l.burst)
	l.buckets.Set(client, limiter, cache.DefaultExpiration)
	return limiter
}

// RateLimiter rejects clients exceeding their bucket with 429. When ipHeader is set and
// present on the request (X-Forwarded-For behind a proxy), its first address identifies the client.
func RateLimiter(limit rate.Limit, burst int, ipHeader string) gin.HandlerFunc {
	limiters := NewClientLimiters(limit, burst)
	return func(c *gin.Context) {
		if !limiters.For(clientIP(c, ipHeader)).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
			return
		}
		c.Next()
	}
}

func clientIP(c *gin.Context, ipHeader string) string {
	if ipHeader == "" {
		return c.ClientIP()
	}
	first, _, _ := strings.Cut(c.GetHeader(ipHeader), ",")
	if ip := strings.TrimSpace(first); ip != "" {
		return ip
	}
	return c.ClientIP()
}
