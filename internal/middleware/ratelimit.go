package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"github.com/octobees/llm-maps/api/internal/config"
	"github.com/octobees/llm-maps/api/internal/logger"
)

type clientBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter keeps one token bucket per client IP. A bucket idle for a whole
// interval is full again, so it is dropped on the next sweep.
type IPRateLimiter struct {
	mu        sync.Mutex
	buckets   map[string]*clientBucket
	limit     rate.Limit
	burst     int
	idle      time.Duration
	lastSweep time.Time
	now       func() time.Time
	log       *logger.Logger
}

// NewIPRateLimiter allows cfg.Requests per cfg.Interval for each client, with the
// full allowance available as burst. It returns nil when cfg disables limiting.
func NewIPRateLimiter(cfg config.RateLimitConfig, log *logger.Logger) *IPRateLimiter {
	if cfg.Requests <= 0 || cfg.Interval <= 0 {
		return nil
	}

	perRequest := cfg.Interval / time.Duration(cfg.Requests)
	if perRequest <= 0 {
		perRequest = time.Second
	}
	if log == nil {
		log = logger.Nop()
	}

	return &IPRateLimiter{
		buckets: make(map[string]*clientBucket),
		limit:   rate.Every(perRequest),
		burst:   cfg.Requests,
		idle:    cfg.Interval,
		now:     time.Now,
		log:     log,
	}
}

// Allow reports whether one more request from ip fits in its bucket.
func (l *IPRateLimiter) Allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= l.idle {
		l.sweep(now)
	}

	bucket, ok := l.buckets[ip]
	if !ok {
		bucket = &clientBucket{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.buckets[ip] = bucket
	}
	bucket.lastSeen = now
	return bucket.limiter.AllowN(now, 1)
}

// Len returns the number of tracked clients.
func (l *IPRateLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

func (l *IPRateLimiter) sweep(now time.Time) {
	for ip, bucket := range l.buckets {
		if now.Sub(bucket.lastSeen) >= l.idle {
			delete(l.buckets, ip)
		}
	}
	l.lastSweep = now
}

// RateLimit rejects requests beyond the per-client allowance with 429.
// A nil limiter passes every request through. Client IPs come from the echo
// IPExtractor, so forwarded headers only count when the router trusts them.
func RateLimit(l *IPRateLimiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if l == nil {
			return next
		}
		return func(c echo.Context) error {
			if c.Request().Method == http.MethodOptions {
				return next(c)
			}

			ip := c.RealIP()
			if !l.Allow(ip) {
				l.log.RateLimitExceeded(ip, c.Request().URL.Path)
				return c.JSON(http.StatusTooManyRequests, map[string]any{
					"success": false,
					"error":   "Too many requests",
				})
			}
			return next(c)
		}
	}
}
