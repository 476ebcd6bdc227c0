package http

import (
	"math"
	"net/http"
	"sync"
	"time"

	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/stylehive/outfit-planner/internal/infra/config"
)

// errorHandlingMiddleware turns collected handler errors into the JSON
// envelope {"error":{"code","message"}}. Handlers abort with an error instead
// of writing failure bodies themselves.
func errorHandlingMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		httpErr := asHTTPError(c.Errors.Last().Err)
		message := httpErr.Message
		if message == "" {
			message = httpErr.Error()
		}

		fields := []any{
			"code", httpErr.Code,
			"status", httpErr.Status,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"error", httpErr.Err,
		}
		if httpErr.Status >= http.StatusInternalServerError {
			logger.Error("request failed", fields...)
		} else {
			logger.Warn("request failed", fields...)
		}

		c.JSON(httpErr.Status, gin.H{
			"error": gin.H{
				"code":    httpErr.Code,
				"message": message,
			},
		})
	}
}

// rateLimitMiddleware throttles photo and garment uploads per client IP with
// a token bucket. Disabled limiting is a pass-through.
func rateLimitMiddleware(cfg config.RateLimitConfig, logger *slog.Logger) gin.HandlerFunc {
	if !cfg.Enabled || cfg.RequestsPerMinute <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	limiter := newClientLimiter(cfg)
	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		if limiter.take(clientIP) {
			c.Next()
			return
		}
		logger.Warn("rate limit exceeded", "client_ip", clientIP, "method", c.Request.Method, "path", c.Request.URL.Path)
		abortWithError(c, NewHTTPError(http.StatusTooManyRequests, "rate_limit_exceeded", "too many requests", nil))
	}
}

// staleClientTTL bounds the bucket map: clients idle longer than this are
// forgotten and start over with a full burst.
const staleClientTTL = 5 * time.Minute

type clientLimiter struct {
	buckets       map[string]*tokenBucket
	mu            sync.Mutex
	ratePerMinute float64
	burst         float64
}

type tokenBucket struct {
	tokens   float64
	lastSeen time.Time
}

func newClientLimiter(cfg config.RateLimitConfig) *clientLimiter {
	return &clientLimiter{
		buckets:       make(map[string]*tokenBucket),
		ratePerMinute: float64(cfg.RequestsPerMinute),
		burst:         float64(cfg.Burst),
	}
}

// take consumes one token for the client, refilling by elapsed time first.
func (l *clientLimiter) take(clientIP string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := time.Now()
	bucket, ok := l.buckets[clientIP]
	if !ok {
		bucket = &tokenBucket{tokens: l.burst, lastSeen: now}
		l.buckets[clientIP] = bucket
	} else {
		elapsed := now.Sub(bucket.lastSeen).Minutes()
		if elapsed > 0 {
			bucket.tokens = math.Min(l.burst, bucket.tokens+elapsed*l.ratePerMinute)
		}
		bucket.lastSeen = now
	}
	l.dropStaleLocked(now)
	if bucket.tokens < 1 {
		return false
	}
	bucket.tokens--
	return true
}

func (l *clientLimiter) dropStaleLocked(now time.Time) {
	for clientIP, bucket := range l.buckets {
		if now.Sub(bucket.lastSeen) > staleClientTTL {
			delete(l.buckets, clientIP)
		}
	}
}
