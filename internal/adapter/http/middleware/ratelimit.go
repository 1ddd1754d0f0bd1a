package middleware

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	redisStore "payment-resolver/internal/adapter/storage/redis"
	"payment-resolver/pkg/apperror"
	"payment-resolver/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Rate limit groups.
const (
	GroupResolve = "resolve"
	GroupDefault = "default"
)

// Limiter counts requests per key in a window.
type Limiter interface {
	Allow(ctx context.Context, key string, limit int64, window time.Duration) (*redisStore.RateLimitResult, error)
}

// RateLimitRule defines a rate limit for an endpoint group.
type RateLimitRule struct {
	Limit  int64
	Window time.Duration
}

// RateLimitRules builds the per-group rules from per-minute limits.
func RateLimitRules(resolvePerMinute, defaultPerMinute int64) map[string]RateLimitRule {
	return map[string]RateLimitRule{
		GroupResolve: {Limit: resolvePerMinute, Window: time.Minute},
		GroupDefault: {Limit: defaultPerMinute, Window: time.Minute},
	}
}

// RateLimiter limits each client IP per group. Loopback clients are exempt
// and a failing store lets the request through.
func RateLimiter(store Limiter, group string, rule RateLimitRule, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if isLoopback(ip) {
			c.Next()
			return
		}

		result, err := store.Allow(c.Request.Context(), fmt.Sprintf("%s:%s", ip, group), rule.Limit, rule.Window)
		if err != nil {
			log.Warn().Err(err).Str("group", group).Msg("rate limit check failed, allowing request")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.FormatInt(result.Limit, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(result.Remaining, 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt, 10))

		if !result.Allowed {
			retryAfter := max(result.ResetAt-time.Now().Unix(), 1)
			c.Header("Retry-After", strconv.FormatInt(retryAfter, 10))
			response.Error(c, apperror.ErrRateLimitExceeded())
			c.Abort()
			return
		}
		c.Next()
	}
}

func isLoopback(ip string) bool {
	parsed := net.ParseIP(ip)
	return parsed != nil && parsed.IsLoopback()
}
