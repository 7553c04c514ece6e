package middleware

import (
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"github.com/piresc/toolshare/internal/pkg/constants"
	"github.com/piresc/toolshare/internal/pkg/logger"
	"github.com/piresc/toolshare/internal/utils"
)

// RateLimiterConfig contains configuration for the rate limiter
type RateLimiterConfig struct {
	RedisClient *redis.Client
	Resource    string        // namespace of the counter
	Limit       int           // requests allowed per Period
	Period      time.Duration // fixed window length
}

// RateLimiterMiddleware is a fixed-window limiter keyed by caller. Redis
// errors let the request through.
func RateLimiterMiddleware(config RateLimiterConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identifier := c.RealIP()
			if userID := c.Get("user_id"); userID != nil {
				identifier = fmt.Sprintf("%v", userID)
			}
			key := fmt.Sprintf(constants.KeyRateLimit, config.Resource, identifier)
			ctx := c.Request().Context()

			var incr *redis.IntCmd
			var ttl *redis.DurationCmd
			_, err := config.RedisClient.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				incr = pipe.Incr(ctx, key)
				ttl = pipe.TTL(ctx, key)
				return nil
			})
			if err != nil {
				logger.WarnCtx(ctx, "Rate limiter unavailable", logger.Err(err), logger.String("resource", config.Resource))
				return next(c)
			}
			// a fresh counter (or one that lost its expiry) opens a new window
			if ttl.Val() < 0 {
				config.RedisClient.Expire(ctx, key, config.Period)
			}

			count := int(incr.Val())
			remaining := config.Limit - count
			if remaining < 0 {
				remaining = 0
			}
			c.Response().Header().Set("X-RateLimit-Limit", strconv.Itoa(config.Limit))
			c.Response().Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))

			if count > config.Limit {
				retryAfter := ttl.Val()
				if retryAfter < 0 {
					retryAfter = config.Period
				}
				c.Response().Header().Set("Retry-After", strconv.Itoa(int(retryAfter.Seconds())))
				return utils.TooManyRequestsResponse(c, "Rate limit exceeded")
			}
			return next(c)
		}
	}
}
