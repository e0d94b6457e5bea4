package middleware

import (
    "fmt"
    "net/http"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"

    "github.com/smartaccess/facility-booking/internal/config"
)

// NewRateLimit returns a fixed-window request limiter backed by Redis.
// Each client IP gets cfg.Limit requests per cfg.Window on the routes
// the middleware is applied to; excess requests receive 429 with a
// Retry-After header.  The counter and its expiry are maintained with
// INCR/EXPIRE so all server instances share one budget.  With the
// limiter disabled or no Redis client the middleware is a
// pass-through, and a Redis failure lets the request through rather
// than failing closed.
func NewRateLimit(cfg config.RateLimitConfig, rdb *redis.Client) echo.MiddlewareFunc {
    if !cfg.Enabled || rdb == nil {
        return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
    }

    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            ctx := c.Request().Context()
            winSecs := int64(cfg.Window.Seconds())
            window := time.Now().Unix() / winSecs
            key := fmt.Sprintf("%s:%s:%s:%d", cfg.Prefix, c.RealIP(), c.Path(), window)

            count, err := rdb.Incr(ctx, key).Result()
            if err != nil {
                return next(c) // limiter unavailable; do not block traffic
            }
            if count == 1 {
                _ = rdb.Expire(ctx, key, cfg.Window).Err()
            }

            remaining := int64(cfg.Limit) - count
            if remaining < 0 {
                remaining = 0
            }
            c.Response().Header().Set("X-RateLimit-Limit", strconv.Itoa(cfg.Limit))
            c.Response().Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

            if count > int64(cfg.Limit) {
                retryAfter := (window+1)*winSecs - time.Now().Unix()
                if retryAfter < 1 {
                    retryAfter = 1
                }
                c.Response().Header().Set("Retry-After", strconv.FormatInt(retryAfter, 10))
                return c.JSON(http.StatusTooManyRequests, echo.Map{"error": "rate limit exceeded"})
            }
            return next(c)
        }
    }
}
