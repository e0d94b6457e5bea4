package middleware

import (
    "bytes"
    "context"
    "crypto/sha1"
    "fmt"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"

    "github.com/smartaccess/facility-booking/internal/config"
)

// bodyRecorder captures the response body while forwarding it to the
// client, so a successful response can be stored after the handler ran.
type bodyRecorder struct {
    http.ResponseWriter
    status int
    buf    bytes.Buffer
}

func (br *bodyRecorder) WriteHeader(code int) {
    br.status = code
    br.ResponseWriter.WriteHeader(code)
}

func (br *bodyRecorder) Write(b []byte) (int, error) {
    br.buf.Write(b)
    return br.ResponseWriter.Write(b)
}

// cacheKey derives a stable key from route and query, hashed so that
// arbitrary query strings never produce oversized Redis keys.
func cacheKey(prefix string, c echo.Context) string {
    sum := sha1.Sum([]byte(c.Path() + "?" + c.Request().URL.RawQuery))
    return fmt.Sprintf("%s:%x", prefix, sum[:])
}

// NewResponseCache caches successful GET responses in Redis for a short
// TTL.  It is applied to the availability endpoint, where repeated
// polling of the same facility and date is common and a slightly stale
// report is acceptable.  With caching disabled or no Redis client the
// middleware is a pass-through.
func NewResponseCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
    if !cfg.Enabled || rdb == nil {
        return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
    }
    ttl := cfg.TTL
    if ttl <= 0 {
        ttl = 15 * time.Second
    }

    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            if c.Request().Method != http.MethodGet {
                return next(c)
            }

            ctx := c.Request().Context()
            key := cacheKey(cfg.Prefix, c)

            if body, err := rdb.Get(ctx, key).Bytes(); err == nil {
                c.Response().Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
                c.Response().Header().Set("X-Cache", "HIT")
                c.Response().WriteHeader(http.StatusOK)
                _, _ = c.Response().Write(body)
                return nil
            }

            rec := &bodyRecorder{ResponseWriter: c.Response().Writer, status: http.StatusOK}
            c.Response().Writer = rec
            c.Response().Header().Set("X-Cache", "MISS")

            if err := next(c); err != nil {
                return err
            }
            if rec.status == http.StatusOK {
                _ = rdb.SetEx(context.Background(), key, rec.buf.Bytes(), ttl).Err()
            }
            return nil
        }
    }
}
