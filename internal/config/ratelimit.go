package config

import "time"

// RateLimitConfig defines settings for the per-client request limiter
// applied to booking creation.  Limit requests are allowed per Window
// for each client IP; beyond that the middleware answers 429.
type RateLimitConfig struct {
    Enabled bool
    Limit   int
    Window  time.Duration
    Prefix  string
}

// LoadRateLimitConfig reads environment variables to build a
// RateLimitConfig, applying defaults and clamping nonsensical values.
func LoadRateLimitConfig() RateLimitConfig {
    cfg := RateLimitConfig{
        Enabled: getenv("RATE_LIMIT_ENABLED", "true") == "true",
        Limit:   intOr("RATE_LIMIT_REQUESTS", 30),
        Window:  durOr("RATE_LIMIT_WINDOW", time.Minute),
        Prefix:  getenv("RATE_LIMIT_PREFIX", "rl"),
    }
    if cfg.Limit < 1 {
        cfg.Limit = 1
    }
    // The middleware buckets time into whole seconds, so a window
    // shorter than one second would divide by zero.
    if cfg.Window < time.Second {
        cfg.Window = time.Second
    }
    return cfg
}
