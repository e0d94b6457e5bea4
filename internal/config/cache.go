package config

import "time"

// CacheConfig defines settings for the availability response cache.
// When Enabled is false or no Redis client is configured, caching is
// disabled.  Only GET responses are cached; the TTL is kept short
// because availability changes with every admitted booking.
type CacheConfig struct {
    Enabled bool
    TTL     time.Duration
    Prefix  string
}

// LoadCacheConfig reads environment variables to build a CacheConfig.
// Defaults are used when variables are not set.
func LoadCacheConfig() CacheConfig {
    return CacheConfig{
        Enabled: getenv("CACHE_ENABLED", "true") == "true",
        TTL:     durOr("CACHE_TTL", 15*time.Second),
        Prefix:  getenv("CACHE_PREFIX", "cache"),
    }
}
