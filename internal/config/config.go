package config // package config loads application configuration from environment variables

import (
    "log"     // log is used to report configuration errors and halt execution
    "os"      // os provides access to environment variables
    "strconv" // strconv converts strings to other types
    "time"    // time parses the sweep interval duration
)

// Config holds all runtime configuration values.  Each field corresponds
// to an environment variable.  Database settings are required; booking
// parameters fall back to sensible defaults so a bare environment still
// boots a working service.
type Config struct {
    Env           string        // application environment (e.g. "dev", "prod")
    Port          string        // HTTP port to listen on
    DBUser        string        // database username
    DBPass        string        // database password (optional)
    DBHost        string        // database host address
    DBPort        string        // database port number
    DBName        string        // database name
    AdminEmail    string        // recipient of new-booking notifications
    GraceMinutes  int           // no-show grace period after booking start
    SweepInterval time.Duration // how often the background sweep runs
}

// Load reads configuration values from environment variables and
// returns a Config.  Required variables are enforced by must() and
// missing values cause the program to exit with a fatal log message.
func Load() Config {
    return Config{
        Env:           must("APP_ENV"),      // environment (dev/test/prod)
        Port:          must("APP_PORT"),     // port to bind the HTTP server
        DBUser:        must("DB_USER"),      // database user
        DBPass:        os.Getenv("DB_PASS"), // database password (empty allowed)
        DBHost:        must("DB_HOST"),      // database host
        DBPort:        must("DB_PORT"),      // database port
        DBName:        must("DB_NAME"),      // database name
        AdminEmail:    getenv("ADMIN_EMAIL", "admin@example.com"),
        GraceMinutes:  intOr("NO_SHOW_GRACE_MIN", 15),
        SweepInterval: durOr("SWEEP_INTERVAL", 5*time.Minute),
    }
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and
// exits.
func must(key string) string {
    v, ok := os.LookupEnv(key)
    if !ok || v == "" {
        log.Fatalf("missing required env var: %s", key)
    }
    return v
}

// getenv returns the variable's value or the given default when unset.
func getenv(key, def string) string {
    if v := os.Getenv(key); v != "" {
        return v
    }
    return def
}

// intOr parses an integer variable, falling back to def when unset or
// malformed.
func intOr(key string, def int) int {
    v := os.Getenv(key)
    if v == "" {
        return def
    }
    n, err := strconv.Atoi(v)
    if err != nil {
        log.Printf("config: invalid int for %s: %q, using %d", key, v, def)
        return def
    }
    return n
}

// durOr parses a duration variable ("30s", "5m"), falling back to def.
func durOr(key string, def time.Duration) time.Duration {
    v := os.Getenv(key)
    if v == "" {
        return def
    }
    d, err := time.ParseDuration(v)
    if err != nil {
        log.Printf("config: invalid duration for %s: %q, using %s", key, v, def)
        return def
    }
    return d
}
