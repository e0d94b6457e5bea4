package main // Entry point package

import (
    "context" // Cancellation for background workers
    "log"     // Logging library

    "github.com/joho/godotenv"    // Loads .env files in development
    "github.com/labstack/echo/v4" // Echo web framework

    "github.com/smartaccess/facility-booking/internal/booking"    // Booking lifecycle engine
    "github.com/smartaccess/facility-booking/internal/config"     // Internal config loader
    "github.com/smartaccess/facility-booking/internal/database"   // MySQL connection and schema
    "github.com/smartaccess/facility-booking/internal/handler"    // HTTP handlers
    "github.com/smartaccess/facility-booking/internal/middleware" // Response cache and rate limit
    "github.com/smartaccess/facility-booking/internal/queue"      // RabbitMQ notification consumer
    "github.com/smartaccess/facility-booking/internal/repository" // Repository layer
    "github.com/smartaccess/facility-booking/internal/router"     // Internal router setup
    "github.com/smartaccess/facility-booking/internal/service"    // Queue-backed notifier
    "github.com/smartaccess/facility-booking/internal/worker"     // No-show sweeper
)

func main() {
    _ = godotenv.Load() // Load .env when present; real env vars win

    cfg := config.Load() // Load environment config

    db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName) // Open MySQL pool
    if err != nil {
        log.Fatalf("database: %v", err)
    }
    defer db.Close()
    if err := database.EnsureSchema(context.Background(), db); err != nil { // Create tables when absent
        log.Fatalf("schema: %v", err)
    }

    bookingRepo := repository.NewBookingRepo(db)   // Booking storage
    facilityRepo := repository.NewFacilityRepo(db) // Facility catalog storage

    notifier := service.NewQueueNotifier() // Publishes notification events to RabbitMQ
    engine := booking.NewEngine(bookingRepo, notifier, nil, booking.Config{
        GraceMinutes: cfg.GraceMinutes,
        AdminEmail:   cfg.AdminEmail,
    })

    rdb := config.NewRedisClient() // nil when Redis is not configured
    cache := middleware.NewResponseCache(config.LoadCacheConfig(), rdb)
    limit := middleware.NewRateLimit(config.LoadRateLimitConfig(), rdb)

    ctx, cancel := context.WithCancel(context.Background())
    defer cancel()

    go func() { // Deliver queued notifications; reconnects on broker loss
        if err := queue.StartNotificationConsumer(); err != nil {
            log.Printf("notification consumer stopped: %v", err)
        }
    }()
    go worker.NewNoShowSweeper(engine, cfg.SweepInterval).Start(ctx) // Mark missed bookings in the background

    e := echo.New() // Create Echo instance
    router.RegisterRoutes(e,
        handler.NewFacilityHandler(facilityRepo),
        handler.NewBookingHandler(engine),
        handler.NewAdminHandler(engine),
        cache, limit,
    )

    addr := ":" + cfg.Port                                // Address string with port
    log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

    if err := e.Start(addr); err != nil { // Start HTTP server
        log.Fatal(err) // Log and exit if server fails
    }
}
