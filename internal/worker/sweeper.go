// Package worker hosts the background loops that run beside the HTTP
// server.  Currently that is a single loop marking missed bookings.
package worker

import (
    "context" // cancellation of the loop
    "log"     // record sweep outcomes
    "time"    // ticker driving the interval

    "github.com/smartaccess/facility-booking/internal/booking" // booking lifecycle engine
)

// NoShowSweeper periodically marks approved bookings that were never
// checked in within the grace period.  The same pass is also reachable
// through the API for operators, so every run must be safe to repeat.
type NoShowSweeper struct {
    engine   *booking.Engine // lifecycle rules including Sweep
    interval time.Duration   // delay between passes
}

// NewNoShowSweeper constructs a sweeper.  A non-positive interval falls
// back to five minutes.
func NewNoShowSweeper(engine *booking.Engine, interval time.Duration) *NoShowSweeper {
    if engine == nil {
        panic("nil engine passed to NewNoShowSweeper")
    }
    if interval <= 0 {
        interval = 5 * time.Minute
    }
    return &NoShowSweeper{engine: engine, interval: interval}
}

// Start runs one sweep immediately and then repeats on the configured
// interval until the context is cancelled.  Individual sweep failures
// are logged and the loop carries on; a dropped pass just means the
// bookings are marked one interval later.
func (w *NoShowSweeper) Start(ctx context.Context) {
    log.Printf("no-show sweeper started (interval %s)", w.interval)
    w.sweep(ctx)

    ticker := time.NewTicker(w.interval)
    defer ticker.Stop()

    for {
        select {
        case <-ctx.Done():
            log.Println("no-show sweeper stopped")
            return
        case <-ticker.C:
            w.sweep(ctx)
        }
    }
}

func (w *NoShowSweeper) sweep(ctx context.Context) {
    if _, err := w.engine.Sweep(ctx); err != nil {
        log.Printf("no-show sweep failed: %v", err)
    }
}
