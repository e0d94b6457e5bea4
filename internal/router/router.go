package router // package router defines how HTTP routes are registered for the API

import (
    "github.com/labstack/echo/v4" // import the Echo web framework to handle routing

    "github.com/smartaccess/facility-booking/internal/handler" // import the handlers that implement business logic
)

// RegisterRoutes wires every endpoint of the booking API onto the
// provided Echo instance.  The availability lookup is wrapped in the
// Redis response cache and booking submission is rate limited per
// client IP; both middlewares degrade to pass-through when Redis is
// not configured.
func RegisterRoutes(e *echo.Echo, f *handler.FacilityHandler, b *handler.BookingHandler, a *handler.AdminHandler, cache, limit echo.MiddlewareFunc) {
    // Health check used by load balancers and monitoring systems.
    e.GET("/healthz", handler.Health)

    api := e.Group("/api")

    // Facility catalog.  Seeding is idempotent and safe to call on
    // every deploy.
    api.GET("/facilities", f.List)
    api.POST("/facilities/seed", f.Seed)

    // Availability is the hottest read path, so responses are cached
    // briefly.  Occupancy changes become visible when the cache entry
    // expires.
    api.GET("/availability", b.Availability, cache)

    // Booking lifecycle as seen by the requester.
    api.POST("/bookings", b.Create, limit)
    api.GET("/bookings/mine", b.Mine)
    api.POST("/bookings/:id/check-in", b.CheckIn)
    api.POST("/bookings/:id/cancel", b.Cancel)

    // Administrative surface: decisions, the full list and a manual
    // sweep trigger.
    api.POST("/bookings/:id/admin", a.Action)
    api.GET("/admin/bookings", a.ListAll)
    api.GET("/sweep", a.Sweep)
}
