package handler

import (
    "net/http" // HTTP status codes
    "strconv"  // parsing path parameters
    "strings"  // trimming query parameters

    "github.com/labstack/echo/v4"                              // Echo web framework
    "github.com/smartaccess/facility-booking/internal/booking" // booking lifecycle engine
)

// BookingHandler exposes the booking lifecycle over HTTP: availability
// lookup, request submission, the caller's own bookings, check-in and
// cancellation.  All business rules live in the engine; the handler
// only binds input and maps sentinel errors to status codes.
type BookingHandler struct {
    Engine *booking.Engine // lifecycle rules and conflict guard
}

// NewBookingHandler constructs a BookingHandler.  The engine must be
// non-nil.
func NewBookingHandler(engine *booking.Engine) *BookingHandler {
    if engine == nil {
        panic("nil engine passed to NewBookingHandler")
    }
    return &BookingHandler{Engine: engine}
}

// Availability handles GET /api/availability.  It requires the
// facility_code and date query parameters and returns the occupied
// intervals for that facility on that date together with a flag
// telling whether the whole operating window is taken.
func (h *BookingHandler) Availability(c echo.Context) error {
    code := strings.TrimSpace(c.QueryParam("facility_code"))
    date := strings.TrimSpace(c.QueryParam("date"))
    if code == "" || date == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "facility_code and date are required"})
    }
    av, err := h.Engine.CheckAvailability(c.Request().Context(), code, date)
    if err != nil {
        return fail(c, err)
    }
    return c.JSON(http.StatusOK, av)
}

// Create handles POST /api/bookings.  The body is a JSON booking
// request; on success the new booking is returned in pending status
// with a 201 Created.  A slot conflict yields 409.
func (h *BookingHandler) Create(c echo.Context) error {
    var req booking.CreateRequest
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    b, err := h.Engine.Create(c.Request().Context(), req)
    if err != nil {
        return fail(c, err)
    }
    return c.JSON(http.StatusCreated, b)
}

// Mine handles GET /api/bookings/mine.  It lists every booking ever
// made with the given email address, ordered by date then start time,
// oldest slot first.
func (h *BookingHandler) Mine(c echo.Context) error {
    email := strings.TrimSpace(c.QueryParam("email"))
    if email == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "email is required"})
    }
    items, err := h.Engine.ListByUser(c.Request().Context(), email)
    if err != nil {
        return fail(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{
        "items": items,
    })
}

// CheckIn handles POST /api/bookings/:id/check-in.  The body must carry
// the access code issued at approval.  A wrong code yields 403 and
// leaves the booking untouched; repeating a correct check-in is a
// no-op that keeps the original check-in instant.
func (h *BookingHandler) CheckIn(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
    }
    var body struct {
        AccessCode string `json:"access_code"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    b, err := h.Engine.CheckIn(c.Request().Context(), id, body.AccessCode)
    if err != nil {
        return fail(c, err)
    }
    return c.JSON(http.StatusOK, b)
}

// Cancel handles POST /api/bookings/:id/cancel.  The caller proves
// ownership by sending the email the booking was made with; a mismatch
// is reported as not found so the endpoint cannot be used to probe
// other people's bookings.
func (h *BookingHandler) Cancel(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
    }
    var body struct {
        UserEmail string `json:"user_email"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if strings.TrimSpace(body.UserEmail) == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "user_email is required"})
    }
    b, err := h.Engine.Cancel(c.Request().Context(), id, body.UserEmail)
    if err != nil {
        return fail(c, err)
    }
    return c.JSON(http.StatusOK, b)
}
