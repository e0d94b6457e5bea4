package handler

import (
    "errors"   // sentinel comparisons with errors.Is
    "log"      // record unexpected failures
    "net/http" // HTTP status codes

    "github.com/labstack/echo/v4"                              // Echo web framework
    "github.com/smartaccess/facility-booking/internal/booking" // domain sentinel errors
)

// statusFor maps the domain sentinel errors onto HTTP status codes.
// Anything not wrapped in a sentinel is treated as an internal error.
func statusFor(err error) int {
    switch {
    case errors.Is(err, booking.ErrValidation):
        return http.StatusBadRequest
    case errors.Is(err, booking.ErrInvalidState):
        return http.StatusBadRequest
    case errors.Is(err, booking.ErrNotFound):
        return http.StatusNotFound
    case errors.Is(err, booking.ErrConflict):
        return http.StatusConflict
    case errors.Is(err, booking.ErrAccessCode):
        return http.StatusForbidden
    default:
        return http.StatusInternalServerError
    }
}

// fail writes a JSON error body for the given domain error.  Internal
// errors are logged server-side and replaced with a generic message so
// that storage details never leak to clients.
func fail(c echo.Context, err error) error {
    status := statusFor(err)
    msg := err.Error()
    if status == http.StatusInternalServerError {
        log.Printf("handler: %s %s: %v", c.Request().Method, c.Path(), err)
        msg = "internal server error"
    }
    return c.JSON(status, echo.Map{"error": msg})
}
