package handler

import (
    "net/http" // HTTP status codes
    "strconv"  // parsing path parameters

    "github.com/labstack/echo/v4"                              // Echo web framework
    "github.com/smartaccess/facility-booking/internal/booking" // booking lifecycle engine
)

// AdminHandler exposes the administrative surface: the full booking
// list, the approve/reject decision endpoint and a manual trigger for
// the no-show sweep.
type AdminHandler struct {
    Engine *booking.Engine // lifecycle rules and sweep
}

// NewAdminHandler constructs an AdminHandler.  The engine must be
// non-nil.
func NewAdminHandler(engine *booking.Engine) *AdminHandler {
    if engine == nil {
        panic("nil engine passed to NewAdminHandler")
    }
    return &AdminHandler{Engine: engine}
}

// ListAll handles GET /api/admin/bookings.  It returns every booking in
// the system ordered by date then start time.
func (h *AdminHandler) ListAll(c echo.Context) error {
    items, err := h.Engine.ListAll(c.Request().Context())
    if err != nil {
        return fail(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{
        "items": items,
    })
}

// Action handles POST /api/bookings/:id/admin.  The body names the
// decision, either "approve" or "reject".  Approving issues a fresh
// access code and notifies the requester; repeating the same decision
// is a no-op, while a decision on a booking in any other status yields
// 400.
func (h *AdminHandler) Action(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
    }
    var body struct {
        Action string `json:"action"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if body.Action != booking.ActionApprove && body.Action != booking.ActionReject {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "action must be approve or reject"})
    }
    b, err := h.Engine.Decide(c.Request().Context(), id, body.Action)
    if err != nil {
        return fail(c, err)
    }
    return c.JSON(http.StatusOK, b)
}

// Sweep handles GET /api/sweep.  It runs one pass of the no-show sweep
// immediately and reports how many approved bookings were marked.  The
// same pass also runs on a timer, so this endpoint mainly exists for
// operators and tests.
func (h *AdminHandler) Sweep(c echo.Context) error {
    changed, err := h.Engine.Sweep(c.Request().Context())
    if err != nil {
        return fail(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{
        "changed": changed,
    })
}
