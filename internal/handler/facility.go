package handler

import (
    "net/http" // HTTP status codes

    "github.com/labstack/echo/v4"                                 // Echo web framework
    "github.com/smartaccess/facility-booking/internal/model"      // facility catalog
    "github.com/smartaccess/facility-booking/internal/repository" // repository layer
)

// FacilityHandler serves the facility catalog.  The catalog is
// effectively static reference data: it is seeded once and then only
// read.
type FacilityHandler struct {
    Repo *repository.FacilityRepo // access to facilities
}

// NewFacilityHandler constructs a FacilityHandler.  The repository must
// be non-nil.
func NewFacilityHandler(repo *repository.FacilityRepo) *FacilityHandler {
    if repo == nil {
        panic("nil repository passed to NewFacilityHandler")
    }
    return &FacilityHandler{Repo: repo}
}

// List handles GET /api/facilities.  It returns every facility in the
// catalog ordered by ID.  When the catalog is empty it returns an empty
// array rather than an error.
func (h *FacilityHandler) List(c echo.Context) error {
    items, err := h.Repo.List(c.Request().Context())
    if err != nil {
        return fail(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{
        "items": items,
    })
}

// Seed handles POST /api/facilities/seed.  It loads the default
// facility catalog into an empty facilities table.  The operation is a
// no-op when any facilities already exist, so it is safe to call on
// every deploy.
func (h *FacilityHandler) Seed(c echo.Context) error {
    n, err := h.Repo.Seed(c.Request().Context(), model.DefaultCatalog())
    if err != nil {
        return fail(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{
        "seeded": n,
    })
}
