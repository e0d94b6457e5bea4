// Package booking implements the reservation lifecycle engine: time
// interval arithmetic, availability reporting, conflict guarding,
// the booking state machine and the no-show sweep.  HTTP handlers and
// the storage layer sit on either side of this package and translate
// its sentinel errors into transport or database specifics.
package booking

import "errors"

// ErrValidation is returned for malformed dates or times and for
// intervals whose start is not strictly before their end.  Handlers
// should translate this into an HTTP 400 response.
var ErrValidation = errors.New("invalid input")

// ErrNotFound is returned when a facility code or booking ID does not
// exist.  Handlers should translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a proposed interval overlaps an active
// booking for the same facility and date.  The caller may retry with a
// different interval.  Handlers should translate this into 409.
var ErrConflict = errors.New("time slot not available")

// ErrInvalidState is returned when an action is incompatible with the
// booking's current status, such as checking in on a booking that is
// not approved or rejecting one that was already approved.
var ErrInvalidState = errors.New("action not allowed in current status")

// ErrAccessCode is returned when a check-in presents a code that does
// not match the one issued on approval.  The error carries no detail
// about the booking's state beyond "the code was wrong".  Handlers
// should translate this into an HTTP 403 response.
var ErrAccessCode = errors.New("invalid access code")
