package model

import "time"

// BookingStatus is the lifecycle state of a booking.  A booking starts
// in pending and is only ever transitioned, never deleted.
type BookingStatus string

const (
    // StatusPending is the initial state of every admitted booking.
    StatusPending BookingStatus = "pending"
    // StatusApproved is set by an admin decision; an access code is
    // issued at the same time.
    StatusApproved BookingStatus = "approved"
    // StatusRejected is a terminal state set by an admin decision.
    StatusRejected BookingStatus = "rejected"
    // StatusCancelled is a terminal state set by the booking holder
    // before the slot starts.
    StatusCancelled BookingStatus = "cancelled"
    // StatusNoShow is a terminal state set by the sweep when an
    // approved booking was never checked in within the grace period.
    StatusNoShow BookingStatus = "no_show"
)

// Booking records one reservation of one facility for one time interval
// on one calendar date.  Date and times are stored as their literal
// string forms ("2006-01-02" and "15:04") to avoid timezone ambiguity;
// CheckedInAt is the only absolute instant.
//
// Fields:
//  ID           – primary key identifier.
//  FacilityID   – ID of the booked facility.
//  FacilityCode – denormalized copy of the facility code.
//  UserName     – name of the person booking.
//  UserEmail    – contact address; used for listing and notifications.
//  Purpose      – optional free-text purpose.
//  Date         – calendar date "YYYY-MM-DD".
//  StartTime    – start of the interval, "HH:MM" 24h.
//  EndTime      – end of the interval (exclusive), "HH:MM" 24h.
//  Status       – lifecycle state.
//  AccessCode   – entry code, present once approved (nullable).
//  CheckedInAt  – set exactly once on a successful check-in (nullable).
type Booking struct {
    ID           uint64        `json:"id"`                     // bookings.id
    FacilityID   uint64        `json:"facility_id"`            // bookings.facility_id
    FacilityCode string        `json:"facility_code"`          // bookings.facility_code
    UserName     string        `json:"user_name"`              // bookings.user_name
    UserEmail    string        `json:"user_email"`             // bookings.user_email
    Purpose      *string       `json:"purpose,omitempty"`      // bookings.purpose (nullable)
    Date         string        `json:"date"`                   // bookings.date
    StartTime    string        `json:"start_time"`             // bookings.start_time
    EndTime      string        `json:"end_time"`               // bookings.end_time
    Status       BookingStatus `json:"status"`                 // bookings.status
    AccessCode   *string       `json:"access_code,omitempty"`  // bookings.access_code (nullable)
    CheckedInAt  *time.Time    `json:"checked_in_at,omitempty"` // bookings.checked_in_at (nullable)
    CreatedAt    time.Time     `json:"created_at"`             // bookings.created_at
    UpdatedAt    time.Time     `json:"updated_at"`             // bookings.updated_at
}

// Active reports whether the booking currently occupies its slot.
// Rejected, cancelled and no_show bookings free the interval for
// others.
func (b *Booking) Active() bool {
    return b.Status == StatusPending || b.Status == StatusApproved
}
