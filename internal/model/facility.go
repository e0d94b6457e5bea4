package model

import "time"

// FacilityType enumerates the fixed categories of bookable facilities.
// The catalog is seeded once and the set of types never changes at
// runtime.
type FacilityType string

const (
    FacilityMeetingRoom      FacilityType = "meeting_room"
    FacilityDiscussionRoom   FacilityType = "discussion_room"
    FacilityBanquetHall      FacilityType = "banquet_hall"
    FacilityGym              FacilityType = "gym"
    FacilityTrainingCentre   FacilityType = "training_centre"
    FacilityStudio           FacilityType = "studio"
    FacilityBadmintonCourt   FacilityType = "badminton_court"
    FacilityMultipurposeCourt FacilityType = "multipurpose_court"
    FacilityFootballField    FacilityType = "football_field"
    FacilityNetballCourt     FacilityType = "netball_court"
)

// Facility represents a bookable physical resource such as a meeting
// room, court or hall.  Facilities are immutable after seeding; bookings
// reference them both by ID and by their short code so that the hot
// availability path never needs a join.
//
// Fields:
//  ID       – primary key identifier.
//  Code     – short unique code (e.g. "MR-1", "BC-2").
//  Name     – display name.
//  Type     – fixed category of the facility.
//  Location – floor / wing / area detail (nullable).
//  Capacity – informational capacity (nullable).
//  IsActive – whether the facility can currently be booked.
type Facility struct {
    ID        uint64       `json:"id"`                 // facilities.id
    Code      string       `json:"code"`               // facilities.code
    Name      string       `json:"name"`               // facilities.name
    Type      FacilityType `json:"type"`               // facilities.type
    Location  *string      `json:"location,omitempty"` // facilities.location (nullable)
    Capacity  *uint32      `json:"capacity,omitempty"` // facilities.capacity (nullable)
    IsActive  bool         `json:"is_active"`          // facilities.is_active
    CreatedAt time.Time    `json:"created_at"`         // facilities.created_at
}
