package model

import "fmt"

func strptr(s string) *string { return &s }

// DefaultCatalog returns the fixed set of facilities the service manages.
// The catalog mirrors the physical inventory: ten meeting rooms, eleven
// discussion rooms, a banquet hall, a gymnasium, six training centre
// rooms, a studio, two badminton courts, two multipurpose courts, a
// football field and a netball court.  Seeding is idempotent at the
// repository layer; this function only builds the list.
func DefaultCatalog() []Facility {
    items := make([]Facility, 0, 25)
    for i := 1; i <= 10; i++ {
        items = append(items, Facility{
            Name:     "Meeting Room, Mezzanine Floor",
            Code:     fmt.Sprintf("MR-%d", i),
            Type:     FacilityMeetingRoom,
            Location: strptr("Mezzanine Floor"),
            IsActive: true,
        })
    }
    for i := 1; i <= 11; i++ {
        items = append(items, Facility{
            Name:     "Discussion Room, Persada Tower",
            Code:     fmt.Sprintf("DR-%d", i),
            Type:     FacilityDiscussionRoom,
            Location: strptr("Selected Floors - Persada Tower"),
            IsActive: true,
        })
    }
    items = append(items,
        Facility{Name: "Banquet Hall", Code: "BH-1", Type: FacilityBanquetHall, Location: strptr("Convention Wing"), IsActive: true},
        Facility{Name: "Gymnasium", Code: "GYM-1", Type: FacilityGym, Location: strptr("Level 2"), IsActive: true},
    )
    for i := 1; i <= 6; i++ {
        items = append(items, Facility{
            Name:     "PLUS Training Centre",
            Code:     fmt.Sprintf("PTC-%d", i),
            Type:     FacilityTrainingCentre,
            Location: strptr("Training Centre"),
            IsActive: true,
        })
    }
    items = append(items, Facility{Name: "PLUS Studio", Code: "STUDIO-1", Type: FacilityStudio, Location: strptr("Media Wing"), IsActive: true})
    for i := 1; i <= 2; i++ {
        items = append(items, Facility{
            Name:     "Badminton Court",
            Code:     fmt.Sprintf("BC-%d", i),
            Type:     FacilityBadmintonCourt,
            Location: strptr("Sports Complex"),
            IsActive: true,
        })
    }
    for i := 1; i <= 2; i++ {
        items = append(items, Facility{
            Name:     "Multipurpose Court",
            Code:     fmt.Sprintf("MPC-%d", i),
            Type:     FacilityMultipurposeCourt,
            Location: strptr("Sports Complex"),
            IsActive: true,
        })
    }
    items = append(items,
        Facility{Name: "Persada Football Field", Code: "PFF-1", Type: FacilityFootballField, Location: strptr("Outdoor"), IsActive: true},
        Facility{Name: "Netball Court", Code: "NC-1", Type: FacilityNetballCourt, Location: strptr("Sports Complex"), IsActive: true},
    )
    return items
}
