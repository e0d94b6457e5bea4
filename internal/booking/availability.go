package booking

import "github.com/smartaccess/facility-booking/internal/model"

// OccupiedInterval describes one occupied sub-interval of a facility's
// day, tagged with the status of the booking holding it so that
// clients can render tentative (pending) and firm (approved) slots
// differently.
type OccupiedInterval struct {
    Start  string              `json:"start"`
    End    string              `json:"end"`
    Status model.BookingStatus `json:"status"`
}

// Availability is the occupancy report for one facility on one date.
type Availability struct {
    FacilityCode  string             `json:"facility_code"`
    Date          string             `json:"date"`
    Unavailable   []OccupiedInterval `json:"unavailable"`
    FullyOccupied bool               `json:"fully_occupied"`
    Hours         OperatingHours     `json:"hours"`
}

// OperatingHours echoes the daily window back to clients.
type OperatingHours struct {
    Open  string `json:"open"`
    Close string `json:"close"`
}

// BuildAvailability derives the occupancy report from the active
// (pending or approved) bookings of one facility on one date.  It marks
// a per-minute bitmap over the operating window rather than merging
// intervals: the window is fixed and small, and per-minute marking
// handles any number of overlapping or adjacent bookings without merge
// logic.  The report is purely descriptive; it does not assume the
// underlying data is conflict-free and renders sanely even if two
// active bookings were ever to overlap.
func BuildAvailability(facilityCode, date string, active []model.Booking) Availability {
    out := Availability{
        FacilityCode: facilityCode,
        Date:         date,
        Unavailable:  make([]OccupiedInterval, 0, len(active)),
        Hours: OperatingHours{
            Open:  FormatTimeOfDay(OpenMinute),
            Close: FormatTimeOfDay(CloseMinute),
        },
    }

    var covered [WindowMinutes]bool
    for _, b := range active {
        out.Unavailable = append(out.Unavailable, OccupiedInterval{
            Start:  b.StartTime,
            End:    b.EndTime,
            Status: b.Status,
        })
        start, err := ParseTimeOfDay(b.StartTime)
        if err != nil {
            continue // unparseable stored rows are reported but not mapped
        }
        end, err := ParseTimeOfDay(b.EndTime)
        if err != nil {
            continue
        }
        s, e, ok := clipToWindow(start, end)
        if !ok {
            continue
        }
        for i := s; i < e; i++ {
            covered[i] = true
        }
    }

    out.FullyOccupied = true
    for _, c := range covered {
        if !c {
            out.FullyOccupied = false
            break
        }
    }
    return out
}
