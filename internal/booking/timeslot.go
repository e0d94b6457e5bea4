package booking

import (
    "fmt"
    "time"
)

// Daily operating window.  Occupancy is only tracked inside
// [08:00, 22:00); intervals reaching outside it are clipped, not
// rejected.
const (
    OpenMinute    = 8 * 60  // 08:00
    CloseMinute   = 22 * 60 // 22:00
    WindowMinutes = CloseMinute - OpenMinute
)

const (
    dateLayout = "2006-01-02"
    timeLayout = "15:04"
)

// ParseTimeOfDay parses a strict 24h "HH:MM" string into minutes since
// midnight.  Hour must be in [0,23] and minute in [0,59]; anything else
// returns ErrValidation.
func ParseTimeOfDay(s string) (int, error) {
    if len(s) != 5 || s[2] != ':' {
        return 0, fmt.Errorf("%w: time %q is not HH:MM", ErrValidation, s)
    }
    for _, i := range [4]int{0, 1, 3, 4} {
        if s[i] < '0' || s[i] > '9' {
            return 0, fmt.Errorf("%w: time %q is not HH:MM", ErrValidation, s)
        }
    }
    hh := int(s[0]-'0')*10 + int(s[1]-'0')
    mm := int(s[3]-'0')*10 + int(s[4]-'0')
    if hh > 23 || mm > 59 {
        return 0, fmt.Errorf("%w: time %q out of range", ErrValidation, s)
    }
    return hh*60 + mm, nil
}

// FormatTimeOfDay renders minutes since midnight back into "HH:MM".
func FormatTimeOfDay(minutes int) string {
    return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ParseDate parses a strict "YYYY-MM-DD" calendar date.  The returned
// time is midnight in the server's local zone, matching how booking
// start instants are computed for the sweep.
func ParseDate(s string) (time.Time, error) {
    t, err := time.ParseInLocation(dateLayout, s, time.Local)
    if err != nil {
        return time.Time{}, fmt.Errorf("%w: date %q is not YYYY-MM-DD", ErrValidation, s)
    }
    return t, nil
}

// Overlaps reports whether the half-open intervals [s1,e1) and [s2,e2)
// intersect.  Touching endpoints (one interval ending exactly where the
// other starts) do not count as overlap.  Both the conflict guard and
// the availability calculator use this single predicate so that they
// can never disagree about what occupies a slot.
func Overlaps(s1, e1, s2, e2 int) bool {
    return s1 < e2 && s2 < e1
}

// clipToWindow confines [start,end) to the operating window and shifts
// it to window-relative offsets.  The second return value is false when
// the interval lies entirely outside the window.
func clipToWindow(start, end int) (int, int, bool) {
    if start < OpenMinute {
        start = OpenMinute
    }
    if end > CloseMinute {
        end = CloseMinute
    }
    if start >= end {
        return 0, 0, false
    }
    return start - OpenMinute, end - OpenMinute, true
}
