package booking

import (
    "context"
    "crypto/rand"
    "encoding/hex"
    "fmt"
    "log"
    "strings"
    "time"

    "github.com/smartaccess/facility-booking/internal/model"
)

// Clock supplies the current time.  It is injected so that the sweep
// and grace-period logic are deterministic under test.
type Clock interface {
    Now() time.Time
}

// RealClock is the production Clock backed by time.Now.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// Notifier delivers a single outbound message.  Implementations must be
// best-effort: they log failures themselves and never surface them, so
// a booking, decision or check-in succeeds from the caller's
// perspective even when the notification channel is down.
type Notifier interface {
    Notify(recipient, subject, body string)
}

// Store is the persistence collaborator of the engine.  The conditional
// methods (CreateBooking, UpdateDecision, SetCheckedIn, SetStatus) are
// the serialization points: each re-validates its precondition
// atomically at write time, so two racing writers can never both
// succeed.  CreateBooking in particular must re-run the overlap check
// under a per-facility lock and return ErrConflict when the slot was
// taken between the engine's read and its write.
type Store interface {
    FacilityByCode(ctx context.Context, code string) (*model.Facility, error)
    ActiveBookings(ctx context.Context, facilityCode, date string) ([]model.Booking, error)
    CreateBooking(ctx context.Context, b *model.Booking) error
    BookingByID(ctx context.Context, id uint64) (*model.Booking, error)
    BookingsByUserEmail(ctx context.Context, email string) ([]model.Booking, error)
    AllBookings(ctx context.Context) ([]model.Booking, error)
    // UpdateDecision moves a booking from one status to another, storing
    // the access code when one is issued.  It reports whether the update
    // actually applied: false with a nil error means a concurrent writer
    // already moved the row to the target status, and the caller must
    // treat the stored row as authoritative.  It fails with
    // ErrInvalidState when the booking is in any other status.
    UpdateDecision(ctx context.Context, id uint64, from, to model.BookingStatus, accessCode *string) (bool, error)
    // SetCheckedIn stamps checked_in_at exactly once while the booking is
    // approved.  A booking already stamped is left untouched.
    SetCheckedIn(ctx context.Context, id uint64, at time.Time) error
    // SetStatus is UpdateDecision without a code, used by the sweep and
    // by cancellation.
    SetStatus(ctx context.Context, id uint64, from, to model.BookingStatus) error
    // SweepCandidates returns every approved booking without a check-in.
    SweepCandidates(ctx context.Context) ([]model.Booking, error)
}

// Config carries the tunable parameters of the engine.  It is passed in
// explicitly rather than read from process-wide state so tests can vary
// the grace period and admin address per engine instance.
type Config struct {
    GraceMinutes int    // minutes after start before an approved, unattended booking becomes a no-show
    AdminEmail   string // recipient of new-booking notifications
}

// Engine owns the booking lifecycle: admission through the conflict
// guard, the state machine transitions driven by admin decisions,
// check-in verification and the no-show sweep.
type Engine struct {
    store    Store
    notifier Notifier
    clock    Clock
    cfg      Config
}

// NewEngine constructs an Engine.  A nil clock defaults to the real
// clock; store and notifier must be non-nil.
func NewEngine(store Store, notifier Notifier, clock Clock, cfg Config) *Engine {
    if store == nil || notifier == nil {
        panic("nil collaborator passed to NewEngine")
    }
    if clock == nil {
        clock = RealClock{}
    }
    if cfg.GraceMinutes <= 0 {
        cfg.GraceMinutes = 15
    }
    return &Engine{store: store, notifier: notifier, clock: clock, cfg: cfg}
}

// CreateRequest is a proposed new booking as submitted by a user.
type CreateRequest struct {
    FacilityCode string  `json:"facility_code"`
    UserName     string  `json:"user_name"`
    UserEmail    string  `json:"user_email"`
    Purpose      *string `json:"purpose,omitempty"`
    Date         string  `json:"date"`
    StartTime    string  `json:"start_time"`
    EndTime      string  `json:"end_time"`
}

// CheckAvailability reports the occupied intervals and full-day flag
// for one facility on one date.
func (e *Engine) CheckAvailability(ctx context.Context, facilityCode, date string) (*Availability, error) {
    if _, err := ParseDate(date); err != nil {
        return nil, err
    }
    if _, err := e.store.FacilityByCode(ctx, facilityCode); err != nil {
        return nil, err
    }
    active, err := e.store.ActiveBookings(ctx, facilityCode, date)
    if err != nil {
        return nil, err
    }
    av := BuildAvailability(facilityCode, date, active)
    return &av, nil
}

// Create validates a booking request, guards it against conflicts with
// active bookings and admits it in pending status.  Validation failures
// surface before any side effect; an overlap yields ErrConflict.  The
// store repeats the overlap check atomically at insert time, so passing
// the guard here is advisory and the insert is the authority.
func (e *Engine) Create(ctx context.Context, req CreateRequest) (*model.Booking, error) {
    if strings.TrimSpace(req.UserName) == "" || strings.TrimSpace(req.UserEmail) == "" {
        return nil, fmt.Errorf("%w: user_name and user_email are required", ErrValidation)
    }
    if _, err := ParseDate(req.Date); err != nil {
        return nil, err
    }
    start, err := ParseTimeOfDay(req.StartTime)
    if err != nil {
        return nil, err
    }
    end, err := ParseTimeOfDay(req.EndTime)
    if err != nil {
        return nil, err
    }
    if start >= end {
        return nil, fmt.Errorf("%w: start time must be before end time", ErrValidation)
    }

    fac, err := e.store.FacilityByCode(ctx, req.FacilityCode)
    if err != nil {
        return nil, err
    }

    active, err := e.store.ActiveBookings(ctx, req.FacilityCode, req.Date)
    if err != nil {
        return nil, err
    }
    for _, b := range active {
        bs, err1 := ParseTimeOfDay(b.StartTime)
        be, err2 := ParseTimeOfDay(b.EndTime)
        if err1 != nil || err2 != nil {
            continue
        }
        if Overlaps(start, end, bs, be) {
            return nil, ErrConflict
        }
    }

    booking := &model.Booking{
        FacilityID:   fac.ID,
        FacilityCode: fac.Code,
        UserName:     req.UserName,
        UserEmail:    req.UserEmail,
        Purpose:      req.Purpose,
        Date:         req.Date,
        StartTime:    req.StartTime,
        EndTime:      req.EndTime,
        Status:       model.StatusPending,
    }
    if err := e.store.CreateBooking(ctx, booking); err != nil {
        return nil, err
    }

    e.notifyAdminNewBooking(booking)
    return booking, nil
}

// Admin actions accepted by Decide.
const (
    ActionApprove = "approve"
    ActionReject  = "reject"
)

// Decide applies an admin approval or rejection to a pending booking.
// Repeating the same decision is an idempotent no-op; applying a
// decision to a booking in any other terminal state fails with
// ErrInvalidState.  Approval issues the access code and mails it to the
// booking holder.
func (e *Engine) Decide(ctx context.Context, id uint64, action string) (*model.Booking, error) {
    var target model.BookingStatus
    switch action {
    case ActionApprove:
        target = model.StatusApproved
    case ActionReject:
        target = model.StatusRejected
    default:
        return nil, fmt.Errorf("%w: unknown action %q", ErrValidation, action)
    }

    b, err := e.store.BookingByID(ctx, id)
    if err != nil {
        return nil, err
    }
    if b.Status == target {
        return b, nil // repeated identical decision
    }
    if b.Status != model.StatusPending {
        return nil, ErrInvalidState
    }

    var code *string
    if target == model.StatusApproved {
        c, err := NewAccessCode()
        if err != nil {
            return nil, err
        }
        code = &c
    }
    applied, err := e.store.UpdateDecision(ctx, id, model.StatusPending, target, code)
    if err != nil {
        return nil, err
    }
    if !applied {
        // A concurrent decision reached the same status first.  Its
        // access code is the stored one; the code generated above was
        // never persisted and must not be reported or mailed.
        return e.store.BookingByID(ctx, id)
    }
    b.Status = target
    b.AccessCode = code

    e.notifyUserDecision(b)
    return b, nil
}

// CheckIn verifies the presented access code against an approved
// booking and stamps checked_in_at.  A booking that is not approved
// fails with ErrInvalidState before the code is even compared, so a
// wrong code against a rejected booking learns nothing beyond "not
// approved".  A wrong code mutates nothing.  Repeating a check-in with
// the correct code is a no-op; checked_in_at never moves once set.
func (e *Engine) CheckIn(ctx context.Context, id uint64, accessCode string) (*model.Booking, error) {
    b, err := e.store.BookingByID(ctx, id)
    if err != nil {
        return nil, err
    }
    if b.Status != model.StatusApproved {
        return nil, ErrInvalidState
    }
    if b.AccessCode == nil || *b.AccessCode != accessCode {
        return nil, ErrAccessCode
    }
    if b.CheckedInAt != nil {
        return b, nil // already checked in; keep the original instant
    }
    now := e.clock.Now().UTC()
    if err := e.store.SetCheckedIn(ctx, id, now); err != nil {
        return nil, err
    }
    b.CheckedInAt = &now
    return b, nil
}

// Cancel lets the booking holder withdraw a pending or approved booking
// before it starts.  The email must match the booking's holder; a
// mismatch reports ErrNotFound so the endpoint does not confirm foreign
// booking IDs.  Cancelled bookings free their slot.
func (e *Engine) Cancel(ctx context.Context, id uint64, userEmail string) (*model.Booking, error) {
    b, err := e.store.BookingByID(ctx, id)
    if err != nil {
        return nil, err
    }
    if !strings.EqualFold(b.UserEmail, userEmail) {
        return nil, ErrNotFound
    }
    if b.Status == model.StatusCancelled {
        return b, nil
    }
    if !b.Active() {
        return nil, ErrInvalidState
    }
    if start, err := e.startInstant(b); err == nil && !e.clock.Now().Before(start) {
        return nil, ErrInvalidState
    }
    if err := e.store.SetStatus(ctx, id, b.Status, model.StatusCancelled); err != nil {
        return nil, err
    }
    b.Status = model.StatusCancelled
    return b, nil
}

// ListByUser returns all bookings made under the given email.
func (e *Engine) ListByUser(ctx context.Context, email string) ([]model.Booking, error) {
    return e.store.BookingsByUserEmail(ctx, email)
}

// ListAll returns every booking, for the admin view.
func (e *Engine) ListAll(ctx context.Context) ([]model.Booking, error) {
    return e.store.AllBookings(ctx)
}

// Sweep transitions approved, unattended bookings to no_show once the
// grace period after their start time has elapsed.  Only bookings whose
// date is today or earlier are eligible; future dates are never touched
// regardless of clock skew.  A store failure on one booking is logged
// and the scan continues.  The count of transitioned bookings is
// returned; running the sweep again with no intervening change
// transitions zero, since swept rows leave the approved status.
func (e *Engine) Sweep(ctx context.Context) (int, error) {
    candidates, err := e.store.SweepCandidates(ctx)
    if err != nil {
        return 0, err
    }
    now := e.clock.Now()
    today := now.In(time.Local).Format(dateLayout)
    grace := time.Duration(e.cfg.GraceMinutes) * time.Minute

    changed := 0
    for _, b := range candidates {
        if b.Date > today {
            continue // only past-or-present dates are eligible
        }
        start, err := e.startInstant(&b)
        if err != nil {
            log.Printf("sweep: booking %d has unparseable schedule: %v", b.ID, err)
            continue
        }
        if now.Before(start.Add(grace)) {
            continue
        }
        if err := e.store.SetStatus(ctx, b.ID, model.StatusApproved, model.StatusNoShow); err != nil {
            log.Printf("sweep: booking %d not transitioned: %v", b.ID, err)
            continue
        }
        changed++
    }
    if changed > 0 {
        log.Printf("sweep: marked %d bookings as no_show", changed)
    }
    return changed, nil
}

// startInstant combines a booking's date and start time into an
// absolute instant in the server's local zone.
func (e *Engine) startInstant(b *model.Booking) (time.Time, error) {
    day, err := ParseDate(b.Date)
    if err != nil {
        return time.Time{}, err
    }
    start, err := ParseTimeOfDay(b.StartTime)
    if err != nil {
        return time.Time{}, err
    }
    return day.Add(time.Duration(start) * time.Minute), nil
}

// NewAccessCode generates the entry code issued on approval: three
// cryptographically random bytes hex-encoded and upper-cased, giving
// six characters such as "A3F09C".
func NewAccessCode() (string, error) {
    b := make([]byte, 3)
    if _, err := rand.Read(b); err != nil {
        return "", err
    }
    return strings.ToUpper(hex.EncodeToString(b)), nil
}

func (e *Engine) notifyAdminNewBooking(b *model.Booking) {
    subject := fmt.Sprintf("New booking request: %s on %s", b.FacilityCode, b.Date)
    purpose := "-"
    if b.Purpose != nil && *b.Purpose != "" {
        purpose = *b.Purpose
    }
    body := fmt.Sprintf(
        "<h3>New Booking Request</h3>"+
            "<p><b>Facility:</b> %s</p>"+
            "<p><b>Date:</b> %s %s-%s</p>"+
            "<p><b>User:</b> %s (%s)</p>"+
            "<p><b>Purpose:</b> %s</p>"+
            "<p>Please review in the admin panel.</p>",
        b.FacilityCode, b.Date, b.StartTime, b.EndTime, b.UserName, b.UserEmail, purpose,
    )
    e.notifier.Notify(e.cfg.AdminEmail, subject, body)
}

func (e *Engine) notifyUserDecision(b *model.Booking) {
    subject := fmt.Sprintf("Your booking has been %s", b.Status)
    codeHTML := ""
    if b.AccessCode != nil {
        codeHTML = fmt.Sprintf("<p><b>Access code:</b> %s</p>", *b.AccessCode)
    }
    body := fmt.Sprintf(
        "<p>Your booking request for <b>%s</b> on <b>%s %s-%s</b> has been <b>%s</b>.</p>%s",
        b.FacilityCode, b.Date, b.StartTime, b.EndTime, b.Status, codeHTML,
    )
    e.notifier.Notify(b.UserEmail, subject, body)
}
