package repository

import (
    "context"
    "database/sql"
    "errors"
    "fmt"
    "time"

    "github.com/smartaccess/facility-booking/internal/booking"
    "github.com/smartaccess/facility-booking/internal/model"
)

// BookingRepo provides data access to the bookings table and implements
// the engine's Store contract.  All conditional transitions are issued
// as single UPDATE statements guarded by the expected current status,
// so at most one of any set of racing writers per booking ID can
// succeed.  Admission runs inside a transaction holding a lock on the
// facility row, which serializes concurrent creations per facility and
// makes the overlap re-check at insert time authoritative.
type BookingRepo struct {
    db *sql.DB
}

// NewBookingRepo returns a BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// DB exposes the underlying handle for callers that need to compose
// transactions across repositories.
func (r *BookingRepo) DB() *sql.DB { return r.db }

const bookingColumns = `id, facility_id, facility_code, user_name, user_email, purpose,
    date, start_time, end_time, status, access_code, checked_in_at, created_at, updated_at`

// scanBooking reads one bookings row from a row scanner.
func scanBooking(sc interface{ Scan(...any) error }) (*model.Booking, error) {
    var b model.Booking
    var purpose, accessCode sql.NullString
    var checkedInAt sql.NullTime
    err := sc.Scan(
        &b.ID, &b.FacilityID, &b.FacilityCode, &b.UserName, &b.UserEmail, &purpose,
        &b.Date, &b.StartTime, &b.EndTime, &b.Status, &accessCode, &checkedInAt,
        &b.CreatedAt, &b.UpdatedAt,
    )
    if err != nil {
        return nil, err
    }
    if purpose.Valid {
        p := purpose.String
        b.Purpose = &p
    }
    if accessCode.Valid {
        c := accessCode.String
        b.AccessCode = &c
    }
    if checkedInAt.Valid {
        t := checkedInAt.Time
        b.CheckedInAt = &t
    }
    return &b, nil
}

// FacilityByCode resolves a facility by its short code.  It maps a
// missing row onto the engine's ErrNotFound sentinel.
func (r *BookingRepo) FacilityByCode(ctx context.Context, code string) (*model.Facility, error) {
    const q = `SELECT id, code, name, type, location, capacity, is_active, created_at
               FROM facilities WHERE code = ?`
    f, err := scanFacility(r.db.QueryRowContext(ctx, q, code))
    if errors.Is(err, sql.ErrNoRows) {
        return nil, fmt.Errorf("facility %q: %w", code, booking.ErrNotFound)
    }
    return f, err
}

// ActiveBookings returns the pending and approved bookings for one
// facility on one date.  These are exactly the rows that occupy slots.
func (r *BookingRepo) ActiveBookings(ctx context.Context, facilityCode, date string) ([]model.Booking, error) {
    q := `SELECT ` + bookingColumns + `
          FROM bookings
          WHERE facility_code = ? AND date = ? AND status IN ('pending', 'approved')
          ORDER BY start_time`
    rows, err := r.db.QueryContext(ctx, q, facilityCode, date)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    return collectBookings(rows)
}

// CreateBooking admits a new booking atomically.  It locks the facility
// row for the duration of the transaction, re-runs the overlap check
// against active bookings and inserts only when the interval is still
// free.  Lexicographic comparison of zero-padded "HH:MM" strings is
// chronological, so the overlap predicate maps directly onto SQL.
// When the slot was taken by a concurrent writer it returns
// booking.ErrConflict, the same error the advisory guard reports.
func (r *BookingRepo) CreateBooking(ctx context.Context, b *model.Booking) error {
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    // Serialization point: every creation for this facility queues here.
    var facilityID uint64
    err = tx.QueryRowContext(ctx,
        `SELECT id FROM facilities WHERE code = ? FOR UPDATE`, b.FacilityCode,
    ).Scan(&facilityID)
    if errors.Is(err, sql.ErrNoRows) {
        return fmt.Errorf("facility %q: %w", b.FacilityCode, booking.ErrNotFound)
    }
    if err != nil {
        return err
    }

    var clashes int
    err = tx.QueryRowContext(ctx,
        `SELECT COUNT(*) FROM bookings
         WHERE facility_code = ? AND date = ? AND status IN ('pending', 'approved')
           AND start_time < ? AND end_time > ?`,
        b.FacilityCode, b.Date, b.EndTime, b.StartTime,
    ).Scan(&clashes)
    if err != nil {
        return err
    }
    if clashes > 0 {
        return booking.ErrConflict
    }

    res, err := tx.ExecContext(ctx,
        `INSERT INTO bookings (facility_id, facility_code, user_name, user_email, purpose,
                               date, start_time, end_time, status)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
        facilityID, b.FacilityCode, b.UserName, b.UserEmail, nullString(b.Purpose),
        b.Date, b.StartTime, b.EndTime, b.Status,
    )
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    b.ID = uint64(id)
    b.FacilityID = facilityID

    // Query back timestamps set by the database defaults.
    err = tx.QueryRowContext(ctx,
        `SELECT created_at, updated_at FROM bookings WHERE id = ?`, b.ID,
    ).Scan(&b.CreatedAt, &b.UpdatedAt)
    if err != nil {
        return err
    }

    if err := tx.Commit(); err != nil {
        return err
    }
    committed = true
    return nil
}

// BookingByID loads one booking, mapping a missing row onto ErrNotFound.
func (r *BookingRepo) BookingByID(ctx context.Context, id uint64) (*model.Booking, error) {
    q := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`
    b, err := scanBooking(r.db.QueryRowContext(ctx, q, id))
    if errors.Is(err, sql.ErrNoRows) {
        return nil, fmt.Errorf("booking %d: %w", id, booking.ErrNotFound)
    }
    return b, err
}

// BookingsByUserEmail returns all bookings made under an email address,
// oldest date first.
func (r *BookingRepo) BookingsByUserEmail(ctx context.Context, email string) ([]model.Booking, error) {
    q := `SELECT ` + bookingColumns + ` FROM bookings WHERE user_email = ? ORDER BY date, start_time`
    rows, err := r.db.QueryContext(ctx, q, email)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    return collectBookings(rows)
}

// AllBookings returns every booking for the admin view, ordered by date
// and start time.
func (r *BookingRepo) AllBookings(ctx context.Context) ([]model.Booking, error) {
    q := `SELECT ` + bookingColumns + ` FROM bookings ORDER BY date, start_time`
    rows, err := r.db.QueryContext(ctx, q)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    return collectBookings(rows)
}

// UpdateDecision applies an admin decision conditionally: the UPDATE
// only matches while the booking still holds the expected from status.
// Zero affected rows means a concurrent writer got there first (or the
// ID never existed), and the follow-up read distinguishes the two.
// The boolean tells the caller whether this writer won the race; on a
// false return the stored row, including its access code, belongs to
// the concurrent winner.
func (r *BookingRepo) UpdateDecision(ctx context.Context, id uint64, from, to model.BookingStatus, accessCode *string) (bool, error) {
    res, err := r.db.ExecContext(ctx,
        `UPDATE bookings SET status = ?, access_code = COALESCE(?, access_code), updated_at = NOW()
         WHERE id = ? AND status = ?`,
        to, nullString(accessCode), id, from,
    )
    if err != nil {
        return false, err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return false, err
    }
    if n > 0 {
        return true, nil
    }
    b, err := r.BookingByID(ctx, id)
    if err != nil {
        return false, err
    }
    if b.Status == to {
        return false, nil // concurrent writer already applied this decision
    }
    return false, booking.ErrInvalidState
}

// SetStatus is the code-less variant of UpdateDecision, used by the
// sweep and by cancellation.
func (r *BookingRepo) SetStatus(ctx context.Context, id uint64, from, to model.BookingStatus) error {
    res, err := r.db.ExecContext(ctx,
        `UPDATE bookings SET status = ?, updated_at = NOW() WHERE id = ? AND status = ?`,
        to, id, from,
    )
    if err != nil {
        return err
    }
    return r.explainNoEffect(ctx, res, id, to)
}

// SetCheckedIn stamps checked_in_at exactly once.  The IS NULL guard
// makes a racing duplicate check-in a no-op instead of moving the
// recorded instant.
func (r *BookingRepo) SetCheckedIn(ctx context.Context, id uint64, at time.Time) error {
    res, err := r.db.ExecContext(ctx,
        `UPDATE bookings SET checked_in_at = ?, updated_at = NOW()
         WHERE id = ? AND status = 'approved' AND checked_in_at IS NULL`,
        at.UTC(), id,
    )
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n > 0 {
        return nil
    }
    b, err := r.BookingByID(ctx, id)
    if err != nil {
        return err
    }
    if b.CheckedInAt != nil {
        return nil // already stamped; keep the original instant
    }
    return booking.ErrInvalidState
}

// SweepCandidates returns every approved booking that has not been
// checked in.  The sweep applies the date and grace-period filters
// itself; the store only narrows on status so the selection stays a
// single indexable predicate.
func (r *BookingRepo) SweepCandidates(ctx context.Context) ([]model.Booking, error) {
    q := `SELECT ` + bookingColumns + `
          FROM bookings WHERE status = 'approved' AND checked_in_at IS NULL`
    rows, err := r.db.QueryContext(ctx, q)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    return collectBookings(rows)
}

// explainNoEffect turns a zero-row conditional UPDATE into the precise
// sentinel: ErrNotFound when the booking does not exist, nil when the
// row already holds the target status (idempotent repeat), and
// ErrInvalidState otherwise.
func (r *BookingRepo) explainNoEffect(ctx context.Context, res sql.Result, id uint64, to model.BookingStatus) error {
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n > 0 {
        return nil
    }
    b, err := r.BookingByID(ctx, id)
    if err != nil {
        return err
    }
    if b.Status == to {
        return nil
    }
    return booking.ErrInvalidState
}

func collectBookings(rows *sql.Rows) ([]model.Booking, error) {
    out := make([]model.Booking, 0)
    for rows.Next() {
        b, err := scanBooking(rows)
        if err != nil {
            return nil, err
        }
        out = append(out, *b)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

func nullString(s *string) sql.NullString {
    if s == nil {
        return sql.NullString{}
    }
    return sql.NullString{String: *s, Valid: true}
}
