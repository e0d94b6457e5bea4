package booking

import (
    "context"
    "fmt"
    "regexp"
    "sort"
    "sync"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/smartaccess/facility-booking/internal/model"
)

// fakeStore is an in-memory Store with the same conditional-write
// semantics as the MySQL repository: every transition re-validates its
// precondition under the lock, and CreateBooking repeats the overlap
// check before inserting.
type fakeStore struct {
    mu         sync.Mutex
    nextID     uint64
    facilities map[string]model.Facility
    bookings   map[uint64]*model.Booking
}

func newFakeStore(facilities ...model.Facility) *fakeStore {
    s := &fakeStore{
        facilities: make(map[string]model.Facility),
        bookings:   make(map[uint64]*model.Booking),
    }
    for _, f := range facilities {
        s.facilities[f.Code] = f
    }
    return s
}

func (s *fakeStore) FacilityByCode(_ context.Context, code string) (*model.Facility, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    f, ok := s.facilities[code]
    if !ok {
        return nil, ErrNotFound
    }
    return &f, nil
}

func (s *fakeStore) ActiveBookings(_ context.Context, facilityCode, date string) ([]model.Booking, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    var out []model.Booking
    for _, b := range s.bookings {
        if b.FacilityCode == facilityCode && b.Date == date && b.Active() {
            out = append(out, *b)
        }
    }
    return out, nil
}

func (s *fakeStore) CreateBooking(_ context.Context, b *model.Booking) error {
    s.mu.Lock()
    defer s.mu.Unlock()
    ns, err1 := ParseTimeOfDay(b.StartTime)
    ne, err2 := ParseTimeOfDay(b.EndTime)
    if err1 != nil || err2 != nil {
        return ErrValidation
    }
    for _, other := range s.bookings {
        if other.FacilityCode != b.FacilityCode || other.Date != b.Date || !other.Active() {
            continue
        }
        os, err1 := ParseTimeOfDay(other.StartTime)
        oe, err2 := ParseTimeOfDay(other.EndTime)
        if err1 != nil || err2 != nil {
            continue
        }
        if Overlaps(ns, ne, os, oe) {
            return ErrConflict
        }
    }
    s.nextID++
    b.ID = s.nextID
    b.CreatedAt = time.Now().UTC()
    b.UpdatedAt = b.CreatedAt
    cp := *b
    s.bookings[b.ID] = &cp
    return nil
}

func (s *fakeStore) BookingByID(_ context.Context, id uint64) (*model.Booking, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    b, ok := s.bookings[id]
    if !ok {
        return nil, ErrNotFound
    }
    cp := *b
    return &cp, nil
}

func (s *fakeStore) BookingsByUserEmail(_ context.Context, email string) ([]model.Booking, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    var out []model.Booking
    for _, b := range s.bookings {
        if b.UserEmail == email {
            out = append(out, *b)
        }
    }
    sortBookings(out)
    return out, nil
}

func (s *fakeStore) AllBookings(_ context.Context) ([]model.Booking, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    out := make([]model.Booking, 0, len(s.bookings))
    for _, b := range s.bookings {
        out = append(out, *b)
    }
    sortBookings(out)
    return out, nil
}

func (s *fakeStore) UpdateDecision(_ context.Context, id uint64, from, to model.BookingStatus, accessCode *string) (bool, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    b, ok := s.bookings[id]
    if !ok {
        return false, ErrNotFound
    }
    if b.Status != from {
        if b.Status == to {
            return false, nil
        }
        return false, ErrInvalidState
    }
    b.Status = to
    if accessCode != nil {
        b.AccessCode = accessCode
    }
    b.UpdatedAt = time.Now().UTC()
    return true, nil
}

func (s *fakeStore) SetCheckedIn(_ context.Context, id uint64, at time.Time) error {
    s.mu.Lock()
    defer s.mu.Unlock()
    b, ok := s.bookings[id]
    if !ok {
        return ErrNotFound
    }
    if b.CheckedInAt != nil {
        return nil
    }
    if b.Status != model.StatusApproved {
        return ErrInvalidState
    }
    b.CheckedInAt = &at
    b.UpdatedAt = time.Now().UTC()
    return nil
}

func (s *fakeStore) SetStatus(_ context.Context, id uint64, from, to model.BookingStatus) error {
    _, err := s.UpdateDecision(context.Background(), id, from, to, nil)
    return err
}

func (s *fakeStore) SweepCandidates(_ context.Context) ([]model.Booking, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    var out []model.Booking
    for _, b := range s.bookings {
        if b.Status == model.StatusApproved && b.CheckedInAt == nil {
            out = append(out, *b)
        }
    }
    sortBookings(out)
    return out, nil
}

func sortBookings(bs []model.Booking) {
    sort.Slice(bs, func(i, j int) bool {
        if bs[i].Date != bs[j].Date {
            return bs[i].Date < bs[j].Date
        }
        if bs[i].StartTime != bs[j].StartTime {
            return bs[i].StartTime < bs[j].StartTime
        }
        return bs[i].ID < bs[j].ID
    })
}

// recordingNotifier captures outbound messages for assertions.
type recordingNotifier struct {
    mu   sync.Mutex
    sent []sentMessage
}

type sentMessage struct {
    recipient string
    subject   string
    body      string
}

func (n *recordingNotifier) Notify(recipient, subject, body string) {
    n.mu.Lock()
    defer n.mu.Unlock()
    n.sent = append(n.sent, sentMessage{recipient: recipient, subject: subject, body: body})
}

func (n *recordingNotifier) count() int {
    n.mu.Lock()
    defer n.mu.Unlock()
    return len(n.sent)
}

func (n *recordingNotifier) last() sentMessage {
    n.mu.Lock()
    defer n.mu.Unlock()
    return n.sent[len(n.sent)-1]
}

// fixedClock returns a settable instant.
type fixedClock struct {
    mu  sync.Mutex
    now time.Time
}

func (c *fixedClock) Now() time.Time {
    c.mu.Lock()
    defer c.mu.Unlock()
    return c.now
}

func (c *fixedClock) set(t time.Time) {
    c.mu.Lock()
    defer c.mu.Unlock()
    c.now = t
}

func testFacility() model.Facility {
    return model.Facility{ID: 1, Code: "MR-1", Name: "Meeting Room 1", Type: model.FacilityMeetingRoom, IsActive: true}
}

func newTestEngine(t *testing.T) (*Engine, *fakeStore, *recordingNotifier, *fixedClock) {
    t.Helper()
    store := newFakeStore(testFacility())
    notifier := &recordingNotifier{}
    // the day before any booking date used in the tests
    clock := &fixedClock{now: time.Date(2026, 3, 13, 9, 0, 0, 0, time.Local)}
    engine := NewEngine(store, notifier, clock, Config{GraceMinutes: 15, AdminEmail: "admin@example.com"})
    return engine, store, notifier, clock
}

func validRequest() CreateRequest {
    return CreateRequest{
        FacilityCode: "MR-1",
        UserName:     "Dana",
        UserEmail:    "dana@example.com",
        Date:         "2026-03-14",
        StartTime:    "09:00",
        EndTime:      "10:00",
    }
}

func TestCreateValidation(t *testing.T) {
    engine, _, notifier, _ := newTestEngine(t)
    ctx := context.Background()

    tests := []struct {
        name   string
        mutate func(*CreateRequest)
    }{
        {name: "missing name", mutate: func(r *CreateRequest) { r.UserName = " " }},
        {name: "missing email", mutate: func(r *CreateRequest) { r.UserEmail = "" }},
        {name: "bad date", mutate: func(r *CreateRequest) { r.Date = "14-03-2026" }},
        {name: "bad start time", mutate: func(r *CreateRequest) { r.StartTime = "9:00" }},
        {name: "bad end time", mutate: func(r *CreateRequest) { r.EndTime = "25:00" }},
        {name: "start equals end", mutate: func(r *CreateRequest) { r.EndTime = "09:00" }},
        {name: "start after end", mutate: func(r *CreateRequest) { r.StartTime = "11:00" }},
    }

    for _, tt := range tests {
        t.Run(tt.name, func(t *testing.T) {
            req := validRequest()
            tt.mutate(&req)
            _, err := engine.Create(ctx, req)
            assert.ErrorIs(t, err, ErrValidation)
        })
    }
    assert.Zero(t, notifier.count(), "rejected input must not notify anyone")
}

func TestCreateUnknownFacility(t *testing.T) {
    engine, _, _, _ := newTestEngine(t)
    req := validRequest()
    req.FacilityCode = "MR-99"
    _, err := engine.Create(context.Background(), req)
    assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateNotifiesAdmin(t *testing.T) {
    engine, _, notifier, _ := newTestEngine(t)

    b, err := engine.Create(context.Background(), validRequest())
    require.NoError(t, err)
    assert.Equal(t, model.StatusPending, b.Status)
    assert.NotZero(t, b.ID)
    assert.Nil(t, b.AccessCode)

    require.Equal(t, 1, notifier.count())
    msg := notifier.last()
    assert.Equal(t, "admin@example.com", msg.recipient)
    assert.Contains(t, msg.body, "MR-1")
    assert.Contains(t, msg.body, "dana@example.com")
}

func TestCreateConflicts(t *testing.T) {
    engine, _, _, _ := newTestEngine(t)
    ctx := context.Background()

    _, err := engine.Create(ctx, validRequest())
    require.NoError(t, err)

    t.Run("overlapping slot rejected", func(t *testing.T) {
        req := validRequest()
        req.UserEmail = "erin@example.com"
        req.StartTime = "09:30"
        req.EndTime = "10:30"
        _, err := engine.Create(ctx, req)
        assert.ErrorIs(t, err, ErrConflict)
    })

    t.Run("adjacent slot admitted", func(t *testing.T) {
        req := validRequest()
        req.UserEmail = "erin@example.com"
        req.StartTime = "10:00"
        req.EndTime = "11:00"
        _, err := engine.Create(ctx, req)
        assert.NoError(t, err)
    })

    t.Run("same slot other facility admitted", func(t *testing.T) {
        store := newFakeStore(testFacility(), model.Facility{ID: 2, Code: "MR-2", Name: "Meeting Room 2", Type: model.FacilityMeetingRoom, IsActive: true})
        eng := NewEngine(store, &recordingNotifier{}, &fixedClock{now: time.Date(2026, 3, 13, 9, 0, 0, 0, time.Local)}, Config{})
        _, err := eng.Create(ctx, validRequest())
        require.NoError(t, err)
        req := validRequest()
        req.FacilityCode = "MR-2"
        _, err = eng.Create(ctx, req)
        assert.NoError(t, err)
    })

    t.Run("same slot other date admitted", func(t *testing.T) {
        req := validRequest()
        req.Date = "2026-03-15"
        _, err := engine.Create(ctx, req)
        assert.NoError(t, err)
    })
}

var accessCodePattern = regexp.MustCompile(`^[0-9A-F]{6}$`)

func TestNewAccessCode(t *testing.T) {
    seen := make(map[string]struct{})
    for i := 0; i < 50; i++ {
        code, err := NewAccessCode()
        require.NoError(t, err)
        assert.Regexp(t, accessCodePattern, code)
        seen[code] = struct{}{}
    }
    assert.Greater(t, len(seen), 1, "codes must not be constant")
}

func TestDecideApprove(t *testing.T) {
    engine, _, notifier, _ := newTestEngine(t)
    ctx := context.Background()

    b, err := engine.Create(ctx, validRequest())
    require.NoError(t, err)

    approved, err := engine.Decide(ctx, b.ID, ActionApprove)
    require.NoError(t, err)
    assert.Equal(t, model.StatusApproved, approved.Status)
    require.NotNil(t, approved.AccessCode)
    assert.Regexp(t, accessCodePattern, *approved.AccessCode)

    msg := notifier.last()
    assert.Equal(t, "dana@example.com", msg.recipient)
    assert.Contains(t, msg.body, *approved.AccessCode)

    t.Run("repeat approval is a no-op", func(t *testing.T) {
        before := notifier.count()
        again, err := engine.Decide(ctx, b.ID, ActionApprove)
        require.NoError(t, err)
        assert.Equal(t, *approved.AccessCode, *again.AccessCode, "the code must not be reissued")
        assert.Equal(t, before, notifier.count(), "no fresh notification on a no-op")
    })

    t.Run("reject after approve fails", func(t *testing.T) {
        _, err := engine.Decide(ctx, b.ID, ActionReject)
        assert.ErrorIs(t, err, ErrInvalidState)
    })
}

func TestDecideReject(t *testing.T) {
    engine, _, notifier, _ := newTestEngine(t)
    ctx := context.Background()

    b, err := engine.Create(ctx, validRequest())
    require.NoError(t, err)

    rejected, err := engine.Decide(ctx, b.ID, ActionReject)
    require.NoError(t, err)
    assert.Equal(t, model.StatusRejected, rejected.Status)
    assert.Nil(t, rejected.AccessCode, "rejection issues no code")
    assert.Equal(t, "dana@example.com", notifier.last().recipient)

    t.Run("slot is freed", func(t *testing.T) {
        req := validRequest()
        req.UserEmail = "erin@example.com"
        _, err := engine.Create(ctx, req)
        assert.NoError(t, err)
    })

    t.Run("approve after reject fails", func(t *testing.T) {
        _, err := engine.Decide(ctx, b.ID, ActionApprove)
        assert.ErrorIs(t, err, ErrInvalidState)
    })
}

func TestDecideErrors(t *testing.T) {
    engine, _, _, _ := newTestEngine(t)
    ctx := context.Background()

    _, err := engine.Decide(ctx, 42, ActionApprove)
    assert.ErrorIs(t, err, ErrNotFound)

    b, err := engine.Create(ctx, validRequest())
    require.NoError(t, err)
    _, err = engine.Decide(ctx, b.ID, "promote")
    assert.ErrorIs(t, err, ErrValidation)
}

func TestCheckIn(t *testing.T) {
    engine, store, _, clock := newTestEngine(t)
    ctx := context.Background()

    b, err := engine.Create(ctx, validRequest())
    require.NoError(t, err)

    t.Run("pending booking cannot check in", func(t *testing.T) {
        _, err := engine.CheckIn(ctx, b.ID, "AAAAAA")
        assert.ErrorIs(t, err, ErrInvalidState)
    })

    approved, err := engine.Decide(ctx, b.ID, ActionApprove)
    require.NoError(t, err)
    code := *approved.AccessCode

    t.Run("wrong code mutates nothing", func(t *testing.T) {
        _, err := engine.CheckIn(ctx, b.ID, "000000")
        assert.ErrorIs(t, err, ErrAccessCode)
        stored, err := store.BookingByID(ctx, b.ID)
        require.NoError(t, err)
        assert.Nil(t, stored.CheckedInAt)
        assert.Equal(t, model.StatusApproved, stored.Status)
    })

    arrival := time.Date(2026, 3, 14, 9, 3, 0, 0, time.Local)
    clock.set(arrival)

    checked, err := engine.CheckIn(ctx, b.ID, code)
    require.NoError(t, err)
    require.NotNil(t, checked.CheckedInAt)
    first := *checked.CheckedInAt
    assert.True(t, first.Equal(arrival.UTC()))

    t.Run("repeat check-in keeps the original instant", func(t *testing.T) {
        clock.set(arrival.Add(20 * time.Minute))
        again, err := engine.CheckIn(ctx, b.ID, code)
        require.NoError(t, err)
        require.NotNil(t, again.CheckedInAt)
        assert.True(t, again.CheckedInAt.Equal(first))
    })

    t.Run("unknown booking", func(t *testing.T) {
        _, err := engine.CheckIn(ctx, 42, code)
        assert.ErrorIs(t, err, ErrNotFound)
    })
}

func TestCancel(t *testing.T) {
    engine, _, _, clock := newTestEngine(t)
    ctx := context.Background()

    b, err := engine.Create(ctx, validRequest())
    require.NoError(t, err)

    t.Run("foreign email looks like not found", func(t *testing.T) {
        _, err := engine.Cancel(ctx, b.ID, "mallory@example.com")
        assert.ErrorIs(t, err, ErrNotFound)
    })

    t.Run("email match is case-insensitive", func(t *testing.T) {
        cancelled, err := engine.Cancel(ctx, b.ID, "Dana@Example.COM")
        require.NoError(t, err)
        assert.Equal(t, model.StatusCancelled, cancelled.Status)
    })

    t.Run("repeat cancel is a no-op", func(t *testing.T) {
        again, err := engine.Cancel(ctx, b.ID, "dana@example.com")
        require.NoError(t, err)
        assert.Equal(t, model.StatusCancelled, again.Status)
    })

    t.Run("cancelled slot is freed", func(t *testing.T) {
        req := validRequest()
        req.UserEmail = "erin@example.com"
        _, err := engine.Create(ctx, req)
        assert.NoError(t, err)
    })

    t.Run("started booking cannot be cancelled", func(t *testing.T) {
        req := validRequest()
        req.StartTime = "14:00"
        req.EndTime = "15:00"
        late, err := engine.Create(ctx, req)
        require.NoError(t, err)
        clock.set(time.Date(2026, 3, 14, 14, 0, 0, 0, time.Local))
        _, err = engine.Cancel(ctx, late.ID, "dana@example.com")
        assert.ErrorIs(t, err, ErrInvalidState)
    })

    t.Run("rejected booking cannot be cancelled", func(t *testing.T) {
        req := validRequest()
        req.Date = "2026-03-20"
        other, err := engine.Create(ctx, req)
        require.NoError(t, err)
        _, err = engine.Decide(ctx, other.ID, ActionReject)
        require.NoError(t, err)
        _, err = engine.Cancel(ctx, other.ID, "dana@example.com")
        assert.ErrorIs(t, err, ErrInvalidState)
    })
}

func TestSweep(t *testing.T) {
    engine, store, _, clock := newTestEngine(t)
    ctx := context.Background()

    approve := func(t *testing.T, req CreateRequest) *model.Booking {
        t.Helper()
        b, err := engine.Create(ctx, req)
        require.NoError(t, err)
        b, err = engine.Decide(ctx, b.ID, ActionApprove)
        require.NoError(t, err)
        return b
    }

    missed := approve(t, validRequest())

    future := validRequest()
    future.Date = "2026-03-21"
    futureBooking := approve(t, future)

    attended := validRequest()
    attended.StartTime = "11:00"
    attended.EndTime = "12:00"
    attendedBooking := approve(t, attended)

    pendingReq := validRequest()
    pendingReq.StartTime = "13:00"
    pendingReq.EndTime = "14:00"
    pendingBooking, err := engine.Create(ctx, pendingReq)
    require.NoError(t, err)

    // check the attended booking in right at its start
    clock.set(time.Date(2026, 3, 14, 11, 0, 0, 0, time.Local))
    _, err = engine.CheckIn(ctx, attendedBooking.ID, *attendedBooking.AccessCode)
    require.NoError(t, err)

    t.Run("inside the grace period nothing is marked", func(t *testing.T) {
        clock.set(time.Date(2026, 3, 14, 9, 14, 0, 0, time.Local))
        marked, err := engine.Sweep(ctx)
        require.NoError(t, err)
        assert.Zero(t, marked)
    })

    t.Run("past the grace period the missed booking is marked", func(t *testing.T) {
        clock.set(time.Date(2026, 3, 14, 9, 16, 0, 0, time.Local))
        marked, err := engine.Sweep(ctx)
        require.NoError(t, err)
        assert.Equal(t, 1, marked)

        stored, err := store.BookingByID(ctx, missed.ID)
        require.NoError(t, err)
        assert.Equal(t, model.StatusNoShow, stored.Status)
    })

    t.Run("checked-in and pending bookings survive", func(t *testing.T) {
        stored, err := store.BookingByID(ctx, attendedBooking.ID)
        require.NoError(t, err)
        assert.Equal(t, model.StatusApproved, stored.Status)

        stored, err = store.BookingByID(ctx, pendingBooking.ID)
        require.NoError(t, err)
        assert.Equal(t, model.StatusPending, stored.Status)
    })

    t.Run("future dates are never touched", func(t *testing.T) {
        // even well past the daily start time on the sweep day
        clock.set(time.Date(2026, 3, 14, 21, 0, 0, 0, time.Local))
        marked, err := engine.Sweep(ctx)
        require.NoError(t, err)
        assert.Zero(t, marked)

        stored, err := store.BookingByID(ctx, futureBooking.ID)
        require.NoError(t, err)
        assert.Equal(t, model.StatusApproved, stored.Status)
    })

    t.Run("sweep is idempotent", func(t *testing.T) {
        clock.set(time.Date(2026, 3, 14, 10, 0, 0, 0, time.Local))
        marked, err := engine.Sweep(ctx)
        require.NoError(t, err)
        assert.Zero(t, marked)
    })
}

// decisionRacer wraps the fake store and slips a competing approval in
// between the engine's read of the booking and its conditional update,
// reproducing two admins deciding the same booking at once.
type decisionRacer struct {
    *fakeStore
    rivalCode string
    once      sync.Once
}

func (s *decisionRacer) UpdateDecision(ctx context.Context, id uint64, from, to model.BookingStatus, accessCode *string) (bool, error) {
    s.once.Do(func() {
        code := s.rivalCode
        _, _ = s.fakeStore.UpdateDecision(ctx, id, from, model.StatusApproved, &code)
    })
    return s.fakeStore.UpdateDecision(ctx, id, from, to, accessCode)
}

func TestDecideRaceReportsStoredCode(t *testing.T) {
    store := &decisionRacer{fakeStore: newFakeStore(testFacility()), rivalCode: "3D7F2C"}
    notifier := &recordingNotifier{}
    engine := NewEngine(store, notifier, &fixedClock{now: time.Date(2026, 3, 13, 9, 0, 0, 0, time.Local)}, Config{GraceMinutes: 15, AdminEmail: "admin@example.com"})
    ctx := context.Background()

    b, err := engine.Create(ctx, validRequest())
    require.NoError(t, err)
    sentBefore := notifier.count()

    // This call loses the race: the rival approval lands first and its
    // code is the one persisted.
    got, err := engine.Decide(ctx, b.ID, ActionApprove)
    require.NoError(t, err)
    assert.Equal(t, model.StatusApproved, got.Status)
    require.NotNil(t, got.AccessCode)
    assert.Equal(t, "3D7F2C", *got.AccessCode, "the loser must report the stored code, not a fresh unstored one")

    stored, err := store.BookingByID(ctx, b.ID)
    require.NoError(t, err)
    require.NotNil(t, stored.AccessCode)
    assert.Equal(t, "3D7F2C", *stored.AccessCode)

    assert.Equal(t, sentBefore, notifier.count(), "the losing decision must not mail anyone")

    t.Run("check-in accepts the stored code", func(t *testing.T) {
        _, err := engine.CheckIn(ctx, b.ID, *got.AccessCode)
        assert.NoError(t, err)
    })
}

func TestConcurrentCreatesNeverOverlap(t *testing.T) {
    engine, store, _, _ := newTestEngine(t)
    ctx := context.Background()

    const workers = 8
    var wg sync.WaitGroup
    for w := 0; w < workers; w++ {
        wg.Add(1)
        go func(w int) {
            defer wg.Done()
            for i := 0; i < 25; i++ {
                req := validRequest()
                req.UserEmail = fmt.Sprintf("user%d@example.com", w)
                start := OpenMinute + (i*37+w*11)%780
                req.StartTime = FormatTimeOfDay(start)
                req.EndTime = FormatTimeOfDay(start + 30 + w)
                // conflicts are expected and fine; overlap in the
                // surviving rows is not
                _, _ = engine.Create(ctx, req)
            }
        }(w)
    }
    wg.Wait()

    all, err := store.AllBookings(ctx)
    require.NoError(t, err)
    require.NotEmpty(t, all)

    for i := range all {
        for j := i + 1; j < len(all); j++ {
            a, b := all[i], all[j]
            if !a.Active() || !b.Active() || a.FacilityCode != b.FacilityCode || a.Date != b.Date {
                continue
            }
            as, err := ParseTimeOfDay(a.StartTime)
            require.NoError(t, err)
            ae, err := ParseTimeOfDay(a.EndTime)
            require.NoError(t, err)
            bs, err := ParseTimeOfDay(b.StartTime)
            require.NoError(t, err)
            be, err := ParseTimeOfDay(b.EndTime)
            require.NoError(t, err)
            assert.False(t, Overlaps(as, ae, bs, be),
                "bookings %d (%s-%s) and %d (%s-%s) overlap",
                a.ID, a.StartTime, a.EndTime, b.ID, b.StartTime, b.EndTime)
        }
    }
}

func TestCheckAvailabilityThroughEngine(t *testing.T) {
    engine, _, _, _ := newTestEngine(t)
    ctx := context.Background()

    _, err := engine.CheckAvailability(ctx, "MR-1", "bogus")
    assert.ErrorIs(t, err, ErrValidation)

    _, err = engine.CheckAvailability(ctx, "MR-99", "2026-03-14")
    assert.ErrorIs(t, err, ErrNotFound)

    b, err := engine.Create(ctx, validRequest())
    require.NoError(t, err)

    av, err := engine.CheckAvailability(ctx, "MR-1", "2026-03-14")
    require.NoError(t, err)
    require.Len(t, av.Unavailable, 1)
    assert.Equal(t, model.StatusPending, av.Unavailable[0].Status)

    // cancelled bookings disappear from the report
    _, err = engine.Cancel(ctx, b.ID, b.UserEmail)
    require.NoError(t, err)
    av, err = engine.CheckAvailability(ctx, "MR-1", "2026-03-14")
    require.NoError(t, err)
    assert.Empty(t, av.Unavailable)
}
