package repository

import (
    "context"
    "database/sql"

    "github.com/smartaccess/facility-booking/internal/model"
)

// FacilityRepo provides read access to the facility catalog and the
// one-time seeding operation.  Facilities are immutable after seeding;
// there are deliberately no update or delete methods.
type FacilityRepo struct {
    db *sql.DB
}

// NewFacilityRepo returns a FacilityRepo bound to the given database.
func NewFacilityRepo(db *sql.DB) *FacilityRepo { return &FacilityRepo{db: db} }

// scanFacility reads one facilities row from a row scanner.
func scanFacility(sc interface{ Scan(...any) error }) (*model.Facility, error) {
    var f model.Facility
    var location sql.NullString
    var capacity sql.NullInt64
    err := sc.Scan(&f.ID, &f.Code, &f.Name, &f.Type, &location, &capacity, &f.IsActive, &f.CreatedAt)
    if err != nil {
        return nil, err
    }
    if location.Valid {
        l := location.String
        f.Location = &l
    }
    if capacity.Valid {
        c := uint32(capacity.Int64)
        f.Capacity = &c
    }
    return &f, nil
}

// List returns the whole catalog ordered by ID.
func (r *FacilityRepo) List(ctx context.Context) ([]model.Facility, error) {
    const q = `SELECT id, code, name, type, location, capacity, is_active, created_at
               FROM facilities ORDER BY id`
    rows, err := r.db.QueryContext(ctx, q)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Facility, 0)
    for rows.Next() {
        f, err := scanFacility(rows)
        if err != nil {
            return nil, err
        }
        out = append(out, *f)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

// Seed inserts the given facilities when the table is empty and reports
// how many rows were inserted.  A non-empty table makes Seed a no-op
// returning zero, so the endpoint can be called repeatedly without
// duplicating the catalog.  The count check and the inserts share one
// transaction.
func (r *FacilityRepo) Seed(ctx context.Context, items []model.Facility) (int, error) {
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return 0, err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    var count int
    if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM facilities`).Scan(&count); err != nil {
        return 0, err
    }
    if count > 0 {
        return 0, nil
    }

    const ins = `INSERT INTO facilities (code, name, type, location, capacity, is_active)
                 VALUES (?, ?, ?, ?, ?, ?)`
    inserted := 0
    for _, f := range items {
        var capacity sql.NullInt64
        if f.Capacity != nil {
            capacity = sql.NullInt64{Int64: int64(*f.Capacity), Valid: true}
        }
        if _, err := tx.ExecContext(ctx, ins, f.Code, f.Name, f.Type, nullString(f.Location), capacity, f.IsActive); err != nil {
            return 0, err
        }
        inserted++
    }
    if err := tx.Commit(); err != nil {
        return 0, err
    }
    committed = true
    return inserted, nil
}
