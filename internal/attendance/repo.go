// Package attendance records daily presence. One row exists per employee per
// day; check-in and check-out fill it in progressively and never unset a time.
package attendance

import (
	"context"
	"fmt"
	"time"

	"hrsystem/internal/store"
)

// Record is one employee-day of attendance. Photo blobs are write-only at the
// API level and never included in list responses.
type Record struct {
	ID           int       `json:"id"`
	EmployeeID   int       `json:"employee_id"`
	Date         string    `json:"date"`
	CheckinTime  *string   `json:"checkin_time"`
	CheckoutTime *string   `json:"checkout_time"`
	Location     *string   `json:"location,omitempty"`
	EmployeeName *string   `json:"employee_name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Upsert carries a check-in or check-out write.
type Upsert struct {
	EmployeeID    int
	Date          string
	CheckinTime   *string
	CheckoutTime  *string
	Location      *string
	CheckinPhoto  []byte
	CheckoutPhoto []byte
}

// Filter narrows a listing. Date wins over the range when both are set.
type Filter struct {
	EmployeeID *int
	Date       string
	StartDate  string
	EndDate    string
}

// Repository persists attendance in Postgres.
type Repository struct {
	db store.DB
}

// NewRepository creates a repo over the shared pool.
func NewRepository(db store.DB) *Repository {
	return &Repository{db: db}
}

// Record upserts the (employee, date) row. Each non-null incoming field merges
// over the stored one via COALESCE, so check-in and check-out calls are
// idempotent and order-independent: neither ever clobbers a time the other
// already wrote. The unique constraint is the concurrency guard.
func (r *Repository) Record(ctx context.Context, u Upsert) (int, error) {
	var id int
	err := r.db.QueryRow(ctx, `
		INSERT INTO attendance (employee_id, date, checkin_time, checkout_time, location, checkin_photo, checkout_photo)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (employee_id, date) DO UPDATE SET
			checkin_time   = COALESCE(EXCLUDED.checkin_time, attendance.checkin_time),
			checkout_time  = COALESCE(EXCLUDED.checkout_time, attendance.checkout_time),
			location       = COALESCE(EXCLUDED.location, attendance.location),
			checkin_photo  = COALESCE(EXCLUDED.checkin_photo, attendance.checkin_photo),
			checkout_photo = COALESCE(EXCLUDED.checkout_photo, attendance.checkout_photo),
			updated_at     = now()
		RETURNING id
	`, u.EmployeeID, u.Date, u.CheckinTime, u.CheckoutTime, u.Location, u.CheckinPhoto, u.CheckoutPhoto).Scan(&id)
	if err != nil {
		if store.IsForeignKeyViolation(err) {
			return 0, fmt.Errorf("employee not found: %w", store.ErrInvalid)
		}
		return 0, err
	}
	return id, nil
}

// SetCheckout sets the checkout time on an existing row.
func (r *Repository) SetCheckout(ctx context.Context, id int, checkoutTime string) error {
	tag, err := r.db.Exec(ctx, `UPDATE attendance SET checkout_time = $2, updated_at = now() WHERE id = $1`, id, checkoutTime)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

// List returns attendance rows matching the filter, newest date first.
func (r *Repository) List(ctx context.Context, f Filter) ([]Record, error) {
	query := `
		SELECT a.id, a.employee_id, to_char(a.date, 'YYYY-MM-DD'),
		       a.checkin_time::text, a.checkout_time::text, a.location, e.fullname, a.created_at
		FROM attendance a
		LEFT JOIN employees e ON a.employee_id = e.id`
	args := []any{}
	clauses := []string{}

	if f.EmployeeID != nil {
		args = append(args, *f.EmployeeID)
		clauses = append(clauses, fmt.Sprintf("a.employee_id = $%d", len(args)))
	}
	if f.Date != "" {
		args = append(args, f.Date)
		clauses = append(clauses, fmt.Sprintf("a.date = $%d", len(args)))
	} else if f.StartDate != "" && f.EndDate != "" {
		args = append(args, f.StartDate, f.EndDate)
		clauses = append(clauses, fmt.Sprintf("a.date BETWEEN $%d AND $%d", len(args)-1, len(args)))
	}

	for i, clause := range clauses {
		if i == 0 {
			query += " WHERE " + clause
		} else {
			query += " AND " + clause
		}
	}
	query += " ORDER BY a.date DESC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.EmployeeID, &rec.Date, &rec.CheckinTime, &rec.CheckoutTime,
			&rec.Location, &rec.EmployeeName, &rec.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, rec)
	}
	return res, rows.Err()
}
