// Package leave manages leave requests. Every request starts pending; only
// the approval endpoint moves it to another status.
package leave

import (
	"context"
	"fmt"
	"time"

	"hrsystem/internal/store"
)

// Leave statuses.
const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusCancelled = "cancelled"
)

// ValidDecision reports whether status is an allowed approval outcome.
func ValidDecision(status string) bool {
	switch status {
	case StatusApproved, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

// Request is one leave request.
type Request struct {
	ID         int        `json:"id"`
	EmployeeID int        `json:"employee_id"`
	DateFrom   string     `json:"date_from"`
	DateTo     string     `json:"date_to"`
	LeaveType  string     `json:"leave_type"`
	Reason     *string    `json:"reason,omitempty"`
	Status     string     `json:"status"`
	ApprovedBy *int       `json:"approved_by,omitempty"`
	ApprovedAt *time.Time `json:"approved_at,omitempty"`
	Notes      *string    `json:"notes,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// Repository persists leave requests in Postgres.
type Repository struct {
	db store.DB
}

// NewRepository creates a repo over the shared pool.
func NewRepository(db store.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a request with status pending. There is deliberately no
// overlap check against existing approved leave.
func (r *Repository) Create(ctx context.Context, req Request) (int, error) {
	var id int
	err := r.db.QueryRow(ctx, `
		INSERT INTO leave_requests (employee_id, date_from, date_to, leave_type, reason, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, req.EmployeeID, req.DateFrom, req.DateTo, req.LeaveType, req.Reason, StatusPending).Scan(&id)
	if err != nil {
		if store.IsForeignKeyViolation(err) {
			return 0, fmt.Errorf("employee not found: %w", store.ErrInvalid)
		}
		return 0, err
	}
	return id, nil
}

// Approve sets the decision, recording who decided and when.
func (r *Repository) Approve(ctx context.Context, id int, status string, approverID int, notes *string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE leave_requests
		SET status = $2, approved_by = $3, approved_at = now(), notes = $4
		WHERE id = $1
	`, id, status, approverID, notes)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

// List returns requests, optionally scoped to one employee, newest first.
func (r *Repository) List(ctx context.Context, employeeID *int) ([]Request, error) {
	query := `
		SELECT id, employee_id, to_char(date_from, 'YYYY-MM-DD'), to_char(date_to, 'YYYY-MM-DD'),
		       leave_type, reason, status, approved_by, approved_at, notes, created_at
		FROM leave_requests`
	args := []any{}
	if employeeID != nil {
		query += " WHERE employee_id = $1"
		args = append(args, *employeeID)
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []Request
	for rows.Next() {
		var req Request
		if err := rows.Scan(&req.ID, &req.EmployeeID, &req.DateFrom, &req.DateTo, &req.LeaveType,
			&req.Reason, &req.Status, &req.ApprovedBy, &req.ApprovedAt, &req.Notes, &req.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, req)
	}
	return res, rows.Err()
}
