// Package report provides the read-only aggregation endpoints. Reports only
// join and filter; they never mutate state.
package report

import (
	"context"

	"hrsystem/internal/store"
)

// AttendanceRow is one line of the attendance report.
type AttendanceRow struct {
	Fullname     string  `json:"fullname"`
	Date         string  `json:"date"`
	CheckinTime  *string `json:"checkin_time"`
	CheckoutTime *string `json:"checkout_time"`
	Location     *string `json:"location,omitempty"`
}

// LeaveRow is one line of the leave report.
type LeaveRow struct {
	Fullname  string `json:"fullname"`
	LeaveType string `json:"leave_type"`
	DateFrom  string `json:"date_from"`
	DateTo    string `json:"date_to"`
	Status    string `json:"status"`
}

// PayrollRow is one line of the payroll report.
type PayrollRow struct {
	Fullname   string  `json:"fullname"`
	Month      string  `json:"month"`
	BaseSalary float64 `json:"base_salary"`
	Deductions float64 `json:"deductions"`
	NetSalary  float64 `json:"net_salary"`
}

// Repository runs the report queries.
type Repository struct {
	db store.DB
}

// NewRepository creates a repo over the shared pool.
func NewRepository(db store.DB) *Repository {
	return &Repository{db: db}
}

// Attendance returns attendance rows with dates in [from, to], newest first.
func (r *Repository) Attendance(ctx context.Context, from, to string) ([]AttendanceRow, error) {
	rows, err := r.db.Query(ctx, `
		SELECT e.fullname, to_char(a.date, 'YYYY-MM-DD'), a.checkin_time::text, a.checkout_time::text, a.location
		FROM attendance a
		JOIN employees e ON a.employee_id = e.id
		WHERE a.date BETWEEN $1 AND $2
		ORDER BY a.date DESC
	`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []AttendanceRow
	for rows.Next() {
		var row AttendanceRow
		if err := rows.Scan(&row.Fullname, &row.Date, &row.CheckinTime, &row.CheckoutTime, &row.Location); err != nil {
			return nil, err
		}
		res = append(res, row)
	}
	return res, rows.Err()
}

// Leave returns leave requests fully inside [from, to], newest first.
func (r *Repository) Leave(ctx context.Context, from, to string) ([]LeaveRow, error) {
	rows, err := r.db.Query(ctx, `
		SELECT e.fullname, lr.leave_type, to_char(lr.date_from, 'YYYY-MM-DD'), to_char(lr.date_to, 'YYYY-MM-DD'), lr.status
		FROM leave_requests lr
		JOIN employees e ON lr.employee_id = e.id
		WHERE lr.date_from >= $1 AND lr.date_to <= $2
		ORDER BY lr.date_from DESC
	`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []LeaveRow
	for rows.Next() {
		var row LeaveRow
		if err := rows.Scan(&row.Fullname, &row.LeaveType, &row.DateFrom, &row.DateTo, &row.Status); err != nil {
			return nil, err
		}
		res = append(res, row)
	}
	return res, rows.Err()
}

// Payroll returns payroll rows with month in [from, to]. Months are 'YYYY-MM'
// strings so the range compares lexicographically.
func (r *Repository) Payroll(ctx context.Context, from, to string) ([]PayrollRow, error) {
	rows, err := r.db.Query(ctx, `
		SELECT e.fullname, p.month, p.base_salary, p.deductions, p.net_salary
		FROM payroll p
		JOIN employees e ON p.employee_id = e.id
		WHERE p.month BETWEEN $1 AND $2
		ORDER BY p.month DESC
	`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []PayrollRow
	for rows.Next() {
		var row PayrollRow
		if err := rows.Scan(&row.Fullname, &row.Month, &row.BaseSalary, &row.Deductions, &row.NetSalary); err != nil {
			return nil, err
		}
		res = append(res, row)
	}
	return res, rows.Err()
}
