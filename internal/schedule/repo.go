package schedule

import (
	"context"
	"fmt"

	"hrsystem/internal/store"
)

// Repository persists shift templates, assignments and holidays in Postgres.
type Repository struct {
	db store.DB
}

// NewRepository creates a repo over the shared pool.
func NewRepository(db store.DB) *Repository {
	return &Repository{db: db}
}

// ---------- Templates ----------

// ListActiveTemplates returns active templates for dropdowns, ordered by name.
func (r *Repository) ListActiveTemplates(ctx context.Context) ([]Template, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, shift_name, shift_start::text, shift_end::text, break_start::text, break_end::text, description, is_active
		FROM shifts
		WHERE is_active
		ORDER BY shift_name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []Template
	for rows.Next() {
		var t Template
		if err := rows.Scan(&t.ID, &t.ShiftName, &t.ShiftStart, &t.ShiftEnd, &t.BreakStart, &t.BreakEnd, &t.Description, &t.IsActive); err != nil {
			return nil, err
		}
		res = append(res, t)
	}
	return res, rows.Err()
}

// CreateTemplate inserts a template, created active.
func (r *Repository) CreateTemplate(ctx context.Context, t Template) (int, error) {
	var id int
	err := r.db.QueryRow(ctx, `
		INSERT INTO shifts (shift_name, shift_start, shift_end, break_start, break_end, description, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, TRUE)
		RETURNING id
	`, t.ShiftName, t.ShiftStart, t.ShiftEnd, t.BreakStart, t.BreakEnd, t.Description).Scan(&id)
	return id, err
}

// UpdateTemplate replaces all template fields including is_active.
func (r *Repository) UpdateTemplate(ctx context.Context, id int, t Template) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE shifts
		SET shift_name = $2, shift_start = $3, shift_end = $4, break_start = $5, break_end = $6, description = $7, is_active = $8, updated_at = now()
		WHERE id = $1
	`, id, t.ShiftName, t.ShiftStart, t.ShiftEnd, t.BreakStart, t.BreakEnd, t.Description, t.IsActive)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

// DeleteTemplate removes a template. Templates referenced by assignments are
// protected by the RESTRICT foreign key and map to ErrInUse.
func (r *Repository) DeleteTemplate(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM shifts WHERE id = $1`, id)
	if err != nil {
		if store.IsForeignKeyViolation(err) {
			return fmt.Errorf("shift template is assigned to employees: %w", store.ErrInUse)
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

// ---------- Assignments ----------

const assignmentSelect = `
	SELECT ws.id, ws.employee_id, ws.shift_id,
	       to_char(ws.start_date, 'YYYY-MM-DD'), to_char(ws.end_date, 'YYYY-MM-DD'), ws.note,
	       s.shift_name, s.shift_start::text, s.shift_end::text,
	       e.fullname, d.name
	FROM working_shifts ws
	LEFT JOIN shifts s ON ws.shift_id = s.id
	LEFT JOIN employees e ON ws.employee_id = e.id
	LEFT JOIN departments d ON e.department_id = d.id`

// ListAssignments returns assignments matching the filter, newest range first.
// Date bounds use interval overlap: start_date <= end AND end_date >= start.
func (r *Repository) ListAssignments(ctx context.Context, f AssignmentFilter) ([]Assignment, error) {
	query := assignmentSelect
	args := []any{}
	clauses := []string{}

	if f.EmployeeID != nil {
		args = append(args, *f.EmployeeID)
		clauses = append(clauses, fmt.Sprintf("ws.employee_id = $%d", len(args)))
	}
	if f.StartDate != "" && f.EndDate != "" {
		args = append(args, f.EndDate, f.StartDate)
		clauses = append(clauses, fmt.Sprintf("ws.start_date <= $%d AND ws.end_date >= $%d", len(args)-1, len(args)))
	} else if f.StartDate != "" {
		args = append(args, f.StartDate)
		clauses = append(clauses, fmt.Sprintf("ws.end_date >= $%d", len(args)))
	} else if f.EndDate != "" {
		args = append(args, f.EndDate)
		clauses = append(clauses, fmt.Sprintf("ws.start_date <= $%d", len(args)))
	}

	for i, clause := range clauses {
		if i == 0 {
			query += " WHERE " + clause
		} else {
			query += " AND " + clause
		}
	}
	query += " ORDER BY ws.start_date DESC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []Assignment
	for rows.Next() {
		var a Assignment
		if err := rows.Scan(&a.ID, &a.EmployeeID, &a.ShiftID, &a.StartDate, &a.EndDate, &a.Note,
			&a.ShiftName, &a.ShiftStart, &a.ShiftEnd, &a.EmployeeName, &a.Team); err != nil {
			return nil, err
		}
		res = append(res, a)
	}
	return res, rows.Err()
}

// CreateAssignment inserts an assignment and, when holidays is non-nil, its
// day-off set, in a single transaction. A failure partway rolls everything
// back so no assignment exists without its days off.
func (r *Repository) CreateAssignment(ctx context.Context, a Assignment, holidays []int) (int, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	var id int
	err = tx.QueryRow(ctx, `
		INSERT INTO working_shifts (employee_id, shift_id, start_date, end_date, note)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, a.EmployeeID, a.ShiftID, a.StartDate, a.EndDate, a.Note).Scan(&id)
	if err != nil {
		if store.IsForeignKeyViolation(err) {
			return 0, fmt.Errorf("employee or shift template not found: %w", store.ErrInvalid)
		}
		return 0, err
	}

	if err := insertHolidays(ctx, tx, id, a.EmployeeID, holidays); err != nil {
		return 0, err
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return id, nil
}

// UpdateAssignment rewrites an assignment. When replaceHolidays is set the
// existing day-off rows are deleted and the supplied set inserted, all in the
// same transaction.
func (r *Repository) UpdateAssignment(ctx context.Context, id int, a Assignment, holidays []int, replaceHolidays bool) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		UPDATE working_shifts
		SET employee_id = $2, shift_id = $3, start_date = $4, end_date = $5, note = $6, updated_at = now()
		WHERE id = $1
	`, id, a.EmployeeID, a.ShiftID, a.StartDate, a.EndDate, a.Note)
	if err != nil {
		if store.IsForeignKeyViolation(err) {
			return fmt.Errorf("employee or shift template not found: %w", store.ErrInvalid)
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}

	if replaceHolidays {
		if _, err := tx.Exec(ctx, `DELETE FROM holidays WHERE working_shift_id = $1`, id); err != nil {
			return err
		}
		if err := insertHolidays(ctx, tx, id, a.EmployeeID, holidays); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func insertHolidays(ctx context.Context, q store.Queryer, workingShiftID, employeeID int, weekDays []int) error {
	for _, day := range weekDays {
		if day < 0 || day > 6 {
			return fmt.Errorf("week_day %d out of range: %w", day, store.ErrInvalid)
		}
		// ON CONFLICT absorbs duplicate weekday indices in the request.
		if _, err := q.Exec(ctx, `
			INSERT INTO holidays (working_shift_id, employee_id, week_day, day_name)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (working_shift_id, week_day) DO NOTHING
		`, workingShiftID, employeeID, day, DayName(day)); err != nil {
			return err
		}
	}
	return nil
}

// DeleteAssignment removes an assignment; its holidays cascade.
func (r *Repository) DeleteAssignment(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM working_shifts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

// ---------- Holidays ----------

// HolidayFilter narrows a holiday listing. WorkingShiftID wins over
// EmployeeID when both are set.
type HolidayFilter struct {
	WorkingShiftID *int
	EmployeeID     *int
}

// ListHolidays returns day-off rows with the template name joined in.
func (r *Repository) ListHolidays(ctx context.Context, f HolidayFilter) ([]Holiday, error) {
	query := `
		SELECT h.id, h.working_shift_id, h.employee_id, h.week_day, h.day_name, s.shift_name
		FROM holidays h
		LEFT JOIN working_shifts ws ON h.working_shift_id = ws.id
		LEFT JOIN shifts s ON ws.shift_id = s.id`
	args := []any{}

	if f.WorkingShiftID != nil {
		args = append(args, *f.WorkingShiftID)
		query += fmt.Sprintf(" WHERE h.working_shift_id = $%d", len(args))
	} else if f.EmployeeID != nil {
		args = append(args, *f.EmployeeID)
		query += fmt.Sprintf(" WHERE h.employee_id = $%d", len(args))
	}
	query += " ORDER BY h.working_shift_id DESC, h.week_day ASC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []Holiday
	for rows.Next() {
		var h Holiday
		if err := rows.Scan(&h.ID, &h.WorkingShiftID, &h.EmployeeID, &h.WeekDay, &h.DayName, &h.ShiftName); err != nil {
			return nil, err
		}
		res = append(res, h)
	}
	return res, rows.Err()
}

// CreateHoliday adds one day off to an assignment. A duplicate weekday for the
// same assignment maps to ErrConflict.
func (r *Repository) CreateHoliday(ctx context.Context, h Holiday) (int, error) {
	var id int
	err := r.db.QueryRow(ctx, `
		INSERT INTO holidays (working_shift_id, employee_id, week_day, day_name)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, h.WorkingShiftID, h.EmployeeID, h.WeekDay, DayName(h.WeekDay)).Scan(&id)
	if err != nil {
		if store.IsUniqueViolation(err) {
			return 0, fmt.Errorf("holiday already exists for this working shift on this day: %w", store.ErrConflict)
		}
		if store.IsForeignKeyViolation(err) {
			return 0, fmt.Errorf("working shift or employee not found: %w", store.ErrInvalid)
		}
		return 0, err
	}
	return id, nil
}

// DeleteHoliday removes one day-off row.
func (r *Repository) DeleteHoliday(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM holidays WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}
