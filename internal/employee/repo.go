package employee

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"hrsystem/internal/store"
)

// Repository persists employee records in Postgres.
type Repository struct {
	db store.DB
}

// NewRepository creates a repo over the shared pool.
func NewRepository(db store.DB) *Repository {
	return &Repository{db: db}
}

const employeeColumns = `
	e.id, e.fullname, e.first_name, e.last_name, e.nickname, e.email, e.phone,
	e.username, e.password, d.name,
	e.position, to_char(e.start_date, 'YYYY-MM-DD'), to_char(e.date_of_birth, 'YYYY-MM-DD'),
	e.address, e.emergency_contact_name, e.emergency_contact_relationship, e.emergency_contact_phone,
	e.role, e.status, e.created_at`

const employeeFrom = `
	FROM employees e
	LEFT JOIN departments d ON e.department_id = d.id`

func scanEmployee(row interface{ Scan(dest ...any) error }) (Employee, error) {
	var e Employee
	err := row.Scan(
		&e.ID, &e.Fullname, &e.FirstName, &e.LastName, &e.Nickname, &e.Email, &e.Phone,
		&e.Username, &e.PasswordHash, &e.Department,
		&e.Position, &e.StartDate, &e.DateOfBirth,
		&e.Address, &e.EmergencyContactName, &e.EmergencyContactRelationship, &e.EmergencyContactPhone,
		&e.Role, &e.Status, &e.CreatedAt,
	)
	return e, err
}

// GetByID returns one employee with its department name resolved.
func (r *Repository) GetByID(ctx context.Context, id int) (Employee, error) {
	row := r.db.QueryRow(ctx, `SELECT`+employeeColumns+employeeFrom+` WHERE e.id = $1`, id)
	e, err := scanEmployee(row)
	if err != nil {
		if store.IsNoRows(err) {
			return Employee{}, store.ErrNotFound
		}
		return Employee{}, err
	}
	return e, nil
}

// GetByUsername returns the employee for login. The password hash is
// populated; callers must not serialize the result directly.
func (r *Repository) GetByUsername(ctx context.Context, username string) (Employee, error) {
	row := r.db.QueryRow(ctx, `SELECT`+employeeColumns+employeeFrom+` WHERE e.username = $1`, username)
	e, err := scanEmployee(row)
	if err != nil {
		if store.IsNoRows(err) {
			return Employee{}, store.ErrNotFound
		}
		return Employee{}, err
	}
	return e, nil
}

// ListActive returns active employees with resolved department names.
func (r *Repository) ListActive(ctx context.Context) ([]Employee, error) {
	rows, err := r.db.Query(ctx, `SELECT`+employeeColumns+employeeFrom+` WHERE e.status = $1 ORDER BY e.fullname`, StatusActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, e)
	}
	return res, rows.Err()
}

// Create inserts a new employee and returns its id. A duplicate username or
// email maps to ErrConflict with the offending field named.
func (r *Repository) Create(ctx context.Context, in NewEmployee) (int, error) {
	var id int
	err := r.db.QueryRow(ctx, `
		INSERT INTO employees (fullname, first_name, last_name, nickname, email, phone, username, password, department_id, position, start_date, role, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id
	`, in.Fullname, in.FirstName, in.LastName, in.Nickname, in.Email, in.Phone, in.Username,
		in.PasswordHash, in.DepartmentID, in.Position, in.StartDate, in.Role, in.Status).Scan(&id)
	if err != nil {
		if store.IsUniqueViolation(err) {
			return 0, fmt.Errorf("%s already exists: %w", violatedField(err), store.ErrConflict)
		}
		return 0, err
	}
	return id, nil
}

func violatedField(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && strings.Contains(pgErr.ConstraintName, "email") {
		return "Email"
	}
	return "Username"
}

// ApplyUpdate performs a partial update: nil fields coalesce to the stored
// value, mirroring the write path the clients rely on for self-edits.
func (r *Repository) ApplyUpdate(ctx context.Context, id int, u Update) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE employees SET
			fullname   = COALESCE($2, fullname),
			first_name = COALESCE($3, first_name),
			last_name  = COALESCE($4, last_name),
			nickname   = COALESCE($5, nickname),
			email      = COALESCE($6, email),
			phone      = COALESCE($7, phone),
			position   = COALESCE($8, position),
			date_of_birth = COALESCE($9::date, date_of_birth),
			address    = COALESCE($10, address),
			emergency_contact_name         = COALESCE($11, emergency_contact_name),
			emergency_contact_relationship = COALESCE($12, emergency_contact_relationship),
			emergency_contact_phone        = COALESCE($13, emergency_contact_phone),
			start_date = COALESCE($14::date, start_date),
			role       = COALESCE($15, role),
			status     = COALESCE($16, status),
			department_id = CASE WHEN $17::boolean THEN $18 ELSE department_id END,
			updated_at = now()
		WHERE id = $1
	`, id, u.Fullname, u.FirstName, u.LastName, u.Nickname, u.Email, u.Phone, u.Position,
		u.DateOfBirth, u.Address, u.EmergencyContactName, u.EmergencyContactRelationship,
		u.EmergencyContactPhone, u.StartDate, u.Role, u.Status, u.SetDepartment, u.DepartmentID)
	if err != nil {
		if store.IsUniqueViolation(err) {
			return fmt.Errorf("%s already exists: %w", violatedField(err), store.ErrConflict)
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

// Delete hard-deletes an employee.
func (r *Repository) Delete(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}
