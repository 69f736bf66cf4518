// Package department manages the department reference table. Departments are
// referenced, not owned, by employees: deleting one sets department_id null.
package department

import (
	"context"
	"fmt"

	"hrsystem/internal/store"
)

// Repository persists departments in Postgres.
type Repository struct {
	db store.DB
}

// NewRepository creates a repo over the shared pool.
func NewRepository(db store.DB) *Repository {
	return &Repository{db: db}
}

// ListNames returns department names ordered alphabetically. On a legacy
// database without the departments table it falls back to the distinct values
// of the old employees.department text column.
func (r *Repository) ListNames(ctx context.Context) ([]string, error) {
	names, err := r.queryNames(ctx, `SELECT name FROM departments ORDER BY name`)
	if err == nil {
		return names, nil
	}
	if !store.IsUndefinedTable(err) {
		return nil, err
	}
	return r.queryNames(ctx, `
		SELECT DISTINCT department FROM employees
		WHERE department IS NOT NULL AND department <> ''
		ORDER BY department
	`)
}

func (r *Repository) queryNames(ctx context.Context, sql string) ([]string, error) {
	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Resolve maps a department name to its id.
func (r *Repository) Resolve(ctx context.Context, name string) (int, error) {
	var id int
	err := r.db.QueryRow(ctx, `SELECT id FROM departments WHERE name = $1`, name).Scan(&id)
	if err != nil {
		if store.IsNoRows(err) {
			return 0, fmt.Errorf("department not found: %w", store.ErrNotFound)
		}
		return 0, err
	}
	return id, nil
}

// Create inserts a new department and returns its id.
func (r *Repository) Create(ctx context.Context, name string) (int, error) {
	var id int
	err := r.db.QueryRow(ctx, `INSERT INTO departments (name) VALUES ($1) RETURNING id`, name).Scan(&id)
	if err != nil {
		if store.IsUniqueViolation(err) {
			return 0, fmt.Errorf("department already exists: %w", store.ErrConflict)
		}
		return 0, err
	}
	return id, nil
}
