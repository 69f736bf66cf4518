package store

import (
	"context"

	"github.com/sirupsen/logrus"

	"hrsystem/internal/auth"
)

var defaultDepartments = []string{
	"Admin", "Human Resources", "Sales", "Marketing", "IT", "Finance", "Operations",
}

type seedUser struct {
	fullname   string
	firstName  string
	lastName   string
	email      string
	username   string
	password   string
	department string
	position   string
	role       auth.Role
}

var defaultUsers = []seedUser{
	{"Administrator", "Admin", "", "admin@example.com", "admin", "admin123", "Admin", "System Admin", auth.RoleAdmin},
	{"HR Manager", "HR", "Manager", "hr@example.com", "hrmanager", "hr123", "Human Resources", "HR Manager", auth.RoleHR},
}

// Seed inserts the default departments and bootstrap users. Idempotent: a
// duplicate department is ignored, an existing user only gets its password
// reset to the default. Unlike runtime resource creation, duplicates here are
// success, not conflict.
func Seed(ctx context.Context, db DB) error {
	for _, name := range defaultDepartments {
		if _, err := db.Exec(ctx, `
			INSERT INTO departments (name) VALUES ($1)
			ON CONFLICT (name) DO NOTHING
		`, name); err != nil {
			return err
		}
	}

	for _, u := range defaultUsers {
		hash, err := auth.HashPassword(u.password)
		if err != nil {
			return err
		}
		if _, err := db.Exec(ctx, `
			INSERT INTO employees (fullname, first_name, last_name, email, username, password, department_id, position, role, status, start_date)
			VALUES ($1, $2, $3, $4, $5, $6, (SELECT id FROM departments WHERE name = $7), $8, $9, 'active', CURRENT_DATE)
			ON CONFLICT (username) DO UPDATE SET password = EXCLUDED.password
		`, u.fullname, u.firstName, u.lastName, u.email, u.username, hash, u.department, u.position, u.role); err != nil {
			return err
		}
	}

	logrus.WithField("departments", len(defaultDepartments)).Info("default data seeded")
	return nil
}
