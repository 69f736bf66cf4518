package employee

import (
	"time"

	"hrsystem/internal/auth"
)

// Employee is an employee record. The stored bcrypt hash never serializes:
// list and get responses must not leak credential material.
type Employee struct {
	ID           int         `json:"id"`
	Fullname     string      `json:"fullname"`
	FirstName    *string     `json:"first_name,omitempty"`
	LastName     *string     `json:"last_name,omitempty"`
	Nickname     *string     `json:"nickname,omitempty"`
	Email        string      `json:"email"`
	Phone        *string     `json:"phone,omitempty"`
	Username     string      `json:"username"`
	PasswordHash string      `json:"-"`
	Department   *string     `json:"department,omitempty"`
	Position     *string     `json:"position,omitempty"`
	StartDate    *string     `json:"start_date,omitempty"`
	DateOfBirth  *string     `json:"date_of_birth,omitempty"`
	Address      *string     `json:"address,omitempty"`
	EmergencyContactName         *string `json:"emergency_contact_name,omitempty"`
	EmergencyContactRelationship *string `json:"emergency_contact_relationship,omitempty"`
	EmergencyContactPhone        *string `json:"emergency_contact_phone,omitempty"`
	Role         auth.Role   `json:"role"`
	Status       string      `json:"status"`
	CreatedAt    time.Time   `json:"created_at"`
}

// Employment statuses.
const (
	StatusActive     = "active"
	StatusInactive   = "inactive"
	StatusTerminated = "terminated"
)

// NewEmployee carries the fields for an insert.
type NewEmployee struct {
	Fullname     string
	FirstName    string
	LastName     string
	Nickname     *string
	Email        string
	Phone        *string
	Username     string
	PasswordHash string
	DepartmentID int
	Position     string
	StartDate    string
	Role         auth.Role
	Status       string
}

// Update carries a partial update. Nil fields keep the stored value;
// SetDepartment distinguishes "not provided" from "clear it".
type Update struct {
	Fullname     *string
	FirstName    *string
	LastName     *string
	Nickname     *string
	Email        *string
	Phone        *string
	Position     *string
	DateOfBirth  *string
	Address      *string
	EmergencyContactName         *string
	EmergencyContactRelationship *string
	EmergencyContactPhone        *string
	StartDate    *string
	Role         *auth.Role
	Status       *string
	SetDepartment bool
	DepartmentID  *int
}
