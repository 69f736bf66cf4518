package handler

import (
	"net/http"
	"testing"

	"hrsystem/internal/auth"
)

func TestGetEmployeeHidesPassword(t *testing.T) {
	e := newEnv()
	e.addEmployee(t, 1, "admin", "admin123", auth.RoleAdmin)
	token := tokenFor(t, 1, "admin", auth.RoleAdmin)

	w := doRequest(t, e.router, http.MethodGet, "/api/employees/1", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	emp := decodeBody(t, w)["employee"].(map[string]any)
	if _, leaked := emp["password"]; leaked {
		t.Error("password must not serialize")
	}
	if _, leaked := emp["PasswordHash"]; leaked {
		t.Error("password hash must not serialize")
	}
	if emp["username"] != "admin" {
		t.Errorf("unexpected employee payload: %v", emp)
	}
}

func TestGetEmployeeNotFound(t *testing.T) {
	e := newEnv()
	token := tokenFor(t, 1, "admin", auth.RoleAdmin)

	w := doRequest(t, e.router, http.MethodGet, "/api/employees/99", token, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if got := decodeBody(t, w)["message"]; got != "Employee not found" {
		t.Errorf("unexpected message: %v", got)
	}
}

func TestCreateEmployeeSplitsFullname(t *testing.T) {
	e := newEnv()
	e.departments.resolved["Engineering"] = 2
	token := tokenFor(t, 1, "admin", auth.RoleAdmin)

	w := doRequest(t, e.router, http.MethodPost, "/api/employees", token, map[string]any{
		"fullname":   "Mary Jane Watson",
		"email":      "mj@example.com",
		"username":   "mj",
		"password":   "secret1",
		"department": "Engineering",
		"position":   "Designer",
		"role":       "manager",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	created := e.employees.created[0]
	if created.FirstName != "Mary" || created.LastName != "Jane Watson" {
		t.Errorf("fullname split wrong: %q / %q", created.FirstName, created.LastName)
	}
	if created.Role != auth.RoleManager {
		t.Errorf("expected role manager, got %q", created.Role)
	}
}

func TestCreateEmployeeWhitespaceFullname(t *testing.T) {
	e := newEnv()
	e.departments.resolved["Engineering"] = 2
	token := tokenFor(t, 1, "admin", auth.RoleAdmin)

	// A fullname of spaces only must fail validation, not split.
	w := doRequest(t, e.router, http.MethodPost, "/api/employees", token, map[string]any{
		"fullname":   "   ",
		"email":      "mj@example.com",
		"username":   "mj",
		"password":   "secret1",
		"department": "Engineering",
		"position":   "Designer",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
	if got := decodeBody(t, w)["message"]; got != "Missing required fields" {
		t.Errorf("unexpected message: %v", got)
	}
	if len(e.employees.created) != 0 {
		t.Errorf("nothing should be created, got %d", len(e.employees.created))
	}
}

func TestCreateEmployeeTrimsFullname(t *testing.T) {
	e := newEnv()
	e.departments.resolved["Engineering"] = 2
	token := tokenFor(t, 1, "admin", auth.RoleAdmin)

	w := doRequest(t, e.router, http.MethodPost, "/api/employees", token, map[string]any{
		"fullname":   "  Mary Watson  ",
		"email":      "mj@example.com",
		"username":   "mj",
		"password":   "secret1",
		"department": "Engineering",
		"position":   "Designer",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	created := e.employees.created[0]
	if created.Fullname != "Mary Watson" {
		t.Errorf("expected trimmed fullname, got %q", created.Fullname)
	}
	if created.FirstName != "Mary" || created.LastName != "Watson" {
		t.Errorf("fullname split wrong: %q / %q", created.FirstName, created.LastName)
	}
}

func TestCreateEmployeeInvalidRole(t *testing.T) {
	e := newEnv()
	e.departments.resolved["Engineering"] = 2
	token := tokenFor(t, 1, "admin", auth.RoleAdmin)

	w := doRequest(t, e.router, http.MethodPost, "/api/employees", token, map[string]any{
		"fullname":   "Mary Watson",
		"email":      "mj@example.com",
		"username":   "mj",
		"password":   "secret1",
		"department": "Engineering",
		"position":   "Designer",
		"role":       "superuser",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if got := decodeBody(t, w)["message"]; got != "Invalid role" {
		t.Errorf("unexpected message: %v", got)
	}
}

func TestUpdateEmployeeSelfOnly(t *testing.T) {
	e := newEnv()
	e.addEmployee(t, 5, "worker", "pw123456", auth.RoleEmployee)
	e.addEmployee(t, 6, "other", "pw123456", auth.RoleEmployee)
	token := tokenFor(t, 5, "worker", auth.RoleEmployee)

	w := doRequest(t, e.router, http.MethodPut, "/api/employees/6", token,
		map[string]string{"phone": "555-0100"})
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
	if got := decodeBody(t, w)["message"]; got != "Access denied - you can only edit your own profile" {
		t.Errorf("unexpected message: %v", got)
	}

	w = doRequest(t, e.router, http.MethodPut, "/api/employees/5", token,
		map[string]string{"phone": "555-0100", "role": "admin", "status": "terminated"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	upd := e.employees.updates[5]
	if upd.Phone == nil || *upd.Phone != "555-0100" {
		t.Errorf("phone not applied: %v", upd.Phone)
	}
	// Self-edits silently drop privileged fields.
	if upd.Role != nil || upd.Status != nil {
		t.Errorf("employee must not change own role or status: %+v", upd)
	}
}

func TestUpdateEmployeeDepartmentTriState(t *testing.T) {
	e := newEnv()
	e.addEmployee(t, 5, "worker", "pw123456", auth.RoleEmployee)
	e.departments.resolved["Sales"] = 3
	token := tokenFor(t, 1, "hrmanager", auth.RoleHR)

	// Omitted department keeps the stored value.
	doRequest(t, e.router, http.MethodPut, "/api/employees/5", token,
		map[string]string{"phone": "555-0100"})
	if e.employees.updates[5].SetDepartment {
		t.Error("omitted department must not be touched")
	}

	// Named department resolves to its id.
	doRequest(t, e.router, http.MethodPut, "/api/employees/5", token,
		map[string]string{"department": "Sales"})
	upd := e.employees.updates[5]
	if !upd.SetDepartment || upd.DepartmentID == nil || *upd.DepartmentID != 3 {
		t.Errorf("department not resolved: %+v", upd)
	}

	// Empty string clears the assignment.
	doRequest(t, e.router, http.MethodPut, "/api/employees/5", token,
		map[string]string{"department": ""})
	upd = e.employees.updates[5]
	if !upd.SetDepartment || upd.DepartmentID != nil {
		t.Errorf("empty department must clear: %+v", upd)
	}
}

func TestDeleteEmployeeAdminOnly(t *testing.T) {
	e := newEnv()
	e.addEmployee(t, 5, "worker", "pw123456", auth.RoleEmployee)

	hrToken := tokenFor(t, 2, "hrmanager", auth.RoleHR)
	w := doRequest(t, e.router, http.MethodDelete, "/api/employees/5", hrToken, nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for hr delete, got %d", w.Code)
	}

	adminToken := tokenFor(t, 1, "admin", auth.RoleAdmin)
	w = doRequest(t, e.router, http.MethodDelete, "/api/employees/5", adminToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin delete, got %d", w.Code)
	}
	if _, still := e.employees.byID[5]; still {
		t.Error("employee should be deleted")
	}
}

func TestListEmployeesEmpty(t *testing.T) {
	e := newEnv()
	token := tokenFor(t, 1, "admin", auth.RoleAdmin)

	w := doRequest(t, e.router, http.MethodGet, "/api/employees", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	employees, ok := decodeBody(t, w)["employees"].([]any)
	if !ok {
		t.Fatalf("employees must be an array even when empty: %s", w.Body.String())
	}
	if len(employees) != 0 {
		t.Errorf("expected empty list, got %d", len(employees))
	}
}
