package handler

import (
	"fmt"
	"net/http"
	"testing"

	"hrsystem/internal/auth"
	"hrsystem/internal/store"
)

func TestListDepartmentsPublic(t *testing.T) {
	e := newEnv()
	e.departments.names = []string{"Engineering", "Sales"}

	w := doRequest(t, e.router, http.MethodGet, "/api/departments", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 without auth, got %d", w.Code)
	}
	departments := decodeBody(t, w)["departments"].([]any)
	if len(departments) != 2 {
		t.Fatalf("expected 2 departments, got %d", len(departments))
	}
}

func TestCreateDepartment(t *testing.T) {
	e := newEnv()
	token := tokenFor(t, 1, "admin", auth.RoleAdmin)

	w := doRequest(t, e.router, http.MethodPost, "/api/departments", token,
		map[string]string{"name": "  Operations  "})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if len(e.departments.created) != 1 || e.departments.created[0] != "Operations" {
		t.Errorf("expected trimmed name, got %v", e.departments.created)
	}
}

func TestCreateDepartmentBlankName(t *testing.T) {
	e := newEnv()
	token := tokenFor(t, 1, "admin", auth.RoleAdmin)

	w := doRequest(t, e.router, http.MethodPost, "/api/departments", token,
		map[string]string{"name": "   "})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if got := decodeBody(t, w)["message"]; got != "Department name is required" {
		t.Errorf("unexpected message: %v", got)
	}
}

func TestCreateDepartmentDuplicate(t *testing.T) {
	e := newEnv()
	e.departments.createErr = fmt.Errorf("department already exists: %w", store.ErrConflict)
	token := tokenFor(t, 1, "admin", auth.RoleAdmin)

	w := doRequest(t, e.router, http.MethodPost, "/api/departments", token,
		map[string]string{"name": "Engineering"})
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
	if got := decodeBody(t, w)["message"]; got != "department already exists" {
		t.Errorf("unexpected message: %v", got)
	}
}
