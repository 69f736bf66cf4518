package handler

import (
	"fmt"
	"net/http"
	"testing"

	"hrsystem/internal/auth"
	"hrsystem/internal/schedule"
	"hrsystem/internal/store"
)

func TestCreateShiftTemplateValidation(t *testing.T) {
	e := newEnv()
	token := tokenFor(t, 1, "hrmanager", auth.RoleHR)

	w := doRequest(t, e.router, http.MethodPost, "/api/shift-templates", token, map[string]string{
		"shift_name": "Morning",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing times, got %d", w.Code)
	}

	w = doRequest(t, e.router, http.MethodPost, "/api/shift-templates", token, map[string]string{
		"shift_name":  "Backwards",
		"shift_start": "17:00",
		"shift_end":   "09:00",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for reversed times, got %d", w.Code)
	}
	if got := decodeBody(t, w)["message"]; got != "shift_start must be before shift_end" {
		t.Errorf("unexpected message: %v", got)
	}

	w = doRequest(t, e.router, http.MethodPost, "/api/shift-templates", token, map[string]string{
		"shift_name":  "Morning",
		"shift_start": "09:00",
		"shift_end":   "17:00",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if len(e.schedules.templates) != 1 || e.schedules.templates[0].ShiftName != "Morning" {
		t.Errorf("template not stored: %v", e.schedules.templates)
	}
}

func TestCreateShiftWithHolidays(t *testing.T) {
	e := newEnv()
	token := tokenFor(t, 1, "hrmanager", auth.RoleHR)

	w := doRequest(t, e.router, http.MethodPost, "/api/shifts", token, map[string]any{
		"employee_id": 5,
		"shift_id":    1,
		"start_date":  "2026-09-01",
		"end_date":    "2026-09-30",
		"holidays":    []int{0, 6},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if len(e.schedules.lastHolidays) != 2 {
		t.Errorf("holidays not passed through: %v", e.schedules.lastHolidays)
	}
}

func TestCreateShiftReversedDates(t *testing.T) {
	e := newEnv()
	token := tokenFor(t, 1, "hrmanager", auth.RoleHR)

	w := doRequest(t, e.router, http.MethodPost, "/api/shifts", token, map[string]any{
		"employee_id": 5,
		"shift_id":    1,
		"start_date":  "2026-09-30",
		"end_date":    "2026-09-01",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestUpdateShiftHolidayReplacement(t *testing.T) {
	e := newEnv()
	e.schedules.assignments = []schedule.Assignment{{EmployeeID: 5, ShiftID: 1}}
	token := tokenFor(t, 1, "hrmanager", auth.RoleHR)

	// No holidays key: existing day-off rows stay.
	doRequest(t, e.router, http.MethodPut, "/api/shifts/1", token, map[string]any{
		"employee_id": 5,
		"shift_id":    1,
		"start_date":  "2026-09-01",
		"end_date":    "2026-09-30",
	})
	if e.schedules.lastReplace {
		t.Error("absent holidays must not trigger replacement")
	}

	// Empty array: the whole set is cleared.
	doRequest(t, e.router, http.MethodPut, "/api/shifts/1", token, map[string]any{
		"employee_id": 5,
		"shift_id":    1,
		"start_date":  "2026-09-01",
		"end_date":    "2026-09-30",
		"holidays":    []int{},
	})
	if !e.schedules.lastReplace {
		t.Error("empty holidays array must replace with nothing")
	}
	if len(e.schedules.lastHolidays) != 0 {
		t.Errorf("expected empty holiday set, got %v", e.schedules.lastHolidays)
	}
}

func TestListShiftsSelfScoped(t *testing.T) {
	e := newEnv()

	workerToken := tokenFor(t, 5, "worker", auth.RoleEmployee)
	w := doRequest(t, e.router, http.MethodGet, "/api/shifts?employee_id=6", workerToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if e.schedules.lastFilter.EmployeeID == nil || *e.schedules.lastFilter.EmployeeID != 5 {
		t.Errorf("expected filter pinned to own id, got %v", e.schedules.lastFilter.EmployeeID)
	}

	hrToken := tokenFor(t, 2, "hrmanager", auth.RoleHR)
	doRequest(t, e.router, http.MethodGet, "/api/shifts?employee_id=6&start_date=2026-09-01&end_date=2026-09-30", hrToken, nil)
	if e.schedules.lastFilter.EmployeeID == nil || *e.schedules.lastFilter.EmployeeID != 6 {
		t.Errorf("hr should filter by requested employee, got %v", e.schedules.lastFilter.EmployeeID)
	}
	if e.schedules.lastFilter.StartDate != "2026-09-01" {
		t.Errorf("date range not passed through: %+v", e.schedules.lastFilter)
	}
}

func TestCreateHolidayValidation(t *testing.T) {
	e := newEnv()
	token := tokenFor(t, 5, "worker", auth.RoleEmployee)

	w := doRequest(t, e.router, http.MethodPost, "/api/holidays", token, map[string]any{
		"working_shift_id": 11,
		"employee_id":      5,
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing week_day, got %d", w.Code)
	}

	w = doRequest(t, e.router, http.MethodPost, "/api/holidays", token, map[string]any{
		"working_shift_id": 11,
		"employee_id":      5,
		"week_day":         7,
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for out-of-range week_day, got %d", w.Code)
	}

	// week_day 0 is Sunday and must not be mistaken for "missing".
	w = doRequest(t, e.router, http.MethodPost, "/api/holidays", token, map[string]any{
		"working_shift_id": 11,
		"employee_id":      5,
		"week_day":         0,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if got := decodeBody(t, w)["message"]; got != "Holiday added successfully" {
		t.Errorf("unexpected message: %v", got)
	}
}

func TestCreateHolidayDuplicateIs400(t *testing.T) {
	e := newEnv()
	e.schedules.createHolErr = fmt.Errorf("holiday already exists for this working shift on this day: %w", store.ErrConflict)
	token := tokenFor(t, 5, "worker", auth.RoleEmployee)

	w := doRequest(t, e.router, http.MethodPost, "/api/holidays", token, map[string]any{
		"working_shift_id": 11,
		"employee_id":      5,
		"week_day":         0,
	})
	// Duplicates on this endpoint answer 400, not 409.
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if got := decodeBody(t, w)["message"]; got != "holiday already exists for this working shift on this day" {
		t.Errorf("unexpected message: %v", got)
	}
}

func TestDeleteTemplateUnknown(t *testing.T) {
	e := newEnv()
	e.schedules.templates = []schedule.Template{{ShiftName: "Morning"}}
	token := tokenFor(t, 1, "admin", auth.RoleAdmin)

	w := doRequest(t, e.router, http.MethodDelete, "/api/shift-templates/9", token, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown template, got %d", w.Code)
	}
}
