package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"hrsystem/internal/auth"
	"hrsystem/internal/schedule"
	"hrsystem/internal/store"
)

// ---------- Shift templates ----------

// ListShiftTemplates returns active templates for schedule dropdowns.
func (h *Handler) ListShiftTemplates(c *gin.Context) {
	templates, err := h.schedules.ListActiveTemplates(c.Request.Context())
	if err != nil {
		serverError(c, err)
		return
	}
	if templates == nil {
		templates = []schedule.Template{}
	}
	c.JSON(http.StatusOK, gin.H{"templates": templates})
}

type templateRequest struct {
	ShiftName   string  `json:"shift_name"`
	ShiftStart  string  `json:"shift_start"`
	ShiftEnd    string  `json:"shift_end"`
	BreakStart  *string `json:"break_start"`
	BreakEnd    *string `json:"break_end"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

func (r templateRequest) validate(c *gin.Context) bool {
	if r.ShiftName == "" || r.ShiftStart == "" || r.ShiftEnd == "" {
		fail(c, http.StatusBadRequest, "Missing required fields: shift_name, shift_start, shift_end")
		return false
	}
	// Zero-padded HH:MM[:SS] strings compare correctly as text.
	if r.ShiftStart >= r.ShiftEnd {
		fail(c, http.StatusBadRequest, "shift_start must be before shift_end")
		return false
	}
	return true
}

// CreateShiftTemplate inserts a template, created active.
func (h *Handler) CreateShiftTemplate(c *gin.Context) {
	var req templateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !req.validate(c) {
		return
	}

	id, err := h.schedules.CreateTemplate(c.Request.Context(), schedule.Template{
		ShiftName:   req.ShiftName,
		ShiftStart:  req.ShiftStart,
		ShiftEnd:    req.ShiftEnd,
		BreakStart:  req.BreakStart,
		BreakEnd:    req.BreakEnd,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, err, "Shift template not found")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Shift template created successfully", "id": id})
}

// UpdateShiftTemplate replaces a template including its active flag.
func (h *Handler) UpdateShiftTemplate(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req templateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !req.validate(c) {
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	err := h.schedules.UpdateTemplate(c.Request.Context(), id, schedule.Template{
		ShiftName:   req.ShiftName,
		ShiftStart:  req.ShiftStart,
		ShiftEnd:    req.ShiftEnd,
		BreakStart:  req.BreakStart,
		BreakEnd:    req.BreakEnd,
		Description: req.Description,
		IsActive:    isActive,
	})
	if err != nil {
		respondError(c, err, "Shift template not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Shift template updated successfully"})
}

// DeleteShiftTemplate removes a template unless assignments still use it.
func (h *Handler) DeleteShiftTemplate(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.schedules.DeleteTemplate(c.Request.Context(), id); err != nil {
		respondError(c, err, "Shift template not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Shift template deleted"})
}

// ---------- Working shifts (assignments) ----------

// ListShifts returns schedule assignments. Employees are always scoped to
// their own rows; admin/hr may filter by employee and by date-range overlap.
func (h *Handler) ListShifts(c *gin.Context) {
	claims := auth.Identity(c)
	filter := schedule.AssignmentFilter{
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
	}
	if claims.Role == auth.RoleEmployee {
		self := claims.ID
		filter.EmployeeID = &self
	} else {
		filter.EmployeeID = queryInt(c, "employee_id")
	}

	shifts, err := h.schedules.ListAssignments(c.Request.Context(), filter)
	if err != nil {
		serverError(c, err)
		return
	}
	if shifts == nil {
		shifts = []schedule.Assignment{}
	}
	c.JSON(http.StatusOK, gin.H{"shifts": shifts})
}

type assignmentRequest struct {
	EmployeeID int     `json:"employee_id"`
	ShiftID    int     `json:"shift_id"`
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
	Note       *string `json:"note"`
	Holidays   *[]int  `json:"holidays"`
}

func (r assignmentRequest) validate(c *gin.Context) bool {
	if r.EmployeeID == 0 || r.ShiftID == 0 || r.StartDate == "" || r.EndDate == "" {
		fail(c, http.StatusBadRequest, "Missing required fields: employee_id, shift_id, start_date, end_date")
		return false
	}
	if r.StartDate > r.EndDate {
		fail(c, http.StatusBadRequest, "start_date must not be after end_date")
		return false
	}
	return true
}

func (r assignmentRequest) assignment() schedule.Assignment {
	return schedule.Assignment{
		EmployeeID: r.EmployeeID,
		ShiftID:    r.ShiftID,
		StartDate:  r.StartDate,
		EndDate:    r.EndDate,
		Note:       r.Note,
	}
}

// CreateShift inserts an assignment with its optional day-off set in one
// transaction.
func (h *Handler) CreateShift(c *gin.Context) {
	var req assignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !req.validate(c) {
		return
	}

	var holidays []int
	if req.Holidays != nil {
		holidays = *req.Holidays
	}
	id, err := h.schedules.CreateAssignment(c.Request.Context(), req.assignment(), holidays)
	if err != nil {
		respondError(c, err, "Working shift not found")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Working shift created successfully", "id": id})
}

// UpdateShift rewrites an assignment. A holidays array, when present,
// replaces the whole day-off set; absence leaves it untouched.
func (h *Handler) UpdateShift(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req assignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !req.validate(c) {
		return
	}

	var holidays []int
	replace := req.Holidays != nil
	if replace {
		holidays = *req.Holidays
	}
	if err := h.schedules.UpdateAssignment(c.Request.Context(), id, req.assignment(), holidays, replace); err != nil {
		respondError(c, err, "Working shift not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Working shift updated"})
}

// DeleteShift removes an assignment; its holidays cascade away with it.
func (h *Handler) DeleteShift(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.schedules.DeleteAssignment(c.Request.Context(), id); err != nil {
		respondError(c, err, "Working shift not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Working shift deleted"})
}

// ---------- Holidays ----------

// ListHolidays returns day-off rows filtered by assignment or employee.
// Employees with no filter see their own rows.
func (h *Handler) ListHolidays(c *gin.Context) {
	claims := auth.Identity(c)
	filter := schedule.HolidayFilter{
		WorkingShiftID: queryInt(c, "working_shift_id"),
		EmployeeID:     queryInt(c, "employee_id"),
	}
	if filter.WorkingShiftID == nil && filter.EmployeeID == nil && claims.Role == auth.RoleEmployee {
		self := claims.ID
		filter.EmployeeID = &self
	}

	holidays, err := h.schedules.ListHolidays(c.Request.Context(), filter)
	if err != nil {
		serverError(c, err)
		return
	}
	if holidays == nil {
		holidays = []schedule.Holiday{}
	}
	c.JSON(http.StatusOK, gin.H{"holidays": holidays})
}

// CreateHoliday adds one weekly day off to an assignment. A duplicate weekday
// answers 400, matching the established API contract for this endpoint.
func (h *Handler) CreateHoliday(c *gin.Context) {
	var req struct {
		WorkingShiftID int  `json:"working_shift_id"`
		EmployeeID     int  `json:"employee_id"`
		WeekDay        *int `json:"week_day"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.WorkingShiftID == 0 || req.EmployeeID == 0 || req.WeekDay == nil {
		fail(c, http.StatusBadRequest, "Missing required fields: working_shift_id, employee_id, week_day")
		return
	}
	if *req.WeekDay < 0 || *req.WeekDay > 6 {
		fail(c, http.StatusBadRequest, "week_day must be between 0 and 6")
		return
	}

	id, err := h.schedules.CreateHoliday(c.Request.Context(), schedule.Holiday{
		WorkingShiftID: req.WorkingShiftID,
		EmployeeID:     req.EmployeeID,
		WeekDay:        *req.WeekDay,
	})
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			fail(c, http.StatusBadRequest, errMessage(err))
			return
		}
		respondError(c, err, "Working shift not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Holiday added successfully", "id": id})
}

// DeleteHoliday removes one day-off row.
func (h *Handler) DeleteHoliday(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.schedules.DeleteHoliday(c.Request.Context(), id); err != nil {
		respondError(c, err, "Holiday not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Holiday deleted successfully"})
}
