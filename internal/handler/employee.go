package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"hrsystem/internal/auth"
	"hrsystem/internal/employee"
	"hrsystem/internal/store"
)

// ListEmployees returns active employees with resolved department names.
func (h *Handler) ListEmployees(c *gin.Context) {
	employees, err := h.employees.ListActive(c.Request.Context())
	if err != nil {
		serverError(c, err)
		return
	}
	if employees == nil {
		employees = []employee.Employee{}
	}
	c.JSON(http.StatusOK, gin.H{"employees": employees})
}

// GetEmployee returns one record. The password hash never serializes.
func (h *Handler) GetEmployee(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	emp, err := h.employees.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Employee not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"employee": emp})
}

// CreateEmployee inserts a record on behalf of admin/hr. The provided
// fullname is split into first and last name.
func (h *Handler) CreateEmployee(c *gin.Context) {
	var req struct {
		Fullname   string  `json:"fullname"`
		Email      string  `json:"email"`
		Username   string  `json:"username"`
		Password   string  `json:"password"`
		Department string  `json:"department"`
		Position   string  `json:"position"`
		StartDate  string  `json:"start_date"`
		Phone      *string `json:"phone"`
		Role       string  `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	fullname := strings.TrimSpace(req.Fullname)
	if fullname == "" || req.Email == "" || req.Username == "" ||
		req.Password == "" || req.Department == "" || req.Position == "" {
		fail(c, http.StatusBadRequest, "Missing required fields")
		return
	}

	role := auth.Role(req.Role)
	if req.Role == "" {
		role = auth.RoleEmployee
	}
	if !role.Valid() {
		fail(c, http.StatusBadRequest, "Invalid role")
		return
	}

	nameParts := strings.Fields(fullname)
	firstName := nameParts[0]
	lastName := strings.Join(nameParts[1:], " ")

	ctx := c.Request.Context()
	departmentID, err := h.departments.Resolve(ctx, req.Department)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			fail(c, http.StatusBadRequest, "Department not found")
			return
		}
		serverError(c, err)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		serverError(c, err)
		return
	}

	startDate := req.StartDate
	if startDate == "" {
		startDate = time.Now().Format("2006-01-02")
	}

	id, err := h.employees.Create(ctx, employee.NewEmployee{
		Fullname:     fullname,
		FirstName:    firstName,
		LastName:     lastName,
		Email:        req.Email,
		Phone:        req.Phone,
		Username:     req.Username,
		PasswordHash: hash,
		DepartmentID: departmentID,
		Position:     req.Position,
		StartDate:    startDate,
		Role:         role,
		Status:       employee.StatusActive,
	})
	if err != nil {
		respondError(c, err, "Employee not found")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Employee created", "id": id})
}

// UpdateEmployee applies a partial update. Admin/hr may edit anyone including
// role, status and start date; everyone else may only edit their own profile
// and those three fields are silently preserved.
func (h *Handler) UpdateEmployee(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	claims := auth.Identity(c)
	isAdminOrHR := auth.CanManage(claims.Role)
	if !isAdminOrHR && id != claims.ID {
		fail(c, http.StatusForbidden, "Access denied - you can only edit your own profile")
		return
	}

	var req struct {
		Fullname   *string `json:"fullname"`
		FirstName  *string `json:"first_name"`
		LastName   *string `json:"last_name"`
		Nickname   *string `json:"nickname"`
		Email      *string `json:"email"`
		Phone      *string `json:"phone"`
		Department *string `json:"department"`
		Position   *string `json:"position"`
		DateOfBirth *string `json:"date_of_birth"`
		Address     *string `json:"address"`
		EmergencyContactName         *string `json:"emergency_contact_name"`
		EmergencyContactRelationship *string `json:"emergency_contact_relationship"`
		EmergencyContactPhone        *string `json:"emergency_contact_phone"`
		StartDate *string `json:"start_date"`
		Role      *string `json:"role"`
		Status    *string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	upd := employee.Update{
		Fullname:    req.Fullname,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Nickname:    req.Nickname,
		Email:       req.Email,
		Phone:       req.Phone,
		Position:    req.Position,
		DateOfBirth: req.DateOfBirth,
		Address:     req.Address,
		EmergencyContactName:         req.EmergencyContactName,
		EmergencyContactRelationship: req.EmergencyContactRelationship,
		EmergencyContactPhone:        req.EmergencyContactPhone,
	}

	if isAdminOrHR {
		upd.StartDate = req.StartDate
		if req.Role != nil {
			role := auth.Role(*req.Role)
			if !role.Valid() {
				fail(c, http.StatusBadRequest, "Invalid role")
				return
			}
			upd.Role = &role
		}
		if req.Status != nil {
			if *req.Status != employee.StatusActive && *req.Status != employee.StatusInactive && *req.Status != employee.StatusTerminated {
				fail(c, http.StatusBadRequest, "Invalid status")
				return
			}
			upd.Status = req.Status
		}
	}

	ctx := c.Request.Context()
	if req.Department != nil {
		upd.SetDepartment = true
		if *req.Department != "" {
			departmentID, err := h.departments.Resolve(ctx, *req.Department)
			if err != nil {
				if errors.Is(err, store.ErrNotFound) {
					fail(c, http.StatusBadRequest, "Department not found")
					return
				}
				serverError(c, err)
				return
			}
			upd.DepartmentID = &departmentID
		}
	}

	if err := h.employees.ApplyUpdate(ctx, id, upd); err != nil {
		respondError(c, err, "Employee not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Employee updated successfully"})
}

// DeleteEmployee hard-deletes a record.
func (h *Handler) DeleteEmployee(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.employees.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "Employee not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Employee deleted successfully"})
}
