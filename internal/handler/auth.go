package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"hrsystem/internal/auth"
	"hrsystem/internal/employee"
	"hrsystem/internal/store"
)

// Login verifies credentials and issues a 24h token with the employee
// identity. Unknown username and wrong password are indistinguishable.
func (h *Handler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" || req.Password == "" {
		fail(c, http.StatusBadRequest, "Username and password are required")
		return
	}

	emp, err := h.employees.GetByUsername(c.Request.Context(), req.Username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			fail(c, http.StatusUnauthorized, "Invalid username or password")
			return
		}
		serverError(c, err)
		return
	}
	if !auth.CheckPassword(emp.PasswordHash, req.Password) {
		fail(c, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	token, _, err := auth.Issue(emp.ID, emp.Username, emp.Role, h.jwtSecret, h.tokenTTL)
	if err != nil {
		serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":         emp.ID,
			"fullname":   emp.Fullname,
			"username":   emp.Username,
			"email":      emp.Email,
			"role":       emp.Role,
			"department": emp.Department,
		},
	})
}

// Signup is the public self-service registration. It forces role=employee and
// status=active; the department must already exist since self-service cannot
// create departments.
func (h *Handler) Signup(c *gin.Context) {
	var req struct {
		FirstName  string  `json:"first_name"`
		LastName   string  `json:"last_name"`
		Fullname   string  `json:"fullname"`
		Nickname   *string `json:"nickname"`
		Email      string  `json:"email"`
		Username   string  `json:"username"`
		Password   string  `json:"password"`
		Department string  `json:"department"`
		Position   string  `json:"position"`
		StartDate  string  `json:"start_date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.FirstName == "" || req.LastName == "" || req.Email == "" || req.Username == "" ||
		req.Password == "" || req.Department == "" || req.Position == "" {
		fail(c, http.StatusBadRequest, "Missing required fields")
		return
	}

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

	fullname := req.Fullname
	if fullname == "" {
		fullname = req.FirstName + " " + req.LastName
	}
	startDate := req.StartDate
	if startDate == "" {
		startDate = time.Now().Format("2006-01-02")
	}

	id, err := h.employees.Create(ctx, employee.NewEmployee{
		Fullname:     fullname,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Nickname:     req.Nickname,
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: hash,
		DepartmentID: departmentID,
		Position:     req.Position,
		StartDate:    startDate,
		Role:         auth.RoleEmployee,
		Status:       employee.StatusActive,
	})
	if err != nil {
		respondError(c, err, "Employee not found")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Employee created successfully", "id": id})
}
