package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ListDepartments is public so the signup form can populate its dropdown.
func (h *Handler) ListDepartments(c *gin.Context) {
	names, err := h.departments.ListNames(c.Request.Context())
	if err != nil {
		serverError(c, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"departments": names})
}

// CreateDepartment inserts a department. Blank names are rejected before the
// database is touched.
func (h *Handler) CreateDepartment(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		fail(c, http.StatusBadRequest, "Department name is required")
		return
	}

	id, err := h.departments.Create(c.Request.Context(), strings.TrimSpace(req.Name))
	if err != nil {
		respondError(c, err, "Department not found")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Department created", "id": id})
}
