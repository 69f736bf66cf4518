package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hrsystem/internal/auth"
	"hrsystem/internal/leave"
)

// CreateLeaveRequest files a request. Status is always pending on creation
// regardless of what the body says.
func (h *Handler) CreateLeaveRequest(c *gin.Context) {
	var req struct {
		EmployeeID int     `json:"employee_id"`
		DateFrom   string  `json:"date_from"`
		DateTo     string  `json:"date_to"`
		LeaveType  string  `json:"leave_type"`
		Reason     *string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.EmployeeID == 0 || req.DateFrom == "" || req.DateTo == "" || req.LeaveType == "" {
		fail(c, http.StatusBadRequest, "Missing required fields")
		return
	}
	if req.DateFrom > req.DateTo {
		fail(c, http.StatusBadRequest, "date_from must not be after date_to")
		return
	}

	id, err := h.leaves.Create(c.Request.Context(), leave.Request{
		EmployeeID: req.EmployeeID,
		DateFrom:   req.DateFrom,
		DateTo:     req.DateTo,
		LeaveType:  req.LeaveType,
		Reason:     req.Reason,
	})
	if err != nil {
		respondError(c, err, "Leave request not found")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Leave request created", "id": id})
}

// ApproveLeaveRequest records the decision along with who made it and when.
func (h *Handler) ApproveLeaveRequest(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req struct {
		Status string  `json:"status"`
		Notes  *string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !leave.ValidDecision(req.Status) {
		fail(c, http.StatusBadRequest, "status must be approved, rejected or cancelled")
		return
	}

	claims := auth.Identity(c)
	if err := h.leaves.Approve(c.Request.Context(), id, req.Status, claims.ID, req.Notes); err != nil {
		respondError(c, err, "Leave request not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Leave request " + req.Status})
}

// ListLeaveRequests returns requests, self-scoped for the employee role.
func (h *Handler) ListLeaveRequests(c *gin.Context) {
	claims := auth.Identity(c)
	var employeeID *int
	if claims.Role == auth.RoleEmployee {
		self := claims.ID
		employeeID = &self
	} else {
		employeeID = queryInt(c, "employee_id")
	}

	records, err := h.leaves.List(c.Request.Context(), employeeID)
	if err != nil {
		serverError(c, err)
		return
	}
	if records == nil {
		records = []leave.Request{}
	}
	c.JSON(http.StatusOK, gin.H{"records": records})
}
