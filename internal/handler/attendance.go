package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hrsystem/internal/attendance"
	"hrsystem/internal/auth"
)

// RecordAttendance upserts the (employee, date) row. A check-in call and a
// check-out call each fill in their own time; neither overwrites the other,
// so the final row is the same whichever lands first.
func (h *Handler) RecordAttendance(c *gin.Context) {
	var req struct {
		EmployeeID    int     `json:"employee_id"`
		Date          string  `json:"date"`
		CheckinTime   *string `json:"checkin_time"`
		CheckoutTime  *string `json:"checkout_time"`
		Location      *string `json:"location"`
		CheckinPhoto  []byte  `json:"checkin_photo"`
		CheckoutPhoto []byte  `json:"checkout_photo"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.EmployeeID == 0 || req.Date == "" {
		fail(c, http.StatusBadRequest, "Missing required fields")
		return
	}

	id, err := h.attendance.Record(c.Request.Context(), attendance.Upsert{
		EmployeeID:    req.EmployeeID,
		Date:          req.Date,
		CheckinTime:   req.CheckinTime,
		CheckoutTime:  req.CheckoutTime,
		Location:      req.Location,
		CheckinPhoto:  req.CheckinPhoto,
		CheckoutPhoto: req.CheckoutPhoto,
	})
	if err != nil {
		respondError(c, err, "Attendance not found")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Attendance recorded", "id": id})
}

// Checkout sets the checkout time on an existing attendance row.
func (h *Handler) Checkout(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req struct {
		CheckoutTime string `json:"checkout_time"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.CheckoutTime == "" {
		fail(c, http.StatusBadRequest, "checkout_time is required")
		return
	}

	if err := h.attendance.SetCheckout(c.Request.Context(), id, req.CheckoutTime); err != nil {
		respondError(c, err, "Attendance not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Checkout recorded successfully"})
}

// ListAttendance returns attendance rows. Employees only ever see their own;
// admin/hr may narrow to one employee, an exact date or a date range.
func (h *Handler) ListAttendance(c *gin.Context) {
	claims := auth.Identity(c)
	filter := attendance.Filter{
		Date:      c.Query("date"),
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
	}
	if claims.Role == auth.RoleEmployee {
		self := claims.ID
		filter.EmployeeID = &self
	} else {
		filter.EmployeeID = queryInt(c, "employee_id")
	}

	records, err := h.attendance.List(c.Request.Context(), filter)
	if err != nil {
		serverError(c, err)
		return
	}
	if records == nil {
		records = []attendance.Record{}
	}
	c.JSON(http.StatusOK, gin.H{"attendance": records})
}
