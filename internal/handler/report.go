package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hrsystem/internal/report"
)

func reportRange(c *gin.Context) (from, to string, ok bool) {
	from, to = c.Query("date_from"), c.Query("date_to")
	if from == "" || to == "" {
		fail(c, http.StatusBadRequest, "date_from and date_to are required")
		return "", "", false
	}
	return from, to, true
}

func wantsXLSX(c *gin.Context) bool {
	return c.Query("format") == "xlsx"
}

func writeXLSX(c *gin.Context, name string, headers []string, cells [][]any) {
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", `attachment; filename="`+name+`.xlsx"`)
	if err := report.WriteXLSX(c.Writer, name, headers, cells); err != nil {
		serverError(c, err)
	}
}

// AttendanceReport lists attendance joined with employee names for a date
// range, as JSON or as a spreadsheet.
func (h *Handler) AttendanceReport(c *gin.Context) {
	from, to, ok := reportRange(c)
	if !ok {
		return
	}
	rows, err := h.reports.Attendance(c.Request.Context(), from, to)
	if err != nil {
		serverError(c, err)
		return
	}
	if wantsXLSX(c) {
		headers, cells := report.AttendanceSheet(rows)
		writeXLSX(c, "attendance", headers, cells)
		return
	}
	if rows == nil {
		rows = []report.AttendanceRow{}
	}
	c.JSON(http.StatusOK, gin.H{"records": rows})
}

// LeaveReport lists leave requests fully inside the date range.
func (h *Handler) LeaveReport(c *gin.Context) {
	from, to, ok := reportRange(c)
	if !ok {
		return
	}
	rows, err := h.reports.Leave(c.Request.Context(), from, to)
	if err != nil {
		serverError(c, err)
		return
	}
	if wantsXLSX(c) {
		headers, cells := report.LeaveSheet(rows)
		writeXLSX(c, "leave", headers, cells)
		return
	}
	if rows == nil {
		rows = []report.LeaveRow{}
	}
	c.JSON(http.StatusOK, gin.H{"records": rows})
}

// PayrollReport lists payroll rows for a month range. Routing restricts this
// endpoint to admin/hr.
func (h *Handler) PayrollReport(c *gin.Context) {
	from, to, ok := reportRange(c)
	if !ok {
		return
	}
	rows, err := h.reports.Payroll(c.Request.Context(), from, to)
	if err != nil {
		serverError(c, err)
		return
	}
	if wantsXLSX(c) {
		headers, cells := report.PayrollSheet(rows)
		writeXLSX(c, "payroll", headers, cells)
		return
	}
	if rows == nil {
		rows = []report.PayrollRow{}
	}
	c.JSON(http.StatusOK, gin.H{"records": rows})
}
