// Package handler translates HTTP requests into repository calls. One file
// per resource; all error responses use the {"message": ...} envelope.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"hrsystem/internal/attendance"
	"hrsystem/internal/employee"
	"hrsystem/internal/leave"
	"hrsystem/internal/report"
	"hrsystem/internal/schedule"
	"hrsystem/internal/store"
)

// EmployeeStore is the employee persistence surface the handlers need.
type EmployeeStore interface {
	GetByID(ctx context.Context, id int) (employee.Employee, error)
	GetByUsername(ctx context.Context, username string) (employee.Employee, error)
	ListActive(ctx context.Context) ([]employee.Employee, error)
	Create(ctx context.Context, in employee.NewEmployee) (int, error)
	ApplyUpdate(ctx context.Context, id int, u employee.Update) error
	Delete(ctx context.Context, id int) error
}

// DepartmentStore is the department persistence surface.
type DepartmentStore interface {
	ListNames(ctx context.Context) ([]string, error)
	Resolve(ctx context.Context, name string) (int, error)
	Create(ctx context.Context, name string) (int, error)
}

// ScheduleStore covers shift templates, assignments and holidays.
type ScheduleStore interface {
	ListActiveTemplates(ctx context.Context) ([]schedule.Template, error)
	CreateTemplate(ctx context.Context, t schedule.Template) (int, error)
	UpdateTemplate(ctx context.Context, id int, t schedule.Template) error
	DeleteTemplate(ctx context.Context, id int) error
	ListAssignments(ctx context.Context, f schedule.AssignmentFilter) ([]schedule.Assignment, error)
	CreateAssignment(ctx context.Context, a schedule.Assignment, holidays []int) (int, error)
	UpdateAssignment(ctx context.Context, id int, a schedule.Assignment, holidays []int, replaceHolidays bool) error
	DeleteAssignment(ctx context.Context, id int) error
	ListHolidays(ctx context.Context, f schedule.HolidayFilter) ([]schedule.Holiday, error)
	CreateHoliday(ctx context.Context, h schedule.Holiday) (int, error)
	DeleteHoliday(ctx context.Context, id int) error
}

// AttendanceStore is the attendance persistence surface.
type AttendanceStore interface {
	Record(ctx context.Context, u attendance.Upsert) (int, error)
	SetCheckout(ctx context.Context, id int, checkoutTime string) error
	List(ctx context.Context, f attendance.Filter) ([]attendance.Record, error)
}

// LeaveStore is the leave-request persistence surface.
type LeaveStore interface {
	Create(ctx context.Context, req leave.Request) (int, error)
	Approve(ctx context.Context, id int, status string, approverID int, notes *string) error
	List(ctx context.Context, employeeID *int) ([]leave.Request, error)
}

// ReportStore runs the report queries.
type ReportStore interface {
	Attendance(ctx context.Context, from, to string) ([]report.AttendanceRow, error)
	Leave(ctx context.Context, from, to string) ([]report.LeaveRow, error)
	Payroll(ctx context.Context, from, to string) ([]report.PayrollRow, error)
}

// Handler owns every resource endpoint.
type Handler struct {
	employees   EmployeeStore
	departments DepartmentStore
	schedules   ScheduleStore
	attendance  AttendanceStore
	leaves      LeaveStore
	reports     ReportStore

	jwtSecret string
	tokenTTL  time.Duration
}

// New wires the handler to its stores.
func New(employees EmployeeStore, departments DepartmentStore, schedules ScheduleStore,
	att AttendanceStore, leaves LeaveStore, reports ReportStore,
	jwtSecret string, tokenTTL time.Duration) *Handler {
	return &Handler{
		employees:   employees,
		departments: departments,
		schedules:   schedules,
		attendance:  att,
		leaves:      leaves,
		reports:     reports,
		jwtSecret:   jwtSecret,
		tokenTTL:    tokenTTL,
	}
}

// Health answers the unauthenticated liveness probe.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "OK"})
}

// ---------- Shared helpers ----------

func fail(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"message": msg})
}

// serverError logs the cause and echoes the message to the client.
func serverError(c *gin.Context, err error) {
	logrus.WithError(err).WithField("path", c.Request.URL.Path).Error("request failed")
	fail(c, http.StatusInternalServerError, err.Error())
}

var sentinels = []error{store.ErrNotFound, store.ErrConflict, store.ErrInvalid, store.ErrInUse}

// errMessage strips the wrapped sentinel suffix so clients see the
// human-readable part only.
func errMessage(err error) string {
	msg := err.Error()
	for _, s := range sentinels {
		msg = strings.TrimSuffix(msg, ": "+s.Error())
	}
	return msg
}

// respondError maps repository errors to HTTP statuses. notFoundMsg overrides
// the message for bare not-found errors, which carry no context of their own.
func respondError(c *gin.Context, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		msg := notFoundMsg
		if err != store.ErrNotFound {
			msg = errMessage(err)
		}
		fail(c, http.StatusNotFound, msg)
	case errors.Is(err, store.ErrConflict), errors.Is(err, store.ErrInUse):
		fail(c, http.StatusConflict, errMessage(err))
	case errors.Is(err, store.ErrInvalid):
		fail(c, http.StatusBadRequest, errMessage(err))
	default:
		serverError(c, err)
	}
}

func pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		fail(c, http.StatusBadRequest, "Invalid id")
		return 0, false
	}
	return id, true
}

func queryInt(c *gin.Context, key string) *int {
	v := c.Query(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil
	}
	return &n
}
