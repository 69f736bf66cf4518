// Package schedule covers the two-level shift model: a reusable template
// defines the time of day, an assignment binds one employee to a template over
// a date range and owns its weekly days off.
package schedule

// Template is a reusable shift definition not tied to any employee or date.
type Template struct {
	ID          int     `json:"id"`
	ShiftName   string  `json:"shift_name"`
	ShiftStart  string  `json:"shift_start"`
	ShiftEnd    string  `json:"shift_end"`
	BreakStart  *string `json:"break_start,omitempty"`
	BreakEnd    *string `json:"break_end,omitempty"`
	Description *string `json:"description,omitempty"`
	IsActive    bool    `json:"is_active"`
}

// Assignment binds an employee to a shift template over a date range.
// Template, employee and department fields are joined in for list responses.
type Assignment struct {
	ID           int     `json:"id"`
	EmployeeID   int     `json:"employee_id"`
	ShiftID      int     `json:"shift_id"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	Note         *string `json:"note,omitempty"`
	ShiftName    *string `json:"shift_name,omitempty"`
	ShiftStart   *string `json:"shift_start,omitempty"`
	ShiftEnd     *string `json:"shift_end,omitempty"`
	EmployeeName *string `json:"employee_name,omitempty"`
	Team         *string `json:"team,omitempty"`
}

// AssignmentFilter narrows a listing. The date bounds select assignments whose
// [start, end] interval overlaps [StartDate, EndDate] inclusive.
type AssignmentFilter struct {
	EmployeeID *int
	StartDate  string
	EndDate    string
}

// Holiday is a recurring weekly day off attached to one assignment.
type Holiday struct {
	ID             int     `json:"id"`
	WorkingShiftID int     `json:"working_shift_id"`
	EmployeeID     int     `json:"employee_id"`
	WeekDay        int     `json:"week_day"`
	DayName        *string `json:"day_name,omitempty"`
	ShiftName      *string `json:"shift_name,omitempty"`
}

var dayNames = []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// DayName returns the weekday label for an index in [0,6], empty otherwise.
func DayName(weekDay int) string {
	if weekDay < 0 || weekDay >= len(dayNames) {
		return ""
	}
	return dayNames[weekDay]
}
