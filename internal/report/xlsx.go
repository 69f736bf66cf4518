package report

import (
	"io"

	"github.com/xuri/excelize/v2"
)

// WriteXLSX renders headers and rows as a single-sheet workbook.
func WriteXLSX(w io.Writer, sheet string, headers []string, rows [][]any) error {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(sheet)
	if err != nil {
		return err
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	header := make([]any, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	if err := writeRow(f, sheet, 1, header); err != nil {
		return err
	}
	for i, row := range rows {
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	return f.Write(w)
}

func writeRow(f *excelize.File, sheet string, rowNum int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// AttendanceSheet converts report rows into xlsx cells.
func AttendanceSheet(rows []AttendanceRow) (headers []string, cells [][]any) {
	headers = []string{"Employee", "Date", "Check-in", "Check-out", "Location"}
	for _, r := range rows {
		cells = append(cells, []any{r.Fullname, r.Date, deref(r.CheckinTime), deref(r.CheckoutTime), deref(r.Location)})
	}
	return headers, cells
}

// LeaveSheet converts report rows into xlsx cells.
func LeaveSheet(rows []LeaveRow) (headers []string, cells [][]any) {
	headers = []string{"Employee", "Leave Type", "From", "To", "Status"}
	for _, r := range rows {
		cells = append(cells, []any{r.Fullname, r.LeaveType, r.DateFrom, r.DateTo, r.Status})
	}
	return headers, cells
}

// PayrollSheet converts report rows into xlsx cells.
func PayrollSheet(rows []PayrollRow) (headers []string, cells [][]any) {
	headers = []string{"Employee", "Month", "Base Salary", "Deductions", "Net Salary"}
	for _, r := range rows {
		cells = append(cells, []any{r.Fullname, r.Month, r.BaseSalary, r.Deductions, r.NetSalary})
	}
	return headers, cells
}
