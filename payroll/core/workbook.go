package core

import (
	"fmt"
	"io"

	"timekeeper.com/timekeeper/utils"

	"github.com/xuri/excelize/v2"
)

const attendanceSheet = "Attendance"

var workbookHeaders = []interface{}{
	"Date", "AM In", "AM Out", "PM In", "PM Out", "OT In", "OT Out", "Shift",
	"Day Hours", "Night Hours", "Graveyard Hours", "Overtime Hours", "Worked Hours",
	"Late (min)", "Needs Review",
}

// WriteAttendanceWorkbook writes the report as a single-sheet xlsx file.
func WriteAttendanceWorkbook(w io.Writer, report *EmployeeReport) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", attendanceSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := f.SetSheetRow(attendanceSheet, "A1", &[]interface{}{
		fmt.Sprintf("%s (%s)", report.Employee.DisplayName(), report.EmployeeID),
	}); err != nil {
		return err
	}
	if err := f.SetSheetRow(attendanceSheet, "A3", &workbookHeaders); err != nil {
		return err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}
	if err := f.SetRowStyle(attendanceSheet, 3, 3, bold); err != nil {
		return err
	}

	row := 4
	for _, day := range report.Days {
		cell, _ := excelize.CoordinatesToCellName(1, row)
		values := []interface{}{
			day.Date.Format(dateKeyLayout),
			utils.Format(day.Slots.AMIn),
			utils.Format(day.Slots.AMOut),
			utils.Format(day.Slots.PMIn),
			utils.Format(day.Slots.PMOut),
			utils.Format(day.Slots.OTIn),
			utils.Format(day.Slots.OTOut),
			string(day.Shift),
			Hours(day.Breakdown.Day),
			Hours(day.Breakdown.Night),
			Hours(day.Breakdown.Graveyard),
			Hours(day.Breakdown.Overtime),
			Hours(day.Worked),
			day.LatenessMinutes,
			utils.FormatBoolean(day.NeedsReview, "Yes", ""),
		}
		if err := f.SetSheetRow(attendanceSheet, cell, &values); err != nil {
			return err
		}
		row++
	}

	cell, _ := excelize.CoordinatesToCellName(1, row)
	totals := []interface{}{
		"Total", "", "", "", "", "", "", "",
		Hours(report.Totals.Breakdown.Day),
		Hours(report.Totals.Breakdown.Night),
		Hours(report.Totals.Breakdown.Graveyard),
		Hours(report.Totals.Breakdown.Overtime),
		Hours(report.Totals.Worked),
		report.Totals.LatenessMinutes,
		report.Totals.NeedsReview,
	}
	if err := f.SetSheetRow(attendanceSheet, cell, &totals); err != nil {
		return err
	}
	if err := f.SetRowStyle(attendanceSheet, row, row, bold); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
