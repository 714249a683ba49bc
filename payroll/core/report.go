package core

import (
	"math"
	"time"

	"timekeeper.com/timekeeper/payroll/model"
	"timekeeper.com/timekeeper/utils"
)

// DateRange limits a report to logical dates in [From, To]. Nil bounds are open.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

func (r DateRange) Contains(d time.Time) bool {
	if r.From != nil && d.Before(*r.From) {
		return false
	}
	if r.To != nil && d.After(*r.To) {
		return false
	}
	return true
}

type Totals struct {
	Days            int
	NeedsReview     int
	Worked          time.Duration
	Breakdown       Breakdown
	LatenessMinutes int
}

type EmployeeReport struct {
	EmployeeID   string
	EmployeeName string
	Employee     EmployeeView
	Days         []DailyAttendance
	Totals       Totals
}

// BuildEmployeeReport reconstructs the attendance of one employee. The range is
// applied after reconstruction so shifts crossing a range boundary are grouped
// the same way as in an unfiltered report.
func BuildEmployeeReport(employeeID string, punches []PunchEvent, profile *model.Employee, period DateRange) (*EmployeeReport, error) {
	days, err := Reconstruct(punches)
	if err != nil {
		return nil, err
	}

	name := latestName(punches)
	report := &EmployeeReport{
		EmployeeID:   employeeID,
		EmployeeName: name,
		Employee:     ResolveEmployeeView(employeeID, name, profile),
	}

	report.Days = utils.Filter(days, func(d DailyAttendance) bool {
		return period.Contains(d.Date)
	})
	for _, day := range report.Days {
		report.Totals.Days++
		if day.NeedsReview {
			report.Totals.NeedsReview++
		}
		report.Totals.Worked += day.Worked
		report.Totals.Breakdown.Day += day.Breakdown.Day
		report.Totals.Breakdown.Night += day.Breakdown.Night
		report.Totals.Breakdown.Graveyard += day.Breakdown.Graveyard
		report.Totals.Breakdown.Overtime += day.Breakdown.Overtime
		report.Totals.LatenessMinutes += day.LatenessMinutes
	}

	return report, nil
}

func latestName(punches []PunchEvent) string {
	var name string
	var latest PunchEvent
	for i, p := range punches {
		if i == 0 || !p.Date.Before(latest.Date) {
			latest = p
			name = p.EmployeeName
		}
	}
	return name
}

// Hours rounds a duration to hundredths of an hour.
func Hours(d time.Duration) float64 {
	return math.Round(d.Hours()*100) / 100
}
