package attendance

import (
	payroll "timekeeper.com/timekeeper/payroll/core"
	"timekeeper.com/timekeeper/payroll/model"
	"timekeeper.com/timekeeper/utils"
	web "timekeeper.com/timekeeper/web/common"
)

type UploadHistoryDTO struct {
	ID           int64             `json:"id"`
	Reference    string            `json:"reference"`
	UploadedBy   string            `json:"uploadedBy"`
	FileName     string            `json:"fileName"`
	UploadTime   web.LocalDateTime `json:"uploadTime"`
	Status       string            `json:"status"`
	Details      string            `json:"details"`
	AcceptedRows int               `json:"acceptedRows"`
	RejectedRows int               `json:"rejectedRows"`
	ArchiveKey   *string           `json:"archiveKey"`
}

type UploadResultDTO struct {
	History  UploadHistoryDTO   `json:"history"`
	Accepted int                `json:"accepted"`
	Rejected int                `json:"rejected"`
	Errors   []payroll.RowError `json:"errors"`
}

type DeleteResultDTO struct {
	History        UploadHistoryDTO `json:"history"`
	DeletedPunches int64            `json:"deletedPunches"`
}

type SlotsDTO struct {
	AMIn  *string `json:"amIn"`
	AMOut *string `json:"amOut"`
	PMIn  *string `json:"pmIn"`
	PMOut *string `json:"pmOut"`
	OTIn  *string `json:"otIn"`
	OTOut *string `json:"otOut"`
}

// BreakdownDTO holds hours rounded to hundredths.
type BreakdownDTO struct {
	Day       float64 `json:"day"`
	Night     float64 `json:"night"`
	Graveyard float64 `json:"graveyard"`
	Overtime  float64 `json:"overtime"`
}

type PunchDTO struct {
	Code string `json:"code"`
	Kind string `json:"kind"`
	Date string `json:"date"`
	Time string `json:"time"`
}

type DailyAttendanceDTO struct {
	Date            web.DateOnly `json:"date"`
	Slots           SlotsDTO     `json:"slots"`
	Shift           string       `json:"shift"`
	WorkedHours     float64      `json:"workedHours"`
	OvertimeHours   float64      `json:"overtimeHours"`
	Breakdown       BreakdownDTO `json:"breakdown"`
	LatenessMinutes int          `json:"latenessMinutes"`
	CrossesMidnight bool         `json:"crossesMidnight"`
	NeedsReview     bool         `json:"needsReview"`
	Punches         []PunchDTO   `json:"punches"`
}

type TotalsDTO struct {
	Days            int          `json:"days"`
	NeedsReview     int          `json:"needsReview"`
	WorkedHours     float64      `json:"workedHours"`
	Breakdown       BreakdownDTO `json:"breakdown"`
	LatenessMinutes int          `json:"latenessMinutes"`
}

// EmployeeDTO is the profile when the employee has one. Linked tells the two apart.
type EmployeeDTO struct {
	Linked      bool            `json:"linked"`
	DisplayName string          `json:"displayName"`
	Profile     *model.Employee `json:"profile,omitempty"`
}

type EmployeeReportDTO struct {
	EmployeeID   string               `json:"employeeId"`
	EmployeeName string               `json:"employeeName"`
	Employee     EmployeeDTO          `json:"employee"`
	Days         []DailyAttendanceDTO `json:"days"`
	Totals       TotalsDTO            `json:"totals"`
}

func toHistoryDTO(h model.UploadHistory) UploadHistoryDTO {
	return UploadHistoryDTO{
		ID:           h.ID,
		Reference:    h.Reference,
		UploadedBy:   h.UploadedBy,
		FileName:     h.FileName,
		UploadTime:   web.NewLocalDateTime(h.UploadTime),
		Status:       h.Status,
		Details:      h.Details,
		AcceptedRows: h.AcceptedRows,
		RejectedRows: h.RejectedRows,
		ArchiveKey:   h.ArchiveKey,
	}
}

func toUploadResultDTO(r *payroll.UploadResult) UploadResultDTO {
	errs := r.Errors
	if errs == nil {
		errs = []payroll.RowError{}
	}
	return UploadResultDTO{
		History:  toHistoryDTO(*r.History),
		Accepted: r.Accepted,
		Rejected: r.Rejected,
		Errors:   errs,
	}
}

func toBreakdownDTO(b payroll.Breakdown) BreakdownDTO {
	return BreakdownDTO{
		Day:       payroll.Hours(b.Day),
		Night:     payroll.Hours(b.Night),
		Graveyard: payroll.Hours(b.Graveyard),
		Overtime:  payroll.Hours(b.Overtime),
	}
}

func toEmployeeDTO(view payroll.EmployeeView) EmployeeDTO {
	switch v := view.(type) {
	case payroll.ProfiledEmployee:
		return EmployeeDTO{Linked: true, DisplayName: v.DisplayName(), Profile: utils.Ptr(v.Profile)}
	default:
		return EmployeeDTO{DisplayName: view.DisplayName()}
	}
}

func toDailyDTO(d payroll.DailyAttendance) DailyAttendanceDTO {
	return DailyAttendanceDTO{
		Date: web.NewDateOnly(d.Date),
		Slots: SlotsDTO{
			AMIn:  d.Slots.AMIn,
			AMOut: d.Slots.AMOut,
			PMIn:  d.Slots.PMIn,
			PMOut: d.Slots.PMOut,
			OTIn:  d.Slots.OTIn,
			OTOut: d.Slots.OTOut,
		},
		Shift:           string(d.Shift),
		WorkedHours:     payroll.Hours(d.Worked),
		OvertimeHours:   payroll.Hours(d.Overtime),
		Breakdown:       toBreakdownDTO(d.Breakdown),
		LatenessMinutes: d.LatenessMinutes,
		CrossesMidnight: d.CrossesMidnight,
		NeedsReview:     d.NeedsReview,
		Punches: utils.Map(d.RawPunches, func(p payroll.PunchEvent) PunchDTO {
			return PunchDTO{Code: p.RawCode, Kind: p.Code.String(), Date: p.DateKey(), Time: p.Time}
		}),
	}
}

func toReportDTO(r *payroll.EmployeeReport) EmployeeReportDTO {
	return EmployeeReportDTO{
		EmployeeID:   r.EmployeeID,
		EmployeeName: r.EmployeeName,
		Employee:     toEmployeeDTO(r.Employee),
		Days:         utils.Map(r.Days, toDailyDTO),
		Totals: TotalsDTO{
			Days:            r.Totals.Days,
			NeedsReview:     r.Totals.NeedsReview,
			WorkedHours:     payroll.Hours(r.Totals.Worked),
			Breakdown:       toBreakdownDTO(r.Totals.Breakdown),
			LatenessMinutes: r.Totals.LatenessMinutes,
		},
	}
}
