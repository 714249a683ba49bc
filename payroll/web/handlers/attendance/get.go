package attendance

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strings"

	payroll "timekeeper.com/timekeeper/payroll/core"
	"timekeeper.com/timekeeper/utils"
	web "timekeeper.com/timekeeper/web/common"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type AttendanceQuery struct {
	From string `form:"from" json:"from" binding:"omitempty,datetime=2006-01-02"`
	To   string `form:"to" json:"to" binding:"omitempty,datetime=2006-01-02"`
}

func (q AttendanceQuery) period() (payroll.DateRange, error) {
	from, err := utils.ParseOptionalDate(q.From)
	if err != nil {
		return payroll.DateRange{}, err
	}
	to, err := utils.ParseOptionalDate(q.To)
	if err != nil {
		return payroll.DateRange{}, err
	}
	if from != nil && to != nil && to.Before(*from) {
		return payroll.DateRange{}, fmt.Errorf("'to' must not be before 'from'")
	}
	return payroll.DateRange{From: from, To: to}, nil
}

// buildReport writes the error response itself and returns nil on failure.
func (ep *Endpoint) buildReport(c *gin.Context) *payroll.EmployeeReport {
	employeeID := strings.TrimSpace(c.Param("employeeId"))
	if employeeID == "" {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse("Invalid employee id"))
		return nil
	}

	var query AttendanceQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse(web.FormatBindingError(err)))
		return nil
	}
	period, err := query.period()
	if err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse(err.Error()))
		return nil
	}

	ctx := c.Request.Context()
	punches, err := ep.repo.FindPunchesByEmployee(ctx, employeeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return nil
	}
	profile, err := ep.repo.FindEmployee(ctx, employeeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return nil
	}

	report, err := payroll.BuildEmployeeReport(employeeID, punches, profile, period)
	if err != nil {
		if errors.Is(err, payroll.ErrNoRecords) {
			c.JSON(http.StatusNotFound, web.NewErrorResponse(fmt.Sprintf("No punch records found for employee %s", employeeID)))
			return nil
		}
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return nil
	}
	return report
}

func (ep *Endpoint) GetAttendance(c *gin.Context) {
	report := ep.buildReport(c)
	if report == nil {
		return
	}
	c.JSON(http.StatusOK, web.NewSuccessResponse(toReportDTO(report)))
}

func (ep *Endpoint) ExportAttendance(c *gin.Context) {
	report := ep.buildReport(c)
	if report == nil {
		return
	}

	var buf bytes.Buffer
	if err := payroll.WriteAttendanceWorkbook(&buf, report); err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="attendance-%s.xlsx"`, report.EmployeeID))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
