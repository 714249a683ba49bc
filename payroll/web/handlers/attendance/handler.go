package attendance

import (
	payroll "timekeeper.com/timekeeper/payroll/core"
	"timekeeper.com/timekeeper/payroll/repository"

	"github.com/gin-gonic/gin"
)

// UploadExtensions are the punch log file types accepted over HTTP.
var UploadExtensions = []string{".txt", ".dat", ".log"}

type Endpoint struct {
	repo    repository.PunchRepository
	options payroll.UploadOptions
}

func Register(r *gin.RouterGroup, repo repository.PunchRepository, options payroll.UploadOptions) {
	endpoint := &Endpoint{repo: repo, options: options}

	r.POST("/uploads", endpoint.Upload)
	r.GET("/uploads", endpoint.ListUploads)
	r.DELETE("/uploads/:id", endpoint.DeleteUpload)

	r.GET("/employees/:employeeId/attendance", endpoint.GetAttendance)
	r.GET("/employees/:employeeId/attendance.xlsx", endpoint.ExportAttendance)
}
