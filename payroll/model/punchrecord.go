package model

import "time"

type PunchRecord struct {
	ID           int64     `gorm:"primaryKey;column:id" json:"id"`
	EmployeeID   string    `gorm:"column:employee_id;type:varchar(30);not null;index:idx_punch_employee_date,priority:1" json:"employeeId"`
	EmployeeName string    `gorm:"column:employee_name;type:varchar(150);not null" json:"employeeName"`
	LogCode      string    `gorm:"column:log_code;type:varchar(10);not null" json:"logCode"`
	LogDate      time.Time `gorm:"column:log_date;type:date;not null;index:idx_punch_employee_date,priority:2" json:"logDate"`
	LogTime      string    `gorm:"column:log_time;type:varchar(10);not null" json:"logTime"`

	UploadHistoryID int64 `gorm:"column:upload_history_id;not null;index" json:"uploadHistoryId"`

	CreatedAt time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP;<-:create" json:"createdAt"`
}

func (PunchRecord) TableName() string {
	return "punch_records"
}
