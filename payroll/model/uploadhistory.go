package model

import "time"

const (
	UploadStatusSuccess = "Success"
	UploadStatusFailed  = "Failed"
)

type UploadHistory struct {
	ID           int64     `gorm:"primaryKey;column:id" json:"id"`
	Reference    string    `gorm:"column:reference;type:varchar(36);uniqueIndex;not null" json:"reference"`
	UploadedBy   string    `gorm:"column:uploaded_by;type:varchar(100);not null;default:'hr'" json:"uploadedBy"`
	FileName     string    `gorm:"column:file_name;type:varchar(255);not null" json:"fileName"`
	UploadTime   time.Time `gorm:"column:upload_time;type:timestamp;not null;index" json:"uploadTime"`
	Status       string    `gorm:"column:status;type:varchar(20);not null" json:"status"`
	Details      string    `gorm:"column:details;type:text" json:"details"`
	AcceptedRows int       `gorm:"column:accepted_rows;not null;default:0" json:"acceptedRows"`
	RejectedRows int       `gorm:"column:rejected_rows;not null;default:0" json:"rejectedRows"`
	ArchiveKey   *string   `gorm:"column:archive_key;type:varchar(512);null" json:"archiveKey"`

	Punches []PunchRecord `gorm:"foreignKey:UploadHistoryID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (UploadHistory) TableName() string {
	return "upload_histories"
}
