package model

import (
	"strings"
	"time"
)

// Employee is the HR profile of a person. Profiles are maintained elsewhere;
// attendance only reads them.
type Employee struct {
	ID         int64     `gorm:"primaryKey;column:id" json:"id"`
	EmployeeID int64     `gorm:"column:employee_id;uniqueIndex;not null" json:"employeeId"`
	FirstName  string    `gorm:"column:first_name;type:varchar(100);not null" json:"firstName"`
	LastName   string    `gorm:"column:last_name;type:varchar(100);not null" json:"lastName"`
	MiddleName *string   `gorm:"column:middle_name;type:varchar(100);null" json:"middleName"`
	Department string    `gorm:"column:department;type:varchar(100);not null" json:"department"`
	CreatedAt  time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP;<-:create" json:"createdAt"`
}

func (Employee) TableName() string {
	return "employees"
}

func (e Employee) FullName() string {
	parts := []string{e.FirstName}
	if e.MiddleName != nil && *e.MiddleName != "" {
		parts = append(parts, *e.MiddleName)
	}
	parts = append(parts, e.LastName)
	return strings.Join(parts, " ")
}
