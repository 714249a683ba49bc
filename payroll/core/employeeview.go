package core

import (
	"strconv"

	"timekeeper.com/timekeeper/payroll/model"
)

// EmployeeView is either a ProfiledEmployee or an UnlinkedEmployee.
type EmployeeView interface {
	DisplayName() string
	isEmployeeView()
}

// ProfiledEmployee is a punch-log employee that has an HR profile.
type ProfiledEmployee struct {
	Profile model.Employee
}

func (p ProfiledEmployee) DisplayName() string {
	return p.Profile.FullName()
}

func (ProfiledEmployee) isEmployeeView() {}

// UnlinkedEmployee is only known from the punch log.
type UnlinkedEmployee struct {
	ID   string
	Name string
}

func (u UnlinkedEmployee) DisplayName() string {
	return u.Name
}

func (UnlinkedEmployee) isEmployeeView() {}

// ResolveEmployeeView picks the profile when one was found for the id.
func ResolveEmployeeView(id, name string, profile *model.Employee) EmployeeView {
	if profile != nil {
		return ProfiledEmployee{Profile: *profile}
	}
	return UnlinkedEmployee{ID: id, Name: name}
}

// ProfileKey converts a punch-log employee id to the numeric profile key.
// Ids that are not numbers cannot have a profile.
func ProfileKey(employeeID string) (int64, bool) {
	id, err := strconv.ParseInt(employeeID, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
