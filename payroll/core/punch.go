package core

import (
	"fmt"
	"time"
)

// PunchCode is the single digit a time clock writes for the kind of punch.
type PunchCode int

const (
	AMIn  PunchCode = 0
	AMOut PunchCode = 1
	PMIn  PunchCode = 2
	PMOut PunchCode = 3
	OTIn  PunchCode = 5
	OTOut PunchCode = 6

	PunchUnknown PunchCode = -1
)

// ParsePunchCode maps the raw code column to a PunchCode.
func ParsePunchCode(s string) PunchCode {
	switch s {
	case "0":
		return AMIn
	case "1":
		return AMOut
	case "2":
		return PMIn
	case "3":
		return PMOut
	case "5":
		return OTIn
	case "6":
		return OTOut
	}
	return PunchUnknown
}

// IsOut reports whether the code closes a shift.
func (c PunchCode) IsOut() bool {
	return c == AMOut || c == PMOut || c == OTOut
}

// Raw returns the digit as written in the log file.
func (c PunchCode) Raw() string {
	if c == PunchUnknown {
		return "?"
	}
	return fmt.Sprintf("%d", int(c))
}

func (c PunchCode) String() string {
	switch c {
	case AMIn:
		return "AM_IN"
	case AMOut:
		return "AM_OUT"
	case PMIn:
		return "PM_IN"
	case PMOut:
		return "PM_OUT"
	case OTIn:
		return "OT_IN"
	case OTOut:
		return "OT_OUT"
	}
	return "UNKNOWN"
}

// PunchEvent is one accepted line of a punch log.
type PunchEvent struct {
	EmployeeID   string
	EmployeeName string
	Code         PunchCode
	// RawCode keeps the column text so unknown codes survive a round trip.
	RawCode string
	// Date is midnight UTC of the calendar date printed on the line.
	Date time.Time
	// Time is the HH:MM:SS text as logged. It is validated lazily.
	Time string
}

// DateKey is the yyyy-mm-dd form of the punch date.
func (p PunchEvent) DateKey() string {
	return p.Date.Format(dateKeyLayout)
}

const dateKeyLayout = "2006-01-02"
