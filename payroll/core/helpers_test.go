package core

import (
	"fmt"
	"strings"
	"time"
)

// logLine builds a fixed-width punch log line.
func logLine(id, name, code, date, clock string) string {
	return fmt.Sprintf("%-8s%-10s %-14s   %1s %-10s %-8s", "0001", id, name, code, date, clock)
}

func logFile(lines ...string) string {
	header := "No      EnNo       Name             Mode DateTime"
	return strings.Join(append([]string{header}, lines...), "\n") + "\n"
}

func day(s string) time.Time {
	t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}

func punch(code PunchCode, date, clock string) PunchEvent {
	return PunchEvent{
		EmployeeID:   "1001",
		EmployeeName: "Juan Cruz",
		Code:         code,
		RawCode:      code.Raw(),
		Date:         day(date),
		Time:         clock,
	}
}
