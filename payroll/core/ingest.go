package core

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
)

// Column layout of a biometric punch log line. Offsets are characters, half-open.
var (
	employeeIDColumn   = column{8, 18}
	employeeNameColumn = column{19, 33}
	punchCodeColumn    = column{36, 37}
	dateColumn         = column{38, 48}
	timeColumn         = column{49, 57}
)

const (
	logDateLayout = "2006/01/02"
	lineWidth     = 57
)

const (
	ReasonMalformed       = "malformed"
	ReasonDateFormat      = "date_format"
	ReasonMissingIdentity = "missing_identity"
)

var (
	ErrEmptyUpload    = errors.New("upload is empty")
	ErrNoAcceptedRows = errors.New("upload has no valid punch rows")
)

type column struct {
	start int
	end   int
}

func (c column) slice(line []rune) string {
	return strings.TrimSpace(string(line[c.start:c.end]))
}

// RowError describes a skipped line. It never aborts the batch.
type RowError struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
	Text   string `json:"text"`
}

func (e RowError) String() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
}

type ParseResult struct {
	Punches []PunchEvent
	Errors  []RowError
}

func (r *ParseResult) Accepted() int {
	return len(r.Punches)
}

func (r *ParseResult) Rejected() int {
	return len(r.Errors)
}

// ParsePunchLine converts one data line. lineNo is 1-based and only used for reporting.
func ParsePunchLine(line string, lineNo int) (PunchEvent, *RowError) {
	runes := []rune(strings.TrimRight(line, "\r\n"))
	if len(runes) < lineWidth {
		return PunchEvent{}, &RowError{Line: lineNo, Reason: ReasonMalformed, Text: line}
	}

	id := employeeIDColumn.slice(runes)
	name := employeeNameColumn.slice(runes)
	if id == "" || name == "" {
		return PunchEvent{}, &RowError{Line: lineNo, Reason: ReasonMissingIdentity, Text: line}
	}

	date, err := time.ParseInLocation(logDateLayout, dateColumn.slice(runes), time.UTC)
	if err != nil {
		return PunchEvent{}, &RowError{Line: lineNo, Reason: ReasonDateFormat, Text: line}
	}

	raw := punchCodeColumn.slice(runes)
	return PunchEvent{
		EmployeeID:   id,
		EmployeeName: name,
		Code:         ParsePunchCode(raw),
		RawCode:      raw,
		Date:         date,
		Time:         timeColumn.slice(runes),
	}, nil
}

// ParsePunchLog reads a whole punch log. The first line is a header and is skipped,
// blank lines are ignored. When the upload has data lines but none are accepted the
// result is returned together with ErrNoAcceptedRows so the caller can report them.
func ParsePunchLog(r io.Reader) (*ParseResult, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	result := &ParseResult{}
	lineNo := 0
	dataLines := 0
	for scanner.Scan() {
		lineNo++
		if lineNo == 1 {
			continue
		}

		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		dataLines++

		punch, rowErr := ParsePunchLine(line, lineNo)
		if rowErr != nil {
			result.Errors = append(result.Errors, *rowErr)
			continue
		}
		result.Punches = append(result.Punches, punch)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read punch log: %w", err)
	}

	if dataLines == 0 {
		return nil, ErrEmptyUpload
	}
	if len(result.Punches) == 0 {
		return result, ErrNoAcceptedRows
	}
	return result, nil
}
