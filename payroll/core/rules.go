package core

import (
	"time"
)

// GracePeriod is added to the standard start of a shift to get the latest
// punch-in that is not late.
const GracePeriod = 15 * time.Minute

// Standard start of each IN slot.
var standardStarts = map[PunchCode]string{
	AMIn: "08:00:00",
	PMIn: "16:00:00",
	OTIn: "00:00:00",
}

// referenceDate anchors times-of-day so they can be compared and subtracted.
var referenceDate = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// Span is the elapsed time from in to out. An out earlier than in is taken to
// be on the next day. Missing or malformed endpoints give zero.
func Span(in, out string) time.Duration {
	if in == "" || out == "" {
		return 0
	}
	start, err := ParseTimeOnDate(referenceDate, in)
	if err != nil {
		return 0
	}
	finish, err := ParseTimeOnDate(referenceDate, out)
	if err != nil {
		return 0
	}

	if finish.Before(start) {
		finish = finish.Add(24 * time.Hour)
	}
	return finish.Sub(start)
}

// Cutoff returns the grace cutoff for an IN slot.
func Cutoff(code PunchCode) (time.Time, bool) {
	start, ok := standardStarts[code]
	if !ok {
		return time.Time{}, false
	}
	t, err := ParseTimeOnDate(referenceDate, start)
	if err != nil {
		return time.Time{}, false
	}
	return t.Add(GracePeriod), true
}

// LatenessMinutes returns whole minutes past the slot's cutoff, rounded down.
// Punches at or before the cutoff, non-IN codes and malformed times give zero.
func LatenessMinutes(code PunchCode, logged string) int {
	if logged == "" {
		return 0
	}
	cutoff, ok := Cutoff(code)
	if !ok {
		return 0
	}
	actual, err := ParseTimeOnDate(referenceDate, logged)
	if err != nil {
		return 0
	}

	if !actual.After(cutoff) {
		return 0
	}
	return int(actual.Sub(cutoff) / time.Minute)
}

// ParseTimeOnDate combines a base date with a time string (e.g. "08:00:00")
func ParseTimeOnDate(baseDate time.Time, timeStr string) (time.Time, error) {
	t, err := time.Parse("15:04:05", timeStr)
	if err != nil {
		t, err = time.Parse("15:04", timeStr)
	}
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(baseDate.Year(), baseDate.Month(), baseDate.Day(), t.Hour(), t.Minute(), t.Second(), 0, baseDate.Location()), nil
}
