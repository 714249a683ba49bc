package core

import (
	"errors"
	"sort"
	"time"

	"timekeeper.com/timekeeper/utils"
)

type ShiftType string

const (
	ShiftDay          ShiftType = "DAY"
	ShiftNight        ShiftType = "NIGHT"
	ShiftGraveyard    ShiftType = "GRAVEYARD"
	ShiftUnclassified ShiftType = "UNCLASSIFIED"
)

// ErrNoRecords is returned when an employee has no punches at all.
var ErrNoRecords = errors.New("no punch records found")

// Slots holds the first logged time for each punch kind of a day. Nil means no punch.
type Slots struct {
	AMIn  *string
	AMOut *string
	PMIn  *string
	PMOut *string
	OTIn  *string
	OTOut *string
}

func (s *Slots) slot(code PunchCode) **string {
	switch code {
	case AMIn:
		return &s.AMIn
	case AMOut:
		return &s.AMOut
	case PMIn:
		return &s.PMIn
	case PMOut:
		return &s.PMOut
	case OTIn:
		return &s.OTIn
	case OTOut:
		return &s.OTOut
	}
	return nil
}

// Get returns the slot value for code, nil when empty or not a slot.
func (s Slots) Get(code PunchCode) *string {
	if p := s.slot(code); p != nil {
		return *p
	}
	return nil
}

func (s Slots) empty() bool {
	return s.AMIn == nil && s.AMOut == nil && s.PMIn == nil &&
		s.PMOut == nil && s.OTIn == nil && s.OTOut == nil
}

// Breakdown splits worked time by category. At most one of Day, Night and
// Graveyard is non-zero.
type Breakdown struct {
	Day       time.Duration
	Night     time.Duration
	Graveyard time.Duration
	Overtime  time.Duration
}

func (b Breakdown) Total() time.Duration {
	return b.Day + b.Night + b.Graveyard + b.Overtime
}

// DailyAttendance is the summary of one logical work day.
type DailyAttendance struct {
	Date            time.Time
	Slots           Slots
	Shift           ShiftType
	Worked          time.Duration
	Overtime        time.Duration
	Breakdown       Breakdown
	LatenessMinutes int
	// CrossesMidnight is set when an OUT punch from the next calendar day closed
	// a shift opened on Date.
	CrossesMidnight bool
	// NeedsReview marks days that hold punches but match no shift pattern.
	NeedsReview bool
	RawPunches  []PunchEvent
}

// dayBuilder accumulates the punches of one logical day.
type dayBuilder struct {
	date            time.Time
	slots           Slots
	raw             []PunchEvent
	crossesMidnight bool
}

func newDayBuilder(date time.Time) *dayBuilder {
	return &dayBuilder{date: date}
}

func (b *dayBuilder) add(p PunchEvent) {
	b.raw = append(b.raw, p)
	if slot := b.slots.slot(p.Code); slot != nil && *slot == nil {
		*slot = utils.Ptr(p.Time)
	}
}

// openShiftFor reports which IN punch an OUT punch of code would close on this
// day. An IN is open only while it has no OUT of its own: AM_IN closes with
// AM_OUT or PM_OUT, PM_IN with PM_OUT. AM is checked before PM.
func (b *dayBuilder) openShiftFor(code PunchCode) (PunchCode, bool) {
	s := b.slots
	if s.Get(code) != nil {
		return PunchUnknown, false
	}
	switch code {
	case AMOut, PMOut:
		if s.AMIn != nil && s.AMOut == nil && s.PMOut == nil {
			return AMIn, true
		}
		if s.PMIn != nil && s.PMOut == nil {
			return PMIn, true
		}
	case OTOut:
		if s.OTIn != nil && s.OTOut == nil {
			return OTIn, true
		}
	}
	return PunchUnknown, false
}

func (b *dayBuilder) finalize() DailyAttendance {
	s := b.slots
	day := DailyAttendance{
		Date:            b.date,
		Slots:           s,
		Shift:           ShiftUnclassified,
		CrossesMidnight: b.crossesMidnight,
		RawPunches:      append([]PunchEvent(nil), b.raw...),
	}

	switch {
	case s.AMIn != nil && s.PMOut != nil:
		day.Shift = ShiftDay
		day.Breakdown.Day = Span(*s.AMIn, *s.PMOut)
	case s.PMIn != nil && s.PMOut != nil:
		day.Shift = ShiftNight
		day.Breakdown.Night = Span(*s.PMIn, *s.PMOut)
	case s.AMIn != nil && s.AMOut != nil:
		day.Shift = ShiftGraveyard
		day.Breakdown.Graveyard = Span(*s.AMIn, *s.AMOut)
	}

	if s.OTIn != nil && s.OTOut != nil {
		day.Breakdown.Overtime = Span(*s.OTIn, *s.OTOut)
	}

	day.Overtime = day.Breakdown.Overtime
	day.Worked = day.Breakdown.Total()
	day.LatenessMinutes = LatenessMinutes(AMIn, utils.Format(s.AMIn)) +
		LatenessMinutes(PMIn, utils.Format(s.PMIn)) +
		LatenessMinutes(OTIn, utils.Format(s.OTIn))
	day.NeedsReview = day.Shift == ShiftUnclassified && !s.empty()

	return day
}

// Reconstruct groups one employee's punches into logical days, newest first.
func Reconstruct(punches []PunchEvent) ([]DailyAttendance, error) {
	if len(punches) == 0 {
		return nil, ErrNoRecords
	}

	ordered := make([]PunchEvent, len(punches))
	copy(ordered, punches)
	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].Date.Equal(ordered[j].Date) {
			return ordered[i].Date.Before(ordered[j].Date)
		}
		return ordered[i].Time < ordered[j].Time
	})

	days := make(map[string]*dayBuilder)
	for _, p := range ordered {
		key := p.DateKey()

		carried := false
		if p.Code.IsOut() {
			prevKey := p.Date.AddDate(0, 0, -1).Format(dateKeyLayout)
			if prev, ok := days[prevKey]; ok {
				if _, open := prev.openShiftFor(p.Code); open {
					key = prevKey
					carried = true
				}
			}
		}

		b, ok := days[key]
		if !ok {
			b = newDayBuilder(p.Date)
			days[key] = b
		}
		b.add(p)
		if carried {
			b.crossesMidnight = true
		}
	}

	result := make([]DailyAttendance, 0, len(days))
	for _, b := range days {
		result = append(result, b.finalize())
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Date.After(result[j].Date)
	})

	return result, nil
}
