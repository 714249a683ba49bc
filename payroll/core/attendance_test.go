package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconstructNoPunches(t *testing.T) {
	days, err := Reconstruct(nil)
	assert.ErrorIs(t, err, ErrNoRecords)
	assert.Nil(t, days)
}

func TestReconstructShiftClassification(t *testing.T) {
	tests := []struct {
		name      string
		punches   []PunchEvent
		shift     ShiftType
		breakdown Breakdown
		worked    time.Duration
		review    bool
	}{
		{
			name: "Day shift",
			punches: []PunchEvent{
				punch(AMIn, "2025-01-10", "08:05:00"),
				punch(PMOut, "2025-01-10", "17:30:00"),
			},
			shift:     ShiftDay,
			breakdown: Breakdown{Day: 9*time.Hour + 25*time.Minute},
			worked:    9*time.Hour + 25*time.Minute,
		},
		{
			name: "Day shift wins over night when all four are present",
			punches: []PunchEvent{
				punch(AMIn, "2025-01-10", "08:00:00"),
				punch(AMOut, "2025-01-10", "12:00:00"),
				punch(PMIn, "2025-01-10", "13:00:00"),
				punch(PMOut, "2025-01-10", "17:00:00"),
			},
			shift:     ShiftDay,
			breakdown: Breakdown{Day: 9 * time.Hour},
			worked:    9 * time.Hour,
		},
		{
			name: "Night shift",
			punches: []PunchEvent{
				punch(PMIn, "2025-01-10", "16:00:00"),
				punch(PMOut, "2025-01-10", "23:30:00"),
			},
			shift:     ShiftNight,
			breakdown: Breakdown{Night: 7*time.Hour + 30*time.Minute},
			worked:    7*time.Hour + 30*time.Minute,
		},
		{
			name: "Graveyard shift",
			punches: []PunchEvent{
				punch(AMIn, "2025-01-10", "00:10:00"),
				punch(AMOut, "2025-01-10", "06:10:00"),
			},
			shift:     ShiftGraveyard,
			breakdown: Breakdown{Graveyard: 6 * time.Hour},
			worked:    6 * time.Hour,
		},
		{
			name: "Overtime is added to the shift",
			punches: []PunchEvent{
				punch(AMIn, "2025-01-10", "08:00:00"),
				punch(PMOut, "2025-01-10", "17:00:00"),
				punch(OTIn, "2025-01-10", "18:00:00"),
				punch(OTOut, "2025-01-10", "20:30:00"),
			},
			shift:     ShiftDay,
			breakdown: Breakdown{Day: 9 * time.Hour, Overtime: 2*time.Hour + 30*time.Minute},
			worked:    11*time.Hour + 30*time.Minute,
		},
		{
			name: "Overtime only",
			punches: []PunchEvent{
				punch(OTIn, "2025-01-10", "18:00:00"),
				punch(OTOut, "2025-01-10", "20:00:00"),
			},
			shift:     ShiftUnclassified,
			breakdown: Breakdown{Overtime: 2 * time.Hour},
			worked:    2 * time.Hour,
			review:    true,
		},
		{
			name: "AM in only",
			punches: []PunchEvent{
				punch(AMIn, "2025-01-10", "08:00:00"),
			},
			shift:  ShiftUnclassified,
			review: true,
		},
		{
			name: "PM in with AM out is left unclassified",
			punches: []PunchEvent{
				punch(PMIn, "2025-01-10", "13:00:00"),
				punch(AMOut, "2025-01-10", "15:00:00"),
			},
			shift:  ShiftUnclassified,
			review: true,
		},
		{
			name: "Malformed time degrades to zero",
			punches: []PunchEvent{
				punch(AMIn, "2025-01-10", "8h"),
				punch(PMOut, "2025-01-10", "17:00:00"),
			},
			shift: ShiftDay,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days, err := Reconstruct(tt.punches)
			require.NoError(t, err)
			require.Len(t, days, 1)

			d := days[0]
			assert.Equal(t, tt.shift, d.Shift)
			assert.Equal(t, tt.breakdown, d.Breakdown)
			assert.Equal(t, tt.worked, d.Worked)
			assert.Equal(t, tt.breakdown.Overtime, d.Overtime)
			assert.Equal(t, tt.review, d.NeedsReview)
			assert.Len(t, d.RawPunches, len(tt.punches))
		})
	}
}

func TestReconstructAMInOnlyKeepsTime(t *testing.T) {
	days, err := Reconstruct([]PunchEvent{punch(AMIn, "2025-01-10", "08:20:00")})
	require.NoError(t, err)
	require.Len(t, days, 1)

	require.NotNil(t, days[0].Slots.AMIn)
	assert.Equal(t, "08:20:00", *days[0].Slots.AMIn)
	assert.Nil(t, days[0].Slots.AMOut)
	assert.Equal(t, time.Duration(0), days[0].Worked)
	assert.Equal(t, 5, days[0].LatenessMinutes)
}

func TestReconstructFirstPunchWins(t *testing.T) {
	days, err := Reconstruct([]PunchEvent{
		punch(AMIn, "2025-01-10", "08:30:00"),
		punch(AMIn, "2025-01-10", "08:02:00"),
		punch(PMOut, "2025-01-10", "17:00:00"),
		punch(PMOut, "2025-01-10", "17:05:00"),
	})
	require.NoError(t, err)
	require.Len(t, days, 1)

	d := days[0]
	assert.Equal(t, "08:02:00", *d.Slots.AMIn)
	assert.Equal(t, "17:00:00", *d.Slots.PMOut)
	assert.Equal(t, 8*time.Hour+58*time.Minute, d.Worked)
	assert.Equal(t, 0, d.LatenessMinutes)
	require.Len(t, d.RawPunches, 4)
	assert.Equal(t, "08:02:00", d.RawPunches[0].Time)
	assert.Equal(t, "17:05:00", d.RawPunches[3].Time)
}

func TestReconstructCrossMidnight(t *testing.T) {
	t.Run("AM out closes previous day", func(t *testing.T) {
		days, err := Reconstruct([]PunchEvent{
			punch(AMIn, "2025-01-10", "20:00:00"),
			punch(AMOut, "2025-01-11", "04:00:00"),
		})
		require.NoError(t, err)
		require.Len(t, days, 1)

		d := days[0]
		assert.Equal(t, day("2025-01-10"), d.Date)
		assert.True(t, d.CrossesMidnight)
		assert.Equal(t, ShiftGraveyard, d.Shift)
		assert.Equal(t, 8*time.Hour, d.Worked)
	})

	t.Run("PM in with next day AM out stays unclassified", func(t *testing.T) {
		days, err := Reconstruct([]PunchEvent{
			punch(PMIn, "2025-01-10", "22:00:00"),
			punch(AMOut, "2025-01-11", "06:00:00"),
		})
		require.NoError(t, err)
		require.Len(t, days, 1)

		d := days[0]
		assert.Equal(t, day("2025-01-10"), d.Date)
		assert.Equal(t, ShiftUnclassified, d.Shift)
		assert.Equal(t, time.Duration(0), d.Worked)
		assert.True(t, d.NeedsReview)
		assert.Equal(t, "06:00:00", *d.Slots.AMOut)
		assert.Equal(t, 345, d.LatenessMinutes)
	})

	t.Run("Night shift closed after midnight", func(t *testing.T) {
		days, err := Reconstruct([]PunchEvent{
			punch(PMIn, "2025-01-10", "16:00:00"),
			punch(PMOut, "2025-01-11", "00:30:00"),
		})
		require.NoError(t, err)
		require.Len(t, days, 1)
		assert.Equal(t, ShiftNight, days[0].Shift)
		assert.Equal(t, 8*time.Hour+30*time.Minute, days[0].Worked)
	})

	t.Run("Overtime closed after midnight", func(t *testing.T) {
		days, err := Reconstruct([]PunchEvent{
			punch(AMIn, "2025-01-10", "08:00:00"),
			punch(PMOut, "2025-01-10", "17:00:00"),
			punch(OTIn, "2025-01-10", "22:00:00"),
			punch(OTOut, "2025-01-11", "01:00:00"),
		})
		require.NoError(t, err)
		require.Len(t, days, 1)
		assert.Equal(t, 3*time.Hour, days[0].Overtime)
		assert.Equal(t, 12*time.Hour, days[0].Worked)
	})

	t.Run("OUT with its slot already filled starts a new day", func(t *testing.T) {
		days, err := Reconstruct([]PunchEvent{
			punch(AMIn, "2025-01-10", "08:00:00"),
			punch(PMOut, "2025-01-10", "17:00:00"),
			punch(PMOut, "2025-01-11", "17:00:00"),
		})
		require.NoError(t, err)
		require.Len(t, days, 2)
		assert.Equal(t, day("2025-01-11"), days[0].Date)
		assert.False(t, days[0].CrossesMidnight)
		assert.Equal(t, day("2025-01-10"), days[1].Date)
	})

	t.Run("Open shift on the previous day takes the OUT first", func(t *testing.T) {
		days, err := Reconstruct([]PunchEvent{
			punch(AMIn, "2025-01-10", "08:00:00"),
			punch(AMIn, "2025-01-11", "08:00:00"),
			punch(PMOut, "2025-01-11", "17:00:00"),
		})
		require.NoError(t, err)
		require.Len(t, days, 2)
		assert.Equal(t, ShiftUnclassified, days[0].Shift)
		assert.Equal(t, ShiftDay, days[1].Shift)
		assert.Equal(t, 9*time.Hour, days[1].Worked)
	})

	t.Run("Closed half day keeps the next day's OUT", func(t *testing.T) {
		days, err := Reconstruct([]PunchEvent{
			punch(AMIn, "2025-01-10", "08:00:00"),
			punch(AMOut, "2025-01-10", "12:00:00"),
			punch(AMIn, "2025-01-11", "08:00:00"),
			punch(PMOut, "2025-01-11", "17:00:00"),
		})
		require.NoError(t, err)
		require.Len(t, days, 2)

		next, prev := days[0], days[1]
		assert.Equal(t, day("2025-01-11"), next.Date)
		assert.Equal(t, ShiftDay, next.Shift)
		assert.Equal(t, 9*time.Hour, next.Worked)
		assert.False(t, next.CrossesMidnight)
		assert.Len(t, next.RawPunches, 2)

		assert.Equal(t, day("2025-01-10"), prev.Date)
		assert.Equal(t, ShiftGraveyard, prev.Shift)
		assert.Equal(t, 4*time.Hour, prev.Worked)
		assert.False(t, prev.CrossesMidnight)
		assert.Nil(t, prev.Slots.PMOut)
	})

	t.Run("Closed PM shift keeps the next day's AM out", func(t *testing.T) {
		days, err := Reconstruct([]PunchEvent{
			punch(PMIn, "2025-01-10", "16:00:00"),
			punch(PMOut, "2025-01-10", "23:00:00"),
			punch(AMOut, "2025-01-11", "04:00:00"),
		})
		require.NoError(t, err)
		require.Len(t, days, 2)
		assert.Equal(t, day("2025-01-11"), days[0].Date)
		assert.True(t, days[0].NeedsReview)
		assert.Equal(t, ShiftNight, days[1].Shift)
		assert.Nil(t, days[1].Slots.AMOut)
	})

	t.Run("IN punches never move", func(t *testing.T) {
		days, err := Reconstruct([]PunchEvent{
			punch(AMIn, "2025-01-10", "08:00:00"),
			punch(AMIn, "2025-01-11", "08:00:00"),
		})
		require.NoError(t, err)
		assert.Len(t, days, 2)
	})

	t.Run("Only the previous calendar day is considered", func(t *testing.T) {
		days, err := Reconstruct([]PunchEvent{
			punch(AMIn, "2025-01-10", "08:00:00"),
			punch(PMOut, "2025-01-12", "02:00:00"),
		})
		require.NoError(t, err)
		require.Len(t, days, 2)
		assert.Equal(t, ShiftUnclassified, days[0].Shift)
		assert.Equal(t, day("2025-01-12"), days[0].Date)
	})
}

func TestOpenShiftForChecksAMBeforePM(t *testing.T) {
	b := newDayBuilder(day("2025-01-10"))
	b.add(punch(PMIn, "2025-01-10", "16:00:00"))
	b.add(punch(AMIn, "2025-01-10", "08:00:00"))

	in, ok := b.openShiftFor(PMOut)
	assert.True(t, ok)
	assert.Equal(t, AMIn, in)

	in, ok = b.openShiftFor(OTOut)
	assert.False(t, ok)
	assert.Equal(t, PunchUnknown, in)

	// AM closed by its own OUT, PM still open
	b.add(punch(AMOut, "2025-01-10", "12:00:00"))
	in, ok = b.openShiftFor(PMOut)
	assert.True(t, ok)
	assert.Equal(t, PMIn, in)

	b.add(punch(PMOut, "2025-01-10", "23:00:00"))
	_, ok = b.openShiftFor(AMOut)
	assert.False(t, ok)
}

func TestReconstructOrderingAndPurity(t *testing.T) {
	punches := []PunchEvent{
		punch(PMOut, "2025-01-12", "17:00:00"),
		punch(AMIn, "2025-01-10", "08:00:00"),
		punch(AMIn, "2025-01-12", "08:00:00"),
		punch(PMOut, "2025-01-10", "17:00:00"),
		punch(AMIn, "2025-01-11", "09:00:00"),
		punch(PMOut, "2025-01-11", "18:00:00"),
	}
	snapshot := append([]PunchEvent(nil), punches...)

	first, err := Reconstruct(punches)
	require.NoError(t, err)
	second, err := Reconstruct(punches)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, snapshot, punches)

	require.Len(t, first, 3)
	assert.Equal(t, day("2025-01-12"), first[0].Date)
	assert.Equal(t, day("2025-01-11"), first[1].Date)
	assert.Equal(t, day("2025-01-10"), first[2].Date)
	assert.Equal(t, 45, first[1].LatenessMinutes)
}

func TestReconstructLatenessSumsAllInSlots(t *testing.T) {
	days, err := Reconstruct([]PunchEvent{
		punch(AMIn, "2025-01-10", "08:20:00"),
		punch(PMIn, "2025-01-10", "16:25:00"),
		punch(OTIn, "2025-01-10", "00:45:00"),
	})
	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Equal(t, 5+10+30, days[0].LatenessMinutes)
}

func TestReconstructUnknownCodeOnlyInRawPunches(t *testing.T) {
	unknown := punch(PunchUnknown, "2025-01-10", "12:00:00")
	unknown.RawCode = "4"

	days, err := Reconstruct([]PunchEvent{unknown})
	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Equal(t, Slots{}, days[0].Slots)
	assert.False(t, days[0].NeedsReview)
	assert.Len(t, days[0].RawPunches, 1)
}
