package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"formly.link/models"
)

func labels(slots []TimeSlot) (all, available []string) {
	for _, s := range slots {
		all = append(all, s.Time)
		if s.Available {
			available = append(available, s.Time)
		}
	}
	return all, available
}

func testSchedule() Schedule {
	return Schedule{
		Location:     istanbul,
		WorkdayStart: 9 * 60,
		WorkdayEnd:   12 * 60,
		Duration:     45,
		BufferAfter:  15,
		HorizonDays:  14,
		WorkingDays:  []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday},
	}
}

func TestSlotsGrid(t *testing.T) {
	s := testSchedule()
	monday := time.Date(2024, 6, 3, 0, 0, 0, 0, istanbul)
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, istanbul)

	all, available := labels(s.Slots(monday, nil, now))
	assert.Equal(t, []string{"09:00", "10:00", "11:00"}, all)
	assert.Equal(t, all, available)
}

func TestSlotsBusyAndBuffers(t *testing.T) {
	s := testSchedule()
	monday := time.Date(2024, 6, 3, 0, 0, 0, 0, istanbul)
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, istanbul)

	busy := []Interval{{
		Start: time.Date(2024, 6, 3, 10, 0, 0, 0, istanbul),
		End:   time.Date(2024, 6, 3, 10, 45, 0, 0, istanbul),
	}}
	_, available := labels(s.Slots(monday, busy, now))
	assert.Equal(t, []string{"09:00", "11:00"}, available)

	// 09:00 diliminin tamponu 10:00'a kadar sürer
	busy = []Interval{{
		Start: time.Date(2024, 6, 3, 9, 50, 0, 0, istanbul),
		End:   time.Date(2024, 6, 3, 9, 55, 0, 0, istanbul),
	}}
	_, available = labels(s.Slots(monday, busy, now))
	assert.Equal(t, []string{"10:00", "11:00"}, available)
}

func TestSlotsLeadTime(t *testing.T) {
	s := testSchedule()
	s.LeadTime = 60
	monday := time.Date(2024, 6, 3, 0, 0, 0, 0, istanbul)
	now := time.Date(2024, 6, 3, 9, 30, 0, 0, istanbul)

	all, available := labels(s.Slots(monday, nil, now))
	assert.Len(t, all, 3)
	assert.Equal(t, []string{"11:00"}, available)
}

func TestBookable(t *testing.T) {
	s := testSchedule()
	now := time.Date(2024, 6, 3, 9, 0, 0, 0, istanbul)

	assert.True(t, s.Bookable(time.Date(2024, 6, 3, 0, 0, 0, 0, istanbul), now))
	assert.False(t, s.Bookable(time.Date(2024, 6, 2, 0, 0, 0, 0, istanbul), now), "geçmiş")
	assert.False(t, s.Bookable(time.Date(2024, 6, 8, 0, 0, 0, 0, istanbul), now), "cumartesi")
	assert.True(t, s.Bookable(time.Date(2024, 6, 17, 0, 0, 0, 0, istanbul), now))
	assert.False(t, s.Bookable(time.Date(2024, 6, 18, 0, 0, 0, 0, istanbul), now), "ufuk dışı")

	assert.Empty(t, s.Slots(time.Date(2024, 6, 8, 0, 0, 0, 0, istanbul), nil, now))
}

func TestFromDetail(t *testing.T) {
	d := models.AppointmentDetail{
		DurationMinutes:    30,
		BufferTimeBefore:   5,
		BookingLeadTime:    60,
		BookingHorizonDays: 30,
		Timezone:           "UTC",
		WorkdayStart:       "10:00",
		WorkdayEnd:         "11:30",
		WorkingDays:        datatypes.NewJSONType([]int{0, 6}),
	}
	s, err := FromDetail(d)
	require.NoError(t, err)
	assert.Equal(t, 600, s.WorkdayStart)
	assert.Equal(t, 690, s.WorkdayEnd)
	assert.Equal(t, []time.Weekday{time.Sunday, time.Saturday}, s.WorkingDays)
	assert.Equal(t, 35*time.Minute, s.Step())

	d.WorkdayEnd = "09:00"
	_, err = FromDetail(d)
	assert.ErrorIs(t, err, ErrInvalidSchedule)

	d.WorkdayEnd = ""
	d.DurationMinutes = 0
	_, err = FromDetail(d)
	assert.ErrorIs(t, err, ErrInvalidSchedule)
}

func TestClock(t *testing.T) {
	m, err := ParseClock("09:05")
	require.NoError(t, err)
	assert.Equal(t, 545, m)
	assert.Equal(t, "09:05", FormatClock(m))

	for _, bad := range []string{"9:05", "25:00", "ab:cd", ""} {
		_, err := ParseClock(bad)
		assert.ErrorIs(t, err, ErrInvalidTime, bad)
	}
}
