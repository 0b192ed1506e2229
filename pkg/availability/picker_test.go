package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var istanbul = time.FixedZone("TRT", 3*60*60)

func fixedNow() time.Time {
	return time.Date(2024, 6, 1, 8, 30, 0, 0, istanbul)
}

func staticSource(byDay map[string][]TimeSlot) SlotSource {
	return SlotSourceFunc(func(_ context.Context, day time.Time) ([]TimeSlot, error) {
		return byDay[day.Format(DateLayout)], nil
	})
}

func newTestPicker(t *testing.T, onSelect SelectFunc, opts ...Option) *Picker {
	t.Helper()
	source := staticSource(map[string][]TimeSlot{
		"2024-06-01": {{Time: "09:00", Available: true}, {Time: "10:00", Available: true}, {Time: "11:00", Available: false}},
		"2024-06-02": {{Time: "09:00", Available: true}},
	})
	base := []Option{WithLocation(istanbul), WithNow(fixedNow)}
	p, err := NewPicker(context.Background(), source, onSelect, append(base, opts...)...)
	require.NoError(t, err)
	return p
}

func TestPickerDefaults(t *testing.T) {
	p := newTestPicker(t, nil)
	assert.Equal(t, "2024-06-01", p.Date().Format(DateLayout))
	assert.Empty(t, p.Time())
	assert.Equal(t, DateSelectedNoTime, p.State())
	assert.Len(t, p.Slots(), 3)
	_, ok := p.Selected()
	assert.False(t, ok)
}

func TestNewPickerWithStartDateLoadsOnlyThatDay(t *testing.T) {
	var loaded []string
	source := SlotSourceFunc(func(_ context.Context, day time.Time) ([]TimeSlot, error) {
		loaded = append(loaded, day.Format(DateLayout))
		return []TimeSlot{{Time: "09:00", Available: true}}, nil
	})
	p, err := NewPicker(context.Background(), source, nil,
		WithLocation(istanbul), WithNow(fixedNow),
		WithStartDate(time.Date(2024, 6, 2, 0, 0, 0, 0, istanbul)))
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-06-02"}, loaded)
	assert.Equal(t, "2024-06-02", p.Date().Format(DateLayout))
	assert.Equal(t, DateSelectedNoTime, p.State())
}

func TestNewPickerWithDisabledStartDate(t *testing.T) {
	calls := 0
	source := SlotSourceFunc(func(_ context.Context, day time.Time) ([]TimeSlot, error) {
		calls++
		return nil, nil
	})
	_, err := NewPicker(context.Background(), source, nil,
		WithLocation(istanbul), WithNow(fixedNow),
		WithStartDate(time.Date(2024, 5, 31, 0, 0, 0, 0, istanbul)))
	assert.ErrorIs(t, err, ErrDateDisabled)
	assert.Zero(t, calls)
}

func TestViewIncludesComposedSelection(t *testing.T) {
	p := newTestPicker(t, nil)
	assert.Nil(t, p.View().At)

	require.NoError(t, p.SelectTime(context.Background(), "09:00"))
	v := p.View()
	require.NotNil(t, v.At)
	assert.Equal(t, time.Date(2024, 6, 1, 9, 0, 0, 0, istanbul), *v.At)
}

func TestSelectTimeFiresCallback(t *testing.T) {
	var got []time.Time
	p := newTestPicker(t, func(_ context.Context, at time.Time) error {
		got = append(got, at)
		return nil
	})

	require.NoError(t, p.SelectTime(context.Background(), "10:00"))
	assert.Equal(t, DateAndTimeSelected, p.State())
	require.Len(t, got, 1)
	assert.Equal(t, time.Date(2024, 6, 1, 10, 0, 0, 0, istanbul), got[0])
	assert.Equal(t, istanbul, got[0].Location())
}

func TestSelectNewDateClearsTime(t *testing.T) {
	p := newTestPicker(t, nil)
	require.NoError(t, p.SelectTime(context.Background(), "10:00"))
	require.Equal(t, "10:00", p.Time())

	require.NoError(t, p.SelectDate(context.Background(), time.Date(2024, 6, 2, 0, 0, 0, 0, istanbul)))
	assert.Empty(t, p.Time())
	assert.Equal(t, DateSelectedNoTime, p.State())
	assert.Equal(t, "2024-06-02", p.Date().Format(DateLayout))
	assert.Len(t, p.Slots(), 1)

	// aynı günü tekrar seçmek de saati temizler
	require.NoError(t, p.SelectTime(context.Background(), "09:00"))
	require.NoError(t, p.SelectDate(context.Background(), time.Date(2024, 6, 2, 15, 0, 0, 0, istanbul)))
	assert.Empty(t, p.Time())
}

func TestUnavailableSlotNotSelectable(t *testing.T) {
	calls := 0
	p := newTestPicker(t, func(context.Context, time.Time) error {
		calls++
		return nil
	})
	require.NoError(t, p.SelectTime(context.Background(), "09:00"))

	assert.ErrorIs(t, p.SelectTime(context.Background(), "11:00"), ErrSlotUnavailable)
	assert.ErrorIs(t, p.SelectTime(context.Background(), "13:00"), ErrSlotUnavailable)
	assert.Equal(t, "09:00", p.Time())
	assert.Equal(t, 1, calls)
}

func TestPastAndDisabledDates(t *testing.T) {
	p := newTestPicker(t, nil, WithDisabledDates(func(day time.Time) bool {
		return day.Weekday() == time.Sunday
	}))
	require.NoError(t, p.SelectTime(context.Background(), "09:00"))

	err := p.SelectDate(context.Background(), time.Date(2024, 5, 31, 0, 0, 0, 0, istanbul))
	assert.ErrorIs(t, err, ErrDateDisabled)
	// 2024-06-02 bir Pazar
	err = p.SelectDate(context.Background(), time.Date(2024, 6, 2, 0, 0, 0, 0, istanbul))
	assert.ErrorIs(t, err, ErrDateDisabled)

	assert.Equal(t, "2024-06-01", p.Date().Format(DateLayout))
	assert.Equal(t, "09:00", p.Time())
}

func TestCallbackErrorRestoresTime(t *testing.T) {
	boom := errors.New("dolu")
	p := newTestPicker(t, func(context.Context, time.Time) error { return boom })
	assert.ErrorIs(t, p.SelectTime(context.Background(), "09:00"), boom)
	assert.Empty(t, p.Time())
}

func TestEmptyView(t *testing.T) {
	p := newTestPicker(t, nil)
	require.NoError(t, p.SelectDate(context.Background(), time.Date(2024, 6, 3, 0, 0, 0, 0, istanbul)))

	v := p.View()
	assert.True(t, v.Empty)
	assert.Equal(t, NoSlotsMessage, v.Message)
	assert.Equal(t, "2024-06-03", v.Date)
	assert.NotNil(t, v.Slots)

	require.NoError(t, p.SelectDate(context.Background(), time.Date(2024, 6, 1, 0, 0, 0, 0, istanbul)))
	v = p.View()
	assert.False(t, v.Empty)
	assert.Empty(t, v.Message)
}

func TestSourceErrorKeepsState(t *testing.T) {
	fail := false
	source := SlotSourceFunc(func(context.Context, time.Time) ([]TimeSlot, error) {
		if fail {
			return nil, errors.New("bağlantı yok")
		}
		return []TimeSlot{{Time: "09:00", Available: true}}, nil
	})
	p, err := NewPicker(context.Background(), source, nil, WithLocation(istanbul), WithNow(fixedNow))
	require.NoError(t, err)

	fail = true
	assert.Error(t, p.SelectDate(context.Background(), time.Date(2024, 6, 5, 0, 0, 0, 0, istanbul)))
	assert.Equal(t, "2024-06-01", p.Date().Format(DateLayout))
}
