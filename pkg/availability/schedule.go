package availability

import (
	"errors"
	"fmt"
	"time"

	"formly.link/models"
)

var ErrInvalidSchedule = errors.New("geçersiz çalışma takvimi")

// Interval dolu bir zaman aralığıdır, [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

func (i Interval) overlaps(start, end time.Time) bool {
	return i.Start.Before(end) && start.Before(i.End)
}

// Schedule bir randevu hizmetinin gün içi zaman dilimi üretim ayarlarıdır.
// Tüm süreler dakika cinsindendir.
type Schedule struct {
	Location     *time.Location
	WorkdayStart int // gece yarısından itibaren dakika
	WorkdayEnd   int
	Duration     int
	BufferBefore int
	BufferAfter  int
	LeadTime     int
	HorizonDays  int // 0: sınırsız
	WorkingDays  []time.Weekday
}

// FromDetail hizmet detayından takvim oluşturur.
func FromDetail(d models.AppointmentDetail) (Schedule, error) {
	loc := time.UTC
	if d.Timezone != "" {
		l, err := time.LoadLocation(d.Timezone)
		if err != nil {
			return Schedule{}, fmt.Errorf("%w: saat dilimi %q", ErrInvalidSchedule, d.Timezone)
		}
		loc = l
	}
	startLabel, endLabel := d.WorkdayStart, d.WorkdayEnd
	if startLabel == "" {
		startLabel = models.DefaultWorkdayStart
	}
	if endLabel == "" {
		endLabel = models.DefaultWorkdayEnd
	}
	start, err := ParseClock(startLabel)
	if err != nil {
		return Schedule{}, fmt.Errorf("%w: başlangıç %q", ErrInvalidSchedule, startLabel)
	}
	end, err := ParseClock(endLabel)
	if err != nil {
		return Schedule{}, fmt.Errorf("%w: bitiş %q", ErrInvalidSchedule, endLabel)
	}

	days := make([]time.Weekday, 0, 7)
	for _, wd := range d.Days() {
		if wd < 0 || wd > 6 {
			return Schedule{}, fmt.Errorf("%w: gün %d", ErrInvalidSchedule, wd)
		}
		days = append(days, time.Weekday(wd))
	}

	s := Schedule{
		Location:     loc,
		WorkdayStart: start,
		WorkdayEnd:   end,
		Duration:     d.DurationMinutes,
		BufferBefore: d.BufferTimeBefore,
		BufferAfter:  d.BufferTimeAfter,
		LeadTime:     d.BookingLeadTime,
		HorizonDays:  d.BookingHorizonDays,
		WorkingDays:  days,
	}
	return s, s.Validate()
}

func (s Schedule) Validate() error {
	switch {
	case s.Duration <= 0:
		return fmt.Errorf("%w: süre pozitif olmalıdır", ErrInvalidSchedule)
	case s.BufferBefore < 0 || s.BufferAfter < 0 || s.LeadTime < 0 || s.HorizonDays < 0:
		return fmt.Errorf("%w: negatif değer", ErrInvalidSchedule)
	case s.WorkdayEnd <= s.WorkdayStart:
		return fmt.Errorf("%w: bitiş saati başlangıçtan sonra olmalıdır", ErrInvalidSchedule)
	}
	return nil
}

func (s Schedule) location() *time.Location {
	if s.Location == nil {
		return time.UTC
	}
	return s.Location
}

// Step iki ardışık zaman diliminin başlangıçları arasındaki süre.
func (s Schedule) Step() time.Duration {
	return time.Duration(s.Duration+s.BufferBefore+s.BufferAfter) * time.Minute
}

// Bookable gün çalışma günü mü ve rezervasyon ufku içinde mi?
func (s Schedule) Bookable(day, now time.Time) bool {
	loc := s.location()
	y, m, d := day.Date()
	target := time.Date(y, m, d, 0, 0, 0, 0, loc)
	ny, nm, nd := now.In(loc).Date()
	today := time.Date(ny, nm, nd, 0, 0, 0, 0, loc)

	if target.Before(today) {
		return false
	}
	if s.HorizonDays > 0 && target.After(today.AddDate(0, 0, s.HorizonDays)) {
		return false
	}
	if len(s.WorkingDays) == 0 {
		return true
	}
	for _, wd := range s.WorkingDays {
		if wd == target.Weekday() {
			return true
		}
	}
	return false
}

// Slots günün zaman dilimlerini üretir. Başlangıcı now+LeadTime'dan önce olan
// ya da tampon süreleriyle birlikte dolu bir aralıkla çakışan dilimler
// uygun değildir. Rezerve edilemeyen günlerde boş liste döner.
func (s Schedule) Slots(day time.Time, busy []Interval, now time.Time) []TimeSlot {
	if s.Validate() != nil || !s.Bookable(day, now) {
		return []TimeSlot{}
	}
	loc := s.location()
	y, m, d := day.Date()
	earliest := now.Add(time.Duration(s.LeadTime) * time.Minute)
	step := int(s.Step() / time.Minute)

	slots := []TimeSlot{}
	for minute := s.WorkdayStart; minute+s.Duration <= s.WorkdayEnd; minute += step {
		start := time.Date(y, m, d, 0, minute, 0, 0, loc)
		end := start.Add(time.Duration(s.Duration) * time.Minute)
		windowStart := start.Add(-time.Duration(s.BufferBefore) * time.Minute)
		windowEnd := end.Add(time.Duration(s.BufferAfter) * time.Minute)

		available := !start.Before(earliest)
		for _, b := range busy {
			if !available {
				break
			}
			if b.overlaps(windowStart, windowEnd) {
				available = false
			}
		}
		slots = append(slots, TimeSlot{Time: FormatClock(minute), Available: available})
	}
	return slots
}

// SlotEnd bir dilimin başlangıcından bitişini hesaplar.
func (s Schedule) SlotEnd(start time.Time) time.Time {
	return start.Add(time.Duration(s.Duration) * time.Minute)
}

// ParseClock "SS:DD" biçimindeki saati gece yarısından itibaren dakikaya çevirir.
func ParseClock(label string) (int, error) {
	t, err := time.Parse("15:04", label)
	if err != nil || len(label) != 5 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, label)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatClock dakikayı "SS:DD" biçimine çevirir.
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
