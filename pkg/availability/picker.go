// Package availability randevu için gün ve saat seçimini yönetir ve bir
// günün seçilebilir zaman dilimlerini hizmet ayarlarından üretir.
package availability

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// DateLayout tarih parametrelerinin biçimi.
const DateLayout = "2006-01-02"

// NoSlotsMessage seçilen günde hiç zaman dilimi yoksa gösterilir.
const NoSlotsMessage = "Bu tarih için uygun saat bulunmuyor."

var (
	ErrDateDisabled    = errors.New("bu tarih seçilemez")
	ErrSlotUnavailable = errors.New("seçilen saat uygun değil")
	ErrInvalidTime     = errors.New("saat SS:DD biçiminde olmalıdır")
)

// TimeSlot bir gün içindeki tek rezervasyon birimidir.
type TimeSlot struct {
	Time      string `json:"time"` // SS:DD
	Available bool   `json:"available"`
}

// SlotSource bir günün zaman dilimlerini sağlar.
type SlotSource interface {
	SlotsFor(ctx context.Context, day time.Time) ([]TimeSlot, error)
}

// SlotSourceFunc sıradan bir fonksiyonu SlotSource olarak kullanır.
type SlotSourceFunc func(ctx context.Context, day time.Time) ([]TimeSlot, error)

func (f SlotSourceFunc) SlotsFor(ctx context.Context, day time.Time) ([]TimeSlot, error) {
	return f(ctx, day)
}

// SelectFunc hem gün hem uygun bir saat seçildiğinde birleşik zamanla çağrılır.
type SelectFunc func(ctx context.Context, at time.Time) error

// DisabledFunc geçmiş günlere ek olarak seçilemeyecek günleri belirler.
type DisabledFunc func(day time.Time) bool

// State seçicinin durumu. Gün her zaman seçilidir.
type State uint8

const (
	DateSelectedNoTime State = iota
	DateAndTimeSelected
)

func (s State) String() string {
	if s == DateAndTimeSelected {
		return "date_and_time_selected"
	}
	return "date_selected_no_time"
}

type Option func(*Picker)

// WithLocation günlerin ve birleşik zamanın saat dilimini ayarlar (varsayılan UTC).
func WithLocation(loc *time.Location) Option {
	return func(p *Picker) {
		if loc != nil {
			p.loc = loc
		}
	}
}

// WithNow "bugün" hesabı için saat kaynağını değiştirir.
func WithNow(now func() time.Time) Option {
	return func(p *Picker) {
		if now != nil {
			p.now = now
		}
	}
}

// WithDisabledDates ek seçilemez günleri tanımlar.
func WithDisabledDates(fn DisabledFunc) Option {
	return func(p *Picker) { p.disabled = fn }
}

// WithStartDate seçiciyi bugün yerine verilen günle başlatır. Gün seçilemezse
// NewPicker ErrDateDisabled döndürür.
func WithStartDate(day time.Time) Option {
	return func(p *Picker) { p.start = day }
}

// Picker seçili günü, seçili saati ve günün zaman dilimlerini tutar.
// Tek bir kullanıcı oturumuna aittir, eşzamanlı kullanım için değildir.
type Picker struct {
	source   SlotSource
	onSelect SelectFunc
	loc      *time.Location
	now      func() time.Time
	disabled DisabledFunc
	start    time.Time

	date     time.Time
	slotTime string
	slots    []TimeSlot
}

// NewPicker bugünü (veya WithStartDate ile verilen günü) seçili gün olarak
// ayarlar ve yalnızca o günün zaman dilimlerini yükler.
func NewPicker(ctx context.Context, source SlotSource, onSelect SelectFunc, opts ...Option) (*Picker, error) {
	p := &Picker{
		source:   source,
		onSelect: onSelect,
		loc:      time.UTC,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.date = p.today()
	if !p.start.IsZero() {
		if p.IsDisabled(p.start) {
			return nil, ErrDateDisabled
		}
		p.date = p.dayOf(p.start)
	}
	slots, err := p.load(ctx, p.date)
	if err != nil {
		return nil, err
	}
	p.slots = slots
	return p, nil
}

func (p *Picker) today() time.Time {
	return p.dayOf(p.now().In(p.loc))
}

// dayOf verilen değerin takvim gününü seçicinin saat diliminde gece yarısına çeker.
func (p *Picker) dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, p.loc)
}

func (p *Picker) load(ctx context.Context, day time.Time) ([]TimeSlot, error) {
	if p.source == nil {
		return nil, nil
	}
	slots, err := p.source.SlotsFor(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("zaman dilimleri yüklenemedi (%s): %w", day.Format(DateLayout), err)
	}
	return slots, nil
}

// IsDisabled gün seçilemez mi? Bugünden önceki günler her zaman seçilemez.
func (p *Picker) IsDisabled(day time.Time) bool {
	d := p.dayOf(day)
	if d.Before(p.today()) {
		return true
	}
	return p.disabled != nil && p.disabled(d)
}

// SelectDate günü değiştirir, seçili saati temizler ve zaman dilimlerini yeniler.
// Seçilemez bir günde durum değişmez ve ErrDateDisabled döner.
func (p *Picker) SelectDate(ctx context.Context, day time.Time) error {
	if p.IsDisabled(day) {
		return ErrDateDisabled
	}
	d := p.dayOf(day)
	slots, err := p.load(ctx, d)
	if err != nil {
		return err
	}
	p.date = d
	p.slotTime = ""
	p.slots = slots
	return nil
}

// SelectTime listelenmiş ve uygun bir saati seçer, ardından SelectFunc'ı
// birleşik zamanla çağırır. Uygun olmayan saatte durum değişmez.
func (p *Picker) SelectTime(ctx context.Context, label string) error {
	slot, ok := p.slot(label)
	if !ok || !slot.Available {
		return ErrSlotUnavailable
	}
	at, err := p.compose(label)
	if err != nil {
		return err
	}
	previous := p.slotTime
	p.slotTime = label
	if p.onSelect == nil {
		return nil
	}
	if err := p.onSelect(ctx, at); err != nil {
		p.slotTime = previous
		return err
	}
	return nil
}

func (p *Picker) slot(label string) (TimeSlot, bool) {
	for _, s := range p.slots {
		if s.Time == label {
			return s, true
		}
	}
	return TimeSlot{}, false
}

func (p *Picker) compose(label string) (time.Time, error) {
	minutes, err := ParseClock(label)
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := p.date.Date()
	return time.Date(y, m, d, minutes/60, minutes%60, 0, 0, p.loc), nil
}

// Date seçili gün (gece yarısı, seçicinin saat diliminde).
func (p *Picker) Date() time.Time { return p.date }

// Time seçili saat; seçilmemişse boş.
func (p *Picker) Time() string { return p.slotTime }

// Slots seçili günün zaman dilimlerinin kopyası.
func (p *Picker) Slots() []TimeSlot {
	out := make([]TimeSlot, len(p.slots))
	copy(out, p.slots)
	return out
}

func (p *Picker) State() State {
	if p.slotTime != "" {
		return DateAndTimeSelected
	}
	return DateSelectedNoTime
}

// Selected gün ve saat seçiliyse birleşik zamanı döndürür.
func (p *Picker) Selected() (time.Time, bool) {
	if p.slotTime == "" {
		return time.Time{}, false
	}
	at, err := p.compose(p.slotTime)
	return at, err == nil
}

// View seçicinin çizilecek hali.
type View struct {
	Date    string     `json:"date"`
	Time    string     `json:"time,omitempty"`
	At      *time.Time `json:"at,omitempty"`
	State   string     `json:"state"`
	Slots   []TimeSlot `json:"slots"`
	Empty   bool       `json:"empty"`
	Message string     `json:"message,omitempty"`
}

func (p *Picker) View() View {
	v := View{
		Date:  p.date.Format(DateLayout),
		Time:  p.slotTime,
		State: p.State().String(),
		Slots: p.Slots(),
	}
	if at, ok := p.Selected(); ok {
		v.At = &at
	}
	if len(v.Slots) == 0 {
		v.Empty = true
		v.Message = NoSlotsMessage
	}
	return v
}
