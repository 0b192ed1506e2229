package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCancelled:
		return true
	}
	return false
}

// AppointmentBooking bir randevu hizmeti için alınmış tek rezervasyondur.
// Aynı hizmette iptal edilmemiş iki kayıt aynı başlangıç zamanını paylaşamaz
// (idx_booking_active_slot, migration ile oluşturulan kısmi indeks).
type AppointmentBooking struct {
	BaseModel
	AppointmentID uint          `gorm:"not null;index" json:"appointment_id"`
	Reference     string        `gorm:"type:varchar(12);uniqueIndex;not null" json:"reference"`
	StartsAt      time.Time     `gorm:"type:timestamptz;not null;index" json:"starts_at"`
	EndsAt        time.Time     `gorm:"type:timestamptz;not null" json:"ends_at"`
	GuestName     string        `gorm:"type:varchar(200);not null" json:"guest_name"`
	GuestEmail    string        `gorm:"type:varchar(255);not null" json:"guest_email"`
	GuestPhone    string        `gorm:"type:varchar(50)" json:"guest_phone,omitempty"`
	Notes         string        `gorm:"type:text" json:"notes,omitempty"`
	Status        BookingStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
}

// BeforeCreate referans kodunu üretir.
func (b *AppointmentBooking) BeforeCreate(tx *gorm.DB) error {
	if err := b.BaseModel.BeforeCreate(tx); err != nil {
		return err
	}
	if b.Reference == "" {
		b.Reference = NewBookingReference()
	}
	if b.Status == "" {
		b.Status = BookingPending
	}
	return nil
}

// NewBookingReference misafire gösterilen kısa büyük harfli referans kodu.
func NewBookingReference() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:10])
}
