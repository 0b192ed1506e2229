package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

const (
	DefaultWorkdayStart = "09:00"
	DefaultWorkdayEnd   = "17:00"
)

// DefaultWorkingDays Pazartesi-Cuma (time.Weekday değerleri).
var DefaultWorkingDays = []int{1, 2, 3, 4, 5}

// AppointmentDetail randevu hizmetinin detaylarını içerir.
// Süreler dakika cinsindendir.
type AppointmentDetail struct {
	BaseModel
	AppointmentID uint `gorm:"uniqueIndex;not null" json:"appointment_id"`

	Name               string                    `gorm:"type:varchar(200);not null" json:"name" form:"name"`
	Description        string                    `gorm:"type:text" json:"description" form:"description"`
	DurationMinutes    int                       `gorm:"type:integer;not null" json:"duration_minutes" form:"duration_minutes"`
	Price              decimal.Decimal           `gorm:"type:numeric(12,2);default:0.00" json:"price" form:"price"`
	Currency           string                    `gorm:"type:varchar(3);default:'TRY'" json:"currency" form:"currency"`
	RequiresApproval   bool                      `gorm:"type:boolean;default:false" json:"requires_approval" form:"requires_approval"`
	BufferTimeBefore   int                       `gorm:"type:integer;default:0" json:"buffer_time_before" form:"buffer_time_before"`
	BufferTimeAfter    int                       `gorm:"type:integer;default:0" json:"buffer_time_after" form:"buffer_time_after"`
	BookingLeadTime    int                       `gorm:"type:integer;default:60" json:"booking_lead_time" form:"booking_lead_time"`
	BookingHorizonDays int                       `gorm:"type:integer;default:30" json:"booking_horizon_days" form:"booking_horizon_days"`
	Timezone           string                    `gorm:"type:varchar(64);default:'Europe/Istanbul'" json:"timezone" form:"timezone"`
	WorkdayStart       string                    `gorm:"type:varchar(5);default:'09:00'" json:"workday_start" form:"workday_start"`
	WorkdayEnd         string                    `gorm:"type:varchar(5);default:'17:00'" json:"workday_end" form:"workday_end"`
	WorkingDays        datatypes.JSONType[[]int] `json:"working_days" form:"-"`
	ColorCode          string                    `gorm:"type:varchar(7)" json:"color_code" form:"color_code"`
	CancellationPolicy string                    `gorm:"type:text" json:"cancellation_policy" form:"cancellation_policy"`
	PasswordHash       string                    `gorm:"type:varchar(255)" json:"-" form:"-"`
	ExpiresAt          *time.Time                `gorm:"index;type:timestamptz" json:"expires_at,omitempty" form:"expires_at"`
}

// Days çalışma günlerini döndürür; tanımsızsa varsayılan hafta içi.
func (d AppointmentDetail) Days() []int {
	days := d.WorkingDays.Data()
	if len(days) == 0 {
		return DefaultWorkingDays
	}
	return days
}

// IsExpired randevu hizmetinin süresi dolmuş mu?
func (d AppointmentDetail) IsExpired(now time.Time) bool {
	return d.ExpiresAt != nil && now.After(*d.ExpiresAt)
}
