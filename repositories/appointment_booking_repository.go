package repositories

import (
	"context"
	"errors"
	"time"

	"formly.link/configs"
	"formly.link/configs/configslog"
	"formly.link/models"
	"formly.link/pkg/queryparams"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// IAppointmentBookingRepository rezervasyon kayıtları için arayüz.
type IAppointmentBookingRepository interface {
	Create(ctx context.Context, booking *models.AppointmentBooking, freeFrom, freeTo time.Time) error
	FindByID(ctx context.Context, id uint) (*models.AppointmentBooking, error)
	FindActiveBetween(ctx context.Context, appointmentID uint, from, to time.Time) ([]models.AppointmentBooking, error)
	FindByAppointmentIDPaginated(ctx context.Context, appointmentID uint, params queryparams.ListParams) ([]models.AppointmentBooking, int64, error)
	UpdateStatus(ctx context.Context, id uint, status models.BookingStatus, updatedByUserID uint) error
}

type AppointmentBookingRepository struct {
	db   *gorm.DB
	base IBaseRepository[models.AppointmentBooking]
}

func NewAppointmentBookingRepository() IAppointmentBookingRepository {
	return NewAppointmentBookingRepositoryTx(configs.GetDB())
}

func NewAppointmentBookingRepositoryTx(tx *gorm.DB) IAppointmentBookingRepository {
	base := NewBaseRepository[models.AppointmentBooking](tx)
	base.SetAllowedSortColumns([]string{"id", "created_at", "starts_at", "status"})
	return &AppointmentBookingRepository{db: tx, base: base}
}

// Create rezervasyonu kaydeder. Hizmet satırı kilitlenir; [freeFrom, freeTo)
// aralığıyla kesişen iptal edilmemiş bir rezervasyon varsa ErrDuplicate döner.
// Aynı başlangıç zamanı ayrıca idx_booking_active_slot ile korunur.
func (r *AppointmentBookingRepository) Create(ctx context.Context, booking *models.AppointmentBooking, freeFrom, freeTo time.Time) error {
	if booking == nil || booking.AppointmentID == 0 {
		return errors.New("geçersiz rezervasyon")
	}
	err := dbFor(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		var appointment models.Appointment
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Select("id").First(&appointment, booking.AppointmentID).Error; err != nil {
			return err
		}
		var overlapping int64
		err := tx.Model(&models.AppointmentBooking{}).
			Where("appointment_id = ? AND status <> ? AND starts_at < ? AND ends_at > ?", booking.AppointmentID, models.BookingCancelled, freeTo, freeFrom).
			Count(&overlapping).Error
		if err != nil {
			return err
		}
		if overlapping > 0 {
			return ErrDuplicate
		}
		return tx.Create(booking).Error
	})
	err = translate(err)
	if err != nil && !errors.Is(err, ErrDuplicate) {
		configslog.Log.Error("AppointmentBookingRepository.Create: DB error", zap.Uint("appointment_id", booking.AppointmentID), zap.Error(err))
	}
	return err
}

func (r *AppointmentBookingRepository) FindByID(ctx context.Context, id uint) (*models.AppointmentBooking, error) {
	return r.base.FindByID(ctx, id)
}

// FindActiveBetween [from, to) aralığıyla kesişen iptal edilmemiş rezervasyonları döndürür.
func (r *AppointmentBookingRepository) FindActiveBetween(ctx context.Context, appointmentID uint, from, to time.Time) ([]models.AppointmentBooking, error) {
	var bookings []models.AppointmentBooking
	err := dbFor(ctx, r.db).
		Where("appointment_id = ? AND status <> ? AND starts_at < ? AND ends_at > ?", appointmentID, models.BookingCancelled, to, from).
		Order("starts_at asc").
		Find(&bookings).Error
	if err != nil {
		configslog.Log.Error("AppointmentBookingRepository.FindActiveBetween: DB error", zap.Uint("appointment_id", appointmentID), zap.Error(err))
		return nil, err
	}
	return bookings, nil
}

func (r *AppointmentBookingRepository) FindByAppointmentIDPaginated(ctx context.Context, appointmentID uint, params queryparams.ListParams) ([]models.AppointmentBooking, int64, error) {
	var bookings []models.AppointmentBooking
	total, err := r.base.Count(ctx, "appointment_id = ?", appointmentID)
	if err != nil || total == 0 {
		return bookings, total, err
	}
	query := dbFor(ctx, r.db).Where("appointment_id = ?", appointmentID)
	if err := r.base.ApplyListParams(query, params).Find(&bookings).Error; err != nil {
		return nil, total, err
	}
	return bookings, total, nil
}

func (r *AppointmentBookingRepository) UpdateStatus(ctx context.Context, id uint, status models.BookingStatus, updatedByUserID uint) error {
	result := dbFor(ctx, r.db).Model(&models.AppointmentBooking{}).Where("id = ?", id).
		Updates(map[string]interface{}{"status": status, "updated_by": updatedByUserID})
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

var _ IAppointmentBookingRepository = (*AppointmentBookingRepository)(nil)
