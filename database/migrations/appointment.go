package migrations

import (
	"formly.link/configs/configslog"
	"formly.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// activeSlotIndex aynı hizmette iptal edilmemiş iki rezervasyonun aynı
// başlangıç zamanını almasını engeller. Silinmiş kayıtlar hariçtir.
const activeSlotIndex = `CREATE UNIQUE INDEX IF NOT EXISTS idx_booking_active_slot
	ON appointment_bookings (appointment_id, starts_at)
	WHERE status <> 'cancelled' AND deleted_at IS NULL`

func MigrateAppointmentsTables(db *gorm.DB) error {
	configslog.SLog.Info("Migrating appointments, appointment_details & appointment_bookings tables...")
	err := db.AutoMigrate(&models.Appointment{}, &models.AppointmentDetail{}, &models.AppointmentBooking{})
	if err != nil {
		configslog.Log.Error("Failed to migrate appointment tables", zap.Error(err))
		return err
	}
	if err := db.Exec(activeSlotIndex).Error; err != nil {
		configslog.Log.Error("Failed to create idx_booking_active_slot", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Appointment tables migrated successfully")
	return nil
}
