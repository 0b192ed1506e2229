package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"formly.link/configs"
	"formly.link/configs/configslog"
	"formly.link/models"
	"formly.link/pkg/queryparams"
	"formly.link/pkg/turkishsearch"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// IAppointmentRepository randevu hizmeti veritabanı işlemleri için arayüz.
type IAppointmentRepository interface {
	Create(ctx context.Context, appointment *models.Appointment) error
	FindByID(ctx context.Context, id uint) (*models.Appointment, error)
	FindAllByUserIDPaginated(ctx context.Context, providerUserID uint, params queryparams.ListParams) ([]models.Appointment, int64, error)
	FindAllPaginated(ctx context.Context, params queryparams.ListParams) ([]models.Appointment, int64, error)
	Update(ctx context.Context, appointment *models.Appointment) error
	UpdateDetail(ctx context.Context, detail *models.AppointmentDetail) error
	Delete(ctx context.Context, appointment *models.Appointment, deletedByUserID uint) error
	CountByUserID(ctx context.Context, providerUserID uint) (int64, error)
	CountAll(ctx context.Context) (int64, error)
}

// AppointmentRepository IAppointmentRepository arayüzünü uygular.
type AppointmentRepository struct {
	db   *gorm.DB
	base IBaseRepository[models.Appointment]
}

// NewAppointmentRepository yeni bir AppointmentRepository örneği oluşturur.
func NewAppointmentRepository() IAppointmentRepository {
	return NewAppointmentRepositoryTx(configs.GetDB())
}

// Transaction'lı Repository için yardımcı constructor
func NewAppointmentRepositoryTx(tx *gorm.DB) IAppointmentRepository {
	base := NewBaseRepository[models.Appointment](tx)
	base.SetAllowedSortColumns([]string{"id", "created_at", "is_enabled"})
	return &AppointmentRepository{db: tx, base: base}
}

func (r *AppointmentRepository) getDB(ctx context.Context) *gorm.DB {
	return dbFor(ctx, r.db)
}

// Create yeni bir randevu hizmeti ve detayını oluşturur.
func (r *AppointmentRepository) Create(ctx context.Context, appointment *models.Appointment) error {
	if appointment == nil || appointment.LinkID == 0 {
		return errors.New("geçersiz veya eksik link bilgisi olan randevu hizmeti oluşturulamaz")
	}
	return translate(r.getDB(ctx).Create(appointment).Error)
}

// FindByID belirli bir ID'ye sahip randevu hizmetini bulur.
func (r *AppointmentRepository) FindByID(ctx context.Context, id uint) (*models.Appointment, error) {
	if id == 0 {
		return nil, errors.New("geçersiz Appointment ID")
	}
	var appointment models.Appointment
	err := r.getDB(ctx).Preload("Detail").Preload("Link.Type").First(&appointment, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("AppointmentRepository.FindByID: DB error", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &appointment, nil
}

func (r *AppointmentRepository) findPaginated(ctx context.Context, scope func(*gorm.DB) *gorm.DB, params queryparams.ListParams) ([]models.Appointment, int64, error) {
	var appointments []models.Appointment
	var totalCount int64

	query := scope(r.getDB(ctx).Model(&models.Appointment{}))

	// İsim filtresi (Detail tablosundaki Name'e göre)
	joined := false
	if params.Name != "" {
		sqlFragment, args := turkishsearch.SQLFilter("appointment_details.name", params.Name)
		query = query.Joins("JOIN appointment_details ON appointment_details.appointment_id = appointments.id AND appointment_details.deleted_at IS NULL").Where(sqlFragment, args...)
		joined = true
	}
	if params.Status != "" {
		query = query.Where("appointments.is_enabled = ?", params.Status == "true")
	}

	if err := query.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}
	if totalCount == 0 {
		return appointments, 0, nil
	}

	orderBy := strings.ToLower(params.OrderBy)
	if orderBy != "asc" && orderBy != "desc" {
		orderBy = queryparams.DefaultOrderBy
	}
	allowedSortColumns := map[string]string{
		"id":               "appointments.id",
		"created_at":       "appointments.created_at",
		"is_enabled":       "appointments.is_enabled",
		"name":             "appointment_details.name",
		"duration_minutes": "appointment_details.duration_minutes",
		"price":            "appointment_details.price",
	}
	orderColumn, ok := allowedSortColumns[params.SortBy]
	if !ok {
		if params.SortBy != "" {
			configslog.SLog.Warnf("Geçersiz Appointment sıralama alanı istendi, varsayılan kullanılıyor: %s", params.SortBy)
		}
		orderColumn = "appointments.created_at"
	}
	if strings.HasPrefix(orderColumn, "appointment_details.") && !joined {
		query = query.Joins("JOIN appointment_details ON appointment_details.appointment_id = appointments.id AND appointment_details.deleted_at IS NULL")
	}

	err := query.Order(orderColumn + " " + orderBy).
		Select("appointments.*").
		Preload("Detail").
		Preload("Link.Type").
		Limit(params.PerPage).
		Offset(params.CalculateOffset()).
		Find(&appointments).Error
	if err != nil {
		return nil, totalCount, err
	}
	return appointments, totalCount, nil
}

// FindAllByUserIDPaginated belirli bir sağlayıcıya ait randevu hizmetlerini sayfalayarak bulur.
func (r *AppointmentRepository) FindAllByUserIDPaginated(ctx context.Context, providerUserID uint, params queryparams.ListParams) ([]models.Appointment, int64, error) {
	if providerUserID == 0 {
		return nil, 0, errors.New("geçersiz Provider User ID")
	}
	appointments, total, err := r.findPaginated(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("appointments.provider_user_id = ?", providerUserID)
	}, params)
	if err != nil {
		configslog.Log.Error("AppointmentRepository.FindAllByUserIDPaginated: DB error", zap.Uint("providerUserID", providerUserID), zap.Error(err))
	}
	return appointments, total, err
}

// FindAllPaginated tüm randevu hizmetlerini sayfalayarak bulur (Admin için).
func (r *AppointmentRepository) FindAllPaginated(ctx context.Context, params queryparams.ListParams) ([]models.Appointment, int64, error) {
	appointments, total, err := r.findPaginated(ctx, func(db *gorm.DB) *gorm.DB { return db }, params)
	if err != nil {
		configslog.Log.Error("AppointmentRepository.FindAllPaginated: DB error", zap.Error(err))
	}
	return appointments, total, err
}

// Update sadece ana Appointment modelini günceller.
func (r *AppointmentRepository) Update(ctx context.Context, appointment *models.Appointment) error {
	if appointment == nil || appointment.ID == 0 {
		return errors.New("güncellenecek randevu hizmeti geçerli değil")
	}
	return r.getDB(ctx).Omit("Link", "Detail").Save(appointment).Error
}

// UpdateDetail sadece AppointmentDetail modelini günceller.
func (r *AppointmentRepository) UpdateDetail(ctx context.Context, detail *models.AppointmentDetail) error {
	if detail == nil || detail.ID == 0 {
		return errors.New("güncellenecek randevu hizmeti detayı geçerli değil")
	}
	return r.getDB(ctx).Save(detail).Error
}

// Delete randevu hizmetini ve detayını siler (soft delete). Rezervasyonlar
// geçmiş kaydı olarak kalır.
func (r *AppointmentRepository) Delete(ctx context.Context, appointment *models.Appointment, deletedByUserID uint) error {
	if appointment == nil || appointment.ID == 0 {
		return errors.New("silinecek randevu hizmeti geçerli değil")
	}
	return r.getDB(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()
		updateData := map[string]interface{}{"deleted_at": now, "deleted_by": &deletedByUserID}

		if err := tx.Model(&models.AppointmentDetail{}).Where("appointment_id = ? AND deleted_at IS NULL", appointment.ID).Updates(updateData).Error; err != nil {
			return err
		}
		result := tx.Model(&models.Appointment{}).Where("id = ? AND deleted_at IS NULL", appointment.ID).Updates(updateData)
		if result.Error != nil {
			configslog.Log.Error("AppointmentRepository.Delete: Update sırasında hata", zap.Uint("id", appointment.ID), zap.Error(result.Error))
			return result.Error
		}
		if result.RowsAffected == 0 {
			configslog.Log.Warn("AppointmentRepository.Delete: Kayıt bulunamadı veya zaten silinmiş.", zap.Uint("id", appointment.ID))
			return ErrNotFound
		}
		return nil
	})
}

// CountByUserID belirli bir sağlayıcıya ait randevu hizmeti sayısını döndürür.
func (r *AppointmentRepository) CountByUserID(ctx context.Context, providerUserID uint) (int64, error) {
	if providerUserID == 0 {
		return 0, errors.New("geçersiz Provider User ID")
	}
	return r.base.Count(ctx, "provider_user_id = ?", providerUserID)
}

func (r *AppointmentRepository) CountAll(ctx context.Context) (int64, error) {
	return r.base.Count(ctx, "")
}

var _ IAppointmentRepository = (*AppointmentRepository)(nil)
