package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"formly.link/configs"
	"formly.link/configs/configslog"
	"formly.link/models"
	"formly.link/pkg/availability"
	"formly.link/pkg/queryparams"
	"formly.link/pkg/validation"
	"formly.link/repositories"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AppointmentServiceError özel servis hataları
type AppointmentServiceError string

func (e AppointmentServiceError) Error() string { return string(e) }

const (
	ErrAppointmentNotFound         AppointmentServiceError = "randevu hizmeti bulunamadı"
	ErrAppointmentCreationFailed   AppointmentServiceError = "randevu hizmeti oluşturulamadı"
	ErrAppointmentUpdateFailed     AppointmentServiceError = "randevu hizmeti güncellenemedi"
	ErrAppointmentDeletionFailed   AppointmentServiceError = "randevu hizmeti silinemedi"
	ErrAppointmentForbidden        AppointmentServiceError = "bu işlem için yetkiniz yok"
	ErrAppInvalidInput             AppointmentServiceError = "geçersiz girdi verisi"
	ErrAppointmentNameRequired     AppointmentServiceError = "randevu hizmet adı zorunludur"
	ErrAppointmentDurationRequired AppointmentServiceError = "randevu süresi (dakika) pozitif bir sayı olmalıdır"
	ErrAppPasswordHashingFailed    AppointmentServiceError = "şifre oluşturulurken hata oluştu"
	ErrAppLinkCreationFailed       AppointmentServiceError = "randevu için link oluşturulamadı"
	ErrAppLinkUpdateFailed         AppointmentServiceError = "randevu linki güncellenemedi"
	ErrAppLinkDeletionFailed       AppointmentServiceError = "randevu linki silinemedi"
	ErrAppTypeNotFound             AppointmentServiceError = "randevu hizmet türü bulunamadı"
)

// IAppointmentService randevu hizmeti işlemleri için arayüz.
type IAppointmentService interface {
	CreateAppointment(ctx context.Context, providerUserID uint, orgID *uint, detailData models.AppointmentDetail) (*models.Appointment, error)
	GetAppointmentByID(ctx context.Context, id uint, requestingUserID uint) (*models.Appointment, error)
	GetAppointmentByKey(ctx context.Context, key string) (*models.Appointment, error)
	GetAppointmentsForUser(ctx context.Context, providerUserID uint, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	GetAllAppointmentsPaginated(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	UpdateAppointment(ctx context.Context, id uint, updatingUserID uint, detailData models.AppointmentDetail, isEnabled bool) error
	DeleteAppointment(ctx context.Context, id uint, deletingUserID uint) error
	GetAppointmentCountForUser(ctx context.Context, providerUserID uint) (int64, error)
	GetAllAppointmentsCount(ctx context.Context) (int64, error)
}

// AppointmentService IAppointmentService arayüzünü uygular.
type AppointmentService struct {
	repo        repositories.IAppointmentRepository
	linkService ILinkService
	typeService ITypeService
	userService IUserService
	db          *gorm.DB
	now         func() time.Time
}

// NewAppointmentService yeni bir AppointmentService örneği oluşturur.
func NewAppointmentService() IAppointmentService {
	return &AppointmentService{
		repo:        repositories.NewAppointmentRepository(),
		linkService: NewLinkService(),
		typeService: NewTypeService(),
		userService: NewUserService(),
		db:          configs.GetDB(),
		now:         time.Now,
	}
}

// ValidateAppointmentDetail temel validasyonları yapar. Çalışma saatleri ve
// saat dilimi, müsaitlik hesabında kullanılacak takvime çevrilerek doğrulanır.
func ValidateAppointmentDetail(detail models.AppointmentDetail) error {
	if strings.TrimSpace(detail.Name) == "" {
		return ErrAppointmentNameRequired
	}
	if detail.DurationMinutes <= 0 {
		return ErrAppointmentDurationRequired
	}
	if detail.BookingLeadTime < 0 {
		return fmt.Errorf("%w: rezervasyon öncesi süre negatif olamaz", ErrAppInvalidInput)
	}
	if detail.BookingHorizonDays <= 0 {
		return fmt.Errorf("%w: rezervasyon ufku pozitif olmalı", ErrAppInvalidInput)
	}
	if detail.BufferTimeBefore < 0 || detail.BufferTimeAfter < 0 {
		return fmt.Errorf("%w: tampon süreler negatif olamaz", ErrAppInvalidInput)
	}
	if detail.Price.IsNegative() {
		return fmt.Errorf("%w: ücret negatif olamaz", ErrAppInvalidInput)
	}
	if detail.Currency != "" && validation.Get().Var(detail.Currency, "iso4217") != nil {
		return fmt.Errorf("%w: para birimi ISO 4217 kodu olmalı", ErrAppInvalidInput)
	}
	if detail.ColorCode != "" && validation.Get().Var(detail.ColorCode, "hexcolor,len=7") != nil {
		return fmt.Errorf("%w: renk kodu #RRGGBB biçiminde olmalı", ErrAppInvalidInput)
	}
	if _, err := availability.FromDetail(detail); err != nil {
		return fmt.Errorf("%w: %v", ErrAppInvalidInput, err)
	}
	return nil
}

// CreateAppointment yeni bir randevu hizmeti, detayları ve linkini oluşturur.
func (s *AppointmentService) CreateAppointment(ctx context.Context, providerUserID uint, orgID *uint, detailData models.AppointmentDetail) (*models.Appointment, error) {
	if err := ValidateAppointmentDetail(detailData); err != nil {
		return nil, err
	}
	if providerUserID == 0 {
		return nil, fmt.Errorf("%w: geçersiz sağlayıcı kullanıcı ID", ErrAppInvalidInput)
	}

	appointmentType, err := s.typeService.GetTypeByName(ctx, models.TypeNameAppointment)
	if err != nil {
		return nil, ErrAppTypeNotFound
	}
	if detailData.PasswordHash, err = hashPassword(detailData.PasswordHash); err != nil {
		return nil, ErrAppPasswordHashingFailed
	}
	detailData.ID = 0
	detailData.AppointmentID = 0

	var created *models.Appointment
	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		txCtx := repositories.WithTx(models.WithUserID(ctx, providerUserID), tx)

		link, err := s.linkService.CreateLink(txCtx, providerUserID, appointmentType.ID)
		if err != nil {
			return ErrAppLinkCreationFailed
		}

		appointment := models.Appointment{
			LinkID:         link.ID,
			ProviderUserID: providerUserID,
			OrganizationID: orgID,
			IsEnabled:      true,
			Detail:         detailData,
		}
		if err := repositories.NewAppointmentRepositoryTx(tx).Create(txCtx, &appointment); err != nil {
			configslog.Log.Error("Randevu hizmeti oluşturulamadı", zap.Uint("providerUserID", providerUserID), zap.Error(err))
			return ErrAppointmentCreationFailed
		}
		if err := s.linkService.UpdateLinkTarget(txCtx, providerUserID, link.ID, appointment.ID); err != nil {
			return ErrAppLinkUpdateFailed
		}

		appointment.Link = *link
		appointment.Link.TargetID = appointment.ID
		appointment.Link.Type = *appointmentType
		created = &appointment
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	configslog.SLog.Infof("Randevu hizmeti oluşturuldu: ID %d, Ad: %s, LinkKey: %s", created.ID, created.Detail.Name, created.Link.Key)
	return created, nil
}

// GetAppointmentByID belirli bir hizmeti ID ve kullanıcı yetkisine göre getirir.
func (s *AppointmentService) GetAppointmentByID(ctx context.Context, id uint, requestingUserID uint) (*models.Appointment, error) {
	appointment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, err
	}
	if !canManage(ctx, s.userService, requestingUserID, appointment.ProviderUserID) {
		return nil, ErrAppointmentForbidden
	}
	return appointment, nil
}

// GetAppointmentByKey public link anahtarı ile aktif hizmeti getirir.
func (s *AppointmentService) GetAppointmentByKey(ctx context.Context, key string) (*models.Appointment, error) {
	link, err := s.linkService.GetLinkByKey(ctx, key)
	if err != nil {
		if errors.Is(err, ErrLinkNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, err
	}
	if link.Type.Name != models.TypeNameAppointment || link.TargetID == 0 {
		return nil, ErrAppointmentNotFound
	}

	appointment, err := s.repo.FindByID(ctx, link.TargetID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, err
	}
	if !appointment.IsEnabled || appointment.Detail.IsExpired(s.now()) {
		return nil, ErrAppointmentNotFound
	}
	return appointment, nil
}

// GetAppointmentsForUser kullanıcıya (sağlayıcıya) ait randevu hizmetlerini sayfalayarak getirir.
func (s *AppointmentService) GetAppointmentsForUser(ctx context.Context, providerUserID uint, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	if providerUserID == 0 {
		return nil, errors.New("geçersiz sağlayıcı kullanıcı ID")
	}
	params.Validate()

	appointments, totalCount, err := s.repo.FindAllByUserIDPaginated(ctx, providerUserID, params)
	if err != nil {
		configslog.Log.Error("Kullanıcı randevu hizmetleri alınırken hata", zap.Uint("providerUserID", providerUserID), zap.Error(err))
		return nil, err
	}
	return queryparams.NewPaginatedResult(appointments, totalCount, params), nil
}

// GetAllAppointmentsPaginated tüm hizmetleri sayfalayarak getirir (Admin için).
func (s *AppointmentService) GetAllAppointmentsPaginated(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	params.Validate()

	appointments, totalCount, err := s.repo.FindAllPaginated(ctx, params)
	if err != nil {
		return nil, err
	}
	return queryparams.NewPaginatedResult(appointments, totalCount, params), nil
}

func (s *AppointmentService) lockAppointment(ctx context.Context, tx *gorm.DB, id, userID uint) (*models.Appointment, error) {
	var appointment models.Appointment
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Preload("Detail").First(&appointment, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, err
	}
	if !canManage(ctx, s.userService, userID, appointment.ProviderUserID) {
		return nil, ErrAppointmentForbidden
	}
	return &appointment, nil
}

// UpdateAppointment mevcut bir randevu hizmetini ve detaylarını günceller.
// Şifre boş gönderilirse mevcut şifre korunur.
func (s *AppointmentService) UpdateAppointment(ctx context.Context, id uint, updatingUserID uint, detailData models.AppointmentDetail, isEnabled bool) error {
	if err := ValidateAppointmentDetail(detailData); err != nil {
		return err
	}
	if id == 0 || updatingUserID == 0 {
		return fmt.Errorf("%w: geçersiz ID veya güncelleyen kullanıcı ID", ErrAppInvalidInput)
	}
	newHash, err := hashPassword(detailData.PasswordHash)
	if err != nil {
		return ErrAppPasswordHashingFailed
	}

	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		txCtx := repositories.WithTx(models.WithUserID(ctx, updatingUserID), tx)
		repoTx := repositories.NewAppointmentRepositoryTx(tx)

		appointment, err := s.lockAppointment(txCtx, tx, id, updatingUserID)
		if err != nil {
			return err
		}
		appointment.IsEnabled = isEnabled

		detail := appointment.Detail
		detail.Name = detailData.Name
		detail.Description = detailData.Description
		detail.DurationMinutes = detailData.DurationMinutes
		detail.Price = detailData.Price
		detail.Currency = detailData.Currency
		detail.RequiresApproval = detailData.RequiresApproval
		detail.BufferTimeBefore = detailData.BufferTimeBefore
		detail.BufferTimeAfter = detailData.BufferTimeAfter
		detail.BookingLeadTime = detailData.BookingLeadTime
		detail.BookingHorizonDays = detailData.BookingHorizonDays
		detail.Timezone = detailData.Timezone
		detail.WorkdayStart = detailData.WorkdayStart
		detail.WorkdayEnd = detailData.WorkdayEnd
		detail.WorkingDays = detailData.WorkingDays
		detail.ColorCode = detailData.ColorCode
		detail.CancellationPolicy = detailData.CancellationPolicy
		detail.ExpiresAt = detailData.ExpiresAt
		if newHash != "" {
			detail.PasswordHash = newHash
		}

		if err := repoTx.UpdateDetail(txCtx, &detail); err != nil {
			return ErrAppointmentUpdateFailed
		}
		if err := repoTx.Update(txCtx, appointment); err != nil {
			return ErrAppointmentUpdateFailed
		}
		return nil
	})
	if txErr != nil {
		configslog.Log.Error("UpdateAppointment transaction failed", zap.Uint("id", id), zap.Uint("userID", updatingUserID), zap.Error(txErr))
		return txErr
	}
	configslog.SLog.Infof("Randevu hizmeti güncellendi: ID %d (Güncelleyen: %d)", id, updatingUserID)
	return nil
}

// DeleteAppointment bir hizmeti ve ilişkili linkini siler.
func (s *AppointmentService) DeleteAppointment(ctx context.Context, id uint, deletingUserID uint) error {
	if id == 0 || deletingUserID == 0 {
		return fmt.Errorf("%w: geçersiz ID veya silen kullanıcı ID", ErrAppInvalidInput)
	}

	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		txCtx := repositories.WithTx(models.WithUserID(ctx, deletingUserID), tx)

		appointment, err := s.lockAppointment(txCtx, tx, id, deletingUserID)
		if err != nil {
			return err
		}
		if err := repositories.NewAppointmentRepositoryTx(tx).Delete(txCtx, appointment, deletingUserID); err != nil {
			configslog.Log.Error("Randevu hizmeti silinemedi", zap.Uint("id", id), zap.Error(err))
			return ErrAppointmentDeletionFailed
		}
		if err := s.linkService.DeleteLink(txCtx, deletingUserID, appointment.LinkID); err != nil && !errors.Is(err, ErrLinkNotFound) {
			return ErrAppLinkDeletionFailed
		}
		return nil
	})
	if txErr != nil {
		return txErr
	}
	configslog.SLog.Infof("Randevu hizmeti silindi: ID %d (Silen: %d)", id, deletingUserID)
	return nil
}

// GetAppointmentCountForUser sağlayıcının hizmet sayısını döndürür.
func (s *AppointmentService) GetAppointmentCountForUser(ctx context.Context, providerUserID uint) (int64, error) {
	if providerUserID == 0 {
		return 0, errors.New("geçersiz sağlayıcı kullanıcı ID")
	}
	return s.repo.CountByUserID(ctx, providerUserID)
}

// GetAllAppointmentsCount tüm hizmetlerin sayısını döndürür (Admin için).
func (s *AppointmentService) GetAllAppointmentsCount(ctx context.Context) (int64, error) {
	return s.repo.CountAll(ctx)
}

var _ IAppointmentService = (*AppointmentService)(nil)
