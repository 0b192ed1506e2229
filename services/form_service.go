package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"formly.link/configs"
	"formly.link/configs/configslog"
	"formly.link/models"
	"formly.link/pkg/queryparams"
	"formly.link/repositories"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FormServiceError özel servis hataları
type FormServiceError string

func (e FormServiceError) Error() string { return string(e) }

const (
	ErrFormNotFound             FormServiceError = "form bulunamadı"
	ErrFormClosed               FormServiceError = "form yanıt kabul etmiyor"
	ErrFormCreationFailed       FormServiceError = "form oluşturulamadı"
	ErrFormUpdateFailed         FormServiceError = "form güncellenemedi"
	ErrFormDeletionFailed       FormServiceError = "form silinemedi"
	ErrFormForbidden            FormServiceError = "bu işlem için yetkiniz yok"
	ErrFrmInvalidInput          FormServiceError = "geçersiz girdi verisi"
	ErrFormTitleRequired        FormServiceError = "form başlığı zorunludur"
	ErrFormHasNoQuestions       FormServiceError = "soru içermeyen form yayınlanamaz"
	ErrFrmLinkCreationFailed    FormServiceError = "form için link oluşturulamadı"
	ErrFrmTypeNotFound          FormServiceError = "form hizmet türü bulunamadı"
	ErrFrmLinkUpdateFailed      FormServiceError = "form linki güncellenemedi"
	ErrFrmLinkDeletionFailed    FormServiceError = "form linki silinemedi"
	ErrFrmPasswordHashingFailed FormServiceError = "form şifresi oluşturulamadı"

	ErrQuestionTitleRequired   FormServiceError = "soru başlığı zorunludur"
	ErrQuestionTypeUnknown     FormServiceError = "bilinmeyen soru türü"
	ErrQuestionKeyInvalid      FormServiceError = "soru anahtarı sadece harf, rakam, '_' ve '-' içerebilir"
	ErrQuestionKeyDuplicate    FormServiceError = "soru anahtarı form içinde benzersiz olmalıdır"
	ErrQuestionOptionsRequired FormServiceError = "seçenekli sorular en az bir seçenek içermelidir"
	ErrQuestionRatingRange     FormServiceError = "puan üst sınırı 1 ile 10 arasında olmalıdır"
)

// IFormService form işlemleri için arayüz.
type IFormService interface {
	CreateForm(ctx context.Context, creatorUserID uint, orgID *uint, detailData models.FormDetail, questions []models.FormQuestion) (*models.Form, error)
	GetFormByID(ctx context.Context, id uint, requestingUserID uint) (*models.Form, error)
	GetFormByKey(ctx context.Context, key string) (*models.Form, error)
	GetFormsForUser(ctx context.Context, creatorUserID uint, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	GetAllFormsPaginated(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	UpdateForm(ctx context.Context, id uint, updatingUserID uint, detailData models.FormDetail, isEnabled bool) error
	ReplaceQuestions(ctx context.Context, id uint, updatingUserID uint, questions []models.FormQuestion) ([]models.FormQuestion, error)
	SetPublished(ctx context.Context, id uint, updatingUserID uint, published bool) error
	DeleteForm(ctx context.Context, id uint, deletingUserID uint) error
	GetFormCountForUser(ctx context.Context, creatorUserID uint) (int64, error)
	GetAllFormsCount(ctx context.Context) (int64, error)
}

// FormService IFormService arayüzünü uygular.
type FormService struct {
	repo        repositories.IFormRepository
	cache       repositories.IFormSchemaCache
	linkService ILinkService
	typeService ITypeService
	userService IUserService
	db          *gorm.DB
	now         func() time.Time
}

// NewFormService yeni bir FormService örneği oluşturur.
func NewFormService() IFormService {
	return &FormService{
		repo:        repositories.NewFormRepository(),
		cache:       repositories.NewFormSchemaCache(),
		linkService: NewLinkService(),
		typeService: NewTypeService(),
		userService: NewUserService(),
		db:          configs.GetDB(),
		now:         time.Now,
	}
}

// CreateForm yeni bir form, detayları, soruları ve linkini oluşturur.
func (s *FormService) CreateForm(ctx context.Context, creatorUserID uint, orgID *uint, detailData models.FormDetail, questions []models.FormQuestion) (*models.Form, error) {
	if err := ValidateFormDetail(detailData); err != nil {
		return nil, err
	}
	if creatorUserID == 0 {
		return nil, fmt.Errorf("%w: geçersiz oluşturan kullanıcı ID", ErrFrmInvalidInput)
	}
	normalized, err := NormalizeQuestions(questions)
	if err != nil {
		return nil, err
	}

	formType, err := s.typeService.GetTypeByName(ctx, models.TypeNameForm)
	if err != nil {
		return nil, ErrFrmTypeNotFound
	}

	if detailData.PasswordHash, err = hashPassword(detailData.PasswordHash); err != nil {
		return nil, ErrFrmPasswordHashingFailed
	}
	detailData.ID = 0
	detailData.FormID = 0

	var createdForm *models.Form
	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		txCtx := repositories.WithTx(models.WithUserID(ctx, creatorUserID), tx)

		link, err := s.linkService.CreateLink(txCtx, creatorUserID, formType.ID)
		if err != nil {
			return ErrFrmLinkCreationFailed
		}

		form := models.Form{
			LinkID:         link.ID,
			CreatorUserID:  creatorUserID,
			OrganizationID: orgID,
			IsEnabled:      true,
			Detail:         detailData,
			Questions:      normalized,
		}
		if err := repositories.NewFormRepositoryTx(tx).Create(txCtx, &form); err != nil {
			configslog.Log.Error("Form oluşturulamadı", zap.Uint("creatorUserID", creatorUserID), zap.Error(err))
			return ErrFormCreationFailed
		}

		if err := s.linkService.UpdateLinkTarget(txCtx, creatorUserID, link.ID, form.ID); err != nil {
			return ErrFrmLinkUpdateFailed
		}

		form.Link = *link
		form.Link.TargetID = form.ID
		form.Link.Type = *formType
		createdForm = &form
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	configslog.SLog.Infof("Form oluşturuldu: ID %d, Başlık: %s, LinkKey: %s", createdForm.ID, createdForm.Detail.Title, createdForm.Link.Key)
	return createdForm, nil
}

// GetFormByID belirli bir formu ID ve kullanıcı yetkisine göre getirir.
// Yayında olmayan formlar da döner; sahibin önizlemesi bu metodu kullanır.
func (s *FormService) GetFormByID(ctx context.Context, id uint, requestingUserID uint) (*models.Form, error) {
	form, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrFormNotFound
		}
		return nil, err
	}
	if !canManage(ctx, s.userService, requestingUserID, form.CreatorUserID) {
		return nil, ErrFormForbidden
	}
	return form, nil
}

// GetFormByKey public link anahtarı ile yayındaki formu getirir.
// Kapanmış formlar, başlığı gösterilebilsin diye form ile birlikte ErrFormClosed döndürür.
func (s *FormService) GetFormByKey(ctx context.Context, key string) (*models.Form, error) {
	form, err := s.loadByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	if !form.IsEnabled || !form.IsPublished {
		return nil, ErrFormNotFound
	}
	if form.Detail.IsClosed(s.now()) {
		return form, ErrFormClosed
	}
	return form, nil
}

func (s *FormService) loadByKey(ctx context.Context, key string) (*models.Form, error) {
	if !models.IsValidLinkKey(key) {
		return nil, ErrFormNotFound
	}
	if cached, err := s.cache.Get(ctx, key); err == nil {
		return cached, nil
	}

	link, err := s.linkService.GetLinkByKey(ctx, key)
	if err != nil {
		if errors.Is(err, ErrLinkNotFound) {
			return nil, ErrFormNotFound
		}
		return nil, err
	}
	if link.Type.Name != models.TypeNameForm || link.TargetID == 0 {
		return nil, ErrFormNotFound
	}

	form, err := s.repo.FindByID(ctx, link.TargetID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			configslog.Log.Warn("Link hedefindeki form yok", zap.String("key", key), zap.Uint("target_id", link.TargetID))
			return nil, ErrFormNotFound
		}
		return nil, err
	}
	if err := s.cache.Set(ctx, key, form); err != nil {
		configslog.Log.Warn("Form şeması önbelleğe yazılamadı", zap.String("key", key), zap.Error(err))
	}
	return form, nil
}

func (s *FormService) invalidate(ctx context.Context, form *models.Form) {
	key := form.ShortID()
	if key == "" {
		return
	}
	if err := s.cache.Invalidate(ctx, key); err != nil {
		configslog.Log.Warn("Form şeması önbellekten silinemedi", zap.String("key", key), zap.Error(err))
	}
}

// GetFormsForUser kullanıcıya ait formları sayfalayarak getirir.
func (s *FormService) GetFormsForUser(ctx context.Context, creatorUserID uint, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	if creatorUserID == 0 {
		return nil, errors.New("geçersiz kullanıcı ID")
	}
	params.Validate()

	forms, totalCount, err := s.repo.FindAllByUserIDPaginated(ctx, creatorUserID, params)
	if err != nil {
		return nil, err
	}
	return queryparams.NewPaginatedResult(forms, totalCount, params), nil
}

// GetAllFormsPaginated tüm formları sayfalayarak getirir (Admin için).
func (s *FormService) GetAllFormsPaginated(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	params.Validate()

	forms, totalCount, err := s.repo.FindAllPaginated(ctx, params)
	if err != nil {
		return nil, err
	}
	return queryparams.NewPaginatedResult(forms, totalCount, params), nil
}

// lockForm formu satır kilidiyle getirir ve yetkiyi kontrol eder.
func (s *FormService) lockForm(ctx context.Context, tx *gorm.DB, id, userID uint) (*models.Form, error) {
	var form models.Form
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Preload("Detail").Preload("Link").First(&form, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFormNotFound
		}
		return nil, err
	}
	if !canManage(ctx, s.userService, userID, form.CreatorUserID) {
		return nil, ErrFormForbidden
	}
	return &form, nil
}

// UpdateForm mevcut bir formun detaylarını ve aktifliğini günceller.
// Şifre boş gönderilirse mevcut şifre korunur.
func (s *FormService) UpdateForm(ctx context.Context, id uint, updatingUserID uint, detailData models.FormDetail, isEnabled bool) error {
	if err := ValidateFormDetail(detailData); err != nil {
		return err
	}
	if id == 0 || updatingUserID == 0 {
		return fmt.Errorf("%w: geçersiz ID veya güncelleyen kullanıcı ID", ErrFrmInvalidInput)
	}

	newHash, err := hashPassword(detailData.PasswordHash)
	if err != nil {
		return ErrFrmPasswordHashingFailed
	}

	var updated *models.Form
	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		txCtx := repositories.WithTx(models.WithUserID(ctx, updatingUserID), tx)
		formRepoTx := repositories.NewFormRepositoryTx(tx)

		form, err := s.lockForm(txCtx, tx, id, updatingUserID)
		if err != nil {
			return err
		}

		form.IsEnabled = isEnabled
		detail := form.Detail
		detail.Title = detailData.Title
		detail.Description = detailData.Description
		detail.Theme = detailData.Theme
		detail.SubmissionLimit = detailData.SubmissionLimit
		detail.ClosesAt = detailData.ClosesAt
		detail.ConfirmationMessage = detailData.ConfirmationMessage
		detail.RedirectURLOnSubmit = detailData.RedirectURLOnSubmit
		detail.NotifyOnSubmitEmail = detailData.NotifyOnSubmitEmail
		if newHash != "" {
			detail.PasswordHash = newHash
		}

		if err := formRepoTx.UpdateDetail(txCtx, &detail); err != nil {
			return ErrFormUpdateFailed
		}
		if err := formRepoTx.Update(txCtx, form); err != nil {
			return ErrFormUpdateFailed
		}
		updated = form
		return nil
	})
	if txErr != nil {
		configslog.Log.Error("UpdateForm transaction failed", zap.Uint("id", id), zap.Uint("userID", updatingUserID), zap.Error(txErr))
		return txErr
	}

	s.invalidate(ctx, updated)
	configslog.SLog.Infof("Form güncellendi: ID %d (Güncelleyen: %d)", id, updatingUserID)
	return nil
}

// ReplaceQuestions formun sorularını verilen sırayla tamamen değiştirir.
func (s *FormService) ReplaceQuestions(ctx context.Context, id uint, updatingUserID uint, questions []models.FormQuestion) ([]models.FormQuestion, error) {
	normalized, err := NormalizeQuestions(questions)
	if err != nil {
		return nil, err
	}

	var form *models.Form
	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		txCtx := repositories.WithTx(models.WithUserID(ctx, updatingUserID), tx)

		var err error
		if form, err = s.lockForm(txCtx, tx, id, updatingUserID); err != nil {
			return err
		}
		if form.IsPublished && len(normalized) == 0 {
			return ErrFormHasNoQuestions
		}
		return repositories.NewFormRepositoryTx(tx).ReplaceQuestions(txCtx, id, normalized)
	})
	if txErr != nil {
		return nil, txErr
	}

	s.invalidate(ctx, form)
	configslog.SLog.Infof("Form soruları güncellendi: ID %d, %d soru", id, len(normalized))
	return normalized, nil
}

// SetPublished formu yayına alır veya yayından kaldırır.
func (s *FormService) SetPublished(ctx context.Context, id uint, updatingUserID uint, published bool) error {
	form, err := s.GetFormByID(ctx, id, updatingUserID)
	if err != nil {
		return err
	}
	if published && len(form.Questions) == 0 {
		return ErrFormHasNoQuestions
	}
	if err := s.repo.SetPublished(ctx, id, published, updatingUserID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrFormNotFound
		}
		return ErrFormUpdateFailed
	}
	s.invalidate(ctx, form)
	configslog.SLog.Infof("Form yayın durumu değişti: ID %d, yayında: %t", id, published)
	return nil
}

// DeleteForm bir formu ve ilişkili linkini siler.
func (s *FormService) DeleteForm(ctx context.Context, id uint, deletingUserID uint) error {
	if id == 0 || deletingUserID == 0 {
		return fmt.Errorf("%w: geçersiz ID veya silen kullanıcı ID", ErrFrmInvalidInput)
	}

	var deleted *models.Form
	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		txCtx := repositories.WithTx(models.WithUserID(ctx, deletingUserID), tx)

		form, err := s.lockForm(txCtx, tx, id, deletingUserID)
		if err != nil {
			return err
		}
		if err := repositories.NewFormRepositoryTx(tx).Delete(txCtx, form, deletingUserID); err != nil {
			configslog.Log.Error("Form silinemedi", zap.Uint("id", id), zap.Error(err))
			return ErrFormDeletionFailed
		}
		if err := s.linkService.DeleteLink(txCtx, deletingUserID, form.LinkID); err != nil && !errors.Is(err, ErrLinkNotFound) {
			return ErrFrmLinkDeletionFailed
		}
		deleted = form
		return nil
	})
	if txErr != nil {
		return txErr
	}

	s.invalidate(ctx, deleted)
	configslog.SLog.Infof("Form silindi: ID %d (Silen: %d)", id, deletingUserID)
	return nil
}

// GetFormCountForUser kullanıcının form sayısını döndürür.
func (s *FormService) GetFormCountForUser(ctx context.Context, creatorUserID uint) (int64, error) {
	if creatorUserID == 0 {
		return 0, errors.New("geçersiz kullanıcı ID")
	}
	return s.repo.CountByUserID(ctx, creatorUserID)
}

// GetAllFormsCount tüm formların sayısını döndürür (Admin için).
func (s *FormService) GetAllFormsCount(ctx context.Context) (int64, error) {
	return s.repo.CountAll(ctx)
}

var _ IFormService = (*FormService)(nil)
