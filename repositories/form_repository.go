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

// IFormRepository form veritabanı işlemleri için arayüz.
type IFormRepository interface {
	Create(ctx context.Context, form *models.Form) error
	FindByID(ctx context.Context, id uint) (*models.Form, error)
	FindAllByUserIDPaginated(ctx context.Context, userID uint, params queryparams.ListParams) ([]models.Form, int64, error)
	FindAllPaginated(ctx context.Context, params queryparams.ListParams) ([]models.Form, int64, error)
	Update(ctx context.Context, form *models.Form) error
	UpdateDetail(ctx context.Context, detail *models.FormDetail) error
	ReplaceQuestions(ctx context.Context, formID uint, questions []models.FormQuestion) error
	SetPublished(ctx context.Context, formID uint, published bool, updatedByUserID uint) error
	Delete(ctx context.Context, form *models.Form, deletedByUserID uint) error
	CountByUserID(ctx context.Context, userID uint) (int64, error)
	CountAll(ctx context.Context) (int64, error)
}

// FormRepository IFormRepository arayüzünü uygular.
type FormRepository struct {
	db   *gorm.DB
	base IBaseRepository[models.Form]
}

// NewFormRepository yeni bir FormRepository örneği oluşturur.
func NewFormRepository() IFormRepository {
	return NewFormRepositoryTx(configs.GetDB())
}

// Transaction'lı Repository için yardımcı constructor
func NewFormRepositoryTx(tx *gorm.DB) IFormRepository {
	base := NewBaseRepository[models.Form](tx)
	base.SetAllowedSortColumns([]string{"id", "created_at", "is_enabled", "is_published"})
	return &FormRepository{db: tx, base: base}
}

func (r *FormRepository) getDB(ctx context.Context) *gorm.DB {
	return dbFor(ctx, r.db)
}

// orderedQuestions soruları gösterim sırasıyla yükler.
func orderedQuestions(db *gorm.DB) *gorm.DB {
	return db.Order("form_questions.position asc, form_questions.id asc")
}

// Create yeni bir form, detayını ve sorularını oluşturur.
func (r *FormRepository) Create(ctx context.Context, form *models.Form) error {
	if form == nil || form.LinkID == 0 {
		return errors.New("geçersiz veya eksik link bilgisi olan form oluşturulamaz")
	}
	return translate(r.getDB(ctx).Create(form).Error)
}

// FindByID belirli bir ID'ye sahip formu detay, link ve sorularıyla bulur.
func (r *FormRepository) FindByID(ctx context.Context, id uint) (*models.Form, error) {
	if id == 0 {
		return nil, errors.New("geçersiz Form ID")
	}
	var form models.Form
	err := r.getDB(ctx).
		Preload("Detail").
		Preload("Link.Type").
		Preload("Questions", orderedQuestions).
		First(&form, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("FormRepository.FindByID: DB error", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &form, nil
}

// applyFormFilters başlık ve durum filtrelerini uygular.
func (r *FormRepository) applyFormFilters(query *gorm.DB, params queryparams.ListParams) (*gorm.DB, bool) {
	needsJoin := false
	if params.Name != "" {
		sqlFragment, args := turkishsearch.SQLFilter("form_details.title", params.Name)
		query = query.Joins("JOIN form_details ON form_details.form_id = forms.id AND form_details.deleted_at IS NULL").Where(sqlFragment, args...)
		needsJoin = true
	}
	if params.Status != "" {
		query = query.Where("forms.is_enabled = ?", params.Status == "true")
	}
	return query, needsJoin
}

// applyFormOrder sıralamayı uygular; detay alanlarına göre sıralamada join ekler.
func (r *FormRepository) applyFormOrder(query *gorm.DB, params queryparams.ListParams, joined bool) *gorm.DB {
	orderBy := strings.ToLower(params.OrderBy)
	if orderBy != "asc" && orderBy != "desc" {
		orderBy = queryparams.DefaultOrderBy
	}
	allowedSortColumns := map[string]string{
		"id":           "forms.id",
		"created_at":   "forms.created_at",
		"is_enabled":   "forms.is_enabled",
		"is_published": "forms.is_published",
		"title":        "form_details.title",
		"closes_at":    "form_details.closes_at",
	}
	orderColumn, ok := allowedSortColumns[params.SortBy]
	if !ok {
		if params.SortBy != "" {
			configslog.SLog.Warnf("Geçersiz Form sıralama alanı istendi, varsayılan kullanılıyor: %s", params.SortBy)
		}
		orderColumn = "forms.created_at"
	}
	if strings.HasPrefix(orderColumn, "form_details.") && !joined {
		query = query.Joins("JOIN form_details ON form_details.form_id = forms.id AND form_details.deleted_at IS NULL")
	}
	return query.Order(orderColumn + " " + orderBy)
}

func (r *FormRepository) findPaginated(ctx context.Context, scope func(*gorm.DB) *gorm.DB, params queryparams.ListParams) ([]models.Form, int64, error) {
	var forms []models.Form
	var totalCount int64

	query, joined := r.applyFormFilters(scope(r.getDB(ctx).Model(&models.Form{})), params)

	if err := query.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}
	if totalCount == 0 {
		return forms, 0, nil
	}

	query = r.applyFormOrder(query, params, joined).
		Select("forms.*").
		Preload("Detail").
		Preload("Link.Type").
		Limit(params.PerPage).
		Offset(params.CalculateOffset())
	if err := query.Find(&forms).Error; err != nil {
		return nil, totalCount, err
	}
	return forms, totalCount, nil
}

// FindAllByUserIDPaginated belirli bir kullanıcıya ait formları sayfalayarak bulur.
func (r *FormRepository) FindAllByUserIDPaginated(ctx context.Context, creatorUserID uint, params queryparams.ListParams) ([]models.Form, int64, error) {
	if creatorUserID == 0 {
		return nil, 0, errors.New("geçersiz Creator User ID")
	}
	forms, total, err := r.findPaginated(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("forms.creator_user_id = ?", creatorUserID)
	}, params)
	if err != nil {
		configslog.Log.Error("FormRepository.FindAllByUserIDPaginated: DB error", zap.Uint("creatorUserID", creatorUserID), zap.Error(err))
	}
	return forms, total, err
}

// FindAllPaginated tüm formları sayfalayarak bulur (Admin için).
func (r *FormRepository) FindAllPaginated(ctx context.Context, params queryparams.ListParams) ([]models.Form, int64, error) {
	forms, total, err := r.findPaginated(ctx, func(db *gorm.DB) *gorm.DB { return db }, params)
	if err != nil {
		configslog.Log.Error("FormRepository.FindAllPaginated: DB error", zap.Error(err))
	}
	return forms, total, err
}

// Update sadece ana Form modelini günceller.
func (r *FormRepository) Update(ctx context.Context, form *models.Form) error {
	if form == nil || form.ID == 0 {
		return errors.New("güncellenecek form geçerli değil")
	}
	return r.getDB(ctx).Omit("Link", "Detail", "Questions").Save(form).Error
}

// UpdateDetail sadece FormDetail modelini günceller.
func (r *FormRepository) UpdateDetail(ctx context.Context, detail *models.FormDetail) error {
	if detail == nil || detail.ID == 0 {
		return errors.New("güncellenecek form detayı geçerli değil")
	}
	return r.getDB(ctx).Save(detail).Error
}

// ReplaceQuestions formun tüm sorularını verilen listeyle değiştirir.
// Eski sorular kalıcı olarak silinir, (form_id, key) benzersizliği yeni listeye uygulanır.
func (r *FormRepository) ReplaceQuestions(ctx context.Context, formID uint, questions []models.FormQuestion) error {
	if formID == 0 {
		return errors.New("geçersiz Form ID")
	}
	return r.getDB(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("form_id = ?", formID).Delete(&models.FormQuestion{}).Error; err != nil {
			configslog.Log.Error("FormRepository.ReplaceQuestions: silme hatası", zap.Uint("form_id", formID), zap.Error(err))
			return err
		}
		if len(questions) == 0 {
			return nil
		}
		for i := range questions {
			questions[i].ID = 0
			questions[i].FormID = formID
		}
		if err := tx.Create(&questions).Error; err != nil {
			configslog.Log.Error("FormRepository.ReplaceQuestions: ekleme hatası", zap.Uint("form_id", formID), zap.Error(err))
			return translate(err)
		}
		return nil
	})
}

// SetPublished yayın durumunu değiştirir.
func (r *FormRepository) SetPublished(ctx context.Context, formID uint, published bool, updatedByUserID uint) error {
	db := r.getDB(models.WithUserID(ctx, updatedByUserID))
	result := db.Model(&models.Form{}).Where("id = ?", formID).
		Updates(map[string]interface{}{"is_published": published, "updated_by": updatedByUserID})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete formu, detayını ve sorularını siler (soft delete).
func (r *FormRepository) Delete(ctx context.Context, form *models.Form, deletedByUserID uint) error {
	if form == nil || form.ID == 0 {
		return errors.New("silinecek form geçerli değil")
	}
	return r.getDB(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()
		updateData := map[string]interface{}{"deleted_at": now, "deleted_by": &deletedByUserID}

		if err := tx.Model(&models.FormQuestion{}).Where("form_id = ? AND deleted_at IS NULL", form.ID).Updates(updateData).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.FormDetail{}).Where("form_id = ? AND deleted_at IS NULL", form.ID).Updates(updateData).Error; err != nil {
			return err
		}
		result := tx.Model(&models.Form{}).Where("id = ? AND deleted_at IS NULL", form.ID).Updates(updateData)
		if result.Error != nil {
			configslog.Log.Error("FormRepository.Delete: Update sırasında hata", zap.Uint("id", form.ID), zap.Error(result.Error))
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// CountByUserID belirli bir kullanıcıya ait form sayısını döndürür.
func (r *FormRepository) CountByUserID(ctx context.Context, creatorUserID uint) (int64, error) {
	if creatorUserID == 0 {
		return 0, errors.New("geçersiz Creator User ID")
	}
	return r.base.Count(ctx, "creator_user_id = ?", creatorUserID)
}

// CountAll tüm formların sayısını döndürür (Admin için).
func (r *FormRepository) CountAll(ctx context.Context) (int64, error) {
	return r.base.Count(ctx, "")
}

var _ IFormRepository = (*FormRepository)(nil)
