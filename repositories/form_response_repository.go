package repositories

import (
	"context"
	"errors"

	"formly.link/configs"
	"formly.link/configs/configslog"
	"formly.link/models"
	"formly.link/pkg/queryparams"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// IFormResponseRepository form gönderimleri için arayüz. Gönderimler
// oluşturulduktan sonra güncellenmez.
type IFormResponseRepository interface {
	Create(ctx context.Context, response *models.FormResponse, limit *int) error
	FindByToken(ctx context.Context, formID uint, token string) (*models.FormResponse, error)
	FindByFormIDPaginated(ctx context.Context, formID uint, params queryparams.ListParams) ([]models.FormResponse, int64, error)
	CountByFormID(ctx context.Context, formID uint) (int64, error)
}

type FormResponseRepository struct {
	db   *gorm.DB
	base IBaseRepository[models.FormResponse]
}

func NewFormResponseRepository() IFormResponseRepository {
	return NewFormResponseRepositoryTx(configs.GetDB())
}

func NewFormResponseRepositoryTx(tx *gorm.DB) IFormResponseRepository {
	base := NewBaseRepository[models.FormResponse](tx)
	base.SetAllowedSortColumns([]string{"id", "created_at", "submitted_at"})
	return &FormResponseRepository{db: tx, base: base}
}

// Create gönderimi kaydeder. Aynı form ve token ile ikinci kayıt ErrDuplicate döndürür.
// limit doluysa form satırı kilitlenir, sayım ve kayıt aynı transaction'da yapılır;
// limit dolmuşsa ErrLimitReached döner.
func (r *FormResponseRepository) Create(ctx context.Context, response *models.FormResponse, limit *int) error {
	if response == nil || response.FormID == 0 {
		return errors.New("geçersiz form gönderimi")
	}
	err := dbFor(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if limit != nil {
			var form models.Form
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Select("id").First(&form, response.FormID).Error; err != nil {
				return err
			}
			var count int64
			if err := tx.Model(&models.FormResponse{}).Where("form_id = ?", response.FormID).Count(&count).Error; err != nil {
				return err
			}
			if count >= int64(*limit) {
				return ErrLimitReached
			}
		}
		return tx.Create(response).Error
	})
	err = translate(err)
	if err != nil && !errors.Is(err, ErrDuplicate) && !errors.Is(err, ErrLimitReached) {
		configslog.Log.Error("FormResponseRepository.Create: DB error", zap.Uint("form_id", response.FormID), zap.Error(err))
	}
	return err
}

// FindByToken aynı token ile daha önce kaydedilmiş gönderimi bulur.
func (r *FormResponseRepository) FindByToken(ctx context.Context, formID uint, token string) (*models.FormResponse, error) {
	var response models.FormResponse
	err := dbFor(ctx, r.db).Where("form_id = ? AND submission_token = ?", formID, token).First(&response).Error
	if err != nil {
		return nil, translate(err)
	}
	return &response, nil
}

func (r *FormResponseRepository) FindByFormIDPaginated(ctx context.Context, formID uint, params queryparams.ListParams) ([]models.FormResponse, int64, error) {
	var responses []models.FormResponse
	total, err := r.CountByFormID(ctx, formID)
	if err != nil || total == 0 {
		return responses, total, err
	}
	query := r.base.ApplyListParams(dbFor(ctx, r.db).Where("form_id = ?", formID), params)
	if err := query.Find(&responses).Error; err != nil {
		configslog.Log.Error("FormResponseRepository.FindByFormIDPaginated: DB error", zap.Uint("form_id", formID), zap.Error(err))
		return nil, total, err
	}
	return responses, total, nil
}

func (r *FormResponseRepository) CountByFormID(ctx context.Context, formID uint) (int64, error) {
	return r.base.Count(ctx, "form_id = ?", formID)
}

var _ IFormResponseRepository = (*FormResponseRepository)(nil)
