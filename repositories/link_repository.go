package repositories

import (
	"context"
	"errors"

	"formly.link/configs"
	"formly.link/configs/configslog"
	"formly.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ILinkRepository link veritabanı işlemleri için arayüz.
type ILinkRepository interface {
	Create(ctx context.Context, link *models.Link) error
	FindByID(ctx context.Context, id uint) (*models.Link, error)
	FindByKey(ctx context.Context, key string) (*models.Link, error)
	KeyExists(ctx context.Context, key string) (bool, error)
	Update(ctx context.Context, id uint, data map[string]interface{}, updatedByUserID uint) error
	Delete(ctx context.Context, link *models.Link, deletedByUserID uint) error
}

// LinkRepository ILinkRepository arayüzünü uygular.
type LinkRepository struct {
	db *gorm.DB
}

// NewLinkRepository yeni bir LinkRepository örneği oluşturur.
func NewLinkRepository() ILinkRepository {
	return &LinkRepository{db: configs.GetDB()}
}

// Transaction'lı Repository için yardımcı constructor
func NewLinkRepositoryTx(tx *gorm.DB) ILinkRepository {
	return &LinkRepository{db: tx}
}

func (r *LinkRepository) getDB(ctx context.Context) *gorm.DB {
	return dbFor(ctx, r.db)
}

// Create yeni bir link kaydı oluşturur. Key, modelin BeforeCreate hook'unda üretilir.
func (r *LinkRepository) Create(ctx context.Context, link *models.Link) error {
	if link == nil {
		return errors.New("oluşturulacak link nil olamaz")
	}
	return translate(r.getDB(ctx).Create(link).Error)
}

// FindByID ID ile bir link kaydını bulur (Type ilişkisiyle).
func (r *LinkRepository) FindByID(ctx context.Context, id uint) (*models.Link, error) {
	if id == 0 {
		return nil, errors.New("geçersiz Link ID")
	}
	var link models.Link
	err := r.getDB(ctx).Preload("Type").First(&link, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("LinkRepository.FindByID: DB error", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &link, nil
}

// FindByKey benzersiz anahtar (shortId) ile bir link kaydını bulur.
func (r *LinkRepository) FindByKey(ctx context.Context, key string) (*models.Link, error) {
	if key == "" {
		return nil, errors.New("aranacak link key'i boş olamaz")
	}
	var link models.Link
	err := r.getDB(ctx).Preload("Type").Where("key = ?", key).First(&link).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("LinkRepository.FindByKey: DB error", zap.String("key", key), zap.Error(err))
		return nil, err
	}
	return &link, nil
}

// KeyExists anahtarın (silinmiş kayıtlar dahil) kullanılıp kullanılmadığını kontrol eder.
func (r *LinkRepository) KeyExists(ctx context.Context, key string) (bool, error) {
	if key == "" {
		return false, errors.New("kontrol edilecek link key'i boş olamaz")
	}
	var count int64
	err := r.getDB(ctx).Unscoped().Model(&models.Link{}).Where("key = ?", key).Count(&count).Error
	if err != nil {
		configslog.Log.Error("LinkRepository.KeyExists: DB error", zap.String("key", key), zap.Error(err))
		return false, err
	}
	return count > 0, nil
}

// Update belirli bir linkin alanlarını günceller.
func (r *LinkRepository) Update(ctx context.Context, id uint, data map[string]interface{}, updatedByUserID uint) error {
	if id == 0 {
		return errors.New("güncellenecek link ID'si geçersiz")
	}
	if len(data) == 0 {
		return errors.New("güncellenecek veri boş olamaz")
	}
	db := r.getDB(models.WithUserID(ctx, updatedByUserID))

	result := db.Model(&models.Link{}).Where("id = ?", id).Updates(data)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var exists int64
		countErr := db.Model(&models.Link{}).Where("id = ?", id).Count(&exists).Error
		if countErr == nil && exists == 0 {
			return ErrNotFound
		}
		configslog.SLog.Debugf("LinkRepository.Update: satır etkilenmedi, link_id=%d", id)
	}
	return nil
}

// Delete bir link kaydını siler (soft delete) ve silen kullanıcıyı yazar.
func (r *LinkRepository) Delete(ctx context.Context, link *models.Link, deletedByUserID uint) error {
	if link == nil || link.ID == 0 {
		return errors.New("silinecek link geçerli değil")
	}
	return r.getDB(ctx).Transaction(func(tx *gorm.DB) error {
		if deletedByUserID != 0 {
			if err := tx.Model(link).UpdateColumn("deleted_by", &deletedByUserID).Error; err != nil {
				configslog.Log.Error("LinkRepository.Delete: DeletedBy güncellenemedi", zap.Uint("link_id", link.ID), zap.Error(err))
				return err
			}
		}
		result := tx.Delete(link)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

var _ ILinkRepository = (*LinkRepository)(nil)
