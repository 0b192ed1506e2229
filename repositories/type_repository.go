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

// ITypeRepository hizmet türü (FORM, APPOINTMENT) kayıtları için arayüz.
type ITypeRepository interface {
	FindByName(ctx context.Context, name string) (*models.Type, error)
	FindAll(ctx context.Context) ([]models.Type, error)
}

type TypeRepository struct {
	db *gorm.DB
}

func NewTypeRepository() ITypeRepository {
	return &TypeRepository{db: configs.GetDB()}
}

func (r *TypeRepository) FindByName(ctx context.Context, name string) (*models.Type, error) {
	var t models.Type
	if err := dbFor(ctx, r.db).Where("name = ?", name).First(&t).Error; err != nil {
		err = translate(err)
		if !errors.Is(err, ErrNotFound) {
			configslog.Log.Error("TypeRepository.FindByName: DB error", zap.String("name", name), zap.Error(err))
		}
		return nil, err
	}
	return &t, nil
}

func (r *TypeRepository) FindAll(ctx context.Context) ([]models.Type, error) {
	var types []models.Type
	err := dbFor(ctx, r.db).Order("id asc").Find(&types).Error
	return types, err
}

var _ ITypeRepository = (*TypeRepository)(nil)
