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

// IUserRepository kullanıcı işlemleri. Kayıt ve oturum açma bu servisin
// dışındadır; Create yalnızca sistem kullanıcısı seed'inde kullanılır.
type IUserRepository interface {
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
}

type UserRepository struct {
	db   *gorm.DB
	base IBaseRepository[models.User]
}

func NewUserRepository() IUserRepository {
	return NewUserRepositoryTx(configs.GetDB())
}

func NewUserRepositoryTx(tx *gorm.DB) IUserRepository {
	return &UserRepository{db: tx, base: NewBaseRepository[models.User](tx)}
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := r.base.FindByID(ctx, id)
	if err != nil && !errors.Is(err, ErrNotFound) {
		configslog.Log.Error("UserRepository.FindByID: DB error", zap.Uint("id", id), zap.Error(err))
	}
	return user, err
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := dbFor(ctx, r.db).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	return translate(dbFor(ctx, r.db).Create(user).Error)
}

var _ IUserRepository = (*UserRepository)(nil)
