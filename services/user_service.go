package services

import (
	"context"
	"errors"

	"formly.link/models"
	"formly.link/repositories"
)

// ErrUserNotFound kullanıcı bulunamadığında döner.
var ErrUserNotFound = errors.New("kullanıcı bulunamadı")

type IUserService interface {
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
}

type UserService struct {
	repo repositories.IUserRepository
}

func NewUserService() IUserService {
	return &UserService{repo: repositories.NewUserRepository()}
}

// GetUserByID aktif kullanıcıyı döndürür. Pasif kullanıcılar bulunamamış sayılır.
func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if !user.Status {
		return nil, ErrUserNotFound
	}
	return user, nil
}

var _ IUserService = (*UserService)(nil)
