package services

import (
	"context"
	"errors"

	"formly.link/models"
	"formly.link/repositories"
)

// ErrTypeNotFound istenen hizmet türü tanımlı değilse döner.
var ErrTypeNotFound = errors.New("hizmet türü bulunamadı")

type ITypeService interface {
	GetTypeByName(ctx context.Context, name string) (*models.Type, error)
	GetAllTypes(ctx context.Context) ([]models.Type, error)
}

type TypeService struct {
	repo repositories.ITypeRepository
}

func NewTypeService() ITypeService {
	return &TypeService{repo: repositories.NewTypeRepository()}
}

func (s *TypeService) GetTypeByName(ctx context.Context, name string) (*models.Type, error) {
	t, err := s.repo.FindByName(ctx, name)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrTypeNotFound
	}
	return t, err
}

func (s *TypeService) GetAllTypes(ctx context.Context) ([]models.Type, error) {
	return s.repo.FindAll(ctx)
}

var _ ITypeService = (*TypeService)(nil)
