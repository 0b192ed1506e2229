package services

import (
	"context"
	"errors"
	"fmt"

	"formly.link/configs/configslog"
	"formly.link/models"
	"formly.link/repositories"

	"go.uber.org/zap"
)

// LinkServiceError özel servis hataları
type LinkServiceError string

func (e LinkServiceError) Error() string { return string(e) }

const (
	ErrLinkNotFound            LinkServiceError = "link bulunamadı"
	ErrLinkCreationFailedServ  LinkServiceError = "link oluşturulamadı"
	ErrLinkKeyGenerationFailed LinkServiceError = "benzersiz link anahtarı üretilemedi"
	ErrLinkDeletionFailedServ  LinkServiceError = "link silinemedi"
	ErrLinkUpdateFailedServ    LinkServiceError = "link güncellenemedi"
	ErrLinkInvalidInput        LinkServiceError = "geçersiz link girdisi"
)

// ILinkService link işlemleri için arayüz.
// Context'te repositories.WithTx ile bir transaction varsa tüm işlemler ona katılır.
type ILinkService interface {
	CreateLink(ctx context.Context, creatorUserID uint, typeID uint) (*models.Link, error)
	GetLinkByKey(ctx context.Context, key string) (*models.Link, error)
	UpdateLinkTarget(ctx context.Context, updatingUserID uint, linkID uint, targetID uint) error
	DeleteLink(ctx context.Context, deletingUserID uint, linkID uint) error
}

// LinkService ILinkService arayüzünü uygular.
type LinkService struct {
	repo repositories.ILinkRepository
}

// NewLinkService yeni bir LinkService örneği oluşturur.
func NewLinkService() ILinkService {
	return &LinkService{repo: repositories.NewLinkRepository()}
}

// NewLinkServiceWith verilen repository ile bir LinkService oluşturur.
func NewLinkServiceWith(repo repositories.ILinkRepository) ILinkService {
	return &LinkService{repo: repo}
}

// CreateLink yeni bir link oluşturur (TargetID başlangıçta 0 olur).
// Key üretimi modelin BeforeCreate hook'unda yapılır.
func (s *LinkService) CreateLink(ctx context.Context, creatorUserID uint, typeID uint) (*models.Link, error) {
	if typeID == 0 || creatorUserID == 0 {
		return nil, fmt.Errorf("%w: geçersiz typeID veya creatorUserID", ErrLinkInvalidInput)
	}

	link := &models.Link{
		TypeID:        typeID,
		CreatorUserID: creatorUserID,
	}
	if err := s.repo.Create(models.WithUserID(ctx, creatorUserID), link); err != nil {
		configslog.Log.Error("Link oluşturulurken repository hatası", zap.Error(err), zap.Uint("typeID", typeID), zap.Uint("creatorUserID", creatorUserID))
		if errors.Is(err, repositories.ErrDuplicate) || errors.Is(err, models.ErrLinkKeyExhausted) {
			return nil, ErrLinkKeyGenerationFailed
		}
		return nil, ErrLinkCreationFailedServ
	}

	configslog.SLog.Infof("Link oluşturuldu: ID %d, Key: %s (Oluşturan: %d)", link.ID, link.Key, creatorUserID)
	return link, nil
}

// GetLinkByKey public anahtar ile linki alır.
func (s *LinkService) GetLinkByKey(ctx context.Context, key string) (*models.Link, error) {
	if !models.IsValidLinkKey(key) {
		return nil, ErrLinkNotFound
	}
	link, err := s.repo.FindByKey(ctx, key)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrLinkNotFound
		}
		return nil, err
	}
	return link, nil
}

// UpdateLinkTarget bir linkin TargetID'sini günceller.
func (s *LinkService) UpdateLinkTarget(ctx context.Context, updatingUserID uint, linkID uint, targetID uint) error {
	if linkID == 0 || targetID == 0 || updatingUserID == 0 {
		return fmt.Errorf("%w: geçersiz linkID, targetID veya updatingUserID", ErrLinkInvalidInput)
	}

	err := s.repo.Update(ctx, linkID, map[string]interface{}{"target_id": targetID}, updatingUserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			configslog.Log.Warn("Link TargetID güncellenemedi: Link bulunamadı", zap.Uint("link_id", linkID))
			return ErrLinkNotFound
		}
		configslog.Log.Error("Link TargetID güncellenirken repository hatası", zap.Uint("link_id", linkID), zap.Uint("target_id", targetID), zap.Error(err))
		return ErrLinkUpdateFailedServ
	}
	return nil
}

// DeleteLink bir linki siler. İlişkili hizmetin zaten silinmiş olması beklenir.
func (s *LinkService) DeleteLink(ctx context.Context, deletingUserID uint, linkID uint) error {
	if linkID == 0 || deletingUserID == 0 {
		return fmt.Errorf("%w: geçersiz linkID veya deletingUserID", ErrLinkInvalidInput)
	}

	link, err := s.repo.FindByID(ctx, linkID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrLinkNotFound
		}
		return err
	}

	if err := s.repo.Delete(ctx, link, deletingUserID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrLinkNotFound
		}
		configslog.Log.Error("Link silinirken repository hatası", zap.Uint("link_id", linkID), zap.Error(err))
		return ErrLinkDeletionFailedServ
	}
	configslog.SLog.Infof("Link silindi: ID %d, Key: %s (Silen: %d)", linkID, link.Key, deletingUserID)
	return nil
}

var _ ILinkService = (*LinkService)(nil)
