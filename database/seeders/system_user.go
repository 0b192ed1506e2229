package seeders

import (
	"context"
	"errors"
	"fmt"
	"os"

	"formly.link/configs/configslog"
	"formly.link/models"
	"formly.link/repositories"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const defaultSystemUserEmail = "admin@formly.link"

// SeedSystemUser SYSTEM_USER_EMAIL ile sistem yöneticisini oluşturur veya
// yetkisini günceller ve ID'sini döndürür. Yeni kullanıcı için SYSTEM_USER_PASSWORD zorunludur.
func SeedSystemUser(db *gorm.DB) (uint, error) {
	email := os.Getenv("SYSTEM_USER_EMAIL")
	if email == "" {
		email = defaultSystemUserEmail
	}

	ctx := context.Background()
	users := repositories.NewUserRepositoryTx(db)
	user, err := users.FindByEmail(ctx, email)
	if err == nil {
		if !user.IsSystem || !user.Status {
			if err := db.Model(user).Updates(map[string]any{"is_system": true, "status": true}).Error; err != nil {
				return 0, fmt.Errorf("sistem kullanıcısı güncellenemedi: %w", err)
			}
			configslog.SLog.Infof("Sistem kullanıcısı yetkileri güncellendi: %s", email)
		}
		return user.ID, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return 0, fmt.Errorf("sistem kullanıcısı okunamadı: %w", err)
	}

	password := os.Getenv("SYSTEM_USER_PASSWORD")
	if password == "" {
		return 0, errors.New("SYSTEM_USER_PASSWORD tanımlı değil")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("şifre hash'lenemedi: %w", err)
	}

	user = &models.User{
		Name:     "Sistem Yöneticisi",
		Email:    email,
		Password: string(hash),
		IsSystem: true,
		Status:   true,
	}
	if err := users.Create(ctx, user); err != nil {
		return 0, fmt.Errorf("sistem kullanıcısı oluşturulamadı: %w", err)
	}
	configslog.SLog.Infof("Sistem kullanıcısı oluşturuldu: %s (ID: %d)", email, user.ID)
	return user.ID, nil
}
