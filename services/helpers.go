package services

import (
	"context"

	"golang.org/x/crypto/bcrypt"
)

// hashPassword düz şifreyi bcrypt özetine çevirir. Boş şifre boş kalır.
func hashPassword(plain string) (string, error) {
	if plain == "" {
		return "", nil
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// checkPassword şifre korumalı kayıtlar için verilen şifreyi doğrular.
func checkPassword(hash, plain string) bool {
	if hash == "" {
		return true
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// canManage kullanıcının kaydın sahibi ya da sistem kullanıcısı olup olmadığını söyler.
func canManage(ctx context.Context, users IUserService, userID, ownerID uint) bool {
	if userID == 0 {
		return false
	}
	user, err := users.GetUserByID(ctx, userID)
	if err != nil {
		return false
	}
	return user.IsSystem || user.ID == ownerID
}
