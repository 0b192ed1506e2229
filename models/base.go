package models

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type contextKey string

// ContextUserIDKey işlemi yapan kullanıcının ID'sinin context'te tutulduğu anahtar.
// BaseModel hook'ları CreatedBy/UpdatedBy alanlarını buradan doldurur.
const ContextUserIDKey contextKey = "user_id"

// WithUserID context'e işlemi yapan kullanıcıyı ekler.
func WithUserID(ctx context.Context, userID uint) context.Context {
	return context.WithValue(ctx, ContextUserIDKey, userID)
}

// UserIDFromContext context'teki kullanıcı ID'sini okur.
func UserIDFromContext(ctx context.Context) (uint, bool) {
	if ctx == nil {
		return 0, false
	}
	userID, ok := ctx.Value(ContextUserIDKey).(uint)
	return userID, ok && userID != 0
}

// BaseModel tüm tablolarda ortak olan alanları içerir.
type BaseModel struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `gorm:"type:timestamptz" json:"created_at"`
	UpdatedAt time.Time      `gorm:"type:timestamptz" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	CreatedBy *uint          `gorm:"index" json:"-"`
	UpdatedBy *uint          `json:"-"`
	DeletedBy *uint          `json:"-"`
}

// BeforeCreate context'te kullanıcı varsa CreatedBy ve UpdatedBy alanlarını ayarlar.
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if userID, ok := UserIDFromContext(tx.Statement.Context); ok {
		b.CreatedBy = &userID
		b.UpdatedBy = &userID
	}
	return nil
}

// BeforeUpdate context'te kullanıcı varsa UpdatedBy alanını ayarlar.
func (b *BaseModel) BeforeUpdate(tx *gorm.DB) error {
	if userID, ok := UserIDFromContext(tx.Statement.Context); ok {
		b.UpdatedBy = &userID
	}
	return nil
}
