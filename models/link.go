package models

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LinkKeyLength public anahtarın (shortId) uzunluğu.
const LinkKeyLength = 11

const maxKeyGenerationAttempts = 5

// ErrLinkKeyExhausted denemelere rağmen benzersiz anahtar üretilemediğinde döner.
var ErrLinkKeyExhausted = errors.New("benzersiz link anahtarı üretilemedi")

// Link benzersiz bir 'Key'i belirli bir hizmete bağlar ve sahibini tutar.
type Link struct {
	BaseModel
	Key           string `gorm:"type:varchar(11);uniqueIndex;not null" json:"key"`
	TypeID        uint   `gorm:"not null;index" json:"type_id"`
	TargetID      uint   `gorm:"not null;index:idx_link_target" json:"target_id"`
	CreatorUserID uint   `gorm:"index;not null" json:"creator_user_id"`

	Type    Type `gorm:"foreignKey:TypeID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"type"`
	Creator User `gorm:"foreignKey:CreatorUserID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`
}

// NewLinkKey URL'de kullanılacak kısa bir anahtar üretir.
func NewLinkKey() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:LinkKeyLength]
}

// IsValidLinkKey anahtarın biçimini kontrol eder (veritabanına gitmeden).
func IsValidLinkKey(key string) bool {
	if len(key) != LinkKeyLength {
		return false
	}
	for _, r := range key {
		if !(r >= '0' && r <= '9' || r >= 'a' && r <= 'f') {
			return false
		}
	}
	return true
}

// BeforeCreate Key boşsa çakışmayan bir anahtar üretir.
func (l *Link) BeforeCreate(tx *gorm.DB) error {
	if err := l.BaseModel.BeforeCreate(tx); err != nil {
		return err
	}
	if l.Key != "" {
		return nil
	}
	for i := 0; i < maxKeyGenerationAttempts; i++ {
		candidate := NewLinkKey()
		var count int64
		if err := tx.Session(&gorm.Session{NewDB: true}).Model(&Link{}).Unscoped().Where("key = ?", candidate).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			l.Key = candidate
			return nil
		}
	}
	return ErrLinkKeyExhausted
}
