package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound kayıt bulunamadığında repository'lerin döndürdüğü hata.
var ErrNotFound = errors.New("kayıt bulunamadı")

// ErrDuplicate benzersizlik kısıtı ihlal edildiğinde döner.
var ErrDuplicate = errors.New("kayıt zaten mevcut")

// ErrLimitReached kayıt sayısı üst sınıra ulaştığında döner.
var ErrLimitReached = errors.New("kayıt limiti doldu")

type txContextKey struct{}

// WithTx context'e bir transaction ekler. Bu context'i alan repository'ler
// ana bağlantı yerine transaction'ı kullanır.
func WithTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txContextKey{}, tx)
}

// txFromContext context'te transaction varsa onu döndürür.
func txFromContext(ctx context.Context) (*gorm.DB, bool) {
	tx, ok := ctx.Value(txContextKey{}).(*gorm.DB)
	return tx, ok && tx != nil
}

// dbFor context'teki transaction'ı veya verilen bağlantıyı context ile döndürür.
func dbFor(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := txFromContext(ctx); ok {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}

// translate gorm hatalarını repository hatalarına çevirir.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return err
	}
}
