package services

import (
	"context"
	"sync"

	"formly.link/models"
)

// FormReader yanıt işlemlerinin ihtiyaç duyduğu form okumaları.
type FormReader interface {
	GetFormByKey(ctx context.Context, key string) (*models.Form, error)
	GetFormByID(ctx context.Context, id uint, requestingUserID uint) (*models.Form, error)
}

type memoEntry struct {
	form *models.Form
	err  error
}

// FormSchemaMemo tek bir istek boyunca anahtarla okunan formları hatırlar.
// Her istek için yeni bir örnek oluşturulmalıdır; süresi dolma yoktur.
type FormSchemaMemo struct {
	source FormReader

	mu    sync.Mutex
	byKey map[string]memoEntry
}

func NewFormSchemaMemo(source FormReader) *FormSchemaMemo {
	return &FormSchemaMemo{source: source, byKey: map[string]memoEntry{}}
}

// GetFormByKey ilk çağrıda kaynağa gider, sonrakilerde aynı sonucu döndürür.
func (m *FormSchemaMemo) GetFormByKey(ctx context.Context, key string) (*models.Form, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.byKey[key]; ok {
		return e.form, e.err
	}
	form, err := m.source.GetFormByKey(ctx, key)
	m.byKey[key] = memoEntry{form: form, err: err}
	return form, err
}

// GetFormByID hatırlanmaz; yetki kontrolü her çağrıda yapılır.
func (m *FormSchemaMemo) GetFormByID(ctx context.Context, id uint, requestingUserID uint) (*models.Form, error) {
	return m.source.GetFormByID(ctx, id, requestingUserID)
}

var _ FormReader = (*FormSchemaMemo)(nil)
