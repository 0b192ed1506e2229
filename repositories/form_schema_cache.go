package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"formly.link/configs"
	"formly.link/configs/configsredis"
	"formly.link/configs/configslog"
	"formly.link/models"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const formSchemaKeyPrefix = "formly:form-schema:"

// ErrCacheMiss önbellekte kayıt yoksa döner.
var ErrCacheMiss = errors.New("önbellekte kayıt yok")

// IFormSchemaCache public form şemalarını link anahtarına göre önbellekler.
type IFormSchemaCache interface {
	Get(ctx context.Context, key string) (*models.Form, error)
	Set(ctx context.Context, key string, form *models.Form) error
	Invalidate(ctx context.Context, key string) error
}

// FormSchemaCache Redis tabanlı IFormSchemaCache. İstemci nil ise her
// okuma ErrCacheMiss döner ve yazmalar yok sayılır.
type FormSchemaCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// cachedForm JSON'a yazılmayan şifre özetini de taşır.
type cachedForm struct {
	Form         models.Form `json:"form"`
	PasswordHash string      `json:"password_hash,omitempty"`
}

func NewFormSchemaCache() IFormSchemaCache {
	var client redis.Cmdable
	if c := configsredis.GetClient(); c != nil {
		client = c
	}
	return NewFormSchemaCacheWithClient(client, configs.GetEnvDuration("FORM_CACHE_TTL", 5*time.Minute))
}

func NewFormSchemaCacheWithClient(client redis.Cmdable, ttl time.Duration) *FormSchemaCache {
	return &FormSchemaCache{client: client, ttl: ttl}
}

func (c *FormSchemaCache) Get(ctx context.Context, key string) (*models.Form, error) {
	if c.client == nil {
		return nil, ErrCacheMiss
	}
	raw, err := c.client.Get(ctx, formSchemaKeyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		configslog.Log.Warn("FormSchemaCache.Get: Redis error", zap.String("key", key), zap.Error(err))
		return nil, ErrCacheMiss
	}
	var cached cachedForm
	if err := json.Unmarshal(raw, &cached); err != nil {
		configslog.Log.Warn("FormSchemaCache.Get: bozuk kayıt siliniyor", zap.String("key", key), zap.Error(err))
		_ = c.Invalidate(ctx, key)
		return nil, ErrCacheMiss
	}
	cached.Form.Detail.PasswordHash = cached.PasswordHash
	return &cached.Form, nil
}

func (c *FormSchemaCache) Set(ctx context.Context, key string, form *models.Form) error {
	if c.client == nil || form == nil {
		return nil
	}
	raw, err := json.Marshal(cachedForm{Form: *form, PasswordHash: form.Detail.PasswordHash})
	if err != nil {
		return err
	}
	return c.client.Set(ctx, formSchemaKeyPrefix+key, raw, c.ttl).Err()
}

func (c *FormSchemaCache) Invalidate(ctx context.Context, key string) error {
	if c.client == nil || key == "" {
		return nil
	}
	return c.client.Del(ctx, formSchemaKeyPrefix+key).Err()
}

var _ IFormSchemaCache = (*FormSchemaCache)(nil)
