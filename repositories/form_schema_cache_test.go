package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"formly.link/models"
)

func TestFormSchemaCacheWithoutRedis(t *testing.T) {
	cache := NewFormSchemaCacheWithClient(nil, time.Minute)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "abc", &models.Form{}))
	_, err := cache.Get(ctx, "abc")
	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.NoError(t, cache.Invalidate(ctx, "abc"))
}

func TestTranslate(t *testing.T) {
	assert.Nil(t, translate(nil))
	assert.ErrorIs(t, translate(gormNotFound()), ErrNotFound)
	assert.ErrorIs(t, translate(gormDuplicate()), ErrDuplicate)
}
