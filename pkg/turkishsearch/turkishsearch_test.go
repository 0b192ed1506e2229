package turkishsearch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "isik", Normalize(" IŞIK "))
	assert.Equal(t, "ogrenci cagri", Normalize("Öğrenci Çağrı"))
}

func TestSQLFilter(t *testing.T) {
	frag, args := SQLFilter("form_details.title", "Kayıt_%")
	assert.Contains(t, frag, "TRANSLATE(form_details.title")
	assert.Contains(t, frag, "LIKE ?")
	assert.Equal(t, []any{`%kayit\_\%%`}, args)
}
