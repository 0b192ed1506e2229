package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type bookingBody struct {
	Name  string `validate:"required"`
	Email string `validate:"required,email"`
}

func TestIsEmail(t *testing.T) {
	assert.True(t, IsEmail("ayse@example.com"))
	assert.False(t, IsEmail("ayse@"))
	assert.False(t, IsEmail(""))
}

func TestMessages(t *testing.T) {
	err := Struct(bookingBody{Email: "x"})
	msgs := Messages(err)
	assert.Equal(t, "bu alan zorunludur", msgs["name"])
	assert.Equal(t, "geçerli bir e-posta adresi giriniz", msgs["email"])

	assert.Empty(t, Messages(Struct(bookingBody{Name: "Ayşe", Email: "ayse@example.com"})))
}
