package middlewares

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"formly.link/models"
	"formly.link/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUsers struct {
	user *models.User
	err  error
}

func (s stubUsers) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.user, s.err
}

// withUser oturumu açan katmanın yaptığı gibi kullanıcıyı locals'a yazar.
func withUser(id uint, isSystem bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if id != 0 {
			c.Locals("userID", id)
			c.Locals("isSystem", isSystem)
		}
		return c.Next()
	}
}

func ok(c *fiber.Ctx) error { return c.SendString("ok") }

func status(t *testing.T, app *fiber.App, accept string) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if accept != "" {
		req.Header.Set(fiber.HeaderAccept, accept)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestAuthMiddleware(t *testing.T) {
	anonymous := fiber.New()
	anonymous.Get("/", withUser(0, false), AuthMiddleware, ok)
	assert.Equal(t, fiber.StatusUnauthorized, status(t, anonymous, fiber.MIMEApplicationJSON))
	assert.Equal(t, fiber.StatusUnauthorized, status(t, anonymous, fiber.MIMETextHTML))

	signedIn := fiber.New()
	signedIn.Get("/", withUser(5, false), AuthMiddleware, ok)
	assert.Equal(t, fiber.StatusOK, status(t, signedIn, ""))
}

func TestStatusMiddleware(t *testing.T) {
	tests := []struct {
		name  string
		users stubUsers
		want  int
	}{
		{"aktif", stubUsers{user: &models.User{Name: "Ayşe", Status: true}}, fiber.StatusOK},
		{"pasif", stubUsers{err: services.ErrUserNotFound}, fiber.StatusUnauthorized},
		{"veritabanı hatası", stubUsers{err: errors.New("bağlantı yok")}, fiber.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", withUser(5, false), StatusMiddleware(tt.users), ok)
			assert.Equal(t, tt.want, status(t, app, fiber.MIMEApplicationJSON))
		})
	}
}

func TestStatusMiddleware_RefreshesSystemFlag(t *testing.T) {
	users := stubUsers{user: &models.User{Name: "Admin", IsSystem: true, Status: true}}
	app := fiber.New()
	app.Get("/", withUser(1, false), StatusMiddleware(users), RequireSystem(), ok)
	assert.Equal(t, fiber.StatusOK, status(t, app, ""))
}

func TestRequireSystem(t *testing.T) {
	app := fiber.New()
	app.Get("/", withUser(5, false), RequireSystem(), ok)
	assert.Equal(t, fiber.StatusForbidden, status(t, app, fiber.MIMEApplicationJSON))
}
