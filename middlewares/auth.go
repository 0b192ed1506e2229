package middlewares

import (
	"errors"
	"strings"

	"formly.link/configs/configslog"
	"formly.link/services"
	"formly.link/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// wantsJSON isteğin API istemcisinden gelip gelmediğini tahmin eder.
func wantsJSON(c *fiber.Ctx) bool {
	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON) {
		return true
	}
	return c.Accepts(fiber.MIMETextHTML, fiber.MIMEApplicationJSON) == fiber.MIMEApplicationJSON
}

func deny(c *fiber.Ctx, status int, message string) error {
	if wantsJSON(c) {
		return c.Status(status).JSON(fiber.Map{"error": message})
	}
	return c.Status(status).SendString(message)
}

// AuthMiddleware session'da kullanıcı yoksa isteği reddeder.
func AuthMiddleware(c *fiber.Ctx) error {
	if _, ok := c.Locals("userID").(uint); !ok {
		return deny(c, fiber.StatusUnauthorized, "Bu sayfaya erişmek için giriş yapmalısınız.")
	}
	return c.Next()
}

// StatusMiddleware kullanıcının hâlâ aktif olduğunu kontrol eder.
// Pasif veya silinmiş kullanıcının session'ı kapatılır.
func StatusMiddleware(users services.IUserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, _ := c.Locals("userID").(uint)
		user, err := users.GetUserByID(c.UserContext(), userID)
		if err != nil {
			if !errors.Is(err, services.ErrUserNotFound) {
				configslog.Log.Error("StatusMiddleware: kullanıcı okunamadı", zap.Uint("userID", userID), zap.Error(err))
				return deny(c, fiber.StatusInternalServerError, "Kullanıcı bilgileri alınamadı.")
			}
			if sess, sessErr := utils.SessionStart(c); sessErr == nil {
				_ = sess.Destroy()
			}
			return deny(c, fiber.StatusUnauthorized, "Hesabınız aktif değil.")
		}
		c.Locals("isSystem", user.IsSystem)
		c.Locals("userName", user.Name)
		return c.Next()
	}
}

// RequireSystem sadece sistem yöneticilerinin geçmesine izin verir.
func RequireSystem() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if isSystem, _ := c.Locals("isSystem").(bool); !isSystem {
			return deny(c, fiber.StatusForbidden, "Bu alana erişim yetkiniz yok.")
		}
		return c.Next()
	}
}
