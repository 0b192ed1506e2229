package configs

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/gofiber/fiber/v2/utils"
)

var (
	sessionStore     *session.Store
	sessionStoreOnce sync.Once
)

// SetupSession uygulama genelinde tek bir session store oluşturur.
// Oturumu açan (login) katman aynı cookie adını kullanmalıdır.
func SetupSession() *session.Store {
	sessionStoreOnce.Do(func() {
		sessionStore = session.New(session.Config{
			Expiration:     GetEnvDuration("SESSION_EXPIRATION", 24*time.Hour),
			KeyLookup:      "cookie:formly_session",
			CookieHTTPOnly: true,
			CookieSecure:   GetEnv("APP_ENV", "development") == "production",
			CookieSameSite: fiber.CookieSameSiteLaxMode,
			KeyGenerator:   utils.UUIDv4,
		})
	})
	return sessionStore
}
