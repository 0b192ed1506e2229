package utils

import (
	"errors"
	"fmt"

	"formly.link/configs"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// Oturumu açan katmanın yazdığı anahtarlar.
const (
	SessionUserIDKey   = "user_id"
	SessionIsSystemKey = "is_system"
	SessionUserNameKey = "user_name"
)

var ErrSessionUserMissing = errors.New("oturumda kullanıcı bilgisi yok")

// SessionStart isteğin session'ını açar.
func SessionStart(c *fiber.Ctx) (*session.Session, error) {
	store, ok := c.Locals("session_store").(*session.Store)
	if !ok || store == nil {
		store = configs.SetupSession()
	}
	return store.Get(c)
}

// GetUserIDFromSession session'daki kullanıcı ID'sini okur.
// Session, değeri farklı sayı türlerinde saklamış olabilir.
func GetUserIDFromSession(sess *session.Session) (uint, error) {
	switch v := sess.Get(SessionUserIDKey).(type) {
	case uint:
		if v == 0 {
			return 0, ErrSessionUserMissing
		}
		return v, nil
	case int:
		if v <= 0 {
			return 0, ErrSessionUserMissing
		}
		return uint(v), nil
	case int64:
		if v <= 0 {
			return 0, ErrSessionUserMissing
		}
		return uint(v), nil
	case float64:
		if v <= 0 {
			return 0, ErrSessionUserMissing
		}
		return uint(v), nil
	case nil:
		return 0, ErrSessionUserMissing
	default:
		return 0, fmt.Errorf("%w: beklenmeyen tür %T", ErrSessionUserMissing, v)
	}
}

// GetIsSystemFromSession sistem yöneticisi bayrağını okur.
func GetIsSystemFromSession(sess *session.Session) (bool, error) {
	v, ok := sess.Get(SessionIsSystemKey).(bool)
	if !ok {
		return false, errors.New("oturumda yetki bilgisi yok")
	}
	return v, nil
}

// MaxIPLength respondent_ip sütununun uzunluğu.
const MaxIPLength = 64

// ClientIP istemci IP'sini döndürür. Proxy başlığı yalnızca uygulamanın
// ProxyHeader ayarı doluysa ve IP doğrulamasından geçerse kullanılır.
func ClientIP(c *fiber.Ctx) string {
	ip := c.IP()
	if len(ip) > MaxIPLength {
		ip = ip[:MaxIPLength]
	}
	return ip
}
