// Package flashmessages bir sonraki istekte bir kez gösterilecek mesajları
// ve form verilerini session'da tutar.
package flashmessages

import (
	"encoding/json"

	"formly.link/utils"

	"github.com/gofiber/fiber/v2"
)

const (
	FlashSuccessKey = "flash_success"
	FlashErrorKey   = "flash_error"
	flashFormKey    = "flash_form_data"
)

// SetFlashMessage mesajı session'a yazar.
func SetFlashMessage(c *fiber.Ctx, key, message string) error {
	sess, err := utils.SessionStart(c)
	if err != nil {
		return err
	}
	sess.Set(key, message)
	return sess.Save()
}

// GetFlashMessages bekleyen mesajları okur ve siler.
func GetFlashMessages(c *fiber.Ctx) (map[string]string, error) {
	out := map[string]string{}
	sess, err := utils.SessionStart(c)
	if err != nil {
		return out, err
	}
	for _, key := range []string{FlashSuccessKey, FlashErrorKey} {
		if msg, ok := sess.Get(key).(string); ok && msg != "" {
			out[key] = msg
			sess.Delete(key)
		}
	}
	if len(out) == 0 {
		return out, nil
	}
	return out, sess.Save()
}

// SetFlashFormData kullanıcının gönderdiği verileri yeniden doldurma için saklar.
// Session gob ile kodladığından veri JSON metni olarak tutulur.
func SetFlashFormData(c *fiber.Ctx, data any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	sess, err := utils.SessionStart(c)
	if err != nil {
		return err
	}
	sess.Set(flashFormKey, string(raw))
	return sess.Save()
}

// GetFlashFormData saklanan form verisini okur ve siler.
func GetFlashFormData(c *fiber.Ctx) map[string]any {
	sess, err := utils.SessionStart(c)
	if err != nil {
		return nil
	}
	raw, ok := sess.Get(flashFormKey).(string)
	if !ok || raw == "" {
		return nil
	}
	sess.Delete(flashFormKey)
	_ = sess.Save()

	var data map[string]any
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil
	}
	return data
}
