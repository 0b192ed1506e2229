// Package renderer HTML görünümlerini ortak verilerle çizer.
package renderer

import (
	"formly.link/pkg/flashmessages"

	"github.com/gofiber/fiber/v2"
)

// Görünümlerde flash mesajların okunduğu anahtarlar.
const (
	FlashSuccessKeyView = "Success"
	FlashErrorKeyView   = "Error"
)

// SetFlashMessages flash mesajlarını görünüm verisine ekler.
func SetFlashMessages(data fiber.Map, flash map[string]string) {
	if msg := flash[flashmessages.FlashSuccessKey]; msg != "" {
		data[FlashSuccessKeyView] = msg
	}
	if msg := flash[flashmessages.FlashErrorKey]; msg != "" {
		data[FlashErrorKeyView] = msg
	}
}

// Render şablonu verilen layout ile çizer. Durum kodu verilmezse 200 kullanılır.
func Render(c *fiber.Ctx, template, layout string, data fiber.Map, status ...int) error {
	if data == nil {
		data = fiber.Map{}
	}
	if userName, ok := c.Locals("userName").(string); ok {
		data["UserName"] = userName
	}
	code := fiber.StatusOK
	if len(status) > 0 {
		code = status[0]
	}
	if layout == "" {
		return c.Status(code).Render(template, data)
	}
	return c.Status(code).Render(template, data, layout)
}
