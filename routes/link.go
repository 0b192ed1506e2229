package routes

import (
	handlers "formly.link/handlers/link"

	"github.com/gofiber/fiber/v2"
)

// registerPublicLinkRoutes public linkleri (örn. /abcdef01234) yönetecek rotaları tanımlar.
func registerPublicLinkRoutes(app *fiber.App) {
	linkHandler := handlers.NewLinkHandler()

	app.Get("/:key", linkHandler.HandleLink)                // Form doldurma veya randevu sayfası
	app.Post("/:key/responses", linkHandler.SubmitResponse) // Form yanıtı (JSON veya HTML formu)
	app.Get("/:key/slots", linkHandler.Slots)               // GET /:key/slots?date=YYYY-MM-DD
	app.Post("/:key/bookings", linkHandler.Book)            // Rezervasyon
}
