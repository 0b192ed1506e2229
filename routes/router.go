package routes

import (
	"formly.link/configs"
	"formly.link/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	recoverMiddleware "github.com/gofiber/fiber/v2/middleware/recover"
)

// SetupRoutes tüm uygulama rotalarını ve genel middleware'leri ayarlar.
func SetupRoutes(app *fiber.App) {
	app.Use(recoverMiddleware.New())
	app.Use(logger.New())
	app.Use(initializeSessionAndLocals())

	registerDashboardRoutes(app)
	registerPanelRoutes(app)

	app.Get("/", rootRedirector)

	// Public link rotaları en sonda: /:key diğer grupları gölgelememeli.
	registerPublicLinkRoutes(app)

	app.Use(notFoundHandler)
}

// initializeSessionAndLocals session'daki kullanıcı bilgilerini locals'a taşır.
func initializeSessionAndLocals() fiber.Handler {
	sessionStore := configs.SetupSession()
	return func(c *fiber.Ctx) error {
		c.Locals("session_store", sessionStore)
		sess, err := utils.SessionStart(c)
		if err != nil {
			return c.Next()
		}
		if userID, err := utils.GetUserIDFromSession(sess); err == nil {
			c.Locals("userID", userID)
		}
		if isSystem, err := utils.GetIsSystemFromSession(sess); err == nil {
			c.Locals("isSystem", isSystem)
		}
		if userName, ok := sess.Get(utils.SessionUserNameKey).(string); ok {
			c.Locals("userName", userName)
		}
		return c.Next()
	}
}

// rootRedirector oturum açmış kullanıcıyı kendi ana sayfasına yönlendirir.
func rootRedirector(c *fiber.Ctx) error {
	if _, ok := c.Locals("userID").(uint); !ok {
		return notFoundHandler(c)
	}
	if isSystem, _ := c.Locals("isSystem").(bool); isSystem {
		return c.Redirect("/dashboard/home", fiber.StatusFound)
	}
	return c.Redirect("/panel/home", fiber.StatusFound)
}

func notFoundHandler(c *fiber.Ctx) error {
	switch c.Accepts(fiber.MIMEApplicationJSON, fiber.MIMETextHTML) {
	case fiber.MIMEApplicationJSON:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Kaynak bulunamadı"})
	default:
		return c.Status(fiber.StatusNotFound).Render("errors/404", fiber.Map{"Title": "Sayfa Bulunamadı"}, "layouts/error_layout")
	}
}
