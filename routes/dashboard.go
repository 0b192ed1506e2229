package routes

import (
	handlers "formly.link/handlers/dashboard"
	"formly.link/middlewares"
	"formly.link/services"

	"github.com/gofiber/fiber/v2"
)

// registerDashboardRoutes /dashboard altındaki rotaları tanımlar.
// Sadece IsSystem=true olan kullanıcılar erişebilir.
func registerDashboardRoutes(app *fiber.App) {
	homeHandler := handlers.NewHomeHandler()
	formHandler := handlers.NewFormHandler()
	appointmentHandler := handlers.NewAppointmentHandler()

	dashboardGroup := app.Group("/dashboard")
	dashboardGroup.Use(
		middlewares.AuthMiddleware,                              // 1. Giriş yapmış mı?
		middlewares.StatusMiddleware(services.NewUserService()), // 2. Hesap aktif mi?
		middlewares.RequireSystem(),                             // 3. Sistem yöneticisi mi?
	)

	dashboardGroup.Get("/home", homeHandler.HomePage)

	dashboardGroup.Get("/forms", formHandler.ListForms)
	dashboardGroup.Get("/forms/:id", formHandler.GetForm)
	dashboardGroup.Delete("/forms/:id/publish", formHandler.UnpublishForm)
	dashboardGroup.Delete("/forms/:id", formHandler.DeleteForm)

	dashboardGroup.Get("/appointments", appointmentHandler.ListAppointments)
	dashboardGroup.Get("/appointments/:id", appointmentHandler.GetAppointment)
	dashboardGroup.Delete("/appointments/:id", appointmentHandler.DeleteAppointment)
}
