package routes

import (
	panel_handlers "formly.link/handlers/panel"
	"formly.link/middlewares"
	"formly.link/services"

	"github.com/gofiber/fiber/v2"
)

// registerPanelRoutes /panel altındaki rotaları tanımlar. Oturum açmış her aktif
// kullanıcı kendi formlarını ve randevu hizmetlerini yönetir.
func registerPanelRoutes(app *fiber.App) {
	homeHandler := panel_handlers.NewPanelHomeHandler()
	formHandler := panel_handlers.NewPanelFormHandler()
	appointmentHandler := panel_handlers.NewPanelAppointmentHandler()

	panelGroup := app.Group("/panel")
	panelGroup.Use(
		middlewares.AuthMiddleware,                              // 1. Giriş yapmış mı?
		middlewares.StatusMiddleware(services.NewUserService()), // 2. Hesap aktif mi?
	)

	panelGroup.Get("/home", homeHandler.Home)

	// --- Formlar ---
	panelGroup.Get("/forms", formHandler.ListForms)
	panelGroup.Post("/forms", formHandler.CreateForm)
	panelGroup.Get("/forms/:id", formHandler.GetForm)
	panelGroup.Put("/forms/:id", formHandler.UpdateForm)
	panelGroup.Delete("/forms/:id", formHandler.DeleteForm)
	panelGroup.Put("/forms/:id/questions", formHandler.ReplaceQuestions)
	panelGroup.Post("/forms/:id/publish", formHandler.Publish)
	panelGroup.Delete("/forms/:id/publish", formHandler.Unpublish)
	panelGroup.Get("/forms/:id/preview", formHandler.PreviewForm)
	panelGroup.Get("/forms/:id/responses", formHandler.ListResponses)

	// --- Randevu hizmetleri ---
	panelGroup.Get("/appointments", appointmentHandler.ListAppointments)
	panelGroup.Post("/appointments", appointmentHandler.CreateAppointment)
	panelGroup.Get("/appointments/:id", appointmentHandler.GetAppointment)
	panelGroup.Put("/appointments/:id", appointmentHandler.UpdateAppointment)
	panelGroup.Delete("/appointments/:id", appointmentHandler.DeleteAppointment)
	panelGroup.Get("/appointments/:id/bookings", appointmentHandler.ListBookings)
	panelGroup.Patch("/bookings/:id/status", appointmentHandler.UpdateBookingStatus)
}
