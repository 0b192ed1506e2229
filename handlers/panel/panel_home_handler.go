package handlers // handlers/panel paketi

import (
	"formly.link/services"

	"github.com/gofiber/fiber/v2"
)

// PanelHomeHandler panel ana sayfası için özet sayıları döndürür.
type PanelHomeHandler struct {
	forms        services.IFormService
	appointments services.IAppointmentService
}

func NewPanelHomeHandler() *PanelHomeHandler {
	return &PanelHomeHandler{
		forms:        services.NewFormService(),
		appointments: services.NewAppointmentService(),
	}
}

func (h *PanelHomeHandler) Home(c *fiber.Ctx) error {
	userID := currentUserID(c)
	formCount, err := h.forms.GetFormCountForUser(c.UserContext(), userID)
	if err != nil {
		return respondError(c, "Home", err)
	}
	appointmentCount, err := h.appointments.GetAppointmentCountForUser(c.UserContext(), userID)
	if err != nil {
		return respondError(c, "Home", err)
	}
	return c.JSON(fiber.Map{
		"form_count":        formCount,
		"appointment_count": appointmentCount,
	})
}
