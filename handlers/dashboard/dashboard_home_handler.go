package handlers

import (
	"formly.link/services"

	"github.com/gofiber/fiber/v2"
)

// HomeHandler dashboard ana sayfası.
type HomeHandler struct {
	forms        services.IFormService
	appointments services.IAppointmentService
	types        services.ITypeService
}

func NewHomeHandler() *HomeHandler {
	return &HomeHandler{
		forms:        services.NewFormService(),
		appointments: services.NewAppointmentService(),
		types:        services.NewTypeService(),
	}
}

// HomePage sistem genelindeki form ve randevu hizmeti sayılarını ve
// tanımlı hizmet türlerini döndürür.
func (h *HomeHandler) HomePage(c *fiber.Ctx) error {
	formCount, err := h.forms.GetAllFormsCount(c.UserContext())
	if err != nil {
		return fail(c, "HomePage", err)
	}
	appointmentCount, err := h.appointments.GetAllAppointmentsCount(c.UserContext())
	if err != nil {
		return fail(c, "HomePage", err)
	}
	types, err := h.types.GetAllTypes(c.UserContext())
	if err != nil {
		return fail(c, "HomePage", err)
	}
	return c.JSON(fiber.Map{
		"form_count":        formCount,
		"appointment_count": appointmentCount,
		"types":             types,
	})
}
