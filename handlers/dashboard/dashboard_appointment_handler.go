package handlers

import (
	"formly.link/services"

	"github.com/gofiber/fiber/v2"
)

// AppointmentHandler randevu hizmeti yönetimi için handler (Dashboard).
type AppointmentHandler struct {
	service services.IAppointmentService
}

// NewAppointmentHandler yeni bir AppointmentHandler örneği oluşturur.
func NewAppointmentHandler() *AppointmentHandler {
	return &AppointmentHandler{service: services.NewAppointmentService()}
}

// ListAppointments tüm randevu hizmetlerini listeler (Admin için).
func (h *AppointmentHandler) ListAppointments(c *fiber.Ctx) error {
	result, err := h.service.GetAllAppointmentsPaginated(c.UserContext(), queryList(c))
	if err != nil {
		return fail(c, "ListAppointments", err)
	}
	return c.JSON(result)
}

func (h *AppointmentHandler) GetAppointment(c *fiber.Ctx) error {
	id, ok := idParam(c)
	if !ok {
		return badID(c)
	}
	appointment, err := h.service.GetAppointmentByID(c.UserContext(), id, adminID(c))
	if err != nil {
		return fail(c, "GetAppointment", err)
	}
	return c.JSON(appointment)
}

func (h *AppointmentHandler) DeleteAppointment(c *fiber.Ctx) error {
	id, ok := idParam(c)
	if !ok {
		return badID(c)
	}
	if err := h.service.DeleteAppointment(c.UserContext(), id, adminID(c)); err != nil {
		return fail(c, "DeleteAppointment", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
