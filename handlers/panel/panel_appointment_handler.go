package handlers // handlers/panel paketi

import (
	"formly.link/models"
	"formly.link/services"

	"github.com/gofiber/fiber/v2"
)

// PanelAppointmentHandler kullanıcının randevu hizmetleri ve rezervasyonları için handler.
type PanelAppointmentHandler struct {
	service  services.IAppointmentService
	bookings services.IBookingService
}

// NewPanelAppointmentHandler yeni bir PanelAppointmentHandler örneği oluşturur.
func NewPanelAppointmentHandler() *PanelAppointmentHandler {
	appointments := services.NewAppointmentService()
	return &PanelAppointmentHandler{
		service:  appointments,
		bookings: services.NewBookingService(appointments),
	}
}

type appointmentPayload struct {
	Detail    models.AppointmentDetail `json:"detail"`
	Password  string                   `json:"password"`
	IsEnabled *bool                    `json:"is_enabled"`
}

func (p appointmentPayload) detail() models.AppointmentDetail {
	d := p.Detail
	d.PasswordHash = p.Password
	return d
}

// ListAppointments kullanıcının randevu hizmetlerini listeler.
func (h *PanelAppointmentHandler) ListAppointments(c *fiber.Ctx) error {
	result, err := h.service.GetAppointmentsForUser(c.UserContext(), currentUserID(c), listParams(c))
	if err != nil {
		return respondError(c, "ListAppointments", err)
	}
	return c.JSON(result)
}

// GetAppointment tek bir randevu hizmetini döndürür.
func (h *PanelAppointmentHandler) GetAppointment(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, "GetAppointment", err)
	}
	appointment, err := h.service.GetAppointmentByID(c.UserContext(), id, currentUserID(c))
	if err != nil {
		return respondError(c, "GetAppointment", err)
	}
	return c.JSON(appointment)
}

// CreateAppointment yeni randevu hizmeti oluşturur.
func (h *PanelAppointmentHandler) CreateAppointment(c *fiber.Ctx) error {
	var payload appointmentPayload
	if err := c.BodyParser(&payload); err != nil {
		return respondError(c, "CreateAppointment", errInvalidBody)
	}
	appointment, err := h.service.CreateAppointment(c.UserContext(), currentUserID(c), nil, payload.detail())
	if err != nil {
		return respondError(c, "CreateAppointment", err)
	}
	return c.Status(fiber.StatusCreated).JSON(appointment)
}

// UpdateAppointment randevu hizmetinin detaylarını günceller.
func (h *PanelAppointmentHandler) UpdateAppointment(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, "UpdateAppointment", err)
	}
	var payload appointmentPayload
	if err := c.BodyParser(&payload); err != nil {
		return respondError(c, "UpdateAppointment", errInvalidBody)
	}
	isEnabled := true
	if payload.IsEnabled != nil {
		isEnabled = *payload.IsEnabled
	}
	userID := currentUserID(c)
	if err := h.service.UpdateAppointment(c.UserContext(), id, userID, payload.detail(), isEnabled); err != nil {
		return respondError(c, "UpdateAppointment", err)
	}
	appointment, err := h.service.GetAppointmentByID(c.UserContext(), id, userID)
	if err != nil {
		return respondError(c, "UpdateAppointment", err)
	}
	return c.JSON(appointment)
}

// DeleteAppointment randevu hizmetini ve linkini siler.
func (h *PanelAppointmentHandler) DeleteAppointment(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, "DeleteAppointment", err)
	}
	if err := h.service.DeleteAppointment(c.UserContext(), id, currentUserID(c)); err != nil {
		return respondError(c, "DeleteAppointment", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListBookings hizmetin rezervasyonlarını listeler.
func (h *PanelAppointmentHandler) ListBookings(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, "ListBookings", err)
	}
	result, err := h.bookings.ListBookings(c.UserContext(), id, currentUserID(c), listParams(c))
	if err != nil {
		return respondError(c, "ListBookings", err)
	}
	return c.JSON(result)
}

// UpdateBookingStatus rezervasyonu onaylar veya iptal eder.
func (h *PanelAppointmentHandler) UpdateBookingStatus(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, "UpdateBookingStatus", err)
	}
	var payload struct {
		Status models.BookingStatus `json:"status" form:"status"`
	}
	if err := c.BodyParser(&payload); err != nil {
		return respondError(c, "UpdateBookingStatus", errInvalidBody)
	}
	booking, err := h.bookings.UpdateBookingStatus(c.UserContext(), id, currentUserID(c), payload.Status)
	if err != nil {
		return respondError(c, "UpdateBookingStatus", err)
	}
	return c.JSON(booking)
}
