package handlers

import (
	"formly.link/services"

	"github.com/gofiber/fiber/v2"
)

// FormHandler tüm formları yönetmek için handler (Dashboard).
type FormHandler struct {
	service services.IFormService
}

// NewFormHandler yeni bir FormHandler örneği oluşturur.
func NewFormHandler() *FormHandler {
	return &FormHandler{service: services.NewFormService()}
}

// ListForms tüm formları listeler (Admin için).
func (h *FormHandler) ListForms(c *fiber.Ctx) error {
	result, err := h.service.GetAllFormsPaginated(c.UserContext(), queryList(c))
	if err != nil {
		return fail(c, "ListForms", err)
	}
	return c.JSON(result)
}

// GetForm herhangi bir formu döndürür.
func (h *FormHandler) GetForm(c *fiber.Ctx) error {
	id, ok := idParam(c)
	if !ok {
		return badID(c)
	}
	form, err := h.service.GetFormByID(c.UserContext(), id, adminID(c))
	if err != nil {
		return fail(c, "GetForm", err)
	}
	return c.JSON(form)
}

// UnpublishForm uygunsuz bir formu yayından kaldırır.
func (h *FormHandler) UnpublishForm(c *fiber.Ctx) error {
	id, ok := idParam(c)
	if !ok {
		return badID(c)
	}
	if err := h.service.SetPublished(c.UserContext(), id, adminID(c), false); err != nil {
		return fail(c, "UnpublishForm", err)
	}
	return c.JSON(fiber.Map{"id": id, "is_published": false})
}

// DeleteForm formu siler.
func (h *FormHandler) DeleteForm(c *fiber.Ctx) error {
	id, ok := idParam(c)
	if !ok {
		return badID(c)
	}
	if err := h.service.DeleteForm(c.UserContext(), id, adminID(c)); err != nil {
		return fail(c, "DeleteForm", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
