package handlers // handlers/panel paketi

import (
	"net/http"

	"formly.link/models"
	"formly.link/pkg/formfields"
	"formly.link/pkg/renderer"
	"formly.link/services"

	"github.com/gofiber/fiber/v2"
)

// PanelFormHandler kullanıcının kendi formları için handler.
type PanelFormHandler struct {
	service   services.IFormService
	responses services.IFormResponseService
}

// NewPanelFormHandler yeni bir PanelFormHandler örneği oluşturur.
func NewPanelFormHandler() *PanelFormHandler {
	forms := services.NewFormService()
	return &PanelFormHandler{
		service:   forms,
		responses: services.NewFormResponseService(forms),
	}
}

// formPayload oluşturma ve güncelleme istek gövdesi. Şifre düz metin gelir,
// servis hash'ler; boş şifre güncellemede mevcut şifreyi korur.
type formPayload struct {
	Detail    models.FormDetail     `json:"detail"`
	Password  string                `json:"password"`
	IsEnabled *bool                 `json:"is_enabled"`
	Questions []models.FormQuestion `json:"questions"`
}

func (p formPayload) detail() models.FormDetail {
	d := p.Detail
	d.PasswordHash = p.Password
	return d
}

// ListForms kullanıcının kendi formlarını listeler.
func (h *PanelFormHandler) ListForms(c *fiber.Ctx) error {
	result, err := h.service.GetFormsForUser(c.UserContext(), currentUserID(c), listParams(c))
	if err != nil {
		return respondError(c, "ListForms", err)
	}
	return c.JSON(result)
}

// GetForm tek bir formu soruları ile döndürür.
func (h *PanelFormHandler) GetForm(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, "GetForm", err)
	}
	form, err := h.service.GetFormByID(c.UserContext(), id, currentUserID(c))
	if err != nil {
		return respondError(c, "GetForm", err)
	}
	return c.JSON(form)
}

// CreateForm yeni form oluşturur. Form yayında olmadan başlar.
func (h *PanelFormHandler) CreateForm(c *fiber.Ctx) error {
	var payload formPayload
	if err := c.BodyParser(&payload); err != nil {
		return respondError(c, "CreateForm", errInvalidBody)
	}
	form, err := h.service.CreateForm(c.UserContext(), currentUserID(c), nil, payload.detail(), payload.Questions)
	if err != nil {
		return respondError(c, "CreateForm", err)
	}
	return c.Status(fiber.StatusCreated).JSON(form)
}

// UpdateForm form detaylarını günceller. Sorular ayrı uç noktadan değişir.
func (h *PanelFormHandler) UpdateForm(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, "UpdateForm", err)
	}
	var payload formPayload
	if err := c.BodyParser(&payload); err != nil {
		return respondError(c, "UpdateForm", errInvalidBody)
	}
	isEnabled := true
	if payload.IsEnabled != nil {
		isEnabled = *payload.IsEnabled
	}
	if err := h.service.UpdateForm(c.UserContext(), id, currentUserID(c), payload.detail(), isEnabled); err != nil {
		return respondError(c, "UpdateForm", err)
	}
	form, err := h.service.GetFormByID(c.UserContext(), id, currentUserID(c))
	if err != nil {
		return respondError(c, "UpdateForm", err)
	}
	return c.JSON(form)
}

// ReplaceQuestions formun sorularını gövdedeki sırayla değiştirir.
func (h *PanelFormHandler) ReplaceQuestions(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, "ReplaceQuestions", err)
	}
	var payload struct {
		Questions []models.FormQuestion `json:"questions"`
	}
	if err := c.BodyParser(&payload); err != nil {
		return respondError(c, "ReplaceQuestions", errInvalidBody)
	}
	questions, err := h.service.ReplaceQuestions(c.UserContext(), id, currentUserID(c), payload.Questions)
	if err != nil {
		return respondError(c, "ReplaceQuestions", err)
	}
	return c.JSON(fiber.Map{"questions": questions})
}

// Publish formu yayına alır.
func (h *PanelFormHandler) Publish(c *fiber.Ctx) error {
	return h.setPublished(c, true)
}

// Unpublish formu yayından kaldırır.
func (h *PanelFormHandler) Unpublish(c *fiber.Ctx) error {
	return h.setPublished(c, false)
}

func (h *PanelFormHandler) setPublished(c *fiber.Ctx, published bool) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, "SetPublished", err)
	}
	if err := h.service.SetPublished(c.UserContext(), id, currentUserID(c), published); err != nil {
		return respondError(c, "SetPublished", err)
	}
	return c.JSON(fiber.Map{"id": id, "is_published": published})
}

// DeleteForm formu ve linkini siler.
func (h *PanelFormHandler) DeleteForm(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, "DeleteForm", err)
	}
	if err := h.service.DeleteForm(c.UserContext(), id, currentUserID(c)); err != nil {
		return respondError(c, "DeleteForm", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// PreviewForm formu salt okunur kontrollerle sahibine gösterir.
// Yayında olmayan formlar da önizlenebilir.
func (h *PanelFormHandler) PreviewForm(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(err.Error())
	}
	form, err := h.service.GetFormByID(c.UserContext(), id, currentUserID(c))
	if err != nil {
		status := statusFor(err)
		if status == fiber.StatusNotFound {
			return renderer.Render(c, "errors/404", "layouts/error_layout", fiber.Map{"Title": "Sayfa Bulunamadı"}, http.StatusNotFound)
		}
		return respondError(c, "PreviewForm", err)
	}
	return renderer.Render(c, "panel/form_preview", "layouts/panel_layout", fiber.Map{
		"Title":    form.Detail.Title + " (Önizleme)",
		"Form":     form,
		"Controls": formfields.RenderAll(form.Questions, nil, nil, formfields.WithPreview()),
	})
}

// ListResponses formun yanıtlarını sayfalı döndürür.
func (h *PanelFormHandler) ListResponses(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, "ListResponses", err)
	}
	result, err := h.responses.ListResponses(c.UserContext(), id, currentUserID(c), listParams(c))
	if err != nil {
		return respondError(c, "ListResponses", err)
	}
	return c.JSON(result)
}
