package handlers

import (
	"errors"
	"net/http"
	"strings"

	"formly.link/configs/configslog"
	"formly.link/models"
	"formly.link/pkg/flashmessages"
	"formly.link/pkg/formfields"
	"formly.link/pkg/renderer"
	"formly.link/pkg/validation"
	"formly.link/services"
	"formly.link/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// HTML formunda soru alanlarının ve özel alanların adları.
const (
	answerFieldPrefix = "answer."
	passwordField     = "_password"
	tokenField        = "_token"
	idempotencyHeader = "Idempotency-Key"
)

// LinkHandler public linkleri (örn. /abcdef01234) yönetir.
type LinkHandler struct {
	links     services.ILinkService
	forms     services.FormReader
	responses services.IFormResponseService
	bookings  services.IBookingService
}

// NewLinkHandler yeni bir LinkHandler örneği oluşturur.
func NewLinkHandler() *LinkHandler {
	forms := services.NewFormService()
	return NewLinkHandlerWith(
		services.NewLinkService(),
		forms,
		services.NewFormResponseService(forms),
		services.NewBookingService(services.NewAppointmentService()),
	)
}

func NewLinkHandlerWith(links services.ILinkService, forms services.FormReader, responses services.IFormResponseService, bookings services.IBookingService) *LinkHandler {
	return &LinkHandler{links: links, forms: forms, responses: responses, bookings: bookings}
}

// HandleLink linkin türüne göre form doldurma veya randevu sayfasını gösterir.
func (h *LinkHandler) HandleLink(c *fiber.Ctx) error {
	key := c.Params("key")
	link, err := h.links.GetLinkByKey(c.UserContext(), key)
	if err != nil {
		if errors.Is(err, services.ErrLinkNotFound) {
			return h.renderNotFound(c)
		}
		configslog.Log.Error("Link okunamadı", zap.String("key", key), zap.Error(err))
		return h.renderError(c)
	}

	switch link.Type.Name {
	case models.TypeNameForm:
		return h.showForm(c, key)
	case models.TypeNameAppointment:
		return h.showAppointment(c, key)
	default:
		configslog.Log.Warn("Bilinmeyen link türü", zap.String("key", key), zap.String("type", link.Type.Name))
		return h.renderNotFound(c)
	}
}

func (h *LinkHandler) showForm(c *fiber.Ctx, key string) error {
	form, err := services.NewFormSchemaMemo(h.forms).GetFormByKey(c.UserContext(), key)
	switch {
	case errors.Is(err, services.ErrFormClosed) && form != nil:
		return renderer.Render(c, "public/form_closed", "layouts/public_layout", fiber.Map{
			"Title": form.Detail.Title,
			"Form":  form,
		}, http.StatusGone)
	case errors.Is(err, services.ErrFormNotFound), errors.Is(err, services.ErrFormClosed):
		return h.renderNotFound(c)
	case err != nil:
		configslog.Log.Error("Form okunamadı", zap.String("key", key), zap.Error(err))
		return h.renderError(c)
	}

	flashData, _ := flashmessages.GetFlashMessages(c)
	answers, fieldErrors := restoreSubmission(flashmessages.GetFlashFormData(c))

	controls := formfields.RenderAll(form.Questions, answers, nil)
	for i := range controls {
		if msg, ok := fieldErrors[controls[i].Key]; ok {
			controls[i].Error = msg
		}
	}

	data := fiber.Map{
		"Title":         form.Detail.Title,
		"Form":          form,
		"Key":           key,
		"Controls":      controls,
		"NeedsPassword": form.Detail.PasswordHash != "",
		"Token":         uuid.NewString(),
	}
	renderer.SetFlashMessages(data, flashData)
	return renderer.Render(c, "public/form_fill", "layouts/public_layout", data)
}

func (h *LinkHandler) showAppointment(c *fiber.Ctx, key string) error {
	ctx := c.UserContext()
	appointment, view, err := h.bookings.GetAvailability(ctx, key, c.Query("date"))
	data := fiber.Map{}
	if err != nil && appointment != nil && (errors.Is(err, services.ErrBookingInvalidInput) || errors.Is(err, services.ErrBookingDateUnavailable)) {
		data[renderer.FlashErrorKeyView] = err.Error()
		appointment, view, err = h.bookings.GetAvailability(ctx, key, "")
	}
	switch {
	case errors.Is(err, services.ErrAppointmentNotFound):
		return h.renderNotFound(c)
	case err != nil:
		configslog.Log.Error("Randevu sayfası hazırlanamadı", zap.String("key", key), zap.Error(err))
		return h.renderError(c)
	}

	data["Title"] = appointment.Detail.Name
	data["Appointment"] = appointment
	data["Key"] = key
	data["View"] = view
	data["NeedsPassword"] = appointment.Detail.PasswordHash != ""
	return renderer.Render(c, "public/appointment_booking", "layouts/public_layout", data)
}

type submissionRequest struct {
	Answers         models.Answers `json:"answers"`
	Password        string         `json:"password"`
	SubmissionToken string         `json:"submission_token"`
}

// SubmitResponse bir form yanıtını JSON veya HTML formu olarak alır.
func (h *LinkHandler) SubmitResponse(c *fiber.Ctx) error {
	key := c.Params("key")
	ctx := c.UserContext()
	jsonRequest := isJSONRequest(c)

	memo := services.NewFormSchemaMemo(h.forms)
	form, err := memo.GetFormByKey(ctx, key)
	if err != nil {
		return h.submissionFailed(c, key, jsonRequest, err, nil)
	}

	in := services.SubmissionInput{IP: utils.ClientIP(c), UserAgent: c.Get(fiber.HeaderUserAgent)}
	var raw map[string][]string
	if jsonRequest {
		var req submissionRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Geçersiz istek gövdesi."})
		}
		in.Answers = req.Answers
		in.Password = req.Password
		in.Token = req.SubmissionToken
	} else {
		raw = make(map[string][]string, len(form.Questions))
		in.Answers = make(models.Answers, len(form.Questions))
		for _, q := range form.Questions {
			values := postValues(c, answerFieldPrefix+q.Key)
			raw[q.Key] = values
			if v := formfields.FromInput(values); !v.IsAbsent() {
				in.Answers[q.Key] = v
			}
		}
		in.Password = c.FormValue(passwordField)
		in.Token = c.FormValue(tokenField)
	}
	if header := strings.TrimSpace(c.Get(idempotencyHeader)); header != "" {
		in.Token = header
	}

	result, err := h.responses.WithForms(memo).SubmitResponse(ctx, key, in)
	if err != nil {
		return h.submissionFailed(c, key, jsonRequest, err, raw)
	}

	if jsonRequest {
		status := fiber.StatusCreated
		if result.Replayed {
			status = fiber.StatusOK
		}
		return c.Status(status).JSON(fiber.Map{
			"uid":                  result.Response.UID,
			"submitted_at":         result.Response.SubmittedAt,
			"replayed":             result.Replayed,
			"confirmation_message": result.Form.Detail.ConfirmationMessage,
			"redirect_url":         result.Form.Detail.RedirectURLOnSubmit,
		})
	}

	if target := result.Form.Detail.RedirectURLOnSubmit; target != "" {
		return c.Redirect(target, fiber.StatusSeeOther)
	}
	return renderer.Render(c, "public/form_submitted", "layouts/public_layout", fiber.Map{
		"Title":   result.Form.Detail.Title,
		"Form":    result.Form,
		"Message": confirmationMessage(result.Form),
	})
}

func (h *LinkHandler) submissionFailed(c *fiber.Ctx, key string, jsonRequest bool, err error, raw map[string][]string) error {
	status, message := publicError(err)
	if status == fiber.StatusInternalServerError {
		configslog.Log.Error("Form yanıtı alınamadı", zap.String("key", key), zap.Error(err))
	}

	var answerErrs services.AnswerErrors
	isAnswerErr := errors.As(err, &answerErrs)

	if jsonRequest {
		body := fiber.Map{"error": message}
		if isAnswerErr {
			body["fields"] = answerErrs
		}
		return c.Status(status).JSON(body)
	}

	switch status {
	case fiber.StatusNotFound:
		return h.renderNotFound(c)
	case fiber.StatusGone:
		return h.showForm(c, key)
	case fiber.StatusInternalServerError:
		return h.renderError(c)
	}

	if isAnswerErr {
		message = "Lütfen işaretli alanları kontrol edin."
	}
	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, message)
	_ = flashmessages.SetFlashFormData(c, fiber.Map{"answers": raw, "errors": answerErrs})
	return c.Redirect("/"+key, fiber.StatusSeeOther)
}

// Slots verilen günün zaman dilimlerini JSON olarak döndürür.
func (h *LinkHandler) Slots(c *fiber.Ctx) error {
	appointment, view, err := h.bookings.GetAvailability(c.UserContext(), c.Params("key"), c.Query("date"))
	if err != nil {
		status, message := publicError(err)
		if status == fiber.StatusInternalServerError {
			configslog.Log.Error("Zaman dilimleri alınamadı", zap.String("key", c.Params("key")), zap.Error(err))
		}
		return c.Status(status).JSON(fiber.Map{"error": message})
	}
	return c.JSON(fiber.Map{
		"appointment": fiber.Map{
			"name":             appointment.Detail.Name,
			"duration_minutes": appointment.Detail.DurationMinutes,
			"timezone":         appointment.Detail.Timezone,
		},
		"view": view,
	})
}

// Book public rezervasyon isteğini alır.
func (h *LinkHandler) Book(c *fiber.Ctx) error {
	key := c.Params("key")
	var in services.BookingInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Geçersiz istek gövdesi."})
	}

	booking, err := h.bookings.Book(c.UserContext(), key, in)
	if err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error":  "Rezervasyon bilgileri geçersiz.",
				"fields": validation.Messages(err),
			})
		}
		status, message := publicError(err)
		if status == fiber.StatusInternalServerError {
			configslog.Log.Error("Rezervasyon alınamadı", zap.String("key", key), zap.Error(err))
		}
		return c.Status(status).JSON(fiber.Map{"error": message})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"reference": booking.Reference,
		"starts_at": booking.StartsAt,
		"ends_at":   booking.EndsAt,
		"status":    booking.Status,
	})
}

func (h *LinkHandler) renderNotFound(c *fiber.Ctx) error {
	return renderer.Render(c, "errors/404", "layouts/error_layout", fiber.Map{"Title": "Sayfa Bulunamadı"}, http.StatusNotFound)
}

func (h *LinkHandler) renderError(c *fiber.Ctx) error {
	return renderer.Render(c, "errors/500", "layouts/error_layout", fiber.Map{"Title": "Sunucu Hatası"}, http.StatusInternalServerError)
}

// publicError servis hatasını HTTP durumu ve kullanıcıya gösterilecek mesaja çevirir.
func publicError(err error) (int, string) {
	switch {
	case errors.Is(err, services.ErrResponseInvalid):
		return fiber.StatusUnprocessableEntity, services.ErrResponseInvalid.Error()
	case errors.Is(err, services.ErrFormNotFound),
		errors.Is(err, services.ErrAppointmentNotFound),
		errors.Is(err, services.ErrLinkNotFound):
		return fiber.StatusNotFound, err.Error()
	case errors.Is(err, services.ErrFormClosed):
		return fiber.StatusGone, err.Error()
	case errors.Is(err, services.ErrResponsePasswordInvalid),
		errors.Is(err, services.ErrBookingPasswordInvalid):
		return fiber.StatusForbidden, err.Error()
	case errors.Is(err, services.ErrFormSubmissionLimitReached),
		errors.Is(err, services.ErrBookingSlotUnavailable):
		return fiber.StatusConflict, err.Error()
	case errors.Is(err, services.ErrSubmissionTokenInvalid),
		errors.Is(err, services.ErrBookingInvalidInput),
		errors.Is(err, services.ErrBookingDateUnavailable):
		return fiber.StatusBadRequest, err.Error()
	default:
		return fiber.StatusInternalServerError, "Beklenmeyen bir hata oluştu."
	}
}

func isJSONRequest(c *fiber.Ctx) bool {
	return strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON)
}

// postValues bir alanın tüm değerlerini urlencoded veya multipart gövdeden okur.
func postValues(c *fiber.Ctx, name string) []string {
	if form, err := c.MultipartForm(); err == nil && form != nil {
		return form.Value[name]
	}
	args := c.Request().PostArgs().PeekMulti(name)
	out := make([]string, 0, len(args))
	for _, a := range args {
		out = append(out, string(a))
	}
	return out
}

// restoreSubmission hatalı gönderimden sonra saklanan cevapları ve alan
// hatalarını geri okur.
func restoreSubmission(data map[string]any) (models.Answers, map[string]string) {
	answers := models.Answers{}
	fieldErrors := map[string]string{}
	if data == nil {
		return answers, fieldErrors
	}
	if raw, ok := data["answers"].(map[string]any); ok {
		for key, v := range raw {
			list, _ := v.([]any)
			values := make([]string, 0, len(list))
			for _, item := range list {
				if s, ok := item.(string); ok {
					values = append(values, s)
				}
			}
			if answer := formfields.FromInput(values); !answer.IsAbsent() {
				answers[key] = answer
			}
		}
	}
	if raw, ok := data["errors"].(map[string]any); ok {
		for key, v := range raw {
			if s, ok := v.(string); ok {
				fieldErrors[key] = s
			}
		}
	}
	return answers, fieldErrors
}

func confirmationMessage(form *models.Form) string {
	if msg := strings.TrimSpace(form.Detail.ConfirmationMessage); msg != "" {
		return msg
	}
	return "Yanıtınız kaydedildi. Teşekkür ederiz."
}
