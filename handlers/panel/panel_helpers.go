package handlers

import (
	"errors"

	"formly.link/configs/configslog"
	"formly.link/pkg/queryparams"
	"formly.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

var (
	errInvalidID   = errors.New("geçersiz ID")
	errInvalidBody = errors.New("geçersiz istek gövdesi")
)

func currentUserID(c *fiber.Ctx) uint {
	userID, _ := c.Locals("userID").(uint)
	return userID
}

func paramID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, errInvalidID
	}
	return uint(id), nil
}

// listParams sorgu parametrelerini okur; varsayılanları servis uygular.
func listParams(c *fiber.Ctx) queryparams.ListParams {
	var params queryparams.ListParams
	if err := c.QueryParser(&params); err != nil {
		return queryparams.ListParams{}
	}
	return params
}

// statusFor servis hatasını HTTP durum koduna çevirir.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errInvalidID), errors.Is(err, errInvalidBody):
		return fiber.StatusBadRequest
	case errors.Is(err, services.ErrFormNotFound),
		errors.Is(err, services.ErrAppointmentNotFound),
		errors.Is(err, services.ErrBookingNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrFormForbidden),
		errors.Is(err, services.ErrAppointmentForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, services.ErrBookingSlotUnavailable):
		return fiber.StatusConflict
	}

	var formErr services.FormServiceError
	if errors.As(err, &formErr) {
		switch formErr {
		case services.ErrFrmInvalidInput, services.ErrFormTitleRequired, services.ErrFormHasNoQuestions,
			services.ErrQuestionTitleRequired, services.ErrQuestionTypeUnknown, services.ErrQuestionKeyInvalid,
			services.ErrQuestionKeyDuplicate, services.ErrQuestionOptionsRequired, services.ErrQuestionRatingRange:
			return fiber.StatusUnprocessableEntity
		}
	}
	var appErr services.AppointmentServiceError
	if errors.As(err, &appErr) {
		switch appErr {
		case services.ErrAppInvalidInput, services.ErrAppointmentNameRequired, services.ErrAppointmentDurationRequired:
			return fiber.StatusUnprocessableEntity
		}
	}
	if errors.Is(err, services.ErrBookingStatusInvalid) {
		return fiber.StatusUnprocessableEntity
	}
	return fiber.StatusInternalServerError
}

// respondError hatayı JSON olarak yazar. Beklenmeyen hatalar loglanır ve
// ayrıntıları istemciye gösterilmez.
func respondError(c *fiber.Ctx, op string, err error) error {
	status := statusFor(err)
	message := err.Error()
	if status == fiber.StatusInternalServerError {
		configslog.Log.Error("Panel - "+op, zap.Uint("userID", currentUserID(c)), zap.Error(err))
		message = "İşlem sırasında beklenmeyen bir hata oluştu."
	}
	return c.Status(status).JSON(fiber.Map{"error": message})
}
