package handlers

import (
	"errors"

	"formly.link/configs/configslog"
	"formly.link/pkg/queryparams"
	"formly.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func adminID(c *fiber.Ctx) uint {
	userID, _ := c.Locals("userID").(uint)
	return userID
}

func idParam(c *fiber.Ctx) (uint, bool) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, false
	}
	return uint(id), true
}

func queryList(c *fiber.Ctx) queryparams.ListParams {
	var params queryparams.ListParams
	if err := c.QueryParser(&params); err != nil {
		return queryparams.DefaultListParams("created_at")
	}
	return params
}

func badID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Geçersiz ID."})
}

// fail servis hatasını JSON'a çevirir; dashboard sadece okuma ve silme yaptığından
// bulunamadı dışındaki hatalar sunucu hatasıdır.
func fail(c *fiber.Ctx, op string, err error) error {
	if errors.Is(err, services.ErrFormNotFound) || errors.Is(err, services.ErrAppointmentNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	configslog.Log.Error("Dashboard - "+op, zap.Uint("adminID", adminID(c)), zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "İşlem sırasında beklenmeyen bir hata oluştu."})
}
