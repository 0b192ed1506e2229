package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"formly.link/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{errInvalidID, fiber.StatusBadRequest},
		{services.ErrFormNotFound, fiber.StatusNotFound},
		{services.ErrBookingNotFound, fiber.StatusNotFound},
		{services.ErrAppointmentForbidden, fiber.StatusForbidden},
		{services.ErrQuestionKeyDuplicate, fiber.StatusUnprocessableEntity},
		{fmt.Errorf("%w: başlık boş", services.ErrFrmInvalidInput), fiber.StatusUnprocessableEntity},
		{fmt.Errorf("%w: saat dilimi", services.ErrAppInvalidInput), fiber.StatusUnprocessableEntity},
		{services.ErrFormHasNoQuestions, fiber.StatusUnprocessableEntity},
		{services.ErrBookingStatusInvalid, fiber.StatusUnprocessableEntity},
		{services.ErrBookingSlotUnavailable, fiber.StatusConflict},
		{services.ErrFormUpdateFailed, fiber.StatusInternalServerError},
		{errors.New("db down"), fiber.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFor(tt.err), tt.err.Error())
	}
}

func TestRespondError_HidesInternalErrors(t *testing.T) {
	app := fiber.New()
	app.Get("/internal", func(c *fiber.Ctx) error {
		return respondError(c, "Test", errors.New("pq: connection refused"))
	})
	app.Get("/forbidden", func(c *fiber.Ctx) error {
		return respondError(c, "Test", services.ErrFormForbidden)
	})

	read := func(path string) (int, string) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
		require.NoError(t, err)
		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		var body map[string]string
		require.NoError(t, json.Unmarshal(raw, &body))
		return resp.StatusCode, body["error"]
	}

	status, msg := read("/internal")
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.NotContains(t, msg, "pq:")

	status, msg = read("/forbidden")
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Equal(t, services.ErrFormForbidden.Error(), msg)
}

func TestParamID(t *testing.T) {
	app := fiber.New()
	app.Get("/forms/:id", func(c *fiber.Ctx) error {
		id, err := paramID(c)
		if err != nil {
			return c.SendStatus(fiber.StatusBadRequest)
		}
		return c.SendString(fmt.Sprint(id))
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/forms/42", nil), -1)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "42", string(body))

	for _, bad := range []string{"/forms/0", "/forms/-3", "/forms/abc"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, bad, nil), -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, bad)
	}
}
