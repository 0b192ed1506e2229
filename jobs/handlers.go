package jobs

import (
	"context"
	"encoding/json"
	"fmt"

	"formly.link/configs/configslog"
	"formly.link/pkg/mailer"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// HandleFormResponseNotify form sahibine yeni yanıt e-postası gönderir.
func HandleFormResponseNotify(sender mailer.Sender) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var p FormResponsePayload
		if err := json.Unmarshal(t.Payload(), &p); err != nil {
			return fmt.Errorf("form yanıt görevi çözümlenemedi: %v: %w", err, asynq.SkipRetry)
		}
		if p.To == "" {
			configslog.SLog.Debugf("form yanıt bildirimi alıcısız, atlandı: %s", p.ResponseUID)
			return nil
		}

		body, err := renderMail("form_response.html", p)
		if err != nil {
			return fmt.Errorf("form yanıt e-postası oluşturulamadı: %v: %w", err, asynq.SkipRetry)
		}
		subject := fmt.Sprintf("Yeni yanıt: %s", p.FormTitle)
		if err := sender.Send(p.To, subject, body); err != nil {
			configslog.Log.Warn("form yanıt e-postası gönderilemedi", zap.String("response_uid", p.ResponseUID), zap.Error(err))
			return err
		}
		configslog.SLog.Infof("form yanıt bildirimi gönderildi: %s", p.ResponseUID)
		return nil
	}
}

// HandleBookingNotify misafire randevu oluşturma veya durum değişikliği e-postası gönderir.
func HandleBookingNotify(sender mailer.Sender) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var p BookingPayload
		if err := json.Unmarshal(t.Payload(), &p); err != nil {
			return fmt.Errorf("randevu görevi çözümlenemedi: %v: %w", err, asynq.SkipRetry)
		}
		if p.To == "" {
			return nil
		}

		body, err := renderMail("booking.html", bookingView{p})
		if err != nil {
			return fmt.Errorf("randevu e-postası oluşturulamadı: %v: %w", err, asynq.SkipRetry)
		}
		subject := fmt.Sprintf("Randevu %s: %s", p.Reference, p.AppointmentName)
		if err := sender.Send(p.To, subject, body); err != nil {
			configslog.Log.Warn("randevu e-postası gönderilemedi", zap.String("reference", p.Reference), zap.Error(err))
			return err
		}
		configslog.SLog.Infof("randevu bildirimi gönderildi: %s (%s)", p.Reference, p.Event)
		return nil
	}
}

// NewServeMux görev türlerini işleyicilere bağlar.
func NewServeMux(sender mailer.Sender) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.Handle(TypeFormResponseNotify, HandleFormResponseNotify(sender))
	mux.Handle(TypeBookingNotify, HandleBookingNotify(sender))
	return mux
}
