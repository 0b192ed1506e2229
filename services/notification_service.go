package services

import (
	"context"
	"errors"
	"strings"

	"formly.link/configs/configslog"
	"formly.link/configs/configsqueue"
	"formly.link/jobs"
	"formly.link/models"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// ErrQueueUnavailable kuyruk istemcisi yoksa döner.
var ErrQueueUnavailable = errors.New("bildirim kuyruğu kullanılamıyor")

// Enqueuer görevleri kuyruğa alan istemci (*asynq.Client).
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// INotificationService e-posta bildirimlerini kuyruğa alır.
// Gönderim worker sürecinde yapılır; buradaki hatalar isteği başarısız saymaz.
type INotificationService interface {
	NotifyFormResponse(ctx context.Context, form *models.Form, response *models.FormResponse) error
	NotifyBooking(ctx context.Context, event jobs.BookingEvent, appointment *models.Appointment, booking *models.AppointmentBooking) error
}

type NotificationService struct {
	queue Enqueuer
}

// NewNotificationService global asynq istemcisini kullanır. İstemci yoksa
// bildirimler ErrQueueUnavailable ile atlanır.
func NewNotificationService() INotificationService {
	var q Enqueuer
	if c := configsqueue.GetClient(); c != nil {
		q = c
	}
	return &NotificationService{queue: q}
}

func NewNotificationServiceWith(q Enqueuer) INotificationService {
	return &NotificationService{queue: q}
}

func (s *NotificationService) enqueue(ctx context.Context, task *asynq.Task) error {
	if s.queue == nil {
		return ErrQueueUnavailable
	}
	info, err := s.queue.EnqueueContext(ctx, task)
	if err != nil {
		configslog.Log.Error("Bildirim kuyruğa alınamadı", zap.String("type", task.Type()), zap.Error(err))
		return err
	}
	configslog.SLog.Debugf("Bildirim kuyruğa alındı: %s (%s)", info.ID, task.Type())
	return nil
}

// NotifyFormResponse form ayarlarındaki adrese yanıtın özetini gönderir.
func (s *NotificationService) NotifyFormResponse(ctx context.Context, form *models.Form, response *models.FormResponse) error {
	to := strings.TrimSpace(form.Detail.NotifyOnSubmitEmail)
	if to == "" {
		return nil
	}

	answers := response.AnswerMap()
	lines := make([]jobs.AnswerLine, 0, len(form.Questions))
	for _, q := range form.Questions {
		lines = append(lines, jobs.AnswerLine{Title: q.Title, Value: answers[q.Key].String()})
	}

	task, err := jobs.NewFormResponseNotifyTask(jobs.FormResponsePayload{
		To:          to,
		FormTitle:   form.Detail.Title,
		FormKey:     form.ShortID(),
		ResponseUID: response.UID,
		SubmittedAt: response.SubmittedAt,
		Answers:     lines,
	})
	if err != nil {
		return err
	}
	return s.enqueue(ctx, task)
}

// NotifyBooking misafire randevu bilgisini gönderir.
func (s *NotificationService) NotifyBooking(ctx context.Context, event jobs.BookingEvent, appointment *models.Appointment, booking *models.AppointmentBooking) error {
	task, err := jobs.NewBookingNotifyTask(jobs.BookingPayload{
		Event:           event,
		To:              booking.GuestEmail,
		AppointmentName: appointment.Detail.Name,
		Reference:       booking.Reference,
		StartsAt:        booking.StartsAt,
		EndsAt:          booking.EndsAt,
		Timezone:        appointment.Detail.Timezone,
		GuestName:       booking.GuestName,
		GuestEmail:      booking.GuestEmail,
		Status:          string(booking.Status),
	})
	if err != nil {
		return err
	}
	return s.enqueue(ctx, task)
}

var _ INotificationService = (*NotificationService)(nil)
