package jobs

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	TypeFormResponseNotify = "form:response:notify"
	TypeBookingNotify      = "booking:notify"

	// QueueMail e-posta görevlerinin kuyruğu.
	QueueMail = "mail"
)

// BookingEvent bildirimi tetikleyen randevu olayı.
type BookingEvent string

const (
	BookingCreated       BookingEvent = "created"
	BookingStatusChanged BookingEvent = "status_changed"
)

// AnswerLine e-postada gösterilen tek bir soru-cevap satırı.
type AnswerLine struct {
	Title string `json:"title"`
	Value string `json:"value"`
}

type FormResponsePayload struct {
	To          string       `json:"to"`
	FormTitle   string       `json:"form_title"`
	FormKey     string       `json:"form_key"`
	ResponseUID string       `json:"response_uid"`
	SubmittedAt time.Time    `json:"submitted_at"`
	Answers     []AnswerLine `json:"answers"`
}

type BookingPayload struct {
	Event           BookingEvent `json:"event"`
	To              string       `json:"to"`
	AppointmentName string       `json:"appointment_name"`
	Reference       string       `json:"reference"`
	StartsAt        time.Time    `json:"starts_at"`
	EndsAt          time.Time    `json:"ends_at"`
	Timezone        string       `json:"timezone"`
	GuestName       string       `json:"guest_name"`
	GuestEmail      string       `json:"guest_email"`
	Status          string       `json:"status"`
}

func NewFormResponseNotifyTask(p FormResponsePayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeFormResponseNotify, payload, asynq.Queue(QueueMail), asynq.MaxRetry(5)), nil
}

func NewBookingNotifyTask(p BookingPayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeBookingNotify, payload, asynq.Queue(QueueMail), asynq.MaxRetry(5)), nil
}
