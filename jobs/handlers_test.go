package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMail struct {
	to, subject, body string
}

type fakeSender struct {
	sent []sentMail
	err  error
}

func (f *fakeSender) Send(to, subject, html string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{to, subject, html})
	return nil
}

func TestHandleFormResponseNotify(t *testing.T) {
	sender := &fakeSender{}
	task, err := NewFormResponseNotifyTask(FormResponsePayload{
		To:          "owner@example.com",
		FormTitle:   "Etkinlik Kaydı",
		ResponseUID: "abc",
		SubmittedAt: time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC),
		Answers: []AnswerLine{
			{Title: "Ad", Value: "Ayşe"},
			{Title: "Not", Value: ""},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, TypeFormResponseNotify, task.Type())

	require.NoError(t, HandleFormResponseNotify(sender)(context.Background(), task))
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "owner@example.com", sender.sent[0].to)
	assert.Equal(t, "Yeni yanıt: Etkinlik Kaydı", sender.sent[0].subject)
	assert.Contains(t, sender.sent[0].body, "Ayşe")
	assert.Contains(t, sender.sent[0].body, "<em>boş</em>")
	assert.Contains(t, sender.sent[0].body, "01.06.2024 09:00")
}

func TestHandleFormResponseNotifyWithoutRecipient(t *testing.T) {
	sender := &fakeSender{}
	task, err := NewFormResponseNotifyTask(FormResponsePayload{FormTitle: "x"})
	require.NoError(t, err)

	require.NoError(t, HandleFormResponseNotify(sender)(context.Background(), task))
	assert.Empty(t, sender.sent)
}

func TestHandleFormResponseNotifyBadPayloadSkipsRetry(t *testing.T) {
	task := asynq.NewTask(TypeFormResponseNotify, []byte("{"))
	err := HandleFormResponseNotify(&fakeSender{})(context.Background(), task)
	require.Error(t, err)
	assert.True(t, errors.Is(err, asynq.SkipRetry))
}

func TestHandleFormResponseNotifySendError(t *testing.T) {
	sendErr := errors.New("smtp down")
	task, err := NewFormResponseNotifyTask(FormResponsePayload{To: "a@b.co", FormTitle: "x"})
	require.NoError(t, err)

	err = HandleFormResponseNotify(&fakeSender{err: sendErr})(context.Background(), task)
	assert.ErrorIs(t, err, sendErr)
}

func TestHandleBookingNotifyUsesAppointmentTimezone(t *testing.T) {
	sender := &fakeSender{}
	task, err := NewBookingNotifyTask(BookingPayload{
		Event:           BookingCreated,
		To:              "guest@example.com",
		AppointmentName: "Danışmanlık",
		Reference:       "A1B2C3D4E5",
		StartsAt:        time.Date(2024, 6, 3, 7, 0, 0, 0, time.UTC),
		Timezone:        "UTC",
		GuestName:       "Mehmet",
		Status:          "pending",
	})
	require.NoError(t, err)

	require.NoError(t, HandleBookingNotify(sender)(context.Background(), task))
	require.Len(t, sender.sent, 1)
	mail := sender.sent[0]
	assert.Equal(t, "Randevu A1B2C3D4E5: Danışmanlık", mail.subject)
	assert.Contains(t, mail.body, "Yeni randevu")
	assert.Contains(t, mail.body, "03.06.2024")
	assert.Contains(t, mail.body, "07:00")
	assert.Contains(t, mail.body, "Onay bekliyor")
}

func TestBookingViewFallsBackToUTC(t *testing.T) {
	v := bookingView{BookingPayload{
		StartsAt: time.Date(2024, 6, 3, 7, 0, 0, 0, time.UTC),
		Timezone: "Not/AZone",
		Status:   "unknown",
	}}
	assert.Equal(t, 7, v.Local().Hour())
	assert.Equal(t, "unknown", v.StatusLabel())
}
