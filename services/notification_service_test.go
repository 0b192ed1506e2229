package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"formly.link/jobs"
	"formly.link/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestNotifyFormResponseEnqueuesAnswersInQuestionOrder(t *testing.T) {
	q := &fakeEnqueuer{}
	svc := NewNotificationServiceWith(q)
	form := testForm()
	resp := &models.FormResponse{
		UID:         "r-1",
		SubmittedAt: fixedNow,
		Answers: datatypes.NewJSONType(models.Answers{
			"name":  models.TextAnswer("Ali"),
			"color": models.TextAnswer("Mavi"),
		}),
	}

	require.NoError(t, svc.NotifyFormResponse(context.Background(), form, resp))
	require.Len(t, q.tasks, 1)
	assert.Equal(t, jobs.TypeFormResponseNotify, q.tasks[0].Type())

	var p jobs.FormResponsePayload
	require.NoError(t, json.Unmarshal(q.tasks[0].Payload(), &p))
	assert.Equal(t, "owner@example.com", p.To)
	assert.Equal(t, "abcdef01234", p.FormKey)
	require.Len(t, p.Answers, 4)
	assert.Equal(t, jobs.AnswerLine{Title: "Ad", Value: "Ali"}, p.Answers[0])
	assert.Equal(t, jobs.AnswerLine{Title: "E-posta", Value: ""}, p.Answers[1])
	assert.Equal(t, "Mavi", p.Answers[2].Value)
}

func TestNotifyFormResponseWithoutRecipient(t *testing.T) {
	q := &fakeEnqueuer{}
	form := testForm()
	form.Detail.NotifyOnSubmitEmail = " "

	require.NoError(t, NewNotificationServiceWith(q).NotifyFormResponse(context.Background(), form, &models.FormResponse{}))
	assert.Empty(t, q.tasks)
}

func TestNotifyWithoutQueue(t *testing.T) {
	err := NewNotificationServiceWith(nil).NotifyFormResponse(context.Background(), testForm(), &models.FormResponse{})
	assert.ErrorIs(t, err, ErrQueueUnavailable)
}

func TestNotifyBookingPayload(t *testing.T) {
	q := &fakeEnqueuer{}
	booking := &models.AppointmentBooking{
		Reference:  "ABC123DEF0",
		GuestName:  "Mehmet",
		GuestEmail: "mehmet@example.com",
		StartsAt:   fixedNow,
		Status:     models.BookingPending,
	}

	require.NoError(t, NewNotificationServiceWith(q).NotifyBooking(context.Background(), jobs.BookingCreated, testAppointment(), booking))
	require.Len(t, q.tasks, 1)

	var p jobs.BookingPayload
	require.NoError(t, json.Unmarshal(q.tasks[0].Payload(), &p))
	assert.Equal(t, jobs.BookingCreated, p.Event)
	assert.Equal(t, "mehmet@example.com", p.To)
	assert.Equal(t, "Danışmanlık", p.AppointmentName)
	assert.Equal(t, "UTC", p.Timezone)
	assert.Equal(t, "pending", p.Status)
}

func TestNotifyEnqueueError(t *testing.T) {
	boom := errors.New("redis down")
	q := &fakeEnqueuer{err: boom}

	err := NewNotificationServiceWith(q).NotifyBooking(context.Background(), jobs.BookingCreated, testAppointment(), &models.AppointmentBooking{})
	assert.ErrorIs(t, err, boom)
}
