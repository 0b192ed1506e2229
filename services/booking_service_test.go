package services

import (
	"context"
	"testing"
	"time"

	"formly.link/jobs"
	"formly.link/models"
	"formly.link/pkg/availability"
	"formly.link/pkg/queryparams"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
)

const testAppointmentKey = "0123456789a"

func testAppointment() *models.Appointment {
	return &models.Appointment{
		BaseModel:      models.BaseModel{ID: 3},
		ProviderUserID: 1,
		IsEnabled:      true,
		Link:           models.Link{Key: testAppointmentKey},
		Detail: models.AppointmentDetail{
			Name:               "Danışmanlık",
			DurationMinutes:    60,
			BookingHorizonDays: 30,
			Timezone:           "UTC",
			WorkdayStart:       "09:00",
			WorkdayEnd:         "12:00",
			WorkingDays:        datatypes.NewJSONType([]int{0, 1, 2, 3, 4, 5, 6}),
		},
	}
}

func newBookingService(appt *models.Appointment) (*BookingService, *fakeBookingRepo, *fakeNotifier) {
	repo := &fakeBookingRepo{}
	notifier := &fakeNotifier{}
	return NewBookingServiceWith(&fakeAppointmentReader{appointment: appt}, repo, notifier, nowFunc), repo, notifier
}

func validBookingInput(clock string) BookingInput {
	return BookingInput{
		Date:  "2024-06-03",
		Time:  clock,
		Name:  " Mehmet ",
		Email: "mehmet@example.com",
	}
}

func slotLabels(slots []availability.TimeSlot, available bool) []string {
	var out []string
	for _, s := range slots {
		if s.Available == available {
			out = append(out, s.Time)
		}
	}
	return out
}

func TestGetAvailabilityListsDaySlots(t *testing.T) {
	svc, _, _ := newBookingService(testAppointment())

	appt, view, err := svc.GetAvailability(context.Background(), testAppointmentKey, "2024-06-03")
	require.NoError(t, err)
	assert.Equal(t, uint(3), appt.ID)
	assert.Equal(t, "2024-06-03", view.Date)
	assert.Equal(t, []string{"09:00", "10:00", "11:00"}, slotLabels(view.Slots, true))
	assert.False(t, view.Empty)
}

func TestGetAvailabilityDefaultsToToday(t *testing.T) {
	svc, _, _ := newBookingService(testAppointment())

	_, view, err := svc.GetAvailability(context.Background(), testAppointmentKey, "")
	require.NoError(t, err)
	assert.Equal(t, "2024-06-01", view.Date)
	assert.Equal(t, []string{"09:00", "10:00", "11:00"}, slotLabels(view.Slots, true))
}

func TestGetAvailabilityLoadsOnlyRequestedDay(t *testing.T) {
	svc, repo, _ := newBookingService(testAppointment())

	_, view, err := svc.GetAvailability(context.Background(), testAppointmentKey, "2024-06-03")
	require.NoError(t, err)
	assert.Equal(t, "2024-06-03", view.Date)
	assert.Equal(t, 1, repo.dayQueries)
}

func TestGetAvailabilityRejectsPastDate(t *testing.T) {
	svc, _, _ := newBookingService(testAppointment())

	_, _, err := svc.GetAvailability(context.Background(), testAppointmentKey, "2024-05-31")
	assert.ErrorIs(t, err, ErrBookingDateUnavailable)
}

func TestGetAvailabilityRejectsMalformedDate(t *testing.T) {
	svc, _, _ := newBookingService(testAppointment())

	_, _, err := svc.GetAvailability(context.Background(), testAppointmentKey, "03.06.2024")
	assert.ErrorIs(t, err, ErrBookingInvalidInput)
}

func TestGetAvailabilityUnknownKey(t *testing.T) {
	svc, _, _ := newBookingService(testAppointment())

	_, _, err := svc.GetAvailability(context.Background(), "ffffffffff0", "")
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestBookCreatesConfirmedBooking(t *testing.T) {
	svc, repo, notifier := newBookingService(testAppointment())

	booking, err := svc.Book(context.Background(), testAppointmentKey, validBookingInput("10:00"))
	require.NoError(t, err)
	require.Len(t, repo.bookings, 1)

	assert.Equal(t, time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC), booking.StartsAt)
	assert.Equal(t, time.Date(2024, 6, 3, 11, 0, 0, 0, time.UTC), booking.EndsAt)
	assert.Equal(t, models.BookingConfirmed, booking.Status)
	assert.Equal(t, "Mehmet", booking.GuestName)
	assert.NotEmpty(t, booking.Reference)

	require.Len(t, notifier.calls, 1)
	assert.Equal(t, jobs.BookingCreated, notifier.calls[0].event)

	_, view, err := svc.GetAvailability(context.Background(), testAppointmentKey, "2024-06-03")
	require.NoError(t, err)
	assert.Equal(t, []string{"10:00"}, slotLabels(view.Slots, false))
}

func TestBookRequiresApprovalCreatesPending(t *testing.T) {
	appt := testAppointment()
	appt.Detail.RequiresApproval = true
	svc, _, _ := newBookingService(appt)

	booking, err := svc.Book(context.Background(), testAppointmentKey, validBookingInput("09:00"))
	require.NoError(t, err)
	assert.Equal(t, models.BookingPending, booking.Status)
}

func TestBookTakenSlot(t *testing.T) {
	svc, repo, _ := newBookingService(testAppointment())

	_, err := svc.Book(context.Background(), testAppointmentKey, validBookingInput("10:00"))
	require.NoError(t, err)
	_, err = svc.Book(context.Background(), testAppointmentKey, validBookingInput("10:00"))
	assert.ErrorIs(t, err, ErrBookingSlotUnavailable)
	assert.Len(t, repo.bookings, 1)
}

func TestBookConcurrentInsertLoses(t *testing.T) {
	svc, repo, notifier := newBookingService(testAppointment())
	repo.forceDuplicate = true

	_, err := svc.Book(context.Background(), testAppointmentKey, validBookingInput("10:00"))
	assert.ErrorIs(t, err, ErrBookingSlotUnavailable)
	assert.Empty(t, notifier.calls)
}

func TestBookRechecksBufferedWindowAtInsert(t *testing.T) {
	appt := testAppointment()
	appt.Detail.BufferTimeBefore = 10
	appt.Detail.BufferTimeAfter = 20
	svc, repo, notifier := newBookingService(appt)

	// 09:00 dilimi okunduktan sonra farklı başlangıçlı, çakışan bir kayıt gelir.
	repo.lateArrival = &models.AppointmentBooking{
		BaseModel:     models.BaseModel{ID: 99},
		AppointmentID: appt.ID,
		StartsAt:      time.Date(2024, 6, 3, 10, 5, 0, 0, time.UTC),
		EndsAt:        time.Date(2024, 6, 3, 10, 35, 0, 0, time.UTC),
		Status:        models.BookingConfirmed,
	}

	_, err := svc.Book(context.Background(), testAppointmentKey, validBookingInput("09:00"))
	assert.ErrorIs(t, err, ErrBookingSlotUnavailable)
	assert.Equal(t, time.Date(2024, 6, 3, 8, 50, 0, 0, time.UTC), repo.freeFrom)
	assert.Equal(t, time.Date(2024, 6, 3, 10, 20, 0, 0, time.UTC), repo.freeTo)
	assert.Len(t, repo.bookings, 1)
	assert.Empty(t, notifier.calls)
}

func TestBookUnlistedTime(t *testing.T) {
	svc, _, _ := newBookingService(testAppointment())

	_, err := svc.Book(context.Background(), testAppointmentKey, validBookingInput("09:30"))
	assert.ErrorIs(t, err, ErrBookingSlotUnavailable)
}

func TestBookPastDate(t *testing.T) {
	svc, _, _ := newBookingService(testAppointment())
	in := validBookingInput("10:00")
	in.Date = "2024-05-20"

	_, err := svc.Book(context.Background(), testAppointmentKey, in)
	assert.ErrorIs(t, err, ErrBookingDateUnavailable)
}

func TestBookValidatesGuest(t *testing.T) {
	svc, repo, _ := newBookingService(testAppointment())
	in := validBookingInput("10:00")
	in.Email = "nope"

	_, err := svc.Book(context.Background(), testAppointmentKey, in)
	require.Error(t, err)
	assert.Empty(t, repo.bookings)
}

func TestBookChecksPassword(t *testing.T) {
	appt := testAppointment()
	hash, err := bcrypt.GenerateFromPassword([]byte("1234"), bcrypt.MinCost)
	require.NoError(t, err)
	appt.Detail.PasswordHash = string(hash)
	svc, _, _ := newBookingService(appt)

	in := validBookingInput("10:00")
	_, err = svc.Book(context.Background(), testAppointmentKey, in)
	assert.ErrorIs(t, err, ErrBookingPasswordInvalid)

	in.Password = "1234"
	_, err = svc.Book(context.Background(), testAppointmentKey, in)
	assert.NoError(t, err)
}

func TestUpdateBookingStatus(t *testing.T) {
	svc, repo, notifier := newBookingService(testAppointment())
	booking, err := svc.Book(context.Background(), testAppointmentKey, validBookingInput("10:00"))
	require.NoError(t, err)

	_, err = svc.UpdateBookingStatus(context.Background(), booking.ID, 1, models.BookingStatus("done"))
	assert.ErrorIs(t, err, ErrBookingStatusInvalid)

	_, err = svc.UpdateBookingStatus(context.Background(), booking.ID, 42, models.BookingCancelled)
	assert.ErrorIs(t, err, ErrAppointmentForbidden)

	_, err = svc.UpdateBookingStatus(context.Background(), 999, 1, models.BookingCancelled)
	assert.ErrorIs(t, err, ErrBookingNotFound)

	updated, err := svc.UpdateBookingStatus(context.Background(), booking.ID, 1, models.BookingCancelled)
	require.NoError(t, err)
	assert.Equal(t, models.BookingCancelled, updated.Status)
	assert.Equal(t, models.BookingCancelled, repo.bookings[0].Status)
	require.Len(t, notifier.calls, 2)
	assert.Equal(t, jobs.BookingStatusChanged, notifier.calls[1].event)

	// İptal edilen saat yeniden rezerve edilebilir.
	_, err = svc.Book(context.Background(), testAppointmentKey, validBookingInput("10:00"))
	assert.NoError(t, err)
}

func TestListBookingsRequiresOwner(t *testing.T) {
	svc, _, _ := newBookingService(testAppointment())
	_, err := svc.Book(context.Background(), testAppointmentKey, validBookingInput("09:00"))
	require.NoError(t, err)

	_, err = svc.ListBookings(context.Background(), 3, 42, queryparams.ListParams{})
	assert.ErrorIs(t, err, ErrAppointmentForbidden)

	res, err := svc.ListBookings(context.Background(), 3, 1, queryparams.ListParams{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Meta.TotalItems)
}
