package services

import (
	"context"
	"sync"
	"time"

	"formly.link/jobs"
	"formly.link/models"
	"formly.link/pkg/queryparams"
	"formly.link/repositories"

	"github.com/hibiken/asynq"
)

var fixedNow = time.Date(2024, 6, 1, 8, 30, 0, 0, time.UTC)

func nowFunc() time.Time { return fixedNow }

type fakeFormReader struct {
	mu       sync.Mutex
	form     *models.Form
	err      error
	keyCalls int
	idCalls  int
}

func (f *fakeFormReader) GetFormByKey(ctx context.Context, key string) (*models.Form, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.keyCalls++
	return f.form, f.err
}

func (f *fakeFormReader) GetFormByID(ctx context.Context, id uint, requestingUserID uint) (*models.Form, error) {
	f.idCalls++
	if f.form == nil || f.form.ID != id {
		return nil, ErrFormNotFound
	}
	if requestingUserID != f.form.CreatorUserID {
		return nil, ErrFormForbidden
	}
	return f.form, nil
}

type fakeResponseRepo struct {
	mu        sync.Mutex
	created   []*models.FormResponse
	byToken   map[string]*models.FormResponse
	count     int64
	createErr error
	// raceWith Create çağrısında başka bir isteğin aynı token ile kazandığını taklit eder.
	raceWith *models.FormResponse
}

func newFakeResponseRepo() *fakeResponseRepo {
	return &fakeResponseRepo{byToken: map[string]*models.FormResponse{}}
}

func (r *fakeResponseRepo) Create(ctx context.Context, resp *models.FormResponse, limit *int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	if limit != nil && r.count >= int64(*limit) {
		return repositories.ErrLimitReached
	}
	if r.raceWith != nil && resp.SubmissionToken != nil {
		r.byToken[*resp.SubmissionToken] = r.raceWith
		return repositories.ErrDuplicate
	}
	if resp.SubmissionToken != nil {
		if _, ok := r.byToken[*resp.SubmissionToken]; ok {
			return repositories.ErrDuplicate
		}
		r.byToken[*resp.SubmissionToken] = resp
	}
	resp.ID = uint(len(r.created) + 1)
	r.created = append(r.created, resp)
	r.count++
	return nil
}

func (r *fakeResponseRepo) FindByToken(ctx context.Context, formID uint, token string) (*models.FormResponse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if resp, ok := r.byToken[token]; ok {
		return resp, nil
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeResponseRepo) FindByFormIDPaginated(ctx context.Context, formID uint, params queryparams.ListParams) ([]models.FormResponse, int64, error) {
	out := make([]models.FormResponse, 0, len(r.created))
	for _, c := range r.created {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (r *fakeResponseRepo) CountByFormID(ctx context.Context, formID uint) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count, nil
}

type notifyCall struct {
	event     jobs.BookingEvent
	formID    uint
	reference string
}

type fakeNotifier struct {
	mu    sync.Mutex
	calls []notifyCall
	err   error
}

func (n *fakeNotifier) NotifyFormResponse(ctx context.Context, form *models.Form, resp *models.FormResponse) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, notifyCall{formID: form.ID})
	return n.err
}

func (n *fakeNotifier) NotifyBooking(ctx context.Context, event jobs.BookingEvent, appointment *models.Appointment, booking *models.AppointmentBooking) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, notifyCall{event: event, reference: booking.Reference})
	return n.err
}

type fakeAppointmentReader struct {
	appointment *models.Appointment
}

func (f *fakeAppointmentReader) GetAppointmentByKey(ctx context.Context, key string) (*models.Appointment, error) {
	if f.appointment == nil || f.appointment.Link.Key != key {
		return nil, ErrAppointmentNotFound
	}
	return f.appointment, nil
}

func (f *fakeAppointmentReader) GetAppointmentByID(ctx context.Context, id uint, requestingUserID uint) (*models.Appointment, error) {
	if f.appointment == nil || f.appointment.ID != id {
		return nil, ErrAppointmentNotFound
	}
	if requestingUserID != f.appointment.ProviderUserID {
		return nil, ErrAppointmentForbidden
	}
	return f.appointment, nil
}

type fakeBookingRepo struct {
	bookings []*models.AppointmentBooking
	// forceDuplicate Create'in eşzamanlı bir kayıtla çakışmasını taklit eder.
	forceDuplicate bool
	// lateArrival slotlar okunduktan sonra, kayıttan hemen önce eklenen rezervasyondur.
	lateArrival *models.AppointmentBooking
	freeFrom    time.Time
	freeTo      time.Time
	dayQueries  int
}

func (r *fakeBookingRepo) Create(ctx context.Context, b *models.AppointmentBooking, freeFrom, freeTo time.Time) error {
	r.freeFrom, r.freeTo = freeFrom, freeTo
	if r.forceDuplicate {
		return repositories.ErrDuplicate
	}
	if r.lateArrival != nil {
		r.bookings = append(r.bookings, r.lateArrival)
		r.lateArrival = nil
	}
	for _, existing := range r.bookings {
		if existing.AppointmentID == b.AppointmentID && existing.Status != models.BookingCancelled &&
			existing.StartsAt.Before(freeTo) && existing.EndsAt.After(freeFrom) {
			return repositories.ErrDuplicate
		}
	}
	b.ID = uint(len(r.bookings) + 1)
	if b.Reference == "" {
		b.Reference = models.NewBookingReference()
	}
	r.bookings = append(r.bookings, b)
	return nil
}

func (r *fakeBookingRepo) FindByID(ctx context.Context, id uint) (*models.AppointmentBooking, error) {
	for _, b := range r.bookings {
		if b.ID == id {
			cp := *b
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeBookingRepo) FindActiveBetween(ctx context.Context, appointmentID uint, from, to time.Time) ([]models.AppointmentBooking, error) {
	r.dayQueries++
	var out []models.AppointmentBooking
	for _, b := range r.bookings {
		if b.AppointmentID == appointmentID && b.Status != models.BookingCancelled && b.StartsAt.Before(to) && b.EndsAt.After(from) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) FindByAppointmentIDPaginated(ctx context.Context, appointmentID uint, params queryparams.ListParams) ([]models.AppointmentBooking, int64, error) {
	var out []models.AppointmentBooking
	for _, b := range r.bookings {
		if b.AppointmentID == appointmentID {
			out = append(out, *b)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeBookingRepo) UpdateStatus(ctx context.Context, id uint, status models.BookingStatus, updatedByUserID uint) error {
	for _, b := range r.bookings {
		if b.ID == id {
			b.Status = status
			return nil
		}
	}
	return repositories.ErrNotFound
}

type fakeEnqueuer struct {
	tasks []*asynq.Task
	err   error
}

func (q *fakeEnqueuer) EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	if q.err != nil {
		return nil, q.err
	}
	q.tasks = append(q.tasks, task)
	return &asynq.TaskInfo{ID: "task-1", Type: task.Type()}, nil
}
