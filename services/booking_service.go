package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"formly.link/configs/configslog"
	"formly.link/jobs"
	"formly.link/models"
	"formly.link/pkg/availability"
	"formly.link/pkg/queryparams"
	"formly.link/pkg/validation"
	"formly.link/repositories"

	"go.uber.org/zap"
)

type BookingServiceError string

func (e BookingServiceError) Error() string { return string(e) }

const (
	ErrBookingNotFound           BookingServiceError = "rezervasyon bulunamadı"
	ErrBookingInvalidInput       BookingServiceError = "rezervasyon bilgileri geçersiz"
	ErrBookingPasswordInvalid    BookingServiceError = "randevu şifresi hatalı"
	ErrBookingDateUnavailable    BookingServiceError = "bu tarih için rezervasyon yapılamaz"
	ErrBookingSlotUnavailable    BookingServiceError = "seçilen saat artık uygun değil"
	ErrBookingScheduleInvalid    BookingServiceError = "randevu takvimi hatalı yapılandırılmış"
	ErrBookingStatusInvalid      BookingServiceError = "geçersiz rezervasyon durumu"
	ErrBookingCreationFailed     BookingServiceError = "rezervasyon oluşturulamadı"
	ErrBookingStatusUpdateFailed BookingServiceError = "rezervasyon durumu güncellenemedi"
)

// BookingInput public rezervasyon formunun alanları.
type BookingInput struct {
	Date     string `json:"date" form:"date" validate:"required,datetime=2006-01-02"`
	Time     string `json:"time" form:"time" validate:"required,datetime=15:04"`
	Name     string `json:"name" form:"name" validate:"required,max=200"`
	Email    string `json:"email" form:"email" validate:"required,email,max=255"`
	Phone    string `json:"phone" form:"phone" validate:"max=50"`
	Notes    string `json:"notes" form:"notes" validate:"max=2000"`
	Password string `json:"password" form:"password"`
}

// AppointmentReader rezervasyon işlemlerinin ihtiyaç duyduğu hizmet okumaları.
type AppointmentReader interface {
	GetAppointmentByKey(ctx context.Context, key string) (*models.Appointment, error)
	GetAppointmentByID(ctx context.Context, id uint, requestingUserID uint) (*models.Appointment, error)
}

type IBookingService interface {
	GetAvailability(ctx context.Context, key string, date string) (*models.Appointment, availability.View, error)
	Book(ctx context.Context, key string, in BookingInput) (*models.AppointmentBooking, error)
	ListBookings(ctx context.Context, appointmentID uint, requestingUserID uint, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	UpdateBookingStatus(ctx context.Context, bookingID uint, requestingUserID uint, status models.BookingStatus) (*models.AppointmentBooking, error)
}

type BookingService struct {
	appointments AppointmentReader
	repo         repositories.IAppointmentBookingRepository
	notify       INotificationService
	now          func() time.Time
}

func NewBookingService(appointments AppointmentReader) IBookingService {
	return NewBookingServiceWith(appointments, repositories.NewAppointmentBookingRepository(), NewNotificationService(), time.Now)
}

func NewBookingServiceWith(appointments AppointmentReader, repo repositories.IAppointmentBookingRepository, notify INotificationService, now func() time.Time) *BookingService {
	return &BookingService{appointments: appointments, repo: repo, notify: notify, now: now}
}

// slotSource günün dolu aralıklarını veritabanından okuyup takvime uygular.
func (s *BookingService) slotSource(appointmentID uint, schedule availability.Schedule) availability.SlotSource {
	return availability.SlotSourceFunc(func(ctx context.Context, day time.Time) ([]availability.TimeSlot, error) {
		if !schedule.Bookable(day, s.now()) {
			return []availability.TimeSlot{}, nil
		}
		margin := time.Duration(schedule.BufferBefore+schedule.BufferAfter) * time.Minute
		from := day.Add(-margin)
		to := day.AddDate(0, 0, 1).Add(margin)

		bookings, err := s.repo.FindActiveBetween(ctx, appointmentID, from, to)
		if err != nil {
			return nil, err
		}
		busy := make([]availability.Interval, 0, len(bookings))
		for _, b := range bookings {
			busy = append(busy, availability.Interval{Start: b.StartsAt, End: b.EndsAt})
		}
		return schedule.Slots(day, busy, s.now()), nil
	})
}

// picker hizmetin takvimiyle verilen günden (boşsa bugünden) başlayan bir seçici kurar.
func (s *BookingService) picker(ctx context.Context, appointment *models.Appointment, date string, onSelect availability.SelectFunc) (*availability.Picker, availability.Schedule, error) {
	schedule, err := availability.FromDetail(appointment.Detail)
	if err != nil {
		configslog.Log.Error("Randevu takvimi okunamadı", zap.Uint("appointment_id", appointment.ID), zap.Error(err))
		return nil, schedule, ErrBookingScheduleInvalid
	}

	opts := []availability.Option{
		availability.WithLocation(schedule.Location),
		availability.WithNow(s.now),
		availability.WithDisabledDates(func(day time.Time) bool { return !schedule.Bookable(day, s.now()) }),
	}
	if date != "" {
		day, err := time.ParseInLocation(availability.DateLayout, date, schedule.Location)
		if err != nil {
			return nil, schedule, ErrBookingInvalidInput
		}
		opts = append(opts, availability.WithStartDate(day))
	}

	picker, err := availability.NewPicker(ctx, s.slotSource(appointment.ID, schedule), onSelect, opts...)
	if err != nil {
		if errors.Is(err, availability.ErrDateDisabled) {
			return nil, schedule, ErrBookingDateUnavailable
		}
		return nil, schedule, err
	}
	return picker, schedule, nil
}

// GetAvailability verilen günün (boşsa bugünün) zaman dilimlerini döndürür.
func (s *BookingService) GetAvailability(ctx context.Context, key string, date string) (*models.Appointment, availability.View, error) {
	appointment, err := s.appointments.GetAppointmentByKey(ctx, key)
	if err != nil {
		return nil, availability.View{}, err
	}
	picker, _, err := s.picker(ctx, appointment, date, nil)
	if err != nil {
		return appointment, availability.View{}, err
	}
	return appointment, picker.View(), nil
}

// Book seçilen gün ve saat için rezervasyon oluşturur. Kayıt, seçicinin saat
// seçimi sırasında yapılır; tamponlu aralık kayıt anında yeniden kontrol
// edilir ve çakışan eşzamanlı isteklerden biri ErrBookingSlotUnavailable alır.
func (s *BookingService) Book(ctx context.Context, key string, in BookingInput) (*models.AppointmentBooking, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	appointment, err := s.appointments.GetAppointmentByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	if !checkPassword(appointment.Detail.PasswordHash, in.Password) {
		return nil, ErrBookingPasswordInvalid
	}

	var booking *models.AppointmentBooking
	var schedule availability.Schedule
	onSelect := func(ctx context.Context, at time.Time) error {
		status := models.BookingConfirmed
		if appointment.Detail.RequiresApproval {
			status = models.BookingPending
		}
		b := &models.AppointmentBooking{
			AppointmentID: appointment.ID,
			StartsAt:      at.UTC(),
			EndsAt:        schedule.SlotEnd(at).UTC(),
			GuestName:     in.Name,
			GuestEmail:    in.Email,
			GuestPhone:    strings.TrimSpace(in.Phone),
			Notes:         strings.TrimSpace(in.Notes),
			Status:        status,
		}
		freeFrom := b.StartsAt.Add(-time.Duration(schedule.BufferBefore) * time.Minute)
		freeTo := b.EndsAt.Add(time.Duration(schedule.BufferAfter) * time.Minute)
		if err := s.repo.Create(ctx, b, freeFrom, freeTo); err != nil {
			if errors.Is(err, repositories.ErrDuplicate) {
				return ErrBookingSlotUnavailable
			}
			configslog.Log.Error("Rezervasyon kaydedilemedi", zap.Uint("appointment_id", appointment.ID), zap.Error(err))
			return ErrBookingCreationFailed
		}
		booking = b
		return nil
	}

	picker, sched, err := s.picker(ctx, appointment, in.Date, onSelect)
	if err != nil {
		return nil, err
	}
	schedule = sched

	if err := picker.SelectTime(ctx, in.Time); err != nil {
		if errors.Is(err, availability.ErrSlotUnavailable) {
			return nil, ErrBookingSlotUnavailable
		}
		return nil, err
	}

	configslog.SLog.Infof("Rezervasyon oluşturuldu: %s, hizmet %d, %s", booking.Reference, appointment.ID, booking.StartsAt.Format(time.RFC3339))
	if err := s.notify.NotifyBooking(ctx, jobs.BookingCreated, appointment, booking); err != nil && !errors.Is(err, ErrQueueUnavailable) {
		configslog.Log.Warn("Rezervasyon bildirimi kuyruğa alınamadı", zap.String("reference", booking.Reference), zap.Error(err))
	}
	return booking, nil
}

// ListBookings hizmet sahibine rezervasyonları sayfalı döndürür.
func (s *BookingService) ListBookings(ctx context.Context, appointmentID uint, requestingUserID uint, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	if _, err := s.appointments.GetAppointmentByID(ctx, appointmentID, requestingUserID); err != nil {
		return nil, err
	}
	if params.SortBy == "" {
		params.SortBy = "starts_at"
	}
	params.Validate()

	bookings, total, err := s.repo.FindByAppointmentIDPaginated(ctx, appointmentID, params)
	if err != nil {
		return nil, err
	}
	return queryparams.NewPaginatedResult(bookings, total, params), nil
}

// UpdateBookingStatus rezervasyonu onaylar veya iptal eder ve misafire bildirir.
func (s *BookingService) UpdateBookingStatus(ctx context.Context, bookingID uint, requestingUserID uint, status models.BookingStatus) (*models.AppointmentBooking, error) {
	if !status.IsValid() {
		return nil, ErrBookingStatusInvalid
	}
	booking, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	appointment, err := s.appointments.GetAppointmentByID(ctx, booking.AppointmentID, requestingUserID)
	if err != nil {
		return nil, err
	}
	if booking.Status == status {
		return booking, nil
	}

	if err := s.repo.UpdateStatus(ctx, booking.ID, status, requestingUserID); err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return nil, ErrBookingNotFound
		case errors.Is(err, repositories.ErrDuplicate):
			return nil, ErrBookingSlotUnavailable
		}
		configslog.Log.Error("Rezervasyon durumu güncellenemedi", zap.Uint("booking_id", booking.ID), zap.Error(err))
		return nil, ErrBookingStatusUpdateFailed
	}
	booking.Status = status

	if err := s.notify.NotifyBooking(ctx, jobs.BookingStatusChanged, appointment, booking); err != nil && !errors.Is(err, ErrQueueUnavailable) {
		configslog.Log.Warn("Rezervasyon durum bildirimi kuyruğa alınamadı", zap.String("reference", booking.Reference), zap.Error(err))
	}
	return booking, nil
}

var _ IBookingService = (*BookingService)(nil)
