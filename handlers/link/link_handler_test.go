package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"formly.link/models"
	"formly.link/pkg/availability"
	"formly.link/pkg/queryparams"
	"formly.link/pkg/validation"
	"formly.link/repositories"
	"formly.link/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "abcdef01234"

type stubForms struct {
	form *models.Form
	err  error
}

func (s *stubForms) GetFormByKey(ctx context.Context, key string) (*models.Form, error) {
	return s.form, s.err
}

func (s *stubForms) GetFormByID(ctx context.Context, id uint, requestingUserID uint) (*models.Form, error) {
	return s.form, s.err
}

type memResponses struct {
	mu    sync.Mutex
	items []models.FormResponse
}

func (m *memResponses) Create(ctx context.Context, r *models.FormResponse, limit *int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r.ID = uint(len(m.items) + 1)
	m.items = append(m.items, *r)
	return nil
}

func (m *memResponses) FindByToken(ctx context.Context, formID uint, token string) (*models.FormResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		if t := m.items[i].SubmissionToken; t != nil && *t == token && m.items[i].FormID == formID {
			found := m.items[i]
			return &found, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *memResponses) FindByFormIDPaginated(ctx context.Context, formID uint, params queryparams.ListParams) ([]models.FormResponse, int64, error) {
	return m.items, int64(len(m.items)), nil
}

func (m *memResponses) CountByFormID(ctx context.Context, formID uint) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.items)), nil
}

type stubBookings struct {
	view    availability.View
	err     error
	booking *models.AppointmentBooking
}

func (s *stubBookings) GetAvailability(ctx context.Context, key string, date string) (*models.Appointment, availability.View, error) {
	if s.err != nil {
		return nil, availability.View{}, s.err
	}
	return &models.Appointment{Detail: models.AppointmentDetail{Name: "Danışmanlık", DurationMinutes: 30, Timezone: "UTC"}}, s.view, nil
}

func (s *stubBookings) Book(ctx context.Context, key string, in services.BookingInput) (*models.AppointmentBooking, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.booking, nil
}

func (s *stubBookings) ListBookings(ctx context.Context, appointmentID uint, requestingUserID uint, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	return nil, nil
}

func (s *stubBookings) UpdateBookingStatus(ctx context.Context, bookingID uint, requestingUserID uint, status models.BookingStatus) (*models.AppointmentBooking, error) {
	return nil, nil
}

type stubLinks struct {
	link *models.Link
}

func (s stubLinks) CreateLink(ctx context.Context, creatorUserID uint, typeID uint) (*models.Link, error) {
	return nil, nil
}

func (s stubLinks) GetLinkByKey(ctx context.Context, key string) (*models.Link, error) {
	if s.link == nil || s.link.Key != key {
		return nil, services.ErrLinkNotFound
	}
	return s.link, nil
}

func (s stubLinks) UpdateLinkTarget(ctx context.Context, updatingUserID uint, linkID uint, targetID uint) error {
	return nil
}

func (s stubLinks) DeleteLink(ctx context.Context, deletingUserID uint, linkID uint) error {
	return nil
}

func testForm() *models.Form {
	form := &models.Form{
		CreatorUserID: 1,
		IsEnabled:     true,
		IsPublished:   true,
		Link:          models.Link{Key: testKey},
		Detail:        models.FormDetail{Title: "Geri Bildirim", ConfirmationMessage: "Teşekkürler"},
		Questions: []models.FormQuestion{
			{Key: "name", Type: models.FieldShortText, Title: "Adınız", Required: true, Position: 0},
			{Key: "comment", Type: models.FieldParagraph, Title: "Yorum", Position: 1},
		},
	}
	form.ID = 7
	return form
}

func newTestApp(forms *stubForms, repo *memResponses, bookings *stubBookings) *fiber.App {
	now := func() time.Time { return time.Date(2024, 6, 1, 8, 30, 0, 0, time.UTC) }
	responses := services.NewFormResponseServiceWith(forms, repo, services.NewNotificationServiceWith(nil), now)
	h := NewLinkHandlerWith(nil, forms, responses, bookings)

	app := fiber.New()
	app.Post("/:key/responses", h.SubmitResponse)
	app.Get("/:key/slots", h.Slots)
	app.Post("/:key/bookings", h.Book)
	return app
}

// newPageApp gerçek görünümlerle form sayfası ve gönderim uçlarını kurar.
func newPageApp(forms *stubForms, repo *memResponses) *fiber.App {
	now := func() time.Time { return time.Date(2024, 6, 1, 8, 30, 0, 0, time.UTC) }
	responses := services.NewFormResponseServiceWith(forms, repo, services.NewNotificationServiceWith(nil), now)
	links := stubLinks{link: &models.Link{Key: testKey, Type: models.Type{Name: models.TypeNameForm}}}
	h := NewLinkHandlerWith(links, forms, responses, &stubBookings{})

	app := fiber.New(fiber.Config{Views: html.New("../../views", ".html")})
	app.Get("/:key", h.HandleLink)
	app.Post("/:key/responses", h.SubmitResponse)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, target, body string, headers map[string]string) (*http.Response, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var out map[string]any
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp, out
}

func TestSubmitResponse_JSONCreatedThenReplayed(t *testing.T) {
	repo := &memResponses{}
	app := newTestApp(&stubForms{form: testForm()}, repo, &stubBookings{})
	body := `{"answers":{"name":"Ayşe","comment":"Harika"}}`
	headers := map[string]string{idempotencyHeader: "tok-1"}

	resp, out := doJSON(t, app, http.MethodPost, "/"+testKey+"/responses", body, headers)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, false, out["replayed"])
	assert.Equal(t, "Teşekkürler", out["confirmation_message"])
	uid, _ := out["uid"].(string)
	assert.NotEmpty(t, uid)

	resp, out = doJSON(t, app, http.MethodPost, "/"+testKey+"/responses", body, headers)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, true, out["replayed"])
	assert.Equal(t, uid, out["uid"])
	assert.Len(t, repo.items, 1)

	stored := repo.items[0].AnswerMap()
	assert.Equal(t, "Ayşe", stored["name"].String())
}

func TestSubmitResponse_JSONMissingRequired(t *testing.T) {
	repo := &memResponses{}
	app := newTestApp(&stubForms{form: testForm()}, repo, &stubBookings{})

	resp, out := doJSON(t, app, http.MethodPost, "/"+testKey+"/responses", `{"answers":{"comment":"x"}}`, nil)
	require.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	fields, ok := out["fields"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "bu alan zorunludur", fields["name"])
	assert.Empty(t, repo.items)
}

func TestSubmitResponse_JSONUnknownQuestion(t *testing.T) {
	app := newTestApp(&stubForms{form: testForm()}, &memResponses{}, &stubBookings{})

	resp, out := doJSON(t, app, http.MethodPost, "/"+testKey+"/responses", `{"answers":{"name":"A","extra":"B"}}`, nil)
	require.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	fields := out["fields"].(map[string]any)
	assert.Contains(t, fields, "extra")
}

func TestSubmitResponse_FormStates(t *testing.T) {
	tests := []struct {
		name   string
		forms  *stubForms
		status int
	}{
		{"bulunamadı", &stubForms{err: services.ErrFormNotFound}, fiber.StatusNotFound},
		{"kapalı", &stubForms{form: testForm(), err: services.ErrFormClosed}, fiber.StatusGone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(tt.forms, &memResponses{}, &stubBookings{})
			resp, out := doJSON(t, app, http.MethodPost, "/"+testKey+"/responses", `{"answers":{"name":"A"}}`, nil)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.NotEmpty(t, out["error"])
		})
	}
}

func TestSubmitResponse_FormEncodedRedirects(t *testing.T) {
	form := testForm()
	form.Detail.RedirectURLOnSubmit = "https://example.com/tesekkurler"
	repo := &memResponses{}
	app := newTestApp(&stubForms{form: form}, repo, &stubBookings{})

	values := url.Values{}
	values.Set(answerFieldPrefix+"name", "Mehmet")
	values.Set(answerFieldPrefix+"comment", "")
	values.Set(tokenField, "form-token")
	req := httptest.NewRequest(http.MethodPost, "/"+testKey+"/responses", strings.NewReader(values.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "https://example.com/tesekkurler", resp.Header.Get(fiber.HeaderLocation))

	require.Len(t, repo.items, 1)
	answers := repo.items[0].AnswerMap()
	assert.Equal(t, "Mehmet", answers["name"].String())
	_, hasComment := answers["comment"]
	assert.False(t, hasComment)
	require.NotNil(t, repo.items[0].SubmissionToken)
	assert.Equal(t, "form-token", *repo.items[0].SubmissionToken)
}

func TestSubmitResponse_FormEncodedErrorsRestoredOnFillPage(t *testing.T) {
	repo := &memResponses{}
	app := newPageApp(&stubForms{form: testForm()}, repo)

	values := url.Values{}
	values.Set(answerFieldPrefix+"name", "")
	values.Set(answerFieldPrefix+"comment", "Harika bir etkinlikti")
	req := httptest.NewRequest(http.MethodPost, "/"+testKey+"/responses", strings.NewReader(values.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/"+testKey, resp.Header.Get(fiber.HeaderLocation))
	assert.Empty(t, repo.items)

	var sessionCookie *http.Cookie
	for _, ck := range resp.Cookies() {
		if ck.Name == "formly_session" {
			sessionCookie = ck
		}
	}
	require.NotNil(t, sessionCookie)

	page := httptest.NewRequest(http.MethodGet, "/"+testKey, nil)
	page.AddCookie(sessionCookie)
	resp, err = app.Test(page, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	content := string(body)
	assert.Contains(t, content, "Lütfen işaretli alanları kontrol edin.")
	assert.Contains(t, content, "Harika bir etkinlikti")
	assert.Contains(t, content, "bu alan zorunludur")

	page = httptest.NewRequest(http.MethodGet, "/"+testKey, nil)
	page.AddCookie(sessionCookie)
	resp, err = app.Test(page, -1)
	require.NoError(t, err)
	body, err = io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "bu alan zorunludur")
}

func TestSlots(t *testing.T) {
	view := availability.View{
		Date:  "2024-06-03",
		State: "date_selected",
		Slots: []availability.TimeSlot{{Time: "09:00", Available: true}},
	}
	app := newTestApp(&stubForms{}, &memResponses{}, &stubBookings{view: view})

	resp, out := doJSON(t, app, http.MethodGet, "/"+testKey+"/slots?date=2024-06-03", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	got := out["view"].(map[string]any)
	assert.Equal(t, "2024-06-03", got["date"])
	assert.Len(t, got["slots"], 1)

	appt := out["appointment"].(map[string]any)
	assert.Equal(t, "Danışmanlık", appt["name"])
}

func TestSlots_DateUnavailable(t *testing.T) {
	app := newTestApp(&stubForms{}, &memResponses{}, &stubBookings{err: services.ErrBookingDateUnavailable})

	resp, _ := doJSON(t, app, http.MethodGet, "/"+testKey+"/slots?date=2020-01-01", "", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestBook(t *testing.T) {
	starts := time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)
	booking := &models.AppointmentBooking{Reference: "ABCDEF1234", StartsAt: starts, EndsAt: starts.Add(time.Hour), Status: models.BookingConfirmed}
	valid := `{"date":"2024-06-03","time":"09:00","name":"Ali","email":"ali@example.com"}`

	t.Run("oluşturuldu", func(t *testing.T) {
		app := newTestApp(&stubForms{}, &memResponses{}, &stubBookings{booking: booking})
		resp, out := doJSON(t, app, http.MethodPost, "/"+testKey+"/bookings", valid, nil)
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
		assert.Equal(t, "ABCDEF1234", out["reference"])
		assert.Equal(t, "confirmed", out["status"])
	})

	t.Run("doğrulama hatası", func(t *testing.T) {
		app := newTestApp(&stubForms{}, &memResponses{}, &stubBookings{booking: booking})
		resp, out := doJSON(t, app, http.MethodPost, "/"+testKey+"/bookings", `{"date":"2024-06-03","time":"09:00","name":"Ali"}`, nil)
		require.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
		fields := out["fields"].(map[string]any)
		assert.Contains(t, fields, "email")
	})

	t.Run("saat dolu", func(t *testing.T) {
		app := newTestApp(&stubForms{}, &memResponses{}, &stubBookings{err: services.ErrBookingSlotUnavailable})
		resp, out := doJSON(t, app, http.MethodPost, "/"+testKey+"/bookings", valid, nil)
		require.Equal(t, fiber.StatusConflict, resp.StatusCode)
		assert.Equal(t, services.ErrBookingSlotUnavailable.Error(), out["error"])
	})
}

func TestRestoreSubmission(t *testing.T) {
	raw, err := json.Marshal(fiber.Map{
		"answers": map[string][]string{"name": {"Ayşe"}, "colors": {"a", "b"}, "empty": {}},
		"errors":  map[string]string{"name": "bu alan zorunludur"},
	})
	require.NoError(t, err)
	var data map[string]any
	require.NoError(t, json.Unmarshal(raw, &data))

	answers, fieldErrors := restoreSubmission(data)
	assert.Equal(t, "Ayşe", answers["name"].String())
	list, ok := answers["colors"].List()
	assert.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, list)
	assert.NotContains(t, answers, "empty")
	assert.Equal(t, "bu alan zorunludur", fieldErrors["name"])

	answers, fieldErrors = restoreSubmission(nil)
	assert.Empty(t, answers)
	assert.Empty(t, fieldErrors)
}
