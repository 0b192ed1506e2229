package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"formly.link/configs/configslog"
	"formly.link/models"
	"formly.link/pkg/formfields"
	"formly.link/pkg/formresponse"
	"formly.link/pkg/queryparams"
	"formly.link/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

type FormResponseServiceError string

func (e FormResponseServiceError) Error() string { return string(e) }

const (
	ErrResponseInvalid            FormResponseServiceError = "yanıt geçersiz"
	ErrResponsePasswordInvalid    FormResponseServiceError = "form şifresi hatalı"
	ErrFormSubmissionLimitReached FormResponseServiceError = "form gönderim limitine ulaştı"
	ErrSubmissionTokenInvalid     FormResponseServiceError = "gönderim anahtarı geçersiz"
	ErrResponseSaveFailed         FormResponseServiceError = "yanıt kaydedilemedi"
)

const (
	maxSubmissionTokenLength = 100
	msgAnswerRequired        = "bu alan zorunludur"
	msgAnswerUnknown         = "form bu soruyu içermiyor"
)

// AnswerErrors soru anahtarına göre cevap hatalarıdır.
type AnswerErrors map[string]string

func (e AnswerErrors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return fmt.Sprintf("%s: %s", ErrResponseInvalid, strings.Join(keys, ", "))
}

func (e AnswerErrors) Is(target error) bool {
	return target == ErrResponseInvalid
}

// SubmissionInput bir public gönderimin girdileri.
// Token doluysa aynı token ile yapılan tekrar gönderimler ilk yanıtı döndürür.
type SubmissionInput struct {
	Answers   models.Answers
	Password  string
	Token     string
	IP        string
	UserAgent string
}

type SubmissionResult struct {
	Form     *models.Form
	Response *models.FormResponse
	Replayed bool
}

type IFormResponseService interface {
	SubmitResponse(ctx context.Context, key string, in SubmissionInput) (*SubmissionResult, error)
	ListResponses(ctx context.Context, formID uint, requestingUserID uint, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	// WithForms formları verilen kaynaktan okuyan bir kopya döndürür.
	WithForms(forms FormReader) IFormResponseService
}

type FormResponseService struct {
	forms  FormReader
	repo   repositories.IFormResponseRepository
	notify INotificationService
	now    func() time.Time
}

func NewFormResponseService(forms FormReader) IFormResponseService {
	return NewFormResponseServiceWith(forms, repositories.NewFormResponseRepository(), NewNotificationService(), time.Now)
}

func NewFormResponseServiceWith(forms FormReader, repo repositories.IFormResponseRepository, notify INotificationService, now func() time.Time) *FormResponseService {
	return &FormResponseService{forms: forms, repo: repo, notify: notify, now: now}
}

func (s *FormResponseService) WithForms(forms FormReader) IFormResponseService {
	cp := *s
	cp.forms = forms
	return &cp
}

// SubmitResponse cevapları soruların türüne göre dönüştürür, zorunlu
// alanları doğrular ve yanıtı kaydeder. Cevap hataları AnswerErrors olarak döner.
func (s *FormResponseService) SubmitResponse(ctx context.Context, key string, in SubmissionInput) (*SubmissionResult, error) {
	form, err := s.forms.GetFormByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	if !checkPassword(form.Detail.PasswordHash, in.Password) {
		return nil, ErrResponsePasswordInvalid
	}

	token := strings.TrimSpace(in.Token)
	if len(token) > maxSubmissionTokenLength {
		return nil, ErrSubmissionTokenInvalid
	}
	if token != "" {
		if prev, err := s.repo.FindByToken(ctx, form.ID, token); err == nil {
			return &SubmissionResult{Form: form, Response: prev, Replayed: true}, nil
		} else if !errors.Is(err, repositories.ErrNotFound) {
			return nil, err
		}
	}

	if limit := form.Detail.SubmissionLimit; limit != nil {
		count, err := s.repo.CountByFormID(ctx, form.ID)
		if err != nil {
			return nil, err
		}
		if count >= int64(*limit) {
			return nil, ErrFormSubmissionLimitReached
		}
	}

	asm, answerErrs := s.collect(form, in.Answers)
	if len(answerErrs) > 0 {
		return nil, answerErrs
	}

	var saved *models.FormResponse
	err = asm.Submit(ctx, formresponse.PersistFunc(func(ctx context.Context, answers models.Answers) error {
		resp := &models.FormResponse{
			FormID:       form.ID,
			UID:          uuid.NewString(),
			Answers:      datatypes.NewJSONType(answers),
			SubmittedAt:  s.now().UTC(),
			RespondentIP: in.IP,
			UserAgent:    truncate(in.UserAgent, 500),
		}
		if token != "" {
			resp.SubmissionToken = &token
		}
		if err := s.repo.Create(ctx, resp, form.Detail.SubmissionLimit); err != nil {
			return err
		}
		saved = resp
		return nil
	}))
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicate) && token != "" {
			prev, findErr := s.repo.FindByToken(ctx, form.ID, token)
			if findErr == nil {
				return &SubmissionResult{Form: form, Response: prev, Replayed: true}, nil
			}
		}
		if errors.Is(err, repositories.ErrLimitReached) {
			return nil, ErrFormSubmissionLimitReached
		}
		var missing *formresponse.MissingAnswersError
		if errors.As(err, &missing) {
			return nil, requiredErrors(missing.Keys)
		}
		configslog.Log.Error("Form yanıtı kaydedilemedi", zap.Uint("form_id", form.ID), zap.Error(err))
		return nil, ErrResponseSaveFailed
	}

	configslog.SLog.Infof("Form yanıtı kaydedildi: form %d, yanıt %s", form.ID, saved.UID)
	if err := s.notify.NotifyFormResponse(ctx, form, saved); err != nil && !errors.Is(err, ErrQueueUnavailable) {
		configslog.Log.Warn("Form yanıt bildirimi kuyruğa alınamadı", zap.String("uid", saved.UID), zap.Error(err))
	}
	return &SubmissionResult{Form: form, Response: saved}, nil
}

// collect her cevabı kendi sorusunun kontrolünden geçirip Assembler'a yazar.
// Desteklenmeyen türdeki sorular gönderime katılmaz.
func (s *FormResponseService) collect(form *models.Form, answers models.Answers) (*formresponse.Assembler, AnswerErrors) {
	supported := make([]models.FormQuestion, 0, len(form.Questions))
	for _, q := range form.Questions {
		if q.Type.IsKnown() {
			supported = append(supported, q)
		}
	}
	asm := formresponse.New(supported)
	errs := AnswerErrors{}

	for key, value := range answers {
		q, ok := form.Question(key)
		if !ok {
			errs[key] = msgAnswerUnknown
			continue
		}
		if !q.Type.IsKnown() {
			configslog.SLog.Debugf("desteklenmeyen soru türü atlandı: %s (%s)", key, q.Type)
			continue
		}
		control := formfields.Render(*q, models.AnswerValue{}, asm.Set)
		if err := control.Change(value); err != nil {
			errs[key] = err.Error()
		}
	}

	for _, key := range asm.Missing() {
		if _, ok := errs[key]; !ok {
			errs[key] = msgAnswerRequired
		}
	}
	return asm, errs
}

func requiredErrors(keys []string) AnswerErrors {
	errs := make(AnswerErrors, len(keys))
	for _, k := range keys {
		errs[k] = msgAnswerRequired
	}
	return errs
}

// truncate s'yi en fazla n karaktere kısaltır.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

// ListResponses form sahibine yanıtları en yeniden eskiye sayfalı döndürür.
func (s *FormResponseService) ListResponses(ctx context.Context, formID uint, requestingUserID uint, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	if _, err := s.forms.GetFormByID(ctx, formID, requestingUserID); err != nil {
		return nil, err
	}
	if params.SortBy == "" {
		params.SortBy = "submitted_at"
	}
	params.Validate()

	responses, total, err := s.repo.FindByFormIDPaginated(ctx, formID, params)
	if err != nil {
		return nil, err
	}
	return queryparams.NewPaginatedResult(responses, total, params), nil
}

var _ IFormResponseService = (*FormResponseService)(nil)
