package services

import (
	"fmt"
	"net/url"
	"strings"

	"formly.link/models"
	"formly.link/pkg/validation"

	"github.com/google/uuid"
)

const maxQuestionKeyLength = 64

// ValidateFormDetail temel validasyonları yapar.
func ValidateFormDetail(detail models.FormDetail) error {
	if strings.TrimSpace(detail.Title) == "" {
		return ErrFormTitleRequired
	}
	if detail.SubmissionLimit != nil && *detail.SubmissionLimit <= 0 {
		return fmt.Errorf("%w: gönderim limiti pozitif olmalı", ErrFrmInvalidInput)
	}
	if detail.RedirectURLOnSubmit != "" {
		u, err := url.Parse(detail.RedirectURLOnSubmit)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%w: yönlendirme adresi geçersiz", ErrFrmInvalidInput)
		}
	}
	for _, addr := range strings.Split(detail.NotifyOnSubmitEmail, ",") {
		addr = strings.TrimSpace(addr)
		if addr != "" && !validation.IsEmail(addr) {
			return fmt.Errorf("%w: bildirim adresi geçersiz: %s", ErrFrmInvalidInput, addr)
		}
	}
	return nil
}

// NormalizeQuestions soruları doğrular ve kaydedilecek hale getirir:
// anahtarı olmayanlara anahtar üretir, sırayı listedeki konuma göre ayarlar,
// seçenekleri temizler ve puanlama üst sınırını varsayılanla doldurur.
func NormalizeQuestions(questions []models.FormQuestion) ([]models.FormQuestion, error) {
	out := make([]models.FormQuestion, 0, len(questions))
	seen := make(map[string]struct{}, len(questions))

	for i, q := range questions {
		q.ID = 0
		q.FormID = 0
		q.Position = i
		q.Title = strings.TrimSpace(q.Title)
		q.Key = strings.TrimSpace(q.Key)
		q.VariableName = strings.TrimSpace(q.VariableName)

		if q.Title == "" {
			return nil, fmt.Errorf("%w (soru %d)", ErrQuestionTitleRequired, i+1)
		}
		if !q.Type.IsKnown() {
			return nil, fmt.Errorf("%w: %q", ErrQuestionTypeUnknown, q.Type)
		}

		if q.Key == "" {
			q.Key = newQuestionKey()
		} else if !validQuestionKey(q.Key) {
			return nil, fmt.Errorf("%w: %q", ErrQuestionKeyInvalid, q.Key)
		}
		if _, dup := seen[q.Key]; dup {
			return nil, fmt.Errorf("%w: %q", ErrQuestionKeyDuplicate, q.Key)
		}
		seen[q.Key] = struct{}{}

		if q.Type.IsChoice() {
			options := cleanOptions(q.OptionList())
			if len(options) == 0 {
				return nil, fmt.Errorf("%w: %q", ErrQuestionOptionsRequired, q.Title)
			}
			q.SetOptions(options)
		} else {
			q.SetOptions(nil)
		}

		if q.Type == models.FieldRating {
			limit := models.DefaultMaxRating
			if q.MaxRating != nil {
				limit = *q.MaxRating
			}
			if limit < models.MinMaxRating || limit > models.MaxMaxRating {
				return nil, fmt.Errorf("%w: %d", ErrQuestionRatingRange, limit)
			}
			q.MaxRating = &limit
		} else {
			q.MaxRating = nil
		}

		out = append(out, q)
	}
	return out, nil
}

func newQuestionKey() string {
	return "q_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

func validQuestionKey(key string) bool {
	if len(key) > maxQuestionKeyLength {
		return false
	}
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
		default:
			return false
		}
	}
	return true
}

// cleanOptions boşlukları kırpar, boş ve tekrar eden seçenekleri atar.
func cleanOptions(options []string) []string {
	out := make([]string, 0, len(options))
	seen := make(map[string]struct{}, len(options))
	for _, o := range options {
		o = strings.TrimSpace(o)
		if o == "" {
			continue
		}
		if _, ok := seen[o]; ok {
			continue
		}
		seen[o] = struct{}{}
		out = append(out, o)
	}
	return out
}
