package formfields

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"formly.link/models"
	"formly.link/pkg/validation"
)

// DateLayout tarih cevaplarının saklandığı ISO biçimi.
const DateLayout = "2006-01-02"

// Coerce bir cevabı sorunun türüne uygun AnswerValue'ya çevirir.
// Boş metin ve cevap yok her türde kabul edilir; zorunluluk kontrolü
// formresponse paketinin işidir.
func Coerce(q models.FormQuestion, v models.AnswerValue) (models.AnswerValue, error) {
	if v.IsAbsent() {
		return v, nil
	}
	switch q.Type.Kind() {
	case models.KindShortText, models.KindParagraph, models.KindPhone, models.KindAddress, models.KindName:
		return coerceText(v)
	case models.KindEmail:
		return coerceEmail(v)
	case models.KindNumber:
		return coerceNumber(v)
	case models.KindMultipleChoice:
		return coerceChoice(q, v, true)
	case models.KindDropdown:
		return coerceChoice(q, v, false)
	case models.KindRating:
		return coerceRating(q, v)
	case models.KindDate:
		return coerceDate(v)
	default:
		return models.AnswerValue{}, fmt.Errorf("%w: %q", ErrUnsupportedField, q.Type)
	}
}

func coerceText(v models.AnswerValue) (models.AnswerValue, error) {
	if _, ok := v.Text(); !ok {
		return models.AnswerValue{}, fmt.Errorf("%w: metin bekleniyordu, %s geldi", ErrTypeMismatch, v.Kind())
	}
	return v, nil
}

func coerceEmail(v models.AnswerValue) (models.AnswerValue, error) {
	s, ok := v.Text()
	if !ok {
		return models.AnswerValue{}, fmt.Errorf("%w: metin bekleniyordu, %s geldi", ErrTypeMismatch, v.Kind())
	}
	s = strings.TrimSpace(s)
	if s != "" && !validation.IsEmail(s) {
		return models.AnswerValue{}, ErrInvalidEmail
	}
	return models.TextAnswer(s), nil
}

func coerceNumber(v models.AnswerValue) (models.AnswerValue, error) {
	if n, ok := v.Number(); ok {
		return models.TextAnswer(strconv.FormatFloat(n, 'f', -1, 64)), nil
	}
	s, ok := v.Text()
	if !ok {
		return models.AnswerValue{}, fmt.Errorf("%w: sayı bekleniyordu, %s geldi", ErrTypeMismatch, v.Kind())
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return models.TextAnswer(""), nil
	}
	if _, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64); err != nil {
		return models.AnswerValue{}, ErrInvalidNumber
	}
	return models.TextAnswer(s), nil
}

func coerceChoice(q models.FormQuestion, v models.AnswerValue, multiple bool) (models.AnswerValue, error) {
	var picked []string
	switch v.Kind() {
	case models.AnswerText:
		s, _ := v.Text()
		if s == "" {
			return v, nil
		}
		picked = []string{s}
	case models.AnswerList:
		picked, _ = v.List()
	default:
		return models.AnswerValue{}, fmt.Errorf("%w: seçim bekleniyordu, %s geldi", ErrTypeMismatch, v.Kind())
	}

	options := q.OptionList()
	seen := make(map[string]struct{}, len(picked))
	out := make([]string, 0, len(picked))
	for _, p := range picked {
		if p == "" {
			continue
		}
		if _, dup := seen[p]; dup {
			continue
		}
		if !contains(options, p) {
			return models.AnswerValue{}, fmt.Errorf("%w: %q", ErrNotAnOption, p)
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}

	if !multiple {
		if len(out) > 1 {
			return models.AnswerValue{}, ErrTooManyOptions
		}
		if len(out) == 0 {
			return models.TextAnswer(""), nil
		}
		return models.TextAnswer(out[0]), nil
	}
	if v.Kind() == models.AnswerText {
		return v, nil
	}
	return models.ListAnswer(out...), nil
}

func coerceRating(q models.FormQuestion, v models.AnswerValue) (models.AnswerValue, error) {
	var n float64
	switch v.Kind() {
	case models.AnswerNumber:
		n, _ = v.Number()
	case models.AnswerText:
		s, _ := v.Text()
		s = strings.TrimSpace(s)
		if s == "" {
			return models.AnswerValue{}, nil
		}
		i, err := strconv.Atoi(s)
		if err != nil {
			return models.AnswerValue{}, ErrRatingOutOfRange
		}
		n = float64(i)
	default:
		return models.AnswerValue{}, fmt.Errorf("%w: puan bekleniyordu, %s geldi", ErrTypeMismatch, v.Kind())
	}
	limit := ratingMax(q)
	if n != math.Trunc(n) || n < 1 || n > float64(limit) {
		return models.AnswerValue{}, fmt.Errorf("%w: 1-%d", ErrRatingOutOfRange, limit)
	}
	return models.NumberAnswer(n), nil
}

func coerceDate(v models.AnswerValue) (models.AnswerValue, error) {
	s, ok := v.Text()
	if !ok {
		return models.AnswerValue{}, fmt.Errorf("%w: tarih bekleniyordu, %s geldi", ErrTypeMismatch, v.Kind())
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return models.TextAnswer(""), nil
	}
	if _, err := time.Parse(DateLayout, s); err != nil {
		return models.AnswerValue{}, ErrInvalidDate
	}
	return models.TextAnswer(s), nil
}

// ratingMax tanımsız veya aralık dışı değerlerde varsayılanı kullanır.
func ratingMax(q models.FormQuestion) int {
	limit := q.RatingMax()
	if limit < models.MinMaxRating || limit > models.MaxMaxRating {
		return models.DefaultMaxRating
	}
	return limit
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
