// Package formresponse bir gönderim boyunca cevapları toplar, zorunlu
// alanları doğrular ve tamamlanan cevabı kalıcı katmana iletir.
package formresponse

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"formly.link/models"
)

var (
	ErrUnknownQuestion        = errors.New("form bu soruyu içermiyor")
	ErrRequiredAnswersMissing = errors.New("zorunlu sorular cevaplanmadı")
	ErrNilPersister           = errors.New("cevap kaydedici tanımlı değil")
)

// MissingAnswersError cevaplanmamış zorunlu soruların anahtarlarını form sırasıyla taşır.
type MissingAnswersError struct {
	Keys []string
}

func (e *MissingAnswersError) Error() string {
	return fmt.Sprintf("%s: %s", ErrRequiredAnswersMissing, strings.Join(e.Keys, ", "))
}

func (e *MissingAnswersError) Is(target error) bool {
	return target == ErrRequiredAnswersMissing
}

// Persister tamamlanmış cevabı saklar.
type Persister interface {
	Persist(ctx context.Context, answers models.Answers) error
}

// PersistFunc sıradan bir fonksiyonu Persister olarak kullanmayı sağlar.
type PersistFunc func(ctx context.Context, answers models.Answers) error

func (f PersistFunc) Persist(ctx context.Context, answers models.Answers) error {
	return f(ctx, answers)
}

// Assembler tek bir gönderimin cevap eşlemesidir. Eşzamanlı kullanım için değildir.
type Assembler struct {
	questions []models.FormQuestion
	index     map[string]int
	answers   models.Answers
}

// New verilen sorular için boş bir Assembler oluşturur.
func New(questions []models.FormQuestion) *Assembler {
	a := &Assembler{
		questions: questions,
		index:     make(map[string]int, len(questions)),
		answers:   make(models.Answers),
	}
	for i, q := range questions {
		a.index[q.Key] = i
	}
	return a
}

// Set bir sorunun cevabını kaydeder. Cevap yoksa kayıt silinir.
// formfields.ChangeFunc imzasına uyar.
func (a *Assembler) Set(key string, value models.AnswerValue) error {
	if _, ok := a.index[key]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownQuestion, key)
	}
	if value.IsAbsent() {
		delete(a.answers, key)
		return nil
	}
	a.answers[key] = value
	return nil
}

// Answer tek bir sorunun mevcut cevabı.
func (a *Assembler) Answer(key string) models.AnswerValue {
	return a.answers[key]
}

// Answers toplanan cevapların kopyası.
func (a *Assembler) Answers() models.Answers {
	return a.answers.Clone()
}

// Missing cevaplanmamış zorunlu soruların anahtarlarını form sırasıyla döndürür.
func (a *Assembler) Missing() []string {
	var missing []string
	for _, q := range a.questions {
		if !q.Required {
			continue
		}
		if v, ok := a.answers[q.Key]; !ok || v.IsBlank() {
			missing = append(missing, q.Key)
		}
	}
	return missing
}

// Validate eksik zorunlu cevap varsa *MissingAnswersError döndürür.
func (a *Assembler) Validate() error {
	if missing := a.Missing(); len(missing) > 0 {
		return &MissingAnswersError{Keys: missing}
	}
	return nil
}

// Submit cevapları doğrular ve Persister'a iletir. Doğrulama başarısızsa
// Persister çağrılmaz. Tekrar gönderim koruması yoktur.
func (a *Assembler) Submit(ctx context.Context, p Persister) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if p == nil {
		return ErrNilPersister
	}
	return p.Persist(ctx, a.Answers())
}
