// Package formfields bir form sorusunu, türüne göre çizilecek kontrol
// tanımına çevirir ve kullanıcı düzenlemelerini tipli cevaplara dönüştürür.
// Paket ağ veya depolama erişimi yapmaz.
package formfields

import (
	"fmt"
	"strconv"

	"formly.link/models"
)

// ChangeFunc bir kontrol düzenlendiğinde sorunun anahtarı ve yeni cevapla çağrılır.
type ChangeFunc func(key string, value models.AnswerValue) error

type renderConfig struct {
	preview bool
}

// RenderOption Render davranışını değiştirir.
type RenderOption func(*renderConfig)

// WithPreview kontrolleri salt okunur yapar; düzenlemeler yok sayılır.
func WithPreview() RenderOption {
	return func(c *renderConfig) { c.preview = true }
}

// Control bir sorunun görünüm ve düzenleme tanımıdır.
type Control struct {
	Shape       Shape
	FieldType   models.FieldType
	Key         string
	Label       string
	Description string
	Required    bool
	ReadOnly    bool
	InputType   string
	Options     []string
	Multiple    bool
	MaxRating   int
	Value       models.AnswerValue
	Error       string

	question models.FormQuestion
	onChange ChangeFunc
}

// Render soruyu türüne göre bir kontrole çevirir. Tanınmayan türler hata
// mesajı taşıyan ShapeUnsupported kontrolü üretir.
func Render(q models.FormQuestion, value models.AnswerValue, onChange ChangeFunc, opts ...RenderOption) Control {
	var cfg renderConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	kind := q.Type.Kind()
	c := Control{
		Shape:       controlShapes[kind],
		FieldType:   q.Type,
		Key:         q.Key,
		Label:       q.Title,
		Description: q.Description,
		Required:    q.Required,
		ReadOnly:    cfg.preview,
		InputType:   inputTypes[kind],
		Value:       value,
		question:    q,
		onChange:    onChange,
	}

	switch c.Shape {
	case ShapeUnsupported:
		c.Error = fmt.Sprintf("Desteklenmeyen alan türü: %q", q.Type)
	case ShapeSelect:
		c.Options = q.OptionList()
		c.Multiple = kind == models.KindMultipleChoice
	case ShapeRating:
		c.MaxRating = ratingMax(q)
	}
	return c
}

// RenderAll soruları verilen sırayla çizer.
func RenderAll(questions []models.FormQuestion, answers models.Answers, onChange ChangeFunc, opts ...RenderOption) []Control {
	controls := make([]Control, 0, len(questions))
	for _, q := range questions {
		controls = append(controls, Render(q, answers[q.Key], onChange, opts...))
	}
	return controls
}

// IsUnsupported kontrolün hata yer tutucusu olup olmadığını söyler.
func (c Control) IsUnsupported() bool {
	return c.Shape == ShapeUnsupported
}

// Change bir düzenlemeyi sorunun türüne çevirip ChangeFunc'a iletir.
// Önizleme modunda hiçbir şey yapmaz. Dönüşüm hatasında ChangeFunc çağrılmaz.
func (c *Control) Change(v models.AnswerValue) error {
	if c.ReadOnly {
		return nil
	}
	if c.IsUnsupported() {
		return fmt.Errorf("%w: %q", ErrUnsupportedField, c.FieldType)
	}
	coerced, err := Coerce(c.question, v)
	if err != nil {
		return err
	}
	c.Value = coerced
	if c.onChange == nil {
		return nil
	}
	return c.onChange(c.Key, coerced)
}

// FromInput HTML formundan gelen ham değerleri cevaba çevirir.
// Boş girdi "cevap yok" demektir.
func FromInput(raw []string) models.AnswerValue {
	values := make([]string, 0, len(raw))
	for _, r := range raw {
		if r != "" {
			values = append(values, r)
		}
	}
	switch {
	case len(values) == 0:
		return models.AnswerValue{}
	case len(values) > 1:
		// Tek değerli türlerde liste Coerce tarafından reddedilir.
		return models.ListAnswer(values...)
	default:
		return models.TextAnswer(values[0])
	}
}

// Selected seçenek şu anki cevapta seçili mi?
func (c Control) Selected(option string) bool {
	return contains(c.Value.Strings(), option)
}

// Text metin kutularında gösterilecek değer.
func (c Control) Text() string {
	return c.Value.String()
}

// RatingSteps puanlama kontrolünün 1..MaxRating adımları.
func (c Control) RatingSteps() []int {
	steps := make([]int, c.MaxRating)
	for i := range steps {
		steps[i] = i + 1
	}
	return steps
}

// RatingChecked adım şu anki puana eşit mi?
func (c Control) RatingChecked(step int) bool {
	n, ok := c.Value.Number()
	if ok {
		return int(n) == step
	}
	s, ok := c.Value.Text()
	return ok && s == strconv.Itoa(step)
}
