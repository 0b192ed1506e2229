package models

import (
	"gorm.io/datatypes"
)

const (
	DefaultMaxRating = 5
	MinMaxRating     = 1
	MaxMaxRating     = 10
)

// FormQuestion formdaki tek bir tipli soru tanımıdır.
// Key, cevap eşlemesinde kullanılan ve form içinde benzersiz olan soru kimliğidir.
type FormQuestion struct {
	BaseModel
	FormID       uint                         `gorm:"not null;uniqueIndex:idx_form_question_key,priority:1;index" json:"form_id"`
	Key          string                       `gorm:"type:varchar(64);not null;uniqueIndex:idx_form_question_key,priority:2" json:"key"`
	Position     int                          `gorm:"type:integer;not null;default:0" json:"position"`
	Type         FieldType                    `gorm:"type:varchar(32);not null" json:"type"`
	Title        string                       `gorm:"type:varchar(500);not null" json:"title"`
	Description  string                       `gorm:"type:text" json:"description,omitempty"`
	Required     bool                         `gorm:"default:false" json:"required"`
	Options      datatypes.JSONType[[]string] `json:"options,omitempty"`
	MaxRating    *int                         `gorm:"type:integer" json:"max_rating,omitempty"`
	VariableName string                       `gorm:"type:varchar(100)" json:"variable_name,omitempty"`
}

// OptionList seçenekleri düz dilim olarak döndürür.
func (q FormQuestion) OptionList() []string {
	return q.Options.Data()
}

// SetOptions seçenekleri ayarlar.
func (q *FormQuestion) SetOptions(options []string) {
	q.Options = datatypes.NewJSONType(options)
}

// RatingMax puanlama sorusunun üst sınırını döndürür (tanımsızsa 5).
func (q FormQuestion) RatingMax() int {
	if q.MaxRating == nil || *q.MaxRating == 0 {
		return DefaultMaxRating
	}
	return *q.MaxRating
}
