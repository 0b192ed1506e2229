package formfields

import "formly.link/models"

// Shape bir sorunun çizileceği kontrol biçimidir.
type Shape uint8

const (
	ShapeUnsupported Shape = iota
	ShapeText
	ShapeTextarea
	ShapeEmail
	ShapeSelect
	ShapeRating
	ShapeDate
)

var shapeNames = [...]string{
	ShapeUnsupported: "unsupported",
	ShapeText:        "text",
	ShapeTextarea:    "textarea",
	ShapeEmail:       "email",
	ShapeSelect:      "select",
	ShapeRating:      "rating",
	ShapeDate:        "date",
}

// String şablonlarda kullanılan kısmi görünüm adıdır.
func (s Shape) String() string {
	if int(s) < len(shapeNames) {
		return shapeNames[s]
	}
	return shapeNames[ShapeUnsupported]
}

// controlShapes her alan türünü bir kontrol biçimine eşler.
var controlShapes = [...]Shape{
	models.KindUnknown:        ShapeUnsupported,
	models.KindShortText:      ShapeText,
	models.KindParagraph:      ShapeTextarea,
	models.KindEmail:          ShapeEmail,
	models.KindPhone:          ShapeText,
	models.KindAddress:        ShapeTextarea,
	models.KindNumber:         ShapeText,
	models.KindName:           ShapeText,
	models.KindMultipleChoice: ShapeSelect,
	models.KindDropdown:       ShapeSelect,
	models.KindRating:         ShapeRating,
	models.KindDate:           ShapeDate,
}

// Yeni bir alan türü eklendiğinde bu tablolar güncellenmeden derleme başarısız olur.
var _ [len(controlShapes) - int(models.FieldKindCount)]struct{}
var _ [int(models.FieldKindCount) - len(controlShapes)]struct{}

var inputTypes = [...]string{
	models.KindUnknown:        "",
	models.KindShortText:      "text",
	models.KindParagraph:      "",
	models.KindEmail:          "email",
	models.KindPhone:          "tel",
	models.KindAddress:        "",
	models.KindNumber:         "number",
	models.KindName:           "text",
	models.KindMultipleChoice: "checkbox",
	models.KindDropdown:       "",
	models.KindRating:         "radio",
	models.KindDate:           "date",
}

var _ [len(inputTypes) - int(models.FieldKindCount)]struct{}
var _ [int(models.FieldKindCount) - len(inputTypes)]struct{}
