package models

// FieldType bir form sorusunun veritabanında saklanan tür adıdır.
type FieldType string

const (
	FieldShortText      FieldType = "shortText"
	FieldParagraph      FieldType = "paragraph"
	FieldEmail          FieldType = "email"
	FieldPhone          FieldType = "phone"
	FieldAddress        FieldType = "address"
	FieldNumber         FieldType = "number"
	FieldName           FieldType = "name"
	FieldMultipleChoice FieldType = "multipleChoice"
	FieldDropdown       FieldType = "dropdown"
	FieldRating         FieldType = "rating"
	FieldDate           FieldType = "date"
)

// FieldKind alan türlerinin kapalı sayım karşılığıdır. Dağıtım tabloları bu
// değerlerle indekslenir, yeni bir tür FieldKindCount'tan önce eklenmelidir.
type FieldKind int

const (
	KindUnknown FieldKind = iota
	KindShortText
	KindParagraph
	KindEmail
	KindPhone
	KindAddress
	KindNumber
	KindName
	KindMultipleChoice
	KindDropdown
	KindRating
	KindDate

	FieldKindCount
)

var fieldTypeNames = [...]FieldType{
	KindShortText:      FieldShortText,
	KindParagraph:      FieldParagraph,
	KindEmail:          FieldEmail,
	KindPhone:          FieldPhone,
	KindAddress:        FieldAddress,
	KindNumber:         FieldNumber,
	KindName:           FieldName,
	KindMultipleChoice: FieldMultipleChoice,
	KindDropdown:       FieldDropdown,
	KindRating:         FieldRating,
	KindDate:           FieldDate,
}

// fieldTypeNames her türü kapsamak zorunda.
var _ [len(fieldTypeNames) - int(FieldKindCount)]struct{}
var _ [int(FieldKindCount) - len(fieldTypeNames)]struct{}

var fieldKinds = func() map[FieldType]FieldKind {
	m := make(map[FieldType]FieldKind, len(fieldTypeNames))
	for kind, name := range fieldTypeNames {
		if name != "" {
			m[name] = FieldKind(kind)
		}
	}
	return m
}()

// Kind türün sayım karşılığını döndürür. Tanınmayan türler KindUnknown olur.
func (t FieldType) Kind() FieldKind {
	return fieldKinds[t]
}

// IsKnown tür bu sürümün tanıdığı on bir türden biri mi?
func (t FieldType) IsKnown() bool {
	return t.Kind() != KindUnknown
}

// IsChoice türün sabit bir seçenek listesi gerektirip gerektirmediğini söyler.
func (t FieldType) IsChoice() bool {
	k := t.Kind()
	return k == KindMultipleChoice || k == KindDropdown
}

// Type kind'ın saklanan tür adını döndürür.
func (k FieldKind) Type() FieldType {
	if k <= KindUnknown || k >= FieldKindCount {
		return ""
	}
	return fieldTypeNames[k]
}

// KnownFieldTypes tanınan tüm türleri gösterim sırasıyla döndürür.
func KnownFieldTypes() []FieldType {
	out := make([]FieldType, 0, int(FieldKindCount)-1)
	for kind := KindShortText; kind < FieldKindCount; kind++ {
		out = append(out, kind.Type())
	}
	return out
}
