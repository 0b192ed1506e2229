package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// AnswerKind bir cevabın hangi biçimde tutulduğunu belirtir.
type AnswerKind uint8

const (
	AnswerAbsent AnswerKind = iota
	AnswerText
	AnswerList
	AnswerNumber
)

func (k AnswerKind) String() string {
	switch k {
	case AnswerText:
		return "text"
	case AnswerList:
		return "list"
	case AnswerNumber:
		return "number"
	default:
		return "absent"
	}
}

// ErrInvalidAnswerJSON JSON cevap string, string dizisi, sayı veya null değilse döner.
var ErrInvalidAnswerJSON = errors.New("cevap string, string listesi, sayı veya null olmalıdır")

// AnswerValue bir soruya verilen cevaptır: yok, metin, metin listesi veya sayı.
// Sıfır değeri "cevap yok" anlamına gelir.
type AnswerValue struct {
	kind   AnswerKind
	text   string
	list   []string
	number float64
}

func TextAnswer(s string) AnswerValue {
	return AnswerValue{kind: AnswerText, text: s}
}

func ListAnswer(items ...string) AnswerValue {
	cp := make([]string, len(items))
	copy(cp, items)
	return AnswerValue{kind: AnswerList, list: cp}
}

func NumberAnswer(n float64) AnswerValue {
	return AnswerValue{kind: AnswerNumber, number: n}
}

func (v AnswerValue) Kind() AnswerKind { return v.kind }

func (v AnswerValue) IsAbsent() bool { return v.kind == AnswerAbsent }

// Text metin cevabını döndürür; ikinci değer cevabın metin olup olmadığıdır.
func (v AnswerValue) Text() (string, bool) {
	return v.text, v.kind == AnswerText
}

// List liste cevabının kopyasını döndürür.
func (v AnswerValue) List() ([]string, bool) {
	if v.kind != AnswerList {
		return nil, false
	}
	cp := make([]string, len(v.list))
	copy(cp, v.list)
	return cp, true
}

func (v AnswerValue) Number() (float64, bool) {
	return v.number, v.kind == AnswerNumber
}

// Strings cevabı seçim kontrolleri için metin listesi olarak döndürür.
func (v AnswerValue) Strings() []string {
	switch v.kind {
	case AnswerText:
		if v.text == "" {
			return nil
		}
		return []string{v.text}
	case AnswerList:
		out, _ := v.List()
		return out
	case AnswerNumber:
		return []string{v.String()}
	default:
		return nil
	}
}

// IsBlank zorunlu alan kontrolü içindir: cevap yoksa, metin boşluklardan
// ibaretse ya da listede boş olmayan eleman yoksa true döner. Sayılar hiçbir zaman boş değildir.
func (v AnswerValue) IsBlank() bool {
	switch v.kind {
	case AnswerText:
		return strings.TrimSpace(v.text) == ""
	case AnswerList:
		for _, item := range v.list {
			if strings.TrimSpace(item) != "" {
				return false
			}
		}
		return true
	case AnswerNumber:
		return false
	default:
		return true
	}
}

// String cevabın okunabilir hali (e-posta bildirimleri ve listeleme için).
func (v AnswerValue) String() string {
	switch v.kind {
	case AnswerText:
		return v.text
	case AnswerList:
		return strings.Join(v.list, ", ")
	case AnswerNumber:
		return strconv.FormatFloat(v.number, 'f', -1, 64)
	default:
		return ""
	}
}

// Equal iki cevabı değer olarak karşılaştırır.
func (v AnswerValue) Equal(other AnswerValue) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case AnswerText:
		return v.text == other.text
	case AnswerNumber:
		return v.number == other.number
	case AnswerList:
		if len(v.list) != len(other.list) {
			return false
		}
		for i := range v.list {
			if v.list[i] != other.list[i] {
				return false
			}
		}
		return true
	default:
		return true
	}
}

func (v AnswerValue) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case AnswerText:
		return json.Marshal(v.text)
	case AnswerList:
		if v.list == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.list)
	case AnswerNumber:
		return json.Marshal(v.number)
	default:
		return []byte("null"), nil
	}
}

func (v *AnswerValue) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*v = AnswerValue{}
		return nil
	}
	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*v = TextAnswer(s)
	case '[':
		var items []string
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidAnswerJSON, err)
		}
		*v = ListAnswer(items...)
	default:
		var n float64
		if err := json.Unmarshal(trimmed, &n); err != nil {
			return ErrInvalidAnswerJSON
		}
		*v = NumberAnswer(n)
	}
	return nil
}

// Answers soru anahtarı -> cevap eşlemesidir. Bir gönderimin içeriğidir.
type Answers map[string]AnswerValue

// Clone eşlemenin kopyasını döndürür.
func (a Answers) Clone() Answers {
	out := make(Answers, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}
