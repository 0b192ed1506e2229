package validation

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	validate *validator.Validate
)

// Get paylaşılan validator örneğini döndürür.
func Get() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Struct istek gövdelerini struct etiketlerine göre doğrular.
func Struct(s any) error {
	return Get().Struct(s)
}

// IsEmail tek bir değerin e-posta biçiminde olup olmadığını kontrol eder.
func IsEmail(s string) bool {
	return Get().Var(s, "required,email") == nil
}

// Messages doğrulama hatalarını alan adı -> mesaj eşlemesine çevirir.
func Messages(err error) map[string]string {
	out := map[string]string{}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		if err != nil {
			out["_"] = err.Error()
		}
		return out
	}
	for _, fe := range verrs {
		out[strings.ToLower(fe.Field())] = message(fe)
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "bu alan zorunludur"
	case "email":
		return "geçerli bir e-posta adresi giriniz"
	case "min":
		return fmt.Sprintf("en az %s olmalıdır", fe.Param())
	case "max":
		return fmt.Sprintf("en fazla %s olmalıdır", fe.Param())
	case "oneof":
		return fmt.Sprintf("şunlardan biri olmalıdır: %s", fe.Param())
	case "datetime":
		return fmt.Sprintf("tarih biçimi %s olmalıdır", fe.Param())
	default:
		return "geçersiz değer"
	}
}
