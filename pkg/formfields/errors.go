package formfields

// FieldError alan düzeyinde girdi hatalarıdır.
type FieldError string

func (e FieldError) Error() string { return string(e) }

const (
	ErrUnsupportedField FieldError = "desteklenmeyen alan türü"
	ErrTypeMismatch     FieldError = "cevap türü soru türüyle uyuşmuyor"
	ErrNotAnOption      FieldError = "seçim, sorunun seçenekleri arasında değil"
	ErrTooManyOptions   FieldError = "bu soru için yalnızca bir seçim yapılabilir"
	ErrInvalidEmail     FieldError = "geçerli bir e-posta adresi giriniz"
	ErrInvalidNumber    FieldError = "geçerli bir sayı giriniz"
	ErrRatingOutOfRange FieldError = "puan izin verilen aralıkta değil"
	ErrInvalidDate      FieldError = "tarih YYYY-AA-GG biçiminde olmalıdır"
)
