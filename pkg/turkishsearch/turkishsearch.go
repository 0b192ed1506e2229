// Package turkishsearch Türkçe harflere duyarsız LIKE filtreleri üretir.
package turkishsearch

import "strings"

var folds = strings.NewReplacer(
	"İ", "i", "I", "i", "ı", "i",
	"Ş", "s", "ş", "s",
	"Ğ", "g", "ğ", "g",
	"Ü", "u", "ü", "u",
	"Ö", "o", "ö", "o",
	"Ç", "c", "ç", "c",
)

// Normalize arama terimini Türkçe harflerden arındırıp küçük harfe çevirir.
func Normalize(s string) string {
	return strings.ToLower(folds.Replace(strings.TrimSpace(s)))
}

// columnExpr sütunu SQL tarafında aynı şekilde normalize eder.
func columnExpr(column string) string {
	return "LOWER(TRANSLATE(" + column + ", 'İIıŞşĞğÜüÖöÇç', 'iiissgguuoocc'))"
}

// escapeLike LIKE özel karakterlerini kaçırır.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// SQLFilter verilen sütun için gorm Where parçası ve argümanlarını döndürür.
func SQLFilter(column, term string) (string, []any) {
	return columnExpr(column) + " LIKE ?", []any{"%" + escapeLike(Normalize(term)) + "%"}
}
