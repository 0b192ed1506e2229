package configs

import (
	"os"
	"strconv"
	"strings"
	"time"

	"formly.link/configs/configsdatabase"
	"formly.link/configs/configslog"

	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

// LoadEnv varsa .env dosyasını ortam değişkenlerine yükler.
// Dosya bulunamazsa mevcut ortam değişkenleriyle devam edilir.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		configslog.SLog.Debug(".env dosyası bulunamadı, ortam değişkenleri kullanılacak.")
	}
}

// GetEnv ortam değişkenini döndürür, boşsa varsayılanı kullanır.
func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func GetEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		configslog.SLog.Warnf("%s ortam değişkeni sayı değil (%q), varsayılan kullanılıyor: %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}

func GetEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		configslog.SLog.Warnf("%s ortam değişkeni süre değil (%q), varsayılan kullanılıyor: %s", key, value, defaultValue)
		return defaultValue
	}
	return d
}

// GetEnvList virgülle ayrılmış değerleri boşlukları atarak döndürür.
func GetEnvList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// GetDB repository'lerin kullandığı global DB bağlantısını döndürür.
func GetDB() *gorm.DB {
	return configsdatabase.GetDB()
}
