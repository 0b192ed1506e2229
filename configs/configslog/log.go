package configslog

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Log yapılandırılmış (field tabanlı) logger.
	Log *zap.Logger = zap.NewNop()
	// SLog printf tarzı kullanım için sugared logger.
	SLog *zap.SugaredLogger = zap.NewNop().Sugar()
)

// InitLogger APP_ENV değerine göre global logger'ları oluşturur.
func InitLogger() {
	var cfg zap.Config
	if strings.ToLower(os.Getenv("APP_ENV")) == "production" {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		var level zapcore.Level
		if err := level.UnmarshalText([]byte(lvl)); err == nil {
			cfg.Level = zap.NewAtomicLevelAt(level)
		}
	}

	logger, err := cfg.Build(zap.AddCaller())
	if err != nil {
		// Logger kurulamazsa uygulama yine de çalışabilsin
		logger = zap.NewExample()
	}
	Log = logger
	SLog = logger.Sugar()
}

// SyncLogger buffer'daki logları yazar. main içinde defer edilir.
func SyncLogger() {
	if Log != nil {
		_ = Log.Sync()
	}
}
