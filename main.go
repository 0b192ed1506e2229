package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"formly.link/configs"
	"formly.link/configs/configsdatabase"
	"formly.link/configs/configslog"
	"formly.link/configs/configsqueue"
	"formly.link/configs/configsredis"
	"formly.link/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
	"go.uber.org/zap"
)

func main() {
	configs.LoadEnv()
	configslog.InitLogger()
	defer configslog.SyncLogger()

	configsdatabase.InitDB()
	defer configsdatabase.CloseDB()
	configsredis.InitRedis()
	defer configsredis.CloseRedis()
	configsqueue.InitQueue()
	defer configsqueue.CloseQueue()

	engine := html.New("./views", ".html")
	engine.Reload(configs.GetEnv("APP_ENV", "development") != "production")

	trustedProxies := configs.GetEnvList("TRUSTED_PROXIES")
	app := fiber.New(fiber.Config{
		AppName:                 "formly.link",
		Views:                   engine,
		ReadTimeout:             15 * time.Second,
		WriteTimeout:            15 * time.Second,
		ProxyHeader:             configs.GetEnv("PROXY_HEADER", ""),
		EnableIPValidation:      true,
		EnableTrustedProxyCheck: len(trustedProxies) > 0,
		TrustedProxies:          trustedProxies,
	})
	routes.SetupRoutes(app)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		configslog.SLog.Info("Sunucu kapatılıyor...")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			configslog.Log.Error("Sunucu düzgün kapatılamadı", zap.Error(err))
		}
	}()

	addr := ":" + configs.GetEnv("APP_PORT", "3000")
	configslog.SLog.Infof("Sunucu başlatılıyor: %s", addr)
	if err := app.Listen(addr); err != nil {
		configslog.Log.Error("Sunucu hatası", zap.Error(err))
	}
}
