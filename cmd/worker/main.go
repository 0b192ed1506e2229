// Command worker bildirim kuyruğundaki işleri çalıştırır.
package main

import (
	"formly.link/configs"
	"formly.link/configs/configslog"
	"formly.link/configs/configsqueue"
	"formly.link/jobs"
	"formly.link/pkg/mailer"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	configs.LoadEnv()
	configslog.InitLogger()
	defer configslog.SyncLogger()

	sender, err := mailer.NewSMTPSenderFromEnv()
	if err != nil {
		configslog.Log.Fatal("SMTP ayarları okunamadı", zap.Error(err))
	}

	srv := asynq.NewServer(configsqueue.RedisOpt(), asynq.Config{
		Concurrency: configs.GetEnvInt("WORKER_CONCURRENCY", 5),
		Queues:      map[string]int{jobs.QueueMail: 1},
		Logger:      configslog.SLog,
	})

	configslog.SLog.Info("Worker başlatılıyor.")
	if err := srv.Run(jobs.NewServeMux(sender)); err != nil {
		configslog.Log.Fatal("Worker durdu", zap.Error(err))
	}
}
