package configsqueue

import (
	"os"
	"strconv"

	"formly.link/configs/configslog"
	"formly.link/configs/configsredis"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

var client *asynq.Client

// RedisOpt asynq için Redis bağlantı ayarlarını ortam değişkenlerinden üretir.
func RedisOpt() asynq.RedisClientOpt {
	dbIndex, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	return asynq.RedisClientOpt{
		Addr:     configsredis.Addr(),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       dbIndex,
	}
}

// InitQueue sadece Redis erişilebilir durumdaysa asynq istemcisini başlatır.
func InitQueue() {
	if configsredis.GetClient() == nil {
		configslog.SLog.Warn("Redis yok, asynq istemcisi başlatılmadı. Bildirimler gönderilmeyecek.")
		return
	}
	client = asynq.NewClient(RedisOpt())
	configslog.SLog.Info("Asynq istemcisi başlatıldı.")
}

// GetClient global kuyruk istemcisini döndürür (nil olabilir).
func GetClient() *asynq.Client {
	return client
}

func CloseQueue() {
	if client == nil {
		return
	}
	if err := client.Close(); err != nil {
		configslog.Log.Error("Asynq istemcisi kapatılamadı", zap.Error(err))
	}
}
