package configsredis

import (
	"context"
	"os"
	"strconv"
	"time"

	"formly.link/configs/configslog"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var client *redis.Client

// Addr REDIS_ADDR değerini döndürür. Boşsa Redis devre dışı sayılır.
func Addr() string {
	return os.Getenv("REDIS_ADDR")
}

// InitRedis Redis istemcisini oluşturur. REDIS_ADDR tanımlı değilse ya da
// ping başarısızsa istemci nil kalır ve önbellek/kuyruk özellikleri kapanır.
func InitRedis() {
	addr := Addr()
	if addr == "" {
		configslog.SLog.Warn("REDIS_ADDR tanımlı değil, Redis önbelleği ve iş kuyruğu devre dışı.")
		return
	}
	dbIndex, _ := strconv.Atoi(os.Getenv("REDIS_DB"))

	c := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       dbIndex,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := c.Ping(ctx).Err(); err != nil {
		configslog.Log.Warn("Redis'e bağlanılamadı, devre dışı bırakılıyor", zap.String("addr", addr), zap.Error(err))
		_ = c.Close()
		return
	}

	client = c
	configslog.SLog.Infof("Redis bağlantısı kuruldu: %s", addr)
}

// GetClient global Redis istemcisini döndürür (nil olabilir).
func GetClient() *redis.Client {
	return client
}

func CloseRedis() {
	if client == nil {
		return
	}
	if err := client.Close(); err != nil {
		configslog.Log.Error("Redis bağlantısı kapatılamadı", zap.Error(err))
	}
}
