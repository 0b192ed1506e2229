package main

import (
	"flag"
	"os"

	"formly.link/configs"
	"formly.link/configs/configsdatabase"
	"formly.link/configs/configslog"
	"formly.link/database"
)

func main() {
	configs.LoadEnv()
	configslog.InitLogger()
	defer configslog.SyncLogger()

	migrateFlag := flag.Bool("migrate", false, "Migrasyonları çalıştır")
	seedFlag := flag.Bool("seed", false, "Seeder'ları çalıştır (sistem kullanıcısı, hizmet türleri, örnek form)")
	flag.Parse()

	configsdatabase.InitDB()
	defer configsdatabase.CloseDB()

	if err := database.Initialize(configsdatabase.GetDB(), *migrateFlag, *seedFlag); err != nil {
		configsdatabase.CloseDB()
		configslog.SyncLogger()
		os.Exit(1)
	}
}
