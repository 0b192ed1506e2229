package database

import (
	"formly.link/configs/configslog"
	"formly.link/database/migrations"
	"formly.link/database/seeders"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Initialize migrasyonları ve seeder'ları tek transaction içinde çalıştırır.
// Herhangi bir adım başarısız olursa tüm değişiklikler geri alınır.
func Initialize(db *gorm.DB, migrate bool, seed bool) error {
	if !migrate && !seed {
		configslog.SLog.Info("Migrate veya seed bayrağı belirtilmedi, işlem yapılmayacak.")
		return nil
	}

	configslog.SLog.Info("Veritabanı başlatma işlemi başlıyor...")
	err := db.Transaction(func(tx *gorm.DB) error {
		if migrate {
			if err := RunMigrationsInOrder(tx); err != nil {
				return err
			}
		} else {
			configslog.SLog.Info("Migrate bayrağı belirtilmedi, migrasyon adımı atlanıyor.")
		}

		if seed {
			return CheckAndRunSeeders(tx)
		}
		configslog.SLog.Info("Seed bayrağı belirtilmedi, seeder adımı atlanıyor.")
		return nil
	})
	if err != nil {
		configslog.Log.Error("Veritabanı başlatma işlemi geri alındı", zap.Error(err))
		return err
	}

	configslog.SLog.Info("Veritabanı başlatma işlemi başarıyla tamamlandı")
	return nil
}

// migrationSteps tabloların oluşturulma sırası; yabancı anahtarlar önceki adımlara bağlıdır.
var migrationSteps = []struct {
	name string
	run  func(*gorm.DB) error
}{
	{"User", migrations.MigrateUsersTable},
	{"Type", migrations.MigrateTypesTable},
	{"Link", migrations.MigrateLinksTable},
	{"Form", migrations.MigrateFormsTables},
	{"Appointment", migrations.MigrateAppointmentsTables},
}

func RunMigrationsInOrder(db *gorm.DB) error {
	configslog.SLog.Info("Migrasyonlar sırayla çalıştırılıyor...")
	for _, step := range migrationSteps {
		configslog.SLog.Infof(" -> %s migrasyonları çalıştırılıyor...", step.name)
		if err := step.run(db); err != nil {
			configslog.Log.Error("Migrasyon başarısız oldu", zap.String("step", step.name), zap.Error(err))
			return err
		}
	}
	configslog.SLog.Info("Tüm migrasyonlar başarıyla çalıştırıldı.")
	return nil
}

func CheckAndRunSeeders(db *gorm.DB) error {
	configslog.SLog.Info("Sistem kullanıcısı kontrol ediliyor...")
	systemUserID, err := seeders.SeedSystemUser(db)
	if err != nil {
		configslog.Log.Error("Sistem kullanıcısı seed işlemi başarısız", zap.Error(err))
		return err
	}

	if err := seeders.SeedTypes(db, systemUserID); err != nil {
		configslog.Log.Error("Types tablosu seed edilemedi", zap.Error(err))
		return err
	}

	if err := seeders.SeedDemoForm(db, systemUserID); err != nil {
		configslog.Log.Error("Örnek form seed edilemedi", zap.Error(err))
		return err
	}

	configslog.SLog.Info("Tüm seeder'lar başarıyla kontrol edildi/çalıştırıldı.")
	return nil
}
