package seeders

import (
	"context"
	"errors"
	"fmt"

	"formly.link/configs/configslog"
	"formly.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// serviceTypes link'lerin bağlanabildiği hizmet türleri.
var serviceTypes = []models.Type{
	{Name: models.TypeNameForm, Description: "Online Form Hizmeti"},
	{Name: models.TypeNameAppointment, Description: "Online Randevu Hizmeti"},
}

// SeedTypes eksik hizmet türlerini oluşturur; mevcut olanlara dokunmaz.
func SeedTypes(db *gorm.DB, systemUserID uint) error {
	ctx := models.WithUserID(context.Background(), systemUserID)
	configslog.SLog.Info("Hizmet türleri seed işlemi başlıyor...")

	var created int
	for _, t := range serviceTypes {
		var existing models.Type
		err := db.Where("name = ?", t.Name).First(&existing).Error
		switch {
		case err == nil:
			configslog.SLog.Debugf("Hizmet türü '%s' zaten mevcut.", t.Name)
			continue
		case !errors.Is(err, gorm.ErrRecordNotFound):
			configslog.Log.Error("Hizmet türü kontrol edilemedi", zap.String("type_name", t.Name), zap.Error(err))
			return fmt.Errorf("hizmet türü %s kontrol edilemedi: %w", t.Name, err)
		}

		record := t
		if err := db.WithContext(ctx).Create(&record).Error; err != nil {
			configslog.Log.Error("Hizmet türü oluşturulamadı", zap.String("type_name", t.Name), zap.Error(err))
			return fmt.Errorf("hizmet türü %s oluşturulamadı: %w", t.Name, err)
		}
		configslog.SLog.Infof("Hizmet türü '%s' oluşturuldu (ID: %d).", record.Name, record.ID)
		created++
	}

	if created == 0 {
		configslog.SLog.Info("Tüm hizmet türleri zaten mevcut, yeni ekleme yapılmadı.")
	}
	return nil
}
