package migrations

import (
	"formly.link/configs/configslog"
	"formly.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateFormsTables(db *gorm.DB) error {
	configslog.SLog.Info("Migrating forms, form_details, form_questions & form_responses tables...")
	err := db.AutoMigrate(&models.Form{}, &models.FormDetail{}, &models.FormQuestion{}, &models.FormResponse{})
	if err != nil {
		configslog.Log.Error("Failed to migrate form tables", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Form tables migrated successfully")
	return nil
}
