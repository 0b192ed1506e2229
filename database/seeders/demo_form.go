package seeders

import (
	"context"
	_ "embed"
	"fmt"

	"formly.link/configs/configslog"
	"formly.link/models"
	"formly.link/repositories"
	"formly.link/services"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

//go:embed data/demo_form.yaml
var demoFormYAML []byte

type demoQuestion struct {
	Key         string   `yaml:"key"`
	Type        string   `yaml:"type"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Required    bool     `yaml:"required"`
	Options     []string `yaml:"options"`
	MaxRating   *int     `yaml:"max_rating"`
}

type demoForm struct {
	Key                 string         `yaml:"key"`
	Title               string         `yaml:"title"`
	Description         string         `yaml:"description"`
	ConfirmationMessage string         `yaml:"confirmation_message"`
	Published           bool           `yaml:"published"`
	Questions           []demoQuestion `yaml:"questions"`
}

func parseDemoForm(raw []byte) (demoForm, error) {
	var df demoForm
	if err := yaml.Unmarshal(raw, &df); err != nil {
		return df, fmt.Errorf("örnek form okunamadı: %w", err)
	}
	if !models.IsValidLinkKey(df.Key) {
		return df, fmt.Errorf("örnek form anahtarı geçersiz: %q", df.Key)
	}
	return df, nil
}

// questions YAML tanımını doğrulanmış soru modellerine çevirir.
func (df demoForm) questions() ([]models.FormQuestion, error) {
	qs := make([]models.FormQuestion, 0, len(df.Questions))
	for _, dq := range df.Questions {
		q := models.FormQuestion{
			Key:         dq.Key,
			Type:        models.FieldType(dq.Type),
			Title:       dq.Title,
			Description: dq.Description,
			Required:    dq.Required,
			MaxRating:   dq.MaxRating,
		}
		q.SetOptions(dq.Options)
		qs = append(qs, q)
	}
	return services.NormalizeQuestions(qs)
}

// SeedDemoForm örnek formu, anahtarı henüz kullanılmıyorsa oluşturur.
func SeedDemoForm(db *gorm.DB, systemUserID uint) error {
	df, err := parseDemoForm(demoFormYAML)
	if err != nil {
		return err
	}

	exists, err := repositories.NewLinkRepositoryTx(db).KeyExists(context.Background(), df.Key)
	if err != nil {
		return fmt.Errorf("örnek form linki kontrol edilemedi: %w", err)
	}
	if exists {
		configslog.SLog.Debugf("Örnek form zaten mevcut: %s", df.Key)
		return nil
	}

	questions, err := df.questions()
	if err != nil {
		return fmt.Errorf("örnek form soruları geçersiz: %w", err)
	}

	var formType models.Type
	if err := db.Where("name = ?", models.TypeNameForm).First(&formType).Error; err != nil {
		return fmt.Errorf("form hizmet türü bulunamadı: %w", err)
	}

	link := models.Link{Key: df.Key, TypeID: formType.ID, CreatorUserID: systemUserID}
	if err := db.Create(&link).Error; err != nil {
		return fmt.Errorf("örnek form linki oluşturulamadı: %w", err)
	}
	form := models.Form{
		LinkID:        link.ID,
		CreatorUserID: systemUserID,
		IsEnabled:     true,
		IsPublished:   df.Published,
		Detail: models.FormDetail{
			Title:               df.Title,
			Description:         df.Description,
			ConfirmationMessage: df.ConfirmationMessage,
		},
		Questions: questions,
	}
	if err := db.Create(&form).Error; err != nil {
		return fmt.Errorf("örnek form oluşturulamadı: %w", err)
	}
	if err := db.Model(&link).Update("target_id", form.ID).Error; err != nil {
		return fmt.Errorf("örnek form linki güncellenemedi: %w", err)
	}

	configslog.SLog.Infof("Örnek form oluşturuldu: /%s (%d soru)", df.Key, len(questions))
	return nil
}
