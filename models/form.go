package models

import "sort"

// Form online formun ana kaydıdır.
type Form struct {
	BaseModel
	LinkID         uint  `gorm:"uniqueIndex;not null" json:"link_id"`
	CreatorUserID  uint  `gorm:"index;not null" json:"creator_user_id"`
	OrganizationID *uint `gorm:"index" json:"organization_id,omitempty"`
	IsEnabled      bool  `gorm:"default:true;index" json:"is_enabled"`
	IsPublished    bool  `gorm:"default:false;index" json:"is_published"` // Public erişimi açar

	Link      Link           `gorm:"foreignKey:LinkID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"link"`
	Detail    FormDetail     `gorm:"foreignKey:FormID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"detail"`
	Questions []FormQuestion `gorm:"foreignKey:FormID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"questions"`
}

// ShortID formun public anahtarıdır.
func (f *Form) ShortID() string {
	return f.Link.Key
}

// SortQuestions soruları gösterim sırasına dizer.
func (f *Form) SortQuestions() {
	sort.SliceStable(f.Questions, func(i, j int) bool {
		return f.Questions[i].Position < f.Questions[j].Position
	})
}

// Question anahtarı verilen soruyu bulur.
func (f *Form) Question(key string) (*FormQuestion, bool) {
	for i := range f.Questions {
		if f.Questions[i].Key == key {
			return &f.Questions[i], true
		}
	}
	return nil, false
}
