package models

// Appointment randevu hizmetinin ana kaydıdır.
type Appointment struct {
	BaseModel
	LinkID         uint  `gorm:"uniqueIndex;not null" json:"link_id"`
	ProviderUserID uint  `gorm:"index;not null" json:"provider_user_id"` // Hizmeti veren kullanıcı
	OrganizationID *uint `gorm:"index" json:"organization_id,omitempty"`
	IsEnabled      bool  `gorm:"default:true;index" json:"is_enabled"`

	Link   Link              `gorm:"foreignKey:LinkID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"link"`
	Detail AppointmentDetail `gorm:"foreignKey:AppointmentID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"detail"`
}

func (a *Appointment) ShortID() string {
	return a.Link.Key
}
