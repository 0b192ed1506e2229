package models

// User form ve randevu hizmetlerinin sahibidir.
// Oturum açma işlemleri bu servisin dışında yürütülür, burada sadece sahiplik ve yetki bilgisi tutulur.
type User struct {
	BaseModel
	Name     string `gorm:"type:varchar(100);not null" json:"name"`
	Email    string `gorm:"type:varchar(150);uniqueIndex;not null" json:"email"`
	Password string `gorm:"type:varchar(255)" json:"-"`
	IsSystem bool   `gorm:"default:false;index" json:"is_system"` // Dashboard (admin) erişimi
	Status   bool   `gorm:"default:true;index" json:"status"`
}
