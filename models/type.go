package models

type Type struct {
	BaseModel
	Name        string `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
}

const (
	TypeNameAppointment = "APPOINTMENT"
	TypeNameForm        = "FORM"
)
