package models

import (
	"time"
)

// FormDetail formun detaylarını içerir.
type FormDetail struct {
	BaseModel
	FormID uint `gorm:"uniqueIndex;not null" json:"form_id"`

	Title               string     `gorm:"type:varchar(255);not null" json:"title" form:"title"`
	Description         string     `gorm:"type:text" json:"description" form:"description"`
	Theme               string     `gorm:"type:varchar(50);default:'default'" json:"theme" form:"theme"`
	SubmissionLimit     *int       `gorm:"type:integer" json:"submission_limit,omitempty" form:"submission_limit"`
	ClosesAt            *time.Time `gorm:"index;type:timestamptz" json:"closes_at,omitempty" form:"closes_at"`
	ConfirmationMessage string     `gorm:"type:text" json:"confirmation_message" form:"confirmation_message"`
	RedirectURLOnSubmit string     `gorm:"type:varchar(500)" json:"redirect_url_on_submit" form:"redirect_url_on_submit"`
	NotifyOnSubmitEmail string     `gorm:"type:text" json:"notify_on_submit_email" form:"notify_on_submit_email"`
	PasswordHash        string     `gorm:"type:varchar(255)" json:"-" form:"-"`
}

// IsClosed formun kapanış zamanı geçmiş mi?
func (d FormDetail) IsClosed(now time.Time) bool {
	return d.ClosesAt != nil && now.After(*d.ClosesAt)
}
