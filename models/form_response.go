package models

import (
	"time"

	"gorm.io/datatypes"
)

// FormResponse bir formun tamamlanmış tek gönderimidir. Kayıttan sonra değiştirilmez.
type FormResponse struct {
	BaseModel
	FormID          uint                        `gorm:"not null;index;uniqueIndex:idx_form_response_token,priority:1" json:"form_id"`
	UID             string                      `gorm:"type:varchar(36);uniqueIndex;not null" json:"uid"`
	Answers         datatypes.JSONType[Answers] `gorm:"not null" json:"answers"`
	SubmittedAt     time.Time                   `gorm:"type:timestamptz;not null;index" json:"submitted_at"`
	SubmissionToken *string                     `gorm:"type:varchar(100);uniqueIndex:idx_form_response_token,priority:2" json:"-"`
	RespondentIP    string                      `gorm:"type:varchar(64)" json:"respondent_ip,omitempty"`
	UserAgent       string                      `gorm:"type:varchar(500)" json:"user_agent,omitempty"`
}

// AnswerMap kayıtlı cevapları döndürür.
func (r FormResponse) AnswerMap() Answers {
	return r.Answers.Data()
}
