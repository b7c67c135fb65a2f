package model

import "time"

// Response is the header row of one respondent's answer to one question
// within one submission. It always owns at least one ResponseValue.
// swagger:model Response
type Response struct {
	ID           uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	SubmissionID string          `gorm:"type:varchar(36);index;not null" json:"submissionId"`
	QuestionID   uint            `gorm:"index;not null" json:"questionId"`
	RespondentID string          `gorm:"size:100;index;not null" json:"respondentId"`
	CreatedAt    time.Time       `gorm:"index" json:"createdAt"`
	Values       []ResponseValue `gorm:"foreignKey:ResponseID;constraint:OnDelete:CASCADE" json:"values,omitempty"`
}

func (Response) TableName() string {
	return "responses"
}

func (r Response) Timestamp() time.Time {
	return r.CreatedAt
}

// ResponseValue holds one selected or entered value of a Response.
type ResponseValue struct {
	ID         uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	ResponseID uint   `gorm:"index;not null" json:"responseId"`
	Value      string `gorm:"type:text" json:"value"`
}

func (ResponseValue) TableName() string {
	return "response_values"
}
