package model

import "time"

// swagger:model Report
type Report struct {
	ID              uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Title           string    `gorm:"size:255;not null" json:"title"`
	Comments        *string   `gorm:"type:text" json:"comments"`
	Recommendations *string   `gorm:"type:text" json:"recommendations"`
	SubjectID       uint      `gorm:"index" json:"subjectId"`
	ProfessorID     uint      `gorm:"index" json:"professorId"`
	CreatedAt       time.Time `json:"createdAt"`

	// Joined rows matching ProfessorID and SubjectID; zero or one each in practice.
	Professors []Professor `gorm:"-" json:"-"`
	Subjects   []Subject   `gorm:"-" json:"-"`
}

func (Report) TableName() string {
	return "reports"
}

// ReportView is a Report with its display names resolved.
type ReportView struct {
	ID              uint      `json:"id"`
	Title           string    `json:"title"`
	Comments        *string   `json:"comments"`
	Recommendations *string   `json:"recommendations"`
	SubjectID       uint      `json:"subject_id"`
	ProfessorID     uint      `json:"professor_id"`
	ProfessorName   string    `json:"professor_name"`
	SubjectName     string    `json:"subject_name"`
	CreatedAt       time.Time `json:"created_at"`
}
