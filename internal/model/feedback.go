package model

import "time"

const (
	MinRating = 1
	MaxRating = 10
)

// swagger:model Professor
type Professor struct {
	BaseModel
	Name string `gorm:"size:150;not null" json:"name"`
}

func (Professor) TableName() string {
	return "professors"
}

// swagger:model Subject
type Subject struct {
	BaseModel
	Name string `gorm:"size:150;not null" json:"name"`
}

func (Subject) TableName() string {
	return "subjects"
}

// Feedback is an immutable rating left for a professor on a subject.
// swagger:model Feedback
type Feedback struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Rating      int       `gorm:"not null;check:rating >= 1 AND rating <= 10" json:"rating"`
	Comment     string    `gorm:"type:text" json:"comment"`
	SubjectID   uint      `gorm:"index;not null" json:"subjectId"`
	ProfessorID uint      `gorm:"index;not null" json:"professorId"`
	CreatedAt   time.Time `gorm:"index" json:"createdAt"`
}

func (Feedback) TableName() string {
	return "feedback"
}

func (f Feedback) Timestamp() time.Time {
	return f.CreatedAt
}
