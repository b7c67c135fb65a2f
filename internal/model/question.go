package model

type QuestionType string

const (
	SingleChoice    QuestionType = "single_choice"
	MultipleChoice  QuestionType = "multiple_choice"
	TextQuestion    QuestionType = "text"
	NumericQuestion QuestionType = "numeric"
)

// IsChoice reports whether the question carries an option list.
func (t QuestionType) IsChoice() bool {
	return t == SingleChoice || t == MultipleChoice
}

func (t QuestionType) Valid() bool {
	switch t {
	case SingleChoice, MultipleChoice, TextQuestion, NumericQuestion:
		return true
	}
	return false
}

type Audience string

const (
	AudienceStudent   Audience = "student"
	AudienceProfessor Audience = "professor"
)

func (a Audience) Valid() bool {
	return a == AudienceStudent || a == AudienceProfessor
}

// Stage groups questions under a name.
// swagger:model Stage
type Stage struct {
	BaseModel
	Name string `gorm:"size:150;not null" json:"name"`
}

func (Stage) TableName() string {
	return "stages"
}

// swagger:model Question
type Question struct {
	BaseModel
	Title       string       `gorm:"size:255;not null" json:"title"`
	Description *string      `gorm:"type:text" json:"description"`
	Type        QuestionType `gorm:"size:30;not null" json:"type"`
	Required    bool         `gorm:"default:false" json:"required"`
	Audience    Audience     `gorm:"size:20;not null;index" json:"audience"`
	StageID     *uint        `gorm:"index" json:"stageId"`
	Stage       *Stage       `gorm:"foreignKey:StageID" json:"stage,omitempty"`
	Order       int          `gorm:"default:0" json:"order"`
}

func (Question) TableName() string {
	return "questions"
}

// QuestionOption is one label of a choice question, read in Order.
type QuestionOption struct {
	BaseModel
	QuestionID uint   `gorm:"index;not null" json:"questionId"`
	Label      string `gorm:"size:255;not null" json:"label"`
	Order      int    `gorm:"default:0" json:"order"`
}

func (QuestionOption) TableName() string {
	return "question_options"
}
