package model

type ExportStatus string

const (
	ExportQueued     ExportStatus = "queued"
	ExportProcessing ExportStatus = "processing"
	ExportDone       ExportStatus = "done"
	ExportFailed     ExportStatus = "failed"
)

// ExportJob tracks one asynchronous analytics export.
// swagger:model ExportJob
type ExportJob struct {
	UUIDBase
	ProfessorID uint         `gorm:"index" json:"professorId"`
	SubjectID   uint         `gorm:"index" json:"subjectId"`
	PeriodKey   string       `gorm:"size:100" json:"periodKey"`
	Status      ExportStatus `gorm:"size:20;default:'queued'" json:"status"`
	FileURL     *string      `gorm:"type:text" json:"fileUrl,omitempty"`
	ErrorMsg    *string      `gorm:"type:text" json:"error,omitempty"`
}

func (ExportJob) TableName() string {
	return "export_jobs"
}
