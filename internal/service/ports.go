package service

import (
	"context"
	"edu_eval_backend/internal/model"
	"time"
)

// QuestionRepo reads the question catalog.
type QuestionRepo interface {
	// ListQuestions returns every question with its stage loaded, in catalog order.
	ListQuestions(ctx context.Context) ([]model.Question, error)
	// FindByIDs returns the questions that exist among ids; missing ids are absent.
	FindByIDs(ctx context.Context, ids []uint) ([]model.Question, error)
	ListOptions(ctx context.Context, questionID uint) ([]model.QuestionOption, error)
}

// ResponseWriter writes the rows of one submission. It is only valid inside
// ResponseStore.Transaction.
type ResponseWriter interface {
	CreateResponse(ctx context.Context, response *model.Response) error
	CreateValues(ctx context.Context, values []model.ResponseValue) error
}

type ResponseStore interface {
	// Transaction runs fn atomically; any error returned by fn rolls back every write.
	Transaction(ctx context.Context, fn func(w ResponseWriter) error) error
	// ListByQuestions returns responses with their values for the given questions
	// created in [start, end).
	ListByQuestions(ctx context.Context, questionIDs []uint, start, end time.Time) ([]model.Response, error)
}

type FeedbackRepo interface {
	ListFeedback(ctx context.Context, professorID, subjectID uint) ([]model.Feedback, error)
}

// ReportRepo returns reports with their Professors and Subjects joins filled.
type ReportRepo interface {
	FindByID(ctx context.Context, id uint) (*model.Report, error)
	ListByProfessor(ctx context.Context, professorID uint) ([]model.Report, error)
}

type ExportJobRepo interface {
	Create(ctx context.Context, job *model.ExportJob) error
	FindByID(ctx context.Context, id string) (*model.ExportJob, error)
	Update(ctx context.Context, job *model.ExportJob) error
}

// SubmissionLocker serializes submissions of one respondent.
type SubmissionLocker interface {
	Acquire(ctx context.Context, respondentID string) (token string, ok bool, err error)
	Release(ctx context.Context, respondentID, token string) error
}
