package repository

import (
	"context"
	"edu_eval_backend/internal/model"

	"gorm.io/gorm"
)

type FeedbackRepository struct {
	DB *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) *FeedbackRepository {
	return &FeedbackRepository{DB: db}
}

// ListFeedback returns every rating of a professor on a subject, oldest first.
func (r *FeedbackRepository) ListFeedback(ctx context.Context, professorID, subjectID uint) ([]model.Feedback, error) {
	var records []model.Feedback
	err := r.DB.WithContext(ctx).
		Where("professor_id = ? AND subject_id = ?", professorID, subjectID).
		Order("created_at ASC").
		Find(&records).Error
	return records, err
}
