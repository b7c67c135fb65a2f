package repository

import (
	"context"
	"edu_eval_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) ListQuestions(ctx context.Context) ([]model.Question, error) {
	var questions []model.Question
	err := r.DB.WithContext(ctx).
		Preload("Stage").
		Order("`order` ASC, id ASC").
		Find(&questions).Error
	return questions, err
}

func (r *QuestionRepository) FindByIDs(ctx context.Context, ids []uint) ([]model.Question, error) {
	var questions []model.Question
	if len(ids) == 0 {
		return questions, nil
	}
	err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&questions).Error
	return questions, err
}

func (r *QuestionRepository) ListOptions(ctx context.Context, questionID uint) ([]model.QuestionOption, error) {
	var options []model.QuestionOption
	err := r.DB.WithContext(ctx).
		Where("question_id = ?", questionID).
		Order("`order` ASC, id ASC").
		Find(&options).Error
	return options, err
}
