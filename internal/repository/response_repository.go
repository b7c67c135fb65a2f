package repository

import (
	"context"
	"edu_eval_backend/internal/model"
	"edu_eval_backend/internal/service"
	"time"

	"gorm.io/gorm"
)

// ResponseRepository stores normalized answers. Inside Transaction its DB is
// the transaction handle.
type ResponseRepository struct {
	DB *gorm.DB
}

func NewResponseRepository(db *gorm.DB) *ResponseRepository {
	return &ResponseRepository{DB: db}
}

func (r *ResponseRepository) Transaction(ctx context.Context, fn func(w service.ResponseWriter) error) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&ResponseRepository{DB: tx})
	})
}

func (r *ResponseRepository) CreateResponse(ctx context.Context, response *model.Response) error {
	// Values are written separately so the caller controls their response id.
	return r.DB.WithContext(ctx).Omit("Values").Create(response).Error
}

func (r *ResponseRepository) CreateValues(ctx context.Context, values []model.ResponseValue) error {
	if len(values) == 0 {
		return nil
	}
	return r.DB.WithContext(ctx).Create(&values).Error
}

func (r *ResponseRepository) ListByQuestions(ctx context.Context, questionIDs []uint, start, end time.Time) ([]model.Response, error) {
	var responses []model.Response
	if len(questionIDs) == 0 {
		return responses, nil
	}
	err := responsesInPeriod(r.DB.WithContext(ctx), questionIDs, start, end).
		Preload("Values", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Find(&responses).Error
	return responses, err
}

func responsesInPeriod(db *gorm.DB, questionIDs []uint, start, end time.Time) *gorm.DB {
	return db.Model(&model.Response{}).
		Where("question_id IN ?", questionIDs).
		Where("created_at >= ? AND created_at < ?", start, end).
		Order("id ASC")
}
