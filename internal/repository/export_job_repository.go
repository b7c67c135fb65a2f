package repository

import (
	"context"
	"edu_eval_backend/internal/model"
	"edu_eval_backend/internal/util"
	"errors"

	"gorm.io/gorm"
)

type ExportJobRepository struct {
	DB *gorm.DB
}

func NewExportJobRepository(db *gorm.DB) *ExportJobRepository {
	return &ExportJobRepository{DB: db}
}

func (r *ExportJobRepository) Create(ctx context.Context, job *model.ExportJob) error {
	return r.DB.WithContext(ctx).Create(job).Error
}

func (r *ExportJobRepository) FindByID(ctx context.Context, id string) (*model.ExportJob, error) {
	var job model.ExportJob
	err := r.DB.WithContext(ctx).Where("id = ?", id).First(&job).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrExportNotFound
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *ExportJobRepository) Update(ctx context.Context, job *model.ExportJob) error {
	return r.DB.WithContext(ctx).Save(job).Error
}
