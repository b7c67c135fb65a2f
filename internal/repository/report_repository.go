package repository

import (
	"context"
	"edu_eval_backend/internal/model"
	"edu_eval_backend/internal/util"
	"errors"

	"gorm.io/gorm"
)

type ReportRepository struct {
	DB *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{DB: db}
}

func (r *ReportRepository) FindByID(ctx context.Context, id uint) (*model.Report, error) {
	db := r.DB.WithContext(ctx)

	var report model.Report
	if err := db.First(&report, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrReportNotFound
		}
		return nil, err
	}
	if err := loadJoins(db, []*model.Report{&report}); err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *ReportRepository) ListByProfessor(ctx context.Context, professorID uint) ([]model.Report, error) {
	db := r.DB.WithContext(ctx)

	var reports []model.Report
	if err := reportsByProfessor(db, professorID).Find(&reports).Error; err != nil {
		return nil, err
	}

	ptrs := make([]*model.Report, len(reports))
	for i := range reports {
		ptrs[i] = &reports[i]
	}
	if err := loadJoins(db, ptrs); err != nil {
		return nil, err
	}
	return reports, nil
}

// loadJoins fills Professors and Subjects with the rows matching each report.
func loadJoins(db *gorm.DB, reports []*model.Report) error {
	if len(reports) == 0 {
		return nil
	}

	professorIDs := make([]uint, 0, len(reports))
	subjectIDs := make([]uint, 0, len(reports))
	for _, rep := range reports {
		professorIDs = append(professorIDs, rep.ProfessorID)
		subjectIDs = append(subjectIDs, rep.SubjectID)
	}

	var professors []model.Professor
	if err := db.Where("id IN ?", professorIDs).Order("id ASC").Find(&professors).Error; err != nil {
		return err
	}
	var subjects []model.Subject
	if err := db.Where("id IN ?", subjectIDs).Order("id ASC").Find(&subjects).Error; err != nil {
		return err
	}

	attachJoins(reports, professors, subjects)
	return nil
}

func reportsByProfessor(db *gorm.DB, professorID uint) *gorm.DB {
	return db.Where("professor_id = ?", professorID).Order("created_at DESC")
}

// attachJoins appends to each report every professor and subject row whose id
// matches, so a report with a dangling id keeps empty slices.
func attachJoins(reports []*model.Report, professors []model.Professor, subjects []model.Subject) {
	for _, rep := range reports {
		for _, p := range professors {
			if p.ID == rep.ProfessorID {
				rep.Professors = append(rep.Professors, p)
			}
		}
		for _, s := range subjects {
			if s.ID == rep.SubjectID {
				rep.Subjects = append(rep.Subjects, s)
			}
		}
	}
}
