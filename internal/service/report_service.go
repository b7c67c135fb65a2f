package service

import (
	"context"
	"edu_eval_backend/internal/model"
	"edu_eval_backend/internal/util"
	"errors"
)

type ReportService struct {
	Reports ReportRepo
}

func NewReportService(reports ReportRepo) *ReportService {
	return &ReportService{Reports: reports}
}

// AssembleReport resolves the display names of a report from its joins. The
// first joined row wins; a missing join falls back to a placeholder name.
func AssembleReport(r model.Report) model.ReportView {
	view := model.ReportView{
		ID:              r.ID,
		Title:           r.Title,
		Comments:        r.Comments,
		Recommendations: r.Recommendations,
		SubjectID:       r.SubjectID,
		ProfessorID:     r.ProfessorID,
		ProfessorName:   util.UnknownProfessor,
		SubjectName:     util.UnknownSubject,
		CreatedAt:       r.CreatedAt,
	}
	if len(r.Professors) > 0 {
		view.ProfessorName = r.Professors[0].Name
	}
	if len(r.Subjects) > 0 {
		view.SubjectName = r.Subjects[0].Name
	}
	return view
}

func (s *ReportService) GetReport(ctx context.Context, id uint) (*model.ReportView, error) {
	report, err := s.Reports.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, util.ErrReportNotFound) {
			return nil, err
		}
		return nil, util.NewPersistenceError("get report", err)
	}
	view := AssembleReport(*report)
	return &view, nil
}

// ListReports assembles every report of a professor, newest first.
func (s *ReportService) ListReports(ctx context.Context, professorID uint) ([]model.ReportView, error) {
	reports, err := s.Reports.ListByProfessor(ctx, professorID)
	if err != nil {
		return nil, util.NewPersistenceError("list reports", err)
	}
	views := make([]model.ReportView, len(reports))
	for i, r := range reports {
		views[i] = AssembleReport(r)
	}
	return views, nil
}
