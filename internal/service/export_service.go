package service

import (
	"bytes"
	"context"
	"edu_eval_backend/internal/model"
	"edu_eval_backend/internal/util"
	"edu_eval_backend/pkg/logger"
	"edu_eval_backend/pkg/monitoring"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// ArtifactStore receives rendered export files.
type ArtifactStore interface {
	Upload(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error)
}

// ExportService renders feedback analytics to xlsx workbooks in the background.
type ExportService struct {
	Jobs      ExportJobRepo
	Analytics *AnalyticsService
	Store     ArtifactStore

	wg sync.WaitGroup
}

func NewExportService(jobs ExportJobRepo, analytics *AnalyticsService, store ArtifactStore) *ExportService {
	return &ExportService{Jobs: jobs, Analytics: analytics, Store: store}
}

type ExportRequest struct {
	ProfessorID uint   `json:"professorId" binding:"required"`
	SubjectID   uint   `json:"subjectId" binding:"required"`
	Period      string `json:"period" binding:"omitempty,period_key"`
}

// CreateExport queues a job and starts processing it.
func (s *ExportService) CreateExport(ctx context.Context, req ExportRequest) (*model.ExportJob, error) {
	period, err := s.Analytics.resolvePeriod(req.Period)
	if err != nil {
		return nil, err
	}

	job := &model.ExportJob{
		ProfessorID: req.ProfessorID,
		SubjectID:   req.SubjectID,
		PeriodKey:   period.Key,
		Status:      model.ExportQueued,
	}
	if err := s.Jobs.Create(ctx, job); err != nil {
		return nil, util.NewPersistenceError("create export job", err)
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.process(context.Background(), job.ID)
	}()
	return job, nil
}

func (s *ExportService) GetExport(ctx context.Context, id string) (*model.ExportJob, error) {
	job, err := s.Jobs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, util.ErrExportNotFound) {
			return nil, err
		}
		return nil, util.NewPersistenceError("get export job", err)
	}
	return job, nil
}

// Wait blocks until every started job has finished.
func (s *ExportService) Wait() {
	s.wg.Wait()
}

func (s *ExportService) process(ctx context.Context, id string) {
	job, err := s.Jobs.FindByID(ctx, id)
	if err != nil {
		logger.Log.Error("Export job vanished", zap.String("job", id), zap.Error(err))
		return
	}

	job.Status = model.ExportProcessing
	if err := s.Jobs.Update(ctx, job); err != nil {
		logger.Log.Error("Failed to mark export job processing", zap.String("job", id), zap.Error(err))
		return
	}

	url, err := s.render(ctx, job)
	if err != nil {
		msg := err.Error()
		job.Status = model.ExportFailed
		job.ErrorMsg = &msg
		logger.Log.Error("Export job failed", zap.String("job", id), zap.Error(err))
	} else {
		job.Status = model.ExportDone
		job.FileURL = &url
		logger.Log.Info("Export job done", zap.String("job", id), zap.String("url", url))
	}
	monitoring.ExportCounter.WithLabelValues(string(job.Status)).Inc()

	if err := s.Jobs.Update(ctx, job); err != nil {
		logger.Log.Error("Failed to record export job result", zap.String("job", id), zap.Error(err))
	}
}

func (s *ExportService) render(ctx context.Context, job *model.ExportJob) (string, error) {
	analytics, err := s.Analytics.feedbackAnalytics(ctx, job.ProfessorID, job.SubjectID, job.PeriodKey, true)
	if err != nil {
		return "", err
	}

	buf, err := BuildAnalyticsWorkbook(analytics)
	if err != nil {
		return "", fmt.Errorf("build workbook: %w", err)
	}

	filename := fmt.Sprintf("analytics/%s.xlsx", job.ID)
	url, err := s.Store.Upload(ctx, filename, bytes.NewReader(buf.Bytes()), int64(buf.Len()), util.MimeXLSX)
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", filename, err)
	}
	return url, nil
}

const (
	sheetSummary      = "Summary"
	sheetDistribution = "Distribution"
	sheetRecords      = "Records"
)

// BuildAnalyticsWorkbook renders summary, distribution and records sheets.
func BuildAnalyticsWorkbook(a *model.FeedbackAnalytics) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetSummary); err != nil {
		return nil, err
	}
	summary := [][]interface{}{
		{"Period", a.Period.Name},
		{"Start", a.Period.Start.Format(util.DateFormat)},
		{"End", a.Period.End.Format(util.DateFormat)},
		{"Records", len(a.Records)},
		{"Average", a.Average},
		{"Previous average", a.PreviousAverage},
		{"Trend", string(a.Trend.Direction)},
		{"Change (%)", a.Trend.Magnitude},
		{"Description", a.Trend.Description},
	}
	if err := writeRows(f, sheetSummary, summary); err != nil {
		return nil, err
	}

	if _, err := f.NewSheet(sheetDistribution); err != nil {
		return nil, err
	}
	dist := [][]interface{}{{"Rating", "Count", "Percentage"}}
	for _, b := range a.Distribution {
		dist = append(dist, []interface{}{b.Rating, b.Count, b.Percentage})
	}
	if err := writeRows(f, sheetDistribution, dist); err != nil {
		return nil, err
	}

	if _, err := f.NewSheet(sheetRecords); err != nil {
		return nil, err
	}
	records := [][]interface{}{{"ID", "Rating", "Comment", "Created at"}}
	for _, r := range a.Records {
		records = append(records, []interface{}{r.ID, r.Rating, r.Comment, r.CreatedAt.Format(util.TimeFormat)})
	}
	if err := writeRows(f, sheetRecords, records); err != nil {
		return nil, err
	}

	return f.WriteToBuffer()
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		row := row
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}
