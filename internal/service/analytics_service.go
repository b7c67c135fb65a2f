package service

import (
	"context"
	"edu_eval_backend/internal/model"
	"edu_eval_backend/internal/util"
	"edu_eval_backend/pkg/logger"
	"edu_eval_backend/pkg/tracing"
	"errors"
	"sort"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// AnalyticsService recomputes every aggregate from source rows on each call.
type AnalyticsService struct {
	Feedback  FeedbackRepo
	Responses ResponseStore
	Catalog   *CatalogService
	Bucketer  *PeriodBucketer
}

func NewAnalyticsService(feedback FeedbackRepo, responses ResponseStore, catalog *CatalogService, bucketer *PeriodBucketer) *AnalyticsService {
	return &AnalyticsService{
		Feedback:  feedback,
		Responses: responses,
		Catalog:   catalog,
		Bucketer:  bucketer,
	}
}

func (s *AnalyticsService) Periods(now time.Time) []model.Period {
	return s.Bucketer.Periods(now)
}

func (s *AnalyticsService) resolvePeriod(key string) (model.Period, error) {
	period, err := s.Bucketer.ParsePeriodKey(key)
	if err != nil {
		if errors.Is(err, util.ErrInvalidPeriodKey) {
			return model.Period{}, util.NewValidationError("period", "%v", err)
		}
		return model.Period{}, err
	}
	return period, nil
}

// FeedbackAnalytics aggregates the feedback of one professor on one subject
// within a period and compares it with the preceding period. A failed read is
// logged and yields empty analytics.
func (s *AnalyticsService) FeedbackAnalytics(ctx context.Context, professorID, subjectID uint, periodKey string) (*model.FeedbackAnalytics, error) {
	return s.feedbackAnalytics(ctx, professorID, subjectID, periodKey, false)
}

// feedbackAnalytics returns the read error as a PersistenceError when strict
// is set instead of degrading to empty analytics.
func (s *AnalyticsService) feedbackAnalytics(ctx context.Context, professorID, subjectID uint, periodKey string, strict bool) (*model.FeedbackAnalytics, error) {
	period, err := s.resolvePeriod(periodKey)
	if err != nil {
		return nil, err
	}

	ctx, span := tracing.Start(ctx, "AnalyticsService.FeedbackAnalytics",
		attribute.Int("professor_id", int(professorID)),
		attribute.Int("subject_id", int(subjectID)),
		attribute.String("period", period.Key),
	)
	defer span.End()

	all, err := s.Feedback.ListFeedback(ctx, professorID, subjectID)
	if err != nil {
		span.RecordError(err)
		if strict {
			return nil, util.NewPersistenceError("read feedback", err)
		}
		logger.Log.Error("Failed to read feedback",
			zap.Uint("professorId", professorID),
			zap.Uint("subjectId", subjectID),
			zap.Error(err),
		)
		all = nil
	}

	records := FilterByPeriod(all, period)
	average := AverageRating(records)

	previousAverage := average
	if prev, ok := s.Bucketer.PreviousPeriod(period); ok {
		previousAverage = AverageRating(FilterByPeriod(all, prev))
	}

	return &model.FeedbackAnalytics{
		Period:          period,
		Records:         records,
		Average:         average,
		PreviousAverage: previousAverage,
		Distribution:    RatingDistribution(records),
		Trend:           Trend(average, previousAverage),
	}, nil
}

// ResponseSummary recombines the stored responses of an audience's questions
// into their stage groups. The catalog read fails closed; a failed response
// read is logged and yields zero counts.
func (s *AnalyticsService) ResponseSummary(ctx context.Context, audience model.Audience, periodKey string) (*model.ResponseSummary, error) {
	period, err := s.resolvePeriod(periodKey)
	if err != nil {
		return nil, err
	}

	ctx, span := tracing.Start(ctx, "AnalyticsService.ResponseSummary",
		attribute.String("audience", string(audience)),
		attribute.String("period", period.Key),
	)
	defer span.End()

	groups, err := s.Catalog.QuestionSet(ctx, audience)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	var ids []uint
	for _, g := range groups {
		for _, q := range g.Questions {
			ids = append(ids, q.ID)
		}
	}

	var responses []model.Response
	if len(ids) > 0 {
		responses, err = s.Responses.ListByQuestions(ctx, ids, period.Start, period.End)
		if err != nil {
			span.RecordError(err)
			logger.Log.Error("Failed to read responses",
				zap.String("audience", string(audience)),
				zap.String("period", period.Key),
				zap.Error(err),
			)
			responses = nil
		}
	}

	byQuestion := make(map[uint][]model.Response)
	for _, r := range FilterByPeriod(responses, period) {
		byQuestion[r.QuestionID] = append(byQuestion[r.QuestionID], r)
	}

	summary := &model.ResponseSummary{
		Period:   period,
		Audience: audience,
		Stages:   make([]model.StageSummary, 0, len(groups)),
	}
	for _, g := range groups {
		stage := model.StageSummary{Stage: g.Stage, Questions: make([]model.QuestionSummary, 0, len(g.Questions))}
		for _, q := range g.Questions {
			stage.Questions = append(stage.Questions, SummarizeQuestion(q, byQuestion[q.ID]))
		}
		summary.Stages = append(summary.Stages, stage)
	}
	return summary, nil
}

// SummarizeQuestion counts the stored values of one question. Option labels of
// choice questions come first in option order, including unused ones; other
// values follow by descending count. Percentages are relative to the number
// of responses.
func SummarizeQuestion(q model.QuestionView, responses []model.Response) model.QuestionSummary {
	summary := model.QuestionSummary{
		Question:      q,
		ResponseCount: len(responses),
		Values:        []model.ValueCount{},
	}

	counts := make(map[string]int)
	var seen []string
	var sum float64
	numbers := 0

	for _, r := range responses {
		for _, v := range r.Values {
			if _, ok := counts[v.Value]; !ok {
				seen = append(seen, v.Value)
			}
			counts[v.Value]++

			if q.Type == model.NumericQuestion {
				if n, err := strconv.ParseFloat(v.Value, 64); err == nil {
					sum += n
					numbers++
				}
			}
		}
	}

	listed := make(map[string]bool, len(q.Options))
	for _, label := range q.Options {
		listed[label] = true
		summary.Values = append(summary.Values, valueCount(label, counts[label], len(responses)))
	}

	sort.SliceStable(seen, func(i, j int) bool {
		if counts[seen[i]] != counts[seen[j]] {
			return counts[seen[i]] > counts[seen[j]]
		}
		return seen[i] < seen[j]
	})
	for _, v := range seen {
		if listed[v] {
			continue
		}
		summary.Values = append(summary.Values, valueCount(v, counts[v], len(responses)))
	}

	if numbers > 0 {
		avg := sum / float64(numbers)
		summary.Average = &avg
	}
	return summary
}

func valueCount(value string, count, total int) model.ValueCount {
	vc := model.ValueCount{Value: value, Count: count}
	if total > 0 {
		vc.Percentage = roundHalfUp(100 * float64(count) / float64(total))
	}
	return vc
}
