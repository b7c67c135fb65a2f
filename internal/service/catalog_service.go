package service

import (
	"context"
	"edu_eval_backend/internal/model"
	"edu_eval_backend/internal/util"
	"edu_eval_backend/pkg/tracing"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
)

type CatalogService struct {
	Questions QuestionRepo
	// Concurrency bounds the option lookups in flight.
	Concurrency int
}

func NewCatalogService(questions QuestionRepo, concurrency int) *CatalogService {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &CatalogService{Questions: questions, Concurrency: concurrency}
}

// ListQuestions returns the whole catalog with stage names and option labels
// resolved. Any failed lookup fails the read; there is no partial catalog.
func (s *CatalogService) ListQuestions(ctx context.Context) (views []model.QuestionView, err error) {
	ctx, span := tracing.Start(ctx, "CatalogService.ListQuestions")
	defer func() { tracing.End(span, err) }()

	questions, err := s.Questions.ListQuestions(ctx)
	if err != nil {
		return nil, util.NewPersistenceError("list questions", err)
	}
	span.SetAttributes(attribute.Int("questions", len(questions)))

	views = make([]model.QuestionView, len(questions))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.Concurrency)

	for i, q := range questions {
		views[i] = newQuestionView(q)
		if !q.Type.IsChoice() {
			continue
		}
		i, id := i, q.ID
		g.Go(func() error {
			options, err := s.Questions.ListOptions(gctx, id)
			if err != nil {
				return fmt.Errorf("options of question %d: %w", id, err)
			}
			labels := make([]string, len(options))
			for j, o := range options {
				labels[j] = o.Label
			}
			views[i].Options = labels
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, util.NewPersistenceError("list question options", err)
	}
	return views, nil
}

func newQuestionView(q model.Question) model.QuestionView {
	v := model.QuestionView{
		ID:          q.ID,
		Title:       q.Title,
		Description: q.Description,
		Type:        q.Type,
		Required:    q.Required,
		Audience:    q.Audience,
		StageID:     q.StageID,
	}
	if q.Stage != nil {
		v.StageName = q.Stage.Name
	}
	return v
}

// GroupByAudience keeps the questions of one audience and partitions them by
// stage name in first-seen order. Questions without a stage share the "" group.
func GroupByAudience(questions []model.QuestionView, audience model.Audience) []model.QuestionGroup {
	groups := []model.QuestionGroup{}
	index := make(map[string]int)

	for _, q := range questions {
		if q.Audience != audience {
			continue
		}
		i, ok := index[q.StageName]
		if !ok {
			i = len(groups)
			index[q.StageName] = i
			groups = append(groups, model.QuestionGroup{Stage: q.StageName})
		}
		groups[i].Questions = append(groups[i].Questions, q)
	}
	return groups
}

// QuestionSet is the grouped catalog of one audience.
func (s *CatalogService) QuestionSet(ctx context.Context, audience model.Audience) ([]model.QuestionGroup, error) {
	if !audience.Valid() {
		return nil, util.NewValidationError("audience", "must be %q or %q", model.AudienceStudent, model.AudienceProfessor)
	}
	questions, err := s.ListQuestions(ctx)
	if err != nil {
		return nil, err
	}
	return GroupByAudience(questions, audience), nil
}
