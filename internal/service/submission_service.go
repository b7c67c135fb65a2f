package service

import (
	"context"
	"edu_eval_backend/internal/model"
	"edu_eval_backend/internal/util"
	"edu_eval_backend/pkg/logger"
	"edu_eval_backend/pkg/monitoring"
	"edu_eval_backend/pkg/tracing"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// SubmissionRequest is one respondent's answers keyed by question id.
type SubmissionRequest struct {
	Answers map[string]json.RawMessage `json:"answers" binding:"required"`
	UserID  string                     `json:"userId" binding:"required"`
}

// NormalizedAnswer is the decoded answer of one question.
type NormalizedAnswer struct {
	QuestionID uint
	Answer     AnswerValue
}

// NormalizeAnswers decodes every answer against its question and orders the
// result by question id. Questions whose answer has no values are returned in
// skipped. It performs no I/O.
func NormalizeAnswers(questions map[uint]model.Question, answers map[string]json.RawMessage) (accepted []NormalizedAnswer, skipped []uint, err error) {
	ids := make([]uint, 0, len(answers))
	raws := make(map[uint]json.RawMessage, len(answers))
	for key, raw := range answers {
		id, ok := util.ParseID(strings.TrimSpace(key))
		if !ok {
			return nil, nil, util.NewValidationError("answers", "invalid question id %q", key)
		}
		if _, dup := raws[id]; dup {
			return nil, nil, util.NewValidationError("answers", "question %d answered twice", id)
		}
		if _, ok := questions[id]; !ok {
			return nil, nil, util.NewValidationError("answers", "unknown question %d", id)
		}
		ids = append(ids, id)
		raws[id] = raw
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		answer, err := DecodeAnswer(questions[id], raws[id])
		if err != nil {
			return nil, nil, err
		}
		if answer.Empty() {
			skipped = append(skipped, id)
			continue
		}
		accepted = append(accepted, NormalizedAnswer{QuestionID: id, Answer: answer})
	}
	return accepted, skipped, nil
}

type SubmissionService struct {
	Questions QuestionRepo
	Responses ResponseStore
	Guard     SubmissionLocker

	now func() time.Time
}

// NewSubmissionService builds the ingestion service; guard may be nil.
func NewSubmissionService(questions QuestionRepo, responses ResponseStore, guard SubmissionLocker) *SubmissionService {
	return &SubmissionService{
		Questions: questions,
		Responses: responses,
		Guard:     guard,
		now:       time.Now,
	}
}

// Submit validates the whole submission, then writes it in one transaction.
// Either every accepted question is stored or nothing is.
func (s *SubmissionService) Submit(ctx context.Context, req SubmissionRequest) (result *model.SubmissionResult, err error) {
	ctx, span := tracing.Start(ctx, "SubmissionService.Submit", attribute.Int("answers", len(req.Answers)))
	defer func() { tracing.End(span, err) }()

	respondent := strings.TrimSpace(req.UserID)
	if respondent == "" {
		monitoring.RecordSubmission("rejected", 0, 0)
		return nil, util.NewValidationError("userId", "must not be blank")
	}
	if req.Answers == nil {
		monitoring.RecordSubmission("rejected", 0, 0)
		return nil, util.NewValidationError("answers", "is required")
	}

	questions, err := s.loadQuestions(ctx, req.Answers)
	if err != nil {
		if util.IsValidationError(err) {
			monitoring.RecordSubmission("rejected", 0, 0)
		} else {
			monitoring.RecordSubmission("failed", 0, 0)
		}
		return nil, err
	}

	accepted, skipped, err := NormalizeAnswers(questions, req.Answers)
	if err != nil {
		if util.IsValidationError(err) {
			monitoring.RecordSubmission("rejected", 0, 0)
		} else {
			monitoring.RecordSubmission("failed", 0, 0)
		}
		return nil, err
	}

	release, err := s.acquire(ctx, respondent)
	if err != nil {
		monitoring.RecordSubmission("conflict", 0, 0)
		return nil, err
	}
	defer release()

	result = &model.SubmissionResult{
		SubmissionID: uuid.New().String(),
		Accepted:     make([]uint, 0, len(accepted)),
		Skipped:      skipped,
	}
	if result.Skipped == nil {
		result.Skipped = []uint{}
	}

	createdAt := s.now()
	err = s.Responses.Transaction(ctx, func(w ResponseWriter) error {
		for _, a := range accepted {
			response := &model.Response{
				SubmissionID: result.SubmissionID,
				QuestionID:   a.QuestionID,
				RespondentID: respondent,
				CreatedAt:    createdAt,
			}
			if err := w.CreateResponse(ctx, response); err != nil {
				return fmt.Errorf("question %d: %w", a.QuestionID, err)
			}

			values := make([]model.ResponseValue, len(a.Answer.Values))
			for i, v := range a.Answer.Values {
				values[i] = model.ResponseValue{ResponseID: response.ID, Value: v}
			}
			if err := w.CreateValues(ctx, values); err != nil {
				return fmt.Errorf("question %d values: %w", a.QuestionID, err)
			}
		}
		return nil
	})
	if err != nil {
		logger.Log.Error("Submission write failed",
			zap.String("respondent", respondent),
			zap.String("submission", result.SubmissionID),
			zap.Error(err),
		)
		monitoring.RecordSubmission("failed", 0, 0)
		return nil, util.NewPersistenceError("store submission", err)
	}

	for _, a := range accepted {
		result.Accepted = append(result.Accepted, a.QuestionID)
	}
	monitoring.RecordSubmission("succeeded", len(result.Accepted), len(result.Skipped))
	logger.Log.Info("Submission stored",
		zap.String("respondent", respondent),
		zap.String("submission", result.SubmissionID),
		zap.Int("accepted", len(result.Accepted)),
		zap.Int("skipped", len(result.Skipped)),
	)
	return result, nil
}

// loadQuestions resolves every well-formed key; unknown keys are reported by NormalizeAnswers.
func (s *SubmissionService) loadQuestions(ctx context.Context, answers map[string]json.RawMessage) (map[uint]model.Question, error) {
	ids := make([]uint, 0, len(answers))
	for key := range answers {
		id, ok := util.ParseID(strings.TrimSpace(key))
		if !ok {
			return nil, util.NewValidationError("answers", "invalid question id %q", key)
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return map[uint]model.Question{}, nil
	}

	found, err := s.Questions.FindByIDs(ctx, ids)
	if err != nil {
		return nil, util.NewPersistenceError("load questions", err)
	}
	questions := make(map[uint]model.Question, len(found))
	for _, q := range found {
		questions[q.ID] = q
	}
	return questions, nil
}

func (s *SubmissionService) acquire(ctx context.Context, respondent string) (func(), error) {
	if s.Guard == nil {
		return func() {}, nil
	}

	token, ok, err := s.Guard.Acquire(ctx, respondent)
	if err != nil {
		logger.Log.Warn("Submission guard unavailable, proceeding unguarded",
			zap.String("respondent", respondent), zap.Error(err))
		return func() {}, nil
	}
	if !ok {
		return nil, util.ErrSubmissionInFlight
	}

	return func() {
		// The request context may already be cancelled.
		if err := s.Guard.Release(context.Background(), respondent, token); err != nil && !errors.Is(err, context.Canceled) {
			logger.Log.Warn("Failed to release submission guard",
				zap.String("respondent", respondent), zap.Error(err))
		}
	}, nil
}
