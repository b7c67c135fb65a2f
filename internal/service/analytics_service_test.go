package service

import (
	"context"
	"edu_eval_backend/internal/model"
	"edu_eval_backend/internal/util"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func feedback(id uint, rating int, at time.Time) model.Feedback {
	return model.Feedback{ID: id, Rating: rating, ProfessorID: 1, SubjectID: 2, CreatedAt: at}
}

func newAnalyticsFixture(t *testing.T) (*AnalyticsService, *mockFeedbackRepo, *mockResponseStore) {
	t.Helper()
	feedbackRepo := &mockFeedbackRepo{records: []model.Feedback{
		feedback(1, 7, date(2023, 10, 1)),
		feedback(2, 7, date(2023, 11, 1)),
		feedback(3, 10, date(2024, 2, 1)),
		feedback(4, 10, date(2024, 3, 1)),
		feedback(5, 8, date(2024, 4, 1)),
		feedback(6, 6, date(2024, 5, 1)),
		feedback(7, 1, date(2024, 8, 1)),
		{ID: 8, Rating: 2, ProfessorID: 9, SubjectID: 2, CreatedAt: date(2024, 2, 1)},
	}}
	store := &mockResponseStore{}
	catalog := NewCatalogService(catalogRepo(), 2)
	svc := NewAnalyticsService(feedbackRepo, store, catalog, newTestBucketer(t))
	return svc, feedbackRepo, store
}

func TestFeedbackAnalyticsForPeriod(t *testing.T) {
	svc, _, _ := newAnalyticsFixture(t)

	key := PeriodKey(date(2024, 1, 1), date(2024, 7, 1))
	a, err := svc.FeedbackAnalytics(context.Background(), 1, 2, key)
	require.NoError(t, err)

	assert.Equal(t, "2024-S1", a.Period.Name)
	assert.Len(t, a.Records, 4)
	assert.Equal(t, 8.5, a.Average)
	assert.Equal(t, 7.0, a.PreviousAverage)
	assert.Equal(t, model.TrendUp, a.Trend.Direction)
	assert.Equal(t, 21, a.Trend.Magnitude)
	assert.Equal(t, 50, a.Distribution[9].Percentage)
}

func TestFeedbackAnalyticsAllTime(t *testing.T) {
	svc, _, _ := newAnalyticsFixture(t)

	a, err := svc.FeedbackAnalytics(context.Background(), 1, 2, "all")
	require.NoError(t, err)

	assert.Len(t, a.Records, 7, "all-time keeps every record of the pair")
	assert.Equal(t, a.Average, a.PreviousAverage)
	assert.Equal(t, model.TrendStable, a.Trend.Direction)
}

func TestFeedbackAnalyticsReadFailureIsEmpty(t *testing.T) {
	svc, repo, _ := newAnalyticsFixture(t)
	repo.err = errStore

	a, err := svc.FeedbackAnalytics(context.Background(), 1, 2, "")
	require.NoError(t, err)
	assert.Empty(t, a.Records)
	assert.Equal(t, 0.0, a.Average)
	assert.Len(t, a.Distribution, 10)
	assert.Equal(t, model.TrendStable, a.Trend.Direction)
}

func TestFeedbackAnalyticsInvalidPeriod(t *testing.T) {
	svc, _, _ := newAnalyticsFixture(t)

	_, err := svc.FeedbackAnalytics(context.Background(), 1, 2, "last-year")
	require.Error(t, err)
	assert.True(t, util.IsValidationError(err))
}

func TestResponseSummary(t *testing.T) {
	svc, _, store := newAnalyticsFixture(t)
	sub := NewSubmissionService(catalogRepo(), store, nil)
	sub.now = func() time.Time { return date(2024, 2, 1) }

	for _, body := range []map[string]string{
		{"1": `"Yes"`, "2": `"great"`, "4": `8`},
		{"1": `"No"`, "4": `6`},
		{"1": `"Yes"`, "2": `"great"`},
	} {
		_, err := sub.Submit(context.Background(), SubmissionRequest{UserID: "s", Answers: answers(body)})
		require.NoError(t, err)
	}

	summary, err := svc.ResponseSummary(context.Background(), model.AudienceStudent, "")
	require.NoError(t, err)
	require.Len(t, summary.Stages, 3)

	teaching := summary.Stages[0]
	assert.Equal(t, "Teaching", teaching.Stage)
	q1 := teaching.Questions[0]
	assert.Equal(t, 3, q1.ResponseCount)
	assert.Equal(t, []model.ValueCount{
		{Value: "Yes", Count: 2, Percentage: 67},
		{Value: "No", Count: 1, Percentage: 33},
	}, q1.Values)

	q2 := teaching.Questions[1]
	assert.Equal(t, 2, q2.ResponseCount)
	assert.Equal(t, []model.ValueCount{{Value: "great", Count: 2, Percentage: 100}}, q2.Values)

	numeric := summary.Stages[1].Questions[0]
	require.NotNil(t, numeric.Average)
	assert.Equal(t, 7.0, *numeric.Average)

	outside, err := svc.ResponseSummary(context.Background(), model.AudienceStudent,
		PeriodKey(date(2024, 7, 1), date(2025, 1, 1)))
	require.NoError(t, err)
	assert.Equal(t, 0, outside.Stages[0].Questions[0].ResponseCount)
	assert.Equal(t, 0, outside.Stages[0].Questions[0].Values[0].Count)
}

func TestResponseSummaryCatalogFailure(t *testing.T) {
	svc, _, _ := newAnalyticsFixture(t)
	repo := catalogRepo()
	repo.listErr = errStore
	svc.Catalog = NewCatalogService(repo, 1)

	_, err := svc.ResponseSummary(context.Background(), model.AudienceStudent, "")
	assert.True(t, util.IsPersistenceError(err))
}

func TestSummarizeQuestionOrdersFreeValues(t *testing.T) {
	q := model.QuestionView{ID: 9, Type: model.TextQuestion}
	responses := []model.Response{
		{Values: []model.ResponseValue{{Value: "b"}}},
		{Values: []model.ResponseValue{{Value: "a"}}},
		{Values: []model.ResponseValue{{Value: "b"}}},
		{Values: []model.ResponseValue{{Value: "c"}}},
	}
	s := SummarizeQuestion(q, responses)
	assert.Equal(t, 4, s.ResponseCount)
	assert.Equal(t, []model.ValueCount{
		{Value: "b", Count: 2, Percentage: 50},
		{Value: "a", Count: 1, Percentage: 25},
		{Value: "c", Count: 1, Percentage: 25},
	}, s.Values)
	assert.Nil(t, s.Average)
}
