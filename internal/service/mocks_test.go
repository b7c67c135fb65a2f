package service

import (
	"context"
	"edu_eval_backend/internal/model"
	"edu_eval_backend/internal/util"
	"errors"
	"io"
	"sync"
	"time"
)

var errStore = errors.New("store unavailable")

// mockQuestionRepo implements QuestionRepo over fixed slices.
type mockQuestionRepo struct {
	questions []model.Question
	options   map[uint][]model.QuestionOption
	listErr   error
	optionErr map[uint]error
}

func (m *mockQuestionRepo) ListQuestions(_ context.Context) ([]model.Question, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.questions, nil
}

func (m *mockQuestionRepo) FindByIDs(_ context.Context, ids []uint) ([]model.Question, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	want := make(map[uint]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var out []model.Question
	for _, q := range m.questions {
		if want[q.ID] {
			out = append(out, q)
		}
	}
	return out, nil
}

func (m *mockQuestionRepo) ListOptions(_ context.Context, questionID uint) ([]model.QuestionOption, error) {
	if err := m.optionErr[questionID]; err != nil {
		return nil, err
	}
	return m.options[questionID], nil
}

// mockResponseStore keeps committed rows in memory. Writes inside a failed
// transaction are discarded.
type mockResponseStore struct {
	mu        sync.Mutex
	responses []model.Response
	values    []model.ResponseValue
	nextID    uint

	// failValuesAt fails the n-th CreateValues call of a transaction (1-based).
	failValuesAt int
	listErr      error
}

type mockWriter struct {
	store     *mockResponseStore
	responses []model.Response
	values    []model.ResponseValue
	calls     int
}

func (w *mockWriter) CreateResponse(_ context.Context, r *model.Response) error {
	w.store.nextID++
	r.ID = w.store.nextID
	w.responses = append(w.responses, *r)
	return nil
}

func (w *mockWriter) CreateValues(_ context.Context, values []model.ResponseValue) error {
	w.calls++
	if w.store.failValuesAt > 0 && w.calls == w.store.failValuesAt {
		return errStore
	}
	w.values = append(w.values, values...)
	return nil
}

func (m *mockResponseStore) Transaction(_ context.Context, fn func(w ResponseWriter) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	w := &mockWriter{store: m}
	if err := fn(w); err != nil {
		return err
	}
	m.responses = append(m.responses, w.responses...)
	m.values = append(m.values, w.values...)
	return nil
}

func (m *mockResponseStore) ListByQuestions(_ context.Context, questionIDs []uint, start, end time.Time) ([]model.Response, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	want := make(map[uint]bool, len(questionIDs))
	for _, id := range questionIDs {
		want[id] = true
	}
	var out []model.Response
	for _, r := range m.responses {
		if !want[r.QuestionID] || r.CreatedAt.Before(start) || !r.CreatedAt.Before(end) {
			continue
		}
		for _, v := range m.values {
			if v.ResponseID == r.ID {
				r.Values = append(r.Values, v)
			}
		}
		out = append(out, r)
	}
	return out, nil
}

func (m *mockResponseStore) valuesOf(responseID uint) []string {
	var out []string
	for _, v := range m.values {
		if v.ResponseID == responseID {
			out = append(out, v.Value)
		}
	}
	return out
}

type mockFeedbackRepo struct {
	records []model.Feedback
	err     error
}

func (m *mockFeedbackRepo) ListFeedback(_ context.Context, professorID, subjectID uint) ([]model.Feedback, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []model.Feedback
	for _, f := range m.records {
		if f.ProfessorID == professorID && f.SubjectID == subjectID {
			out = append(out, f)
		}
	}
	return out, nil
}

type mockReportRepo struct {
	reports map[uint]model.Report
	err     error
}

func (m *mockReportRepo) FindByID(_ context.Context, id uint) (*model.Report, error) {
	if m.err != nil {
		return nil, m.err
	}
	r, ok := m.reports[id]
	if !ok {
		return nil, util.ErrReportNotFound
	}
	return &r, nil
}

func (m *mockReportRepo) ListByProfessor(_ context.Context, professorID uint) ([]model.Report, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []model.Report
	for _, r := range m.reports {
		if r.ProfessorID == professorID {
			out = append(out, r)
		}
	}
	return out, nil
}

type mockExportJobRepo struct {
	mu   sync.Mutex
	jobs map[string]model.ExportJob
}

func newMockExportJobRepo() *mockExportJobRepo {
	return &mockExportJobRepo{jobs: make(map[string]model.ExportJob)}
}

func (m *mockExportJobRepo) Create(_ context.Context, job *model.ExportJob) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if job.ID == "" {
		job.ID = model.GenerateUUID()
	}
	m.jobs[job.ID] = *job
	return nil
}

func (m *mockExportJobRepo) FindByID(_ context.Context, id string) (*model.ExportJob, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	job, ok := m.jobs[id]
	if !ok {
		return nil, util.ErrExportNotFound
	}
	return &job, nil
}

func (m *mockExportJobRepo) Update(_ context.Context, job *model.ExportJob) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs[job.ID] = *job
	return nil
}

type mockLocker struct {
	held       map[string]bool
	err        error
	releaseLog []string
}

func (m *mockLocker) Acquire(_ context.Context, id string) (string, bool, error) {
	if m.err != nil {
		return "", false, m.err
	}
	if m.held[id] {
		return "", false, nil
	}
	m.held[id] = true
	return "token-" + id, true, nil
}

func (m *mockLocker) Release(_ context.Context, id, token string) error {
	if token != "token-"+id {
		return errors.New("foreign token")
	}
	delete(m.held, id)
	m.releaseLog = append(m.releaseLog, id)
	return nil
}

type mockArtifactStore struct {
	mu    sync.Mutex
	files map[string][]byte
	err   error
}

func (m *mockArtifactStore) Upload(_ context.Context, filename string, r io.Reader, _ int64, _ string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.files == nil {
		m.files = make(map[string][]byte)
	}
	m.files[filename] = data
	return "/exports/" + filename, nil
}

func strPtr(s string) *string { return &s }

func uintPtr(u uint) *uint { return &u }

func question(id uint, typ model.QuestionType, audience model.Audience, stage string) model.Question {
	q := model.Question{
		Title:    "Question",
		Type:     typ,
		Audience: audience,
	}
	q.ID = id
	if stage != "" {
		st := &model.Stage{Name: stage}
		st.ID = uint(len(stage))
		q.Stage = st
		q.StageID = uintPtr(st.ID)
	}
	return q
}
