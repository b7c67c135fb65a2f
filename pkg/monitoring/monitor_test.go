package monitoring

import (
	"edu_eval_backend/internal/model"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordSubmission(t *testing.T) {
	okBefore := testutil.ToFloat64(SubmissionCounter.WithLabelValues("succeeded"))
	acceptedBefore := testutil.ToFloat64(QuestionOutcomeCounter.WithLabelValues(string(model.OutcomeAccepted)))
	skippedBefore := testutil.ToFloat64(QuestionOutcomeCounter.WithLabelValues(string(model.OutcomeSkipped)))

	RecordSubmission("succeeded", 3, 1)
	RecordSubmission("succeeded", 2, 0)

	assert.Equal(t, okBefore+2, testutil.ToFloat64(SubmissionCounter.WithLabelValues("succeeded")))
	assert.Equal(t, acceptedBefore+5, testutil.ToFloat64(QuestionOutcomeCounter.WithLabelValues(string(model.OutcomeAccepted))))
	assert.Equal(t, skippedBefore+1, testutil.ToFloat64(QuestionOutcomeCounter.WithLabelValues(string(model.OutcomeSkipped))))
}
