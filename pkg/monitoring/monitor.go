package monitoring

import (
	"edu_eval_backend/internal/model"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	SubmissionCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "evaluation_submissions_total",
			Help: "Answer submissions by result",
		},
		[]string{"result"},
	)

	QuestionOutcomeCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "evaluation_question_outcomes_total",
			Help: "Submitted questions by terminal state",
		},
		[]string{"outcome"},
	)

	ExportCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "evaluation_exports_total",
			Help: "Analytics export jobs by final status",
		},
		[]string{"status"},
	)
)

var initOnce sync.Once

func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestCounter)
		prometheus.MustRegister(RequestDuration)
		prometheus.MustRegister(SubmissionCounter)
		prometheus.MustRegister(QuestionOutcomeCounter)
		prometheus.MustRegister(ExportCounter)
	})
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		RequestCounter.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}

// RecordSubmission counts one finished submission and the outcome of its questions.
func RecordSubmission(result string, accepted, skipped int) {
	SubmissionCounter.WithLabelValues(result).Inc()
	if accepted > 0 {
		QuestionOutcomeCounter.WithLabelValues(string(model.OutcomeAccepted)).Add(float64(accepted))
	}
	if skipped > 0 {
		QuestionOutcomeCounter.WithLabelValues(string(model.OutcomeSkipped)).Add(float64(skipped))
	}
}
