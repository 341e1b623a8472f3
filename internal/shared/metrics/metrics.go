package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds every collector exposed on /metrics.
var Registry = prometheus.NewRegistry()

var (
	factory = promauto.With(Registry)

	completionTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "careercraft_completion_requests_total",
		Help: "Completion requests by use case and outcome",
	}, []string{"use_case", "outcome"})

	completionDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "careercraft_completion_duration_seconds",
		Help:    "Completion request latency in seconds",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60},
	}, []string{"use_case"})

	parseEmptyTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "careercraft_parse_empty_total",
		Help: "Completions that yielded no numbered records",
	}, []string{"use_case"})

	autosaveTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "careercraft_draft_autosaves_total",
		Help: "Draft autosave writes by outcome",
	}, []string{"outcome"})

	submitTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "careercraft_resume_submits_total",
		Help: "Resume submissions by template and outcome",
	}, []string{"template", "outcome"})

	httpRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status_code"})

	httpDuration = factory.NewSummaryVec(prometheus.SummaryOpts{
		Name:       "http_request_duration_seconds",
		Help:       "HTTP request duration in seconds",
		Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
	}, []string{"method", "path", "status_code"})
)

func init() {
	Registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
}

// ObserveCompletion records one completion call.
func ObserveCompletion(useCase, outcome string, took time.Duration) {
	completionTotal.WithLabelValues(useCase, outcome).Inc()
	completionDuration.WithLabelValues(useCase).Observe(took.Seconds())
}

// IncParseEmpty counts a reply that parsed to zero records.
func IncParseEmpty(useCase string) {
	parseEmptyTotal.WithLabelValues(useCase).Inc()
}

// IncAutosave counts one autosave write.
func IncAutosave(outcome string) {
	autosaveTotal.WithLabelValues(outcome).Inc()
}

// IncSubmit counts one resume submission attempt.
func IncSubmit(template, outcome string) {
	submitTotal.WithLabelValues(template, outcome).Inc()
}

// HTTP records request counts and latency per route.
func HTTP() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		httpRequests.WithLabelValues(c.Request.Method, path, status).Inc()
		httpDuration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
	}
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
	return gin.WrapH(h)
}
