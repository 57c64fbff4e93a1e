// Package metrics declares the process-wide Prometheus collectors.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	QuestionsGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "jobsforce_questions_generated_total",
		Help: "Interview questions successfully generated and persisted.",
	})

	QuestionGenFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "jobsforce_question_generation_failures_total",
		Help: "Failed question generation attempts by failure kind.",
	}, []string{"kind"})

	FeedbackGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "jobsforce_feedback_generated_total",
		Help: "Feedback responses produced from a live model call.",
	})

	FeedbackDegraded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "jobsforce_feedback_degraded_total",
		Help: "Feedback responses served from the placeholder fallback.",
	})

	CooldownRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "jobsforce_cooldown_rejections_total",
		Help: "Requests rejected by the per-actor cooldown, by operation.",
	}, []string{"operation"})

	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "jobsforce_http_requests_total",
		Help: "HTTP requests by route pattern and status class.",
	}, []string{"route", "status"})
)

// Handler exposes the default registry for the /metrics route.
func Handler() http.Handler {
	return promhttp.Handler()
}
