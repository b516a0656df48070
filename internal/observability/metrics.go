package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups all Prometheus instruments used by the service.
type Metrics struct {
	ChatRequests    *prometheus.CounterVec
	LoopIterations  prometheus.Histogram
	ToolInvocations *prometheus.CounterVec
	BudgetExceeded  prometheus.Counter
	ChatLatency     prometheus.Histogram
}

func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		ChatRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chat_requests_total",
			Help:      "Chat requests by terminal state.",
		}, []string{"state"}),
		LoopIterations: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "loop_iterations",
			Help:      "Reasoning iterations consumed per chat request.",
			Buckets:   []float64{1, 2, 3, 4, 5, 6},
		}),
		ToolInvocations: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tool_invocations_total",
			Help:      "Tool invocations by tool name.",
		}, []string{"tool"}),
		BudgetExceeded: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "budget_exceeded_total",
			Help:      "Chat requests cut off by the iteration or time budget.",
		}),
		ChatLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "chat_latency_seconds",
			Help:      "End to end chat request latency in seconds.",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 40, 60},
		}),
	}
}

func (m *Metrics) ObserveChatLatency(d time.Duration) {
	m.ChatLatency.Observe(d.Seconds())
}

func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
