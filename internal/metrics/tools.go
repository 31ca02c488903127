package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Tool call outcomes.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

var (
	toolCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tool_calls_total",
			Help:      "Total number of MCP tool calls",
		},
		[]string{"tool", "outcome"},
	)

	toolDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tool_duration_seconds",
			Help:      "MCP tool call duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"tool"},
	)
)

func init() {
	prometheus.MustRegister(toolCallsTotal)
	prometheus.MustRegister(toolDuration)
}

// ObserveTool records one tool call that started at start. failed marks
// calls that produced a failure reply.
func ObserveTool(tool string, start time.Time, failed bool) {
	outcome := OutcomeOK
	if failed {
		outcome = OutcomeError
	}
	toolCallsTotal.WithLabelValues(tool, outcome).Inc()
	toolDuration.WithLabelValues(tool).Observe(time.Since(start).Seconds())
}
