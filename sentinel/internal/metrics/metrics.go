// Package metrics exposes simulator activity as Prometheus metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/telhawk-systems/minisentinel/sentinel/pkg/models"
	"github.com/telhawk-systems/minisentinel/sentinel/pkg/simulator"
)

var (
	LogsGenerated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sentinel_logs_generated_total",
			Help: "Total number of log records produced by the simulator",
		},
	)

	LogBufferSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sentinel_log_buffer_size",
			Help: "Current number of records in the log buffer",
		},
	)

	LogEvictions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sentinel_log_evictions_total",
			Help: "Total number of log records evicted from the full buffer",
		},
	)

	AlertsEmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sentinel_alerts_emitted_total",
			Help: "Total number of alerts produced by the simulator",
		},
		[]string{"type", "severity"},
	)

	AlertTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sentinel_alert_transitions_total",
			Help: "Total number of alert status changes by target status",
		},
		[]string{"to"},
	)

	RateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sentinel_rate_limit_hits_total",
			Help: "Total number of rate limited requests",
		},
		[]string{"key"},
	)
)

// RateLimited counts a request refused for key.
func RateLimited(key string) {
	RateLimitHits.WithLabelValues(key).Inc()
}

// Recorder is a simulator.Sink that updates the package metrics.
type Recorder struct{}

var _ simulator.Sink = Recorder{}

func (Recorder) Initialized(logCount, _ int) {
	LogBufferSize.Set(float64(logCount))
}

func (Recorder) LogAdded(_ models.LogRecord, bufferLen int, evicted bool) {
	LogsGenerated.Inc()
	LogBufferSize.Set(float64(bufferLen))
	if evicted {
		LogEvictions.Inc()
	}
}

func (Recorder) AlertAdded(alert models.AlertRecord) {
	AlertsEmitted.WithLabelValues(string(alert.Type), string(alert.Severity)).Inc()
}

func (Recorder) AlertUpdated(alert models.AlertRecord, _ models.AlertStatus) {
	AlertTransitions.WithLabelValues(string(alert.Status)).Inc()
}
