// Package metrics provides Prometheus metrics for the call-api service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ActiveCalls tracks the number of active call sessions.
	ActiveCalls = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "call_active_sessions",
			Help: "Number of currently active call sessions",
		},
	)

	// CallsStarted tracks the total number of calls started, by direction.
	CallsStarted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "call_sessions_started_total",
			Help: "Total number of call sessions started",
		},
		[]string{"direction"},
	)

	// CallsEnded tracks the total number of calls reaching a terminal status.
	CallsEnded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "call_sessions_ended_total",
			Help: "Total number of call sessions ended",
		},
		[]string{"status"},
	)

	// CallStatusTransitions tracks call lifecycle state changes.
	CallStatusTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "call_status_transitions_total",
			Help: "Total number of call status transitions",
		},
		[]string{"from_status", "to_status"},
	)

	// TranscriptionDuration tracks the duration of transcription calls.
	TranscriptionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "call_transcription_duration_seconds",
			Help:    "Duration of speech-to-text collaborator calls",
			Buckets: prometheus.DefBuckets,
		},
	)

	// SynthesisDuration tracks the duration of synthesis calls.
	SynthesisDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "call_synthesis_duration_seconds",
			Help:    "Duration of text-to-speech collaborator calls",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Transfers tracks handoffs to human agents.
	Transfers = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "call_transfers_total",
			Help: "Total number of call transfers to human agents",
		},
		[]string{"outcome"},
	)

	// WebhookDeliveries tracks webhook delivery attempts.
	WebhookDeliveries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webhook_deliveries_total",
			Help: "Total number of webhook delivery attempts",
		},
		[]string{"event", "outcome"},
	)

	// HTTPRequestDuration tracks HTTP request latency.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)

// RecordCallStarted increments call creation metrics.
func RecordCallStarted(direction string) {
	CallsStarted.WithLabelValues(direction).Inc()
	ActiveCalls.Inc()
}

// RecordCallEnded increments termination metrics.
func RecordCallEnded(status string) {
	CallsEnded.WithLabelValues(status).Inc()
	ActiveCalls.Dec()
}

// RecordStatusTransition records a call status change.
func RecordStatusTransition(fromStatus, toStatus string) {
	CallStatusTransitions.WithLabelValues(fromStatus, toStatus).Inc()
}
