package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SessionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "gateway_sessions_active",
		Help: "Currently active WebSocket sessions",
	})

	SessionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gateway_sessions_total",
		Help: "Total sessions accepted",
	})

	FramesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gateway_frames_total",
		Help: "Inbound frames by declared type",
	}, []string{"type"})

	StageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pipeline_stage_duration_seconds",
		Help:    "Per-stage latency",
		Buckets: []float64{0.05, 0.1, 0.2, 0.3, 0.5, 0.8, 1.0, 2.0, 5.0},
	}, []string{"stage"})

	E2EDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "pipeline_e2e_duration_seconds",
		Help:    "End-to-end latency from inbound frame to outbound response",
		Buckets: []float64{0.1, 0.2, 0.5, 0.8, 1.0, 1.5, 2.0, 3.0, 5.0},
	})

	Errors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pipeline_errors_total",
		Help: "Error counts by stage",
	}, []string{"stage", "error_type"})

	EngineAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "engine_attempts_total",
		Help: "STT/TTS engine attempts by outcome",
	}, []string{"kind", "engine", "outcome"})

	EmotionDetected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "emotion_detected_total",
		Help: "Utterances by detected emotion label",
	}, []string{"label"})

	IntentDetected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "intent_detected_total",
		Help: "Utterances by classified intent",
	}, []string{"intent"})

	RateLimited = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gateway_rate_limited_total",
		Help: "Connections rejected by the per-IP rate limit",
	})

	CapacityRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gateway_capacity_rejected_total",
		Help: "Connections rejected by the global connection ceiling",
	})

	IdleTimeouts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gateway_idle_timeouts_total",
		Help: "Sessions closed by the idle-receive timeout",
	})
)
