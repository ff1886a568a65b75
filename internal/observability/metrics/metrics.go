// Package metrics provides Prometheus metrics for observability.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "live_caption"

// Metrics holds all Prometheus metrics for the caption client.
type Metrics struct {
	// Recognition result metrics
	ResultsPartial       prometheus.Counter
	ResultsFinal         prometheus.Counter
	ResultsEmpty         prometheus.Counter
	DuplicatesSuppressed prometheus.Counter

	// Render metrics
	RendersTotal prometheus.Counter
	RendersNoop  prometheus.Counter

	// Audio capture metrics
	AudioFramesCaptured prometheus.Counter
	AudioBytesCaptured  prometheus.Counter
	AudioQueueDrops     prometheus.Counter
	AudioOverflows      prometheus.Counter

	// Kafka publish metrics
	KafkaPublishTotal   *prometheus.CounterVec
	KafkaPublishErrors  *prometheus.CounterVec
	KafkaPublishLatency *prometheus.HistogramVec
}

// DefaultMetrics is the global metrics instance.
var DefaultMetrics = NewMetrics()

// NewMetrics creates and registers all Prometheus metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		// Recognition result metrics
		ResultsPartial: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "results_partial_total",
			Help:      "Total number of interim recognition results received",
		}),
		ResultsFinal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "results_final_total",
			Help:      "Total number of final recognition results received",
		}),
		ResultsEmpty: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "results_empty_total",
			Help:      "Total number of results that cleaned down to nothing",
		}),
		DuplicatesSuppressed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "duplicates_suppressed_total",
			Help:      "Total number of retransmitted final segments suppressed",
		}),

		// Render metrics
		RendersTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "renders_total",
			Help:      "Total number of viewport render calls",
		}),
		RendersNoop: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "renders_noop_total",
			Help:      "Render calls skipped because the view was unchanged",
		}),

		// Audio capture metrics
		AudioFramesCaptured: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "audio_frames_captured_total",
			Help:      "Total audio chunks captured from the microphone",
		}),
		AudioBytesCaptured: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "audio_bytes_captured_total",
			Help:      "Total audio bytes captured from the microphone",
		}),
		AudioQueueDrops: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "audio_queue_drops_total",
			Help:      "Audio chunks dropped because the hand-off queue was full",
		}),
		AudioOverflows: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "audio_overflows_total",
			Help:      "Input overflow warnings from the audio device",
		}),

		// Kafka publish metrics
		KafkaPublishTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "kafka_publish_total",
			Help:      "Total number of Kafka messages published",
		}, []string{"topic", "event_type"}),
		KafkaPublishErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "kafka_publish_errors_total",
			Help:      "Total number of Kafka publish errors",
		}, []string{"topic", "event_type"}),
		KafkaPublishLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "kafka_publish_latency_seconds",
			Help:      "Kafka publish latency in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"topic"}),
	}
}

// RecordPartialResult records an interim recognition result received.
func (m *Metrics) RecordPartialResult() {
	m.ResultsPartial.Inc()
}

// RecordFinalResult records a final recognition result received.
func (m *Metrics) RecordFinalResult() {
	m.ResultsFinal.Inc()
}

// RecordEmptyResult records a result absorbed as empty after cleaning.
func (m *Metrics) RecordEmptyResult() {
	m.ResultsEmpty.Inc()
}

// RecordDuplicateSuppressed records a suppressed retransmission.
func (m *Metrics) RecordDuplicateSuppressed() {
	m.DuplicatesSuppressed.Inc()
}

// RecordRender records a render call and whether it wrote anything.
func (m *Metrics) RecordRender(noop bool) {
	m.RendersTotal.Inc()
	if noop {
		m.RendersNoop.Inc()
	}
}

// RecordAudioCaptured records one captured chunk.
func (m *Metrics) RecordAudioCaptured(bytes int) {
	m.AudioFramesCaptured.Inc()
	m.AudioBytesCaptured.Add(float64(bytes))
}

// RecordAudioQueueDrop records a chunk dropped on a full hand-off queue.
func (m *Metrics) RecordAudioQueueDrop() {
	m.AudioQueueDrops.Inc()
}

// RecordAudioOverflow records a device overflow warning.
func (m *Metrics) RecordAudioOverflow() {
	m.AudioOverflows.Inc()
}

// RecordKafkaPublish records a Kafka publish attempt.
func (m *Metrics) RecordKafkaPublish(topic, eventType string, err error, latencySeconds float64) {
	m.KafkaPublishTotal.WithLabelValues(topic, eventType).Inc()
	m.KafkaPublishLatency.WithLabelValues(topic).Observe(latencySeconds)
	if err != nil {
		m.KafkaPublishErrors.WithLabelValues(topic, eventType).Inc()
	}
}
