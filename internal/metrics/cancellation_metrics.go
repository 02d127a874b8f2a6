package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"cancelflow/internal/entity"
)

// CancellationMetrics counts cancellation lifecycle events; it satisfies usecase.Recorder
type CancellationMetrics struct {
	started       *prometheus.CounterVec
	completed     *prometheus.CounterVec
	accepted      *prometheus.CounterVec
	storageErrors *prometheus.CounterVec
}

// NewCancellationMetrics registers the counters on registry
func NewCancellationMetrics(registry prometheus.Registerer) *CancellationMetrics {
	f := promauto.With(registry)
	return &CancellationMetrics{
		started: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cancellations_started_total",
				Help: "Cancellations returned by start, new or resumed",
			},
			[]string{"variant", "resumed"},
		),
		completed: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cancellations_completed_total",
				Help: "Cancellations moved to completed",
			},
			[]string{"variant"},
		),
		accepted: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "downsells_accepted_total",
				Help: "Downsell offers accepted",
			},
			[]string{"variant"},
		),
		storageErrors: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cancellation_storage_errors_total",
				Help: "Storage failures by operation",
			},
			[]string{"op"},
		),
	}
}

func (m *CancellationMetrics) CancellationStarted(variant entity.Variant, resumed bool) {
	m.started.WithLabelValues(string(variant), strconv.FormatBool(resumed)).Inc()
}

func (m *CancellationMetrics) CancellationCompleted(variant entity.Variant) {
	m.completed.WithLabelValues(string(variant)).Inc()
}

func (m *CancellationMetrics) DownsellAccepted(variant entity.Variant) {
	m.accepted.WithLabelValues(string(variant)).Inc()
}

func (m *CancellationMetrics) StorageError(op string) {
	m.storageErrors.WithLabelValues(op).Inc()
}
