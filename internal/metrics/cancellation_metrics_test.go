package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"cancelflow/internal/entity"
	"cancelflow/internal/usecase"
)

var _ usecase.Recorder = (*CancellationMetrics)(nil)

func TestCancellationMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewCancellationMetrics(reg)

	m.CancellationStarted(entity.VariantA, false)
	m.CancellationStarted(entity.VariantA, true)
	m.CancellationStarted(entity.VariantA, true)
	m.CancellationCompleted(entity.VariantB)
	m.DownsellAccepted(entity.VariantB)
	m.StorageError("create cancellation")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.started.WithLabelValues("A", "false")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.started.WithLabelValues("A", "true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.completed.WithLabelValues("B")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.accepted.WithLabelValues("B")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.storageErrors.WithLabelValues("create cancellation")))

	n, err := testutil.GatherAndCount(reg, "cancellations_started_total")
	assert.NoError(t, err)
	assert.Equal(t, 2, n)
}
