package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_ObserveOperation(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveOperation("simulator", "set_status", "ok", time.Now())
	m.ObserveOperation("simulator", "set_status", "unauthorized", time.Now())
	m.ObserveOperation("simulator", "set_status", "ok", time.Now())

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RegistryOperations.WithLabelValues("simulator", "set_status", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RegistryOperations.WithLabelValues("simulator", "set_status", "unauthorized")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.OperationDuration))
}

func TestMetrics_SnapshotAndRecords(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.IncrementSnapshotWrite("sessions", nil)
	m.IncrementSnapshotWrite("sessions", errors.New("disk full"))
	m.SetRecords("sessions", 3)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.SnapshotWrites.WithLabelValues("sessions", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SnapshotWrites.WithLabelValues("sessions", "error")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.RegistryRecords.WithLabelValues("sessions")))
}

func TestNew_IndependentRegistries(t *testing.T) {
	require.NotPanics(t, func() {
		New(prometheus.NewRegistry())
		New(prometheus.NewRegistry())
	})
}
