package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var latencyBuckets = []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1}

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	RegistryOperations *prometheus.CounterVec
	OperationDuration  *prometheus.HistogramVec
	RegistryRecords    *prometheus.GaugeVec
	SnapshotWrites     *prometheus.CounterVec
	HTTPDuration       *prometheus.HistogramVec
}

// New creates and registers all metrics against reg.
// Pass prometheus.DefaultRegisterer in production and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RegistryOperations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "medsim_registry_operations_total",
			Help: "Registry mutations by registry, operation and outcome code",
		}, []string{"registry", "operation", "outcome"}),
		OperationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "medsim_registry_operation_duration_seconds",
			Help:    "Duration of registry mutations including the snapshot write",
			Buckets: latencyBuckets,
		}, []string{"registry", "operation"}),
		RegistryRecords: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "medsim_registry_records",
			Help: "Number of records held per registry",
		}, []string{"registry"}),
		SnapshotWrites: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "medsim_snapshot_writes_total",
			Help: "Durable snapshot writes by bucket and outcome",
		}, []string{"bucket", "outcome"}),
		HTTPDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "medsim_http_request_duration_seconds",
			Help:    "HTTP request latency by method, route pattern and status",
			Buckets: latencyBuckets,
		}, []string{"method", "route", "status"}),
	}
}

// ObserveOperation records one registry mutation.
// outcome is "ok" or the failure code. Call with time.Now() taken at the start.
func (m *Metrics) ObserveOperation(registry, operation, outcome string, start time.Time) {
	m.RegistryOperations.WithLabelValues(registry, operation, outcome).Inc()
	m.OperationDuration.WithLabelValues(registry, operation).Observe(time.Since(start).Seconds())
}

// SetRecords publishes the current record count of a registry.
func (m *Metrics) SetRecords(registry string, n int) {
	m.RegistryRecords.WithLabelValues(registry).Set(float64(n))
}

// IncrementSnapshotWrite records a snapshot write attempt.
func (m *Metrics) IncrementSnapshotWrite(bucket string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.SnapshotWrites.WithLabelValues(bucket, outcome).Inc()
}

// ObserveHTTP records one served request.
func (m *Metrics) ObserveHTTP(method, route, status string, d time.Duration) {
	m.HTTPDuration.WithLabelValues(method, route, status).Observe(d.Seconds())
}
