package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated Prometheus registry served at /metrics.
	Registry = prometheus.NewRegistry()

	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "path", "status"},
	)
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"method", "path", "status"},
	)

	// OperationDuration is fed by obs.Time for every timed operation.
	OperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "operation_duration_seconds", Help: "Duration of timed operations.", Buckets: prometheus.DefBuckets},
		[]string{"op", "outcome"},
	)

	// MatrixBuilds counts cost matrices by source: "built" or "cache".
	MatrixBuilds = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "cost_matrix_total", Help: "Cost matrices produced, by source."},
		[]string{"source"},
	)
	MatrixSize = prometheus.NewHistogram(
		prometheus.HistogramOpts{Name: "cost_matrix_locations", Help: "Locations per cost matrix.", Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500}},
	)

	RenderedSeries = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "rendered_series_total", Help: "Route series drawn on charts."},
	)
	ChartExports = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "chart_exports_total", Help: "Chart exports by backend and status."},
		[]string{"backend", "status"},
	)
)

// RegisterDefault registers every collector on Registry. Safe to call more than once.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(HTTPDuration)
		Registry.MustRegister(OperationDuration)
		Registry.MustRegister(MatrixBuilds)
		Registry.MustRegister(MatrixSize)
		Registry.MustRegister(RenderedSeries)
		Registry.MustRegister(ChartExports)
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}

var regOnce sync.Once
