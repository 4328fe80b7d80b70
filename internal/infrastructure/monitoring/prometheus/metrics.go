package prometheus

import "github.com/prometheus/client_golang/prometheus"

// PipelineMetrics covers the corpus unification pipeline.
type PipelineMetrics struct {
	InstancesProcessed *prometheus.CounterVec
	AnnotationsDropped *prometheus.CounterVec
	InstancesSkipped   *prometheus.CounterVec
	RunDuration        *prometheus.HistogramVec
}

// NewPipelineMetrics registers the pipeline metric set on the collector.
func NewPipelineMetrics(c MetricsCollector) *PipelineMetrics {
	return &PipelineMetrics{
		InstancesProcessed: c.RegisterCounter(
			"instances_processed_total",
			"Corpus instances processed, by split and result.",
			"split", "result",
		),
		AnnotationsDropped: c.RegisterCounter(
			"annotations_dropped_total",
			"Malformed annotation fragments dropped during normalization.",
			"split",
		),
		InstancesSkipped: c.RegisterCounter(
			"instances_skipped_total",
			"Instances skipped because one schema version had no counterpart.",
			"split",
		),
		RunDuration: c.RegisterHistogram(
			"run_duration_seconds",
			"Wall-clock duration of a full pipeline run.",
			[]float64{1, 5, 15, 30, 60, 120, 300, 600},
			"stage",
		),
	}
}

// HTTPMetrics covers the browse API surface.
type HTTPMetrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// NewHTTPMetrics registers the HTTP metric set on the collector.
func NewHTTPMetrics(c MetricsCollector) *HTTPMetrics {
	return &HTTPMetrics{
		RequestsTotal: c.RegisterCounter(
			"http_requests_total",
			"HTTP requests served, by method, route and status code.",
			"method", "route", "status",
		),
		RequestDuration: c.RegisterHistogram(
			"http_request_duration_seconds",
			"HTTP request latency.",
			nil,
			"method", "route",
		),
	}
}
