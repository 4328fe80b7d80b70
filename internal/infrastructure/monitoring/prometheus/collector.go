// Package prometheus wraps metric registration behind a small interface so
// that pipeline and HTTP code never touch the client library directly.
package prometheus

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector registers and serves metrics for one process.
// Registration is idempotent per metric name; registering the same name with
// a different shape is a programming error surfaced at startup.
type MetricsCollector interface {
	RegisterCounter(name, help string, labels ...string) *prometheus.CounterVec
	RegisterGauge(name, help string, labels ...string) *prometheus.GaugeVec
	RegisterHistogram(name, help string, buckets []float64, labels ...string) *prometheus.HistogramVec
	Handler() http.Handler
}

// CollectorConfig holds collector construction parameters.
type CollectorConfig struct {
	Namespace            string
	Subsystem            string
	EnableProcessMetrics bool
	EnableGoMetrics      bool
}

type collector struct {
	registry *prometheus.Registry
	config   CollectorConfig

	mu         sync.Mutex
	registered map[string]prometheus.Collector
}

// NewMetricsCollector creates a MetricsCollector backed by a private
// registry, optionally bundling process and Go runtime collectors.
func NewMetricsCollector(cfg CollectorConfig) (MetricsCollector, error) {
	if cfg.Namespace == "" {
		return nil, fmt.Errorf("prometheus: namespace is required")
	}

	registry := prometheus.NewRegistry()
	if cfg.EnableProcessMetrics {
		registry.MustRegister(prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))
	}
	if cfg.EnableGoMetrics {
		registry.MustRegister(prometheus.NewGoCollector())
	}

	return &collector{
		registry:   registry,
		config:     cfg,
		registered: make(map[string]prometheus.Collector),
	}, nil
}

func (c *collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}

// register memoizes by fully-qualified name so repeated registration of the
// same metric returns the original collector.
func (c *collector) register(name string, fresh prometheus.Collector) prometheus.Collector {
	fq := prometheus.BuildFQName(c.config.Namespace, c.config.Subsystem, name)

	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.registered[fq]; ok {
		return existing
	}
	c.registry.MustRegister(fresh)
	c.registered[fq] = fresh
	return fresh
}

func (c *collector) RegisterCounter(name, help string, labels ...string) *prometheus.CounterVec {
	fresh := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: c.config.Namespace,
		Subsystem: c.config.Subsystem,
		Name:      name,
		Help:      help,
	}, labels)
	return c.register(name, fresh).(*prometheus.CounterVec)
}

func (c *collector) RegisterGauge(name, help string, labels ...string) *prometheus.GaugeVec {
	fresh := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: c.config.Namespace,
		Subsystem: c.config.Subsystem,
		Name:      name,
		Help:      help,
	}, labels)
	return c.register(name, fresh).(*prometheus.GaugeVec)
}

func (c *collector) RegisterHistogram(name, help string, buckets []float64, labels ...string) *prometheus.HistogramVec {
	if buckets == nil {
		buckets = prometheus.DefBuckets
	}
	fresh := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: c.config.Namespace,
		Subsystem: c.config.Subsystem,
		Name:      name,
		Help:      help,
		Buckets:   buckets,
	}, labels)
	return c.register(name, fresh).(*prometheus.HistogramVec)
}
