package providers

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"bsd/internal/services"
	"bsd/internal/structures"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	IncEventsTotal(kind string)
	IncSnapshotDecodeFailures()
	ObserveSnapshotSaveDuration(duration time.Duration)
}

type MetricsProvider struct {
	requestsTotal        *prometheus.CounterVec
	requestDuration      *prometheus.HistogramVec
	cacheHits            prometheus.Counter
	cacheMisses          prometheus.Counter
	eventsTotal          *prometheus.CounterVec
	decodeFailures       prometheus.Counter
	snapshotSaveDuration prometheus.Histogram
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) IncEventsTotal(kind string) {
	m.eventsTotal.WithLabelValues(kind).Inc()
}

func (m *MetricsProvider) IncSnapshotDecodeFailures() {
	m.decodeFailures.Inc()
}

func (m *MetricsProvider) ObserveSnapshotSaveDuration(duration time.Duration) {
	m.snapshotSaveDuration.Observe(duration.Seconds())
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config, service services.StatsServiceInterface) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	m := &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "bsd_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bsd_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bsd_cache_hits_total",
			Help: "Total number of cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bsd_cache_misses_total",
			Help: "Total number of cache misses",
		}),

		eventsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "bsd_events_total",
			Help: "Total number of tracked activity events by kind",
		}, []string{"kind"}),

		decodeFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bsd_snapshot_decode_failures_total",
			Help: "Total number of snapshot files that failed to decode",
		}),

		snapshotSaveDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "bsd_snapshot_save_duration_seconds",
			Help:    "Duration of snapshot save sweeps in seconds",
			Buckets: prometheus.DefBuckets,
		}),
	}

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "bsd_live_identities",
		Help: "Number of bot identities in the live counter table",
	}, func() float64 {
		return float64(service.LiveIdentityCount())
	})

	return m
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) IncEventsTotal(_ string)                          {}
func (n *noopMetrics) IncSnapshotDecodeFailures()                       {}
func (n *noopMetrics) ObserveSnapshotSaveDuration(_ time.Duration)      {}
