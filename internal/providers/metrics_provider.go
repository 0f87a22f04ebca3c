package providers

import (
	"goalboard/internal/models"
	"goalboard/internal/structures"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// GoalStateReader is the part of the goal service the gauges read from.
type GoalStateReader interface {
	GetCurrent() int
	GetProgress() float64
	GetContributionCount() int
}

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	ObserveContribution(kind models.ContributionType, points int)
	SetWsClients(count int)
}

type MetricsProvider struct {
	requestsTotal      *prometheus.CounterVec
	requestDuration    *prometheus.HistogramVec
	cacheHits          prometheus.Counter
	cacheMisses        prometheus.Counter
	contributionsAdded *prometheus.CounterVec
	pointsAdded        prometheus.Counter
	wsClients          prometheus.Gauge
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

func (m *MetricsProvider) ObserveContribution(kind models.ContributionType, points int) {
	m.contributionsAdded.WithLabelValues(string(kind)).Inc()
	if points > 0 {
		m.pointsAdded.Add(float64(points))
	}
}

func (m *MetricsProvider) SetWsClients(count int) {
	m.wsClients.Set(float64(count))
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

func NewMetricsProvider(conf *structures.Config, state GoalStateReader) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	m := &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "goalboard_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "goalboard_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "goalboard_cache_hits_total",
			Help: "Total number of cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "goalboard_cache_misses_total",
			Help: "Total number of cache misses",
		}),

		contributionsAdded: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "goalboard_contributions_added_total",
			Help: "Contributions added through the random event command",
		}, []string{"type"}),

		pointsAdded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "goalboard_points_added_total",
			Help: "Goal points added through the random event command",
		}),

		wsClients: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "goalboard_ws_clients",
			Help: "Connected live update clients",
		}),
	}

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goalboard_current_points",
		Help: "Current points toward the community goal",
	}, func() float64 {
		return float64(state.GetCurrent())
	})

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goalboard_goal_progress",
		Help: "Goal progress in the range 0..1",
	}, func() float64 {
		return state.GetProgress()
	})

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goalboard_contributions",
		Help: "Contributions currently in the ledger",
	}, func() float64 {
		return float64(state.GetContributionCount())
	})

	return m
}

// noopMetrics is used when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                     {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration)     {}
func (n *noopMetrics) IncCacheHits()                                        {}
func (n *noopMetrics) IncCacheMisses()                                      {}
func (n *noopMetrics) ObserveContribution(_ models.ContributionType, _ int) {}
func (n *noopMetrics) SetWsClients(_ int)                                   {}
