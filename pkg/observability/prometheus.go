package observability

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusHooks records search and cache events as Prometheus metrics.
type PrometheusHooks struct {
	loads          *prometheus.CounterVec
	loadDuration   prometheus.Histogram
	searches       *prometheus.CounterVec
	searchDuration *prometheus.HistogramVec
	visited        *prometheus.HistogramVec
	cacheEvents    *prometheus.CounterVec
	cacheBytes     *prometheus.CounterVec
}

// NewPrometheusHooks creates the metrics and registers them on reg.
func NewPrometheusHooks(reg prometheus.Registerer) (*PrometheusHooks, error) {
	h := &PrometheusHooks{
		loads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gridpath_loads_total",
				Help: "Instance loads by outcome",
			},
			[]string{"outcome"},
		),
		loadDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "gridpath_load_duration_seconds",
				Help:    "Instance load latency",
				Buckets: prometheus.DefBuckets,
			},
		),
		searches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gridpath_searches_total",
				Help: "Searches by algorithm and outcome",
			},
			[]string{"algorithm", "outcome"},
		),
		searchDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gridpath_search_duration_seconds",
				Help:    "Search latency by algorithm",
				Buckets: prometheus.ExponentialBuckets(1e-5, 4, 12),
			},
			[]string{"algorithm"},
		),
		visited: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gridpath_search_visited_vertices",
				Help:    "Vertices visited per search",
				Buckets: prometheus.ExponentialBuckets(1, 4, 12),
			},
			[]string{"algorithm"},
		),
		cacheEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gridpath_cache_events_total",
				Help: "Cache hits, misses and writes",
			},
			[]string{"key_type", "event"},
		),
		cacheBytes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gridpath_cache_written_bytes_total",
				Help: "Bytes written to the cache",
			},
			[]string{"key_type"},
		),
	}

	for _, c := range []prometheus.Collector{
		h.loads, h.loadDuration, h.searches, h.searchDuration,
		h.visited, h.cacheEvents, h.cacheBytes,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return h, nil
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func (h *PrometheusHooks) OnLoadStart(context.Context, string) {}

func (h *PrometheusHooks) OnLoadComplete(_ context.Context, _ string, _, _ int, d time.Duration, err error) {
	h.loads.WithLabelValues(outcome(err)).Inc()
	if err == nil {
		h.loadDuration.Observe(d.Seconds())
	}
}

func (h *PrometheusHooks) OnSearchStart(context.Context, string, int) {}

func (h *PrometheusHooks) OnSearchComplete(_ context.Context, algorithm string, visited int, reachable bool, d time.Duration, err error) {
	o := outcome(err)
	if err == nil && !reachable {
		o = "unreachable"
	}
	h.searches.WithLabelValues(algorithm, o).Inc()
	if err != nil {
		return
	}
	h.searchDuration.WithLabelValues(algorithm).Observe(d.Seconds())
	h.visited.WithLabelValues(algorithm).Observe(float64(visited))
}

func (h *PrometheusHooks) OnCacheHit(_ context.Context, keyType string) {
	h.cacheEvents.WithLabelValues(keyType, "hit").Inc()
}

func (h *PrometheusHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.cacheEvents.WithLabelValues(keyType, "miss").Inc()
}

func (h *PrometheusHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.cacheEvents.WithLabelValues(keyType, "set").Inc()
	h.cacheBytes.WithLabelValues(keyType).Add(float64(size))
}

var (
	_ SearchHooks = (*PrometheusHooks)(nil)
	_ CacheHooks  = (*PrometheusHooks)(nil)
)
