package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// UpstreamRequestsTotal - вызовы удаленного API по endpoint и статусу
	UpstreamRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "admin_console",
		Subsystem: "upstream",
		Name:      "requests_total",
		Help:      "Total calls made to the remote API.",
	}, []string{"method", "endpoint", "status"})

	// UpstreamDuration - длительность вызовов удаленного API
	UpstreamDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "admin_console",
		Subsystem: "upstream",
		Name:      "request_duration_seconds",
		Help:      "Remote API call duration in seconds.",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	}, []string{"method", "endpoint"})

	// HTTPRequestsTotal - запросы к самой консоли
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "admin_console",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests handled by the console.",
	}, []string{"method", "route", "status"})

	// HTTPDuration - время обработки запросов консолью
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "admin_console",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "Console request duration in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	// MutationsTotal - результаты мутаций (saved, failed, shared)
	MutationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "admin_console",
		Subsystem: "mutations",
		Name:      "total",
		Help:      "Page mutations by action and outcome.",
	}, []string{"action", "outcome"})

	// StagedVideos - видео, выбранные и еще не загруженные
	StagedVideos = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "admin_console",
		Subsystem: "staging",
		Name:      "videos",
		Help:      "Number of staged tutorial videos awaiting upload.",
	})

	// StagingSweptTotal - брошенные видео, удаленные воркером
	StagingSweptTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "admin_console",
		Subsystem: "staging",
		Name:      "swept_total",
		Help:      "Abandoned staged videos removed by the sweeper.",
	})
)

// ObserveUpstream записывает один вызов API
func ObserveUpstream(method, path string, status int, elapsed time.Duration) {
	endpoint := NormalizeEndpoint(path)
	UpstreamRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(status)).Inc()
	UpstreamDuration.WithLabelValues(method, endpoint).Observe(elapsed.Seconds())
}

// ObserveHTTP записывает запрос к консоли
func ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// NormalizeEndpoint заменяет идентификаторы в пути на :id, чтобы не раздувать кардинальность
func NormalizeEndpoint(path string) string {
	if idx := strings.Index(path, "?"); idx >= 0 {
		path = path[:idx]
	}
	segments := strings.Split(strings.Trim(path, "/"), "/")
	for i, seg := range segments {
		if looksLikeID(seg) {
			segments[i] = ":id"
		}
	}
	return "/" + strings.Join(segments, "/")
}

func looksLikeID(seg string) bool {
	if seg == "" {
		return false
	}
	if _, err := strconv.ParseUint(seg, 10, 64); err == nil {
		return true
	}
	// ObjectID (24 hex) и uuid
	if len(seg) == 24 || len(seg) == 36 {
		for _, r := range seg {
			if !strings.ContainsRune("0123456789abcdefABCDEF-", r) {
				return false
			}
		}
		return true
	}
	return false
}
