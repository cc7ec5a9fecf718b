package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "threatscape_http_requests_total",
		Help: "Total HTTP requests by method, path and status code.",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "threatscape_http_request_duration_seconds",
		Help:    "HTTP request latency distribution.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	enhancementDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "threatscape_enhancement_duration_seconds",
		Help:    "Duration of dataset enhancement runs.",
		Buckets: prometheus.DefBuckets,
	})

	enhancementNodes = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "threatscape_enhancement_nodes",
		Help: "Node count produced by the most recent enhancement run.",
	})

	enhancementEdges = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "threatscape_enhancement_edges",
		Help: "Edge count produced by the most recent enhancement run.",
	})
)

// observeEnhancement records the outcome of one enhancement run.
func observeEnhancement(elapsed time.Duration, nodeCount, edgeCount int) {
	enhancementDuration.Observe(elapsed.Seconds())
	enhancementNodes.Set(float64(nodeCount))
	enhancementEdges.Set(float64(edgeCount))
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware records request counts and latencies.
func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Upgrade requests need the raw writer for hijacking.
		if r.Header.Get("Upgrade") == "websocket" {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(recorder, r)

		httpRequestsTotal.WithLabelValues(r.Method, r.URL.Path, strconv.Itoa(recorder.status)).Inc()
		httpRequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(time.Since(start).Seconds())
	})
}
