package metrics

import (
	"encoding/json"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/skycastapp/skycast-api/internal/health"
)

var (
	// Upstream weather provider metrics

	UpstreamRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "skycast",
		Name:      "upstream_request_duration_seconds",
		Help:      "Latency of calls to the weather provider.",
		Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
	}, []string{"endpoint", "outcome"})

	UpstreamRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "skycast",
		Name:      "upstream_requests_total",
		Help:      "Total calls to the weather provider, by endpoint and outcome.",
	}, []string{"endpoint", "outcome"})

	ForecastFallbacksTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "skycast",
		Name:      "forecast_fallbacks_total",
		Help:      "Times the One Call forecast failed over to the 5-day endpoint.",
	})

	// Store stats, refreshed periodically by the monitoring collector

	UsersTotal = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "skycast",
		Name:      "users_total",
		Help:      "Number of registered users.",
	})

	FavoritesTotal = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "skycast",
		Name:      "favorite_cities_total",
		Help:      "Number of stored favorite-city records.",
	})

	// HTTP metrics

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "skycast",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "skycast",
		Name:      "http_requests_total",
		Help:      "Total HTTP requests.",
	}, []string{"method", "path", "status"})
)

func Register() {
	prometheus.MustRegister(
		UpstreamRequestDuration,
		UpstreamRequestsTotal,
		ForecastFallbacksTotal,
		UsersTotal,
		FavoritesTotal,
		HTTPRequestDuration,
		HTTPRequestsTotal,
	)
}

// NewServer serves /metrics plus the liveness and readiness probes on the
// internal port.
func NewServer(addr string, checker *health.Checker) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeHealth(w, http.StatusOK, checker.Liveness(r.Context()))
	})
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		result := checker.Readiness(r.Context())
		status := http.StatusOK
		if result.Status != "up" {
			status = http.StatusServiceUnavailable
		}
		writeHealth(w, status, result)
	})
	return &http.Server{Addr: addr, Handler: mux}
}

func writeHealth(w http.ResponseWriter, status int, result health.HealthResult) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(result)
}
