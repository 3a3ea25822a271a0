// Package metrics exposes Prometheus instrumentation for the engine.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	eventsCreated    prometheus.Counter
	votesCast        prometheus.Counter
	resultsFinalized prometheus.Counter
	prizesReleased   prometheus.Counter
}

// New builds a Metrics instance on a private registry so the scrape surface
// stays limited to what this process registers.
func New(namespace string) *Metrics {
	registry := prometheus.NewRegistry()
	auto := promauto.With(registry)

	return &Metrics{
		registry: registry,
		httpRequests: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests by route and status code",
		}, []string{"method", "route", "status"}),
		httpRequestDuration: auto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		eventsCreated: auto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_created_total",
			Help:      "Total competition events created",
		}),
		votesCast: auto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "votes_cast_total",
			Help:      "Total ballots accepted",
		}),
		resultsFinalized: auto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "results_finalized_total",
			Help:      "Total events with finalized rankings",
		}),
		prizesReleased: auto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "prizes_released_total",
			Help:      "Total prize payout legs released from escrow",
		}),
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveRequest records one served HTTP request.
func (m *Metrics) ObserveRequest(method string, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (m *Metrics) EventCreated() {
	if m != nil {
		m.eventsCreated.Inc()
	}
}

func (m *Metrics) VoteCast() {
	if m != nil {
		m.votesCast.Inc()
	}
}

func (m *Metrics) ResultsFinalized() {
	if m != nil {
		m.resultsFinalized.Inc()
	}
}

func (m *Metrics) PrizeReleased() {
	if m != nil {
		m.prizesReleased.Inc()
	}
}
