// README: Prometheus counters and histograms for planner actions, on a private registry.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	OutcomeOK         = "ok"
	OutcomeInvalid    = "invalid"
	OutcomeLLMError   = "llm_error"
	OutcomeParseError = "parse_error"
	OutcomeError      = "error"

	UpstreamLLM    = "llm"
	UpstreamSearch = "search"
	UpstreamRoute  = "route"
)

type Metrics struct {
	registry    *prometheus.Registry
	itineraries *prometheus.CounterVec
	attractions *prometheus.CounterVec
	upstream    *prometheus.HistogramVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		itineraries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tripplanner_itinerary_requests_total",
			Help: "Itinerary generations by outcome.",
		}, []string{"outcome"}),
		attractions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tripplanner_attraction_requests_total",
			Help: "Attraction lookups by outcome.",
		}, []string{"outcome"}),
		upstream: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tripplanner_upstream_duration_seconds",
			Help:    "Latency of calls to the LLM, search and routing upstreams.",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 40, 60},
		}, []string{"upstream"}),
	}
	m.registry.MustRegister(
		m.itineraries,
		m.attractions,
		m.upstream,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) Itinerary(outcome string) {
	m.itineraries.WithLabelValues(outcome).Inc()
}

func (m *Metrics) Attractions(outcome string) {
	m.attractions.WithLabelValues(outcome).Inc()
}

// ObserveUpstream records the time since start for the named upstream.
func (m *Metrics) ObserveUpstream(upstream string, start time.Time) {
	m.upstream.WithLabelValues(upstream).Observe(time.Since(start).Seconds())
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
