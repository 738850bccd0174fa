package metrics

import (
	"log"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusSink implements Sink using the Prometheus client library.
// Registration errors are logged but never propagated.
type PrometheusSink struct {
	upstreamRequestsTotal *prometheus.CounterVec
	upstreamDuration      *prometheus.HistogramVec

	httpRequestsTotal *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec

	aggregatedResponses *prometheus.HistogramVec
}

// NewPrometheusSink creates a sink and registers its collectors with reg.
func NewPrometheusSink(reg prometheus.Registerer) *PrometheusSink {
	s := &PrometheusSink{}
	s.initUpstreamMetrics(reg)
	s.initHTTPMetrics(reg)
	s.initAggregationMetrics(reg)
	return s
}

func (s *PrometheusSink) initUpstreamMetrics(reg prometheus.Registerer) {
	s.upstreamRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pageviews_upstream_requests_total",
		Help: "Total number of requests sent to the Wikimedia pageviews API.",
	}, []string{"endpoint", "status_class"})

	s.upstreamDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pageviews_upstream_request_duration_seconds",
		Help:    "Wikimedia pageviews API latency in seconds.",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	}, []string{"endpoint"})

	s.register(reg, s.upstreamRequestsTotal, "pageviews_upstream_requests_total")
	s.register(reg, s.upstreamDuration, "pageviews_upstream_request_duration_seconds")
}

func (s *PrometheusSink) initHTTPMetrics(reg prometheus.Registerer) {
	s.httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pageviews_http_requests_total",
		Help: "Total number of inbound HTTP requests.",
	}, []string{"route", "status"})

	s.httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pageviews_http_request_duration_seconds",
		Help:    "Inbound HTTP request latency in seconds.",
		Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
	}, []string{"route"})

	s.register(reg, s.httpRequestsTotal, "pageviews_http_requests_total")
	s.register(reg, s.httpDuration, "pageviews_http_request_duration_seconds")
}

func (s *PrometheusSink) initAggregationMetrics(reg prometheus.Registerer) {
	s.aggregatedResponses = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pageviews_aggregated_responses",
		Help:    "Number of upstream responses folded into one aggregation.",
		Buckets: []float64{1, 2, 4, 7},
	}, []string{"kind"})

	s.register(reg, s.aggregatedResponses, "pageviews_aggregated_responses")
}

// register attempts to register a collector, logging any errors without propagating them.
func (s *PrometheusSink) register(reg prometheus.Registerer, c prometheus.Collector, name string) {
	if err := reg.Register(c); err != nil {
		log.Printf("metrics: failed to register %s: %v", name, err)
	}
}

func (s *PrometheusSink) UpstreamRequest(endpoint, statusClass string, duration time.Duration) {
	s.upstreamRequestsTotal.WithLabelValues(endpoint, statusClass).Inc()
	s.upstreamDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (s *PrometheusSink) HTTPRequest(route string, status int, duration time.Duration) {
	s.httpRequestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
	s.httpDuration.WithLabelValues(route).Observe(duration.Seconds())
}

func (s *PrometheusSink) Aggregation(kind string, responses int) {
	s.aggregatedResponses.WithLabelValues(kind).Observe(float64(responses))
}

var _ Sink = (*PrometheusSink)(nil)
