package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusSink_UpstreamRequest(t *testing.T) {
	reg := prometheus.NewRegistry()
	s := NewPrometheusSink(reg)

	s.UpstreamRequest("top", "2xx", 120*time.Millisecond)
	s.UpstreamRequest("top", "2xx", 80*time.Millisecond)
	s.UpstreamRequest("per_article", "4xx", 10*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(s.upstreamRequestsTotal.WithLabelValues("top", "2xx")))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.upstreamRequestsTotal.WithLabelValues("per_article", "4xx")))
	assert.Equal(t, 2, testutil.CollectAndCount(s.upstreamDuration))
}

func TestPrometheusSink_HTTPRequest(t *testing.T) {
	reg := prometheus.NewRegistry()
	s := NewPrometheusSink(reg)

	s.HTTPRequest("/most-viewed-articles", 200, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(s.httpRequestsTotal.WithLabelValues("/most-viewed-articles", "200")))
}

func TestPrometheusSink_Aggregation(t *testing.T) {
	reg := prometheus.NewRegistry()
	s := NewPrometheusSink(reg)

	s.Aggregation("top_articles", 7)

	families, err := reg.Gather()
	require.NoError(t, err)
	var found bool
	for _, f := range families {
		if f.GetName() == "pageviews_aggregated_responses" {
			found = true
			assert.Equal(t, uint64(1), f.GetMetric()[0].GetHistogram().GetSampleCount())
		}
	}
	assert.True(t, found, "aggregation histogram not gathered")
}

func TestPrometheusSink_DuplicateRegistrationDoesNotPanic(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewPrometheusSink(reg)

	assert.NotPanics(t, func() {
		s := NewPrometheusSink(reg)
		s.UpstreamRequest("top", "5xx", time.Second)
	})
}

func TestStatusClass(t *testing.T) {
	tests := map[int]string{200: "2xx", 204: "2xx", 301: "3xx", 404: "4xx", 503: "5xx", 0: "error"}
	for status, want := range tests {
		assert.Equal(t, want, StatusClass(status), "status %d", status)
	}
}

func TestNoopSink(t *testing.T) {
	var s Sink = NoopSink{}
	assert.NotPanics(t, func() {
		s.UpstreamRequest("top", "2xx", time.Second)
		s.HTTPRequest("/", 200, time.Second)
		s.Aggregation("sum", 1)
	})
}
