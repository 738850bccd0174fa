package metrics

import "time"

// NoopSink discards all measurements.
type NoopSink struct{}

func (NoopSink) UpstreamRequest(string, string, time.Duration) {}
func (NoopSink) HTTPRequest(string, int, time.Duration)       {}
func (NoopSink) Aggregation(string, int)                      {}

var _ Sink = NoopSink{}
