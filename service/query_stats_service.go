package services

import "log"

// QueryStatsStore persists per-endpoint query counters.
type QueryStatsStore interface {
	RecordQuery(endpoint string) error
	QueryCounts() (map[string]int64, error)
}

// NoopQueryStatsStore is used when no Redis address is configured.
type NoopQueryStatsStore struct{}

func (NoopQueryStatsStore) RecordQuery(string) error { return nil }

func (NoopQueryStatsStore) QueryCounts() (map[string]int64, error) {
	return map[string]int64{}, nil
}

// QueryStatsService records which endpoints are queried. Recording failures
// are logged and never fail the request.
type QueryStatsService struct {
	store QueryStatsStore
}

// NewQueryStatsService constructs a QueryStatsService; a nil store disables recording.
func NewQueryStatsService(store QueryStatsStore) *QueryStatsService {
	if store == nil {
		store = NoopQueryStatsStore{}
	}
	return &QueryStatsService{store: store}
}

// Record increments the counter of endpoint.
func (qs *QueryStatsService) Record(endpoint string) {
	if err := qs.store.RecordQuery(endpoint); err != nil {
		log.Printf("[QueryStatsService] Failed to record query for %s: %v", endpoint, err)
	}
}

// Counts returns the counter of every endpoint queried so far.
func (qs *QueryStatsService) Counts() (map[string]int64, error) {
	return qs.store.QueryCounts()
}
