package redis

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"pageviews-server/db"
)

const QUERY_COUNT_KEY_PREFIX_V1 = "pageviews_queries_v1:"
const QUERY_COUNT_KEY_FORMAT_V1 = QUERY_COUNT_KEY_PREFIX_V1 + "%s"

// RedisQueryStatsDAO keeps per-endpoint query counters in Redis.
type RedisQueryStatsDAO struct {
	client db.RedisClient
}

// NewRedisQueryStatsDAO initializes a RedisQueryStatsDAO with the Redis client.
func NewRedisQueryStatsDAO(client db.RedisClient) *RedisQueryStatsDAO {
	return &RedisQueryStatsDAO{client: client}
}

// RecordQuery increments the counter of the given endpoint.
func (dao *RedisQueryStatsDAO) RecordQuery(endpoint string) error {
	key := fmt.Sprintf(QUERY_COUNT_KEY_FORMAT_V1, endpoint)
	if _, err := dao.client.Incr(key); err != nil {
		return fmt.Errorf("[RedisQueryStatsDAO] failed to increment %s: %w", key, err)
	}
	return nil
}

// QueryCounts returns the counter of every endpoint queried so far.
func (dao *RedisQueryStatsDAO) QueryCounts() (map[string]int64, error) {
	keys, err := dao.client.Keys(QUERY_COUNT_KEY_PREFIX_V1 + "*")
	if err != nil {
		return nil, fmt.Errorf("[RedisQueryStatsDAO] failed to list query keys: %w", err)
	}

	counts := make(map[string]int64, len(keys))
	for _, k := range keys {
		str, err := dao.client.Get(k)
		if err != nil {
			log.Printf("[RedisQueryStatsDAO] Skipping key %s due to error: %v", k, err)
			continue
		}
		n, err := strconv.ParseInt(str, 10, 64)
		if err != nil {
			log.Printf("[RedisQueryStatsDAO] Skipping non-numeric key %s", k)
			continue
		}
		counts[strings.TrimPrefix(k, QUERY_COUNT_KEY_PREFIX_V1)] = n
	}
	return counts, nil
}

// ResetQueryCounts deletes every query counter.
func (dao *RedisQueryStatsDAO) ResetQueryCounts() error {
	keys, err := dao.client.Keys(QUERY_COUNT_KEY_PREFIX_V1 + "*")
	if err != nil {
		return fmt.Errorf("[RedisQueryStatsDAO] failed to list query keys: %w", err)
	}
	for _, k := range keys {
		if err := dao.client.Del(k); err != nil {
			return fmt.Errorf("[RedisQueryStatsDAO] failed to delete %s: %w", k, err)
		}
	}
	return nil
}
