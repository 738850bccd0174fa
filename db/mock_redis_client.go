package db

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strconv"
	"sync"
)

// MockRedisClient simulates a Redis client for testing purposes.
type MockRedisClient struct {
	data    map[string]string // Key-value store
	mu      sync.RWMutex
	context context.Context
}

// NewMockRedisClient initializes a new MockRedisClient.
func NewMockRedisClient(ctx context.Context) *MockRedisClient {
	return &MockRedisClient{
		data:    make(map[string]string),
		context: ctx,
	}
}

// Set stores a key-value pair in the mock Redis.
func (m *MockRedisClient) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

// Get retrieves a value for a given key from the mock Redis.
func (m *MockRedisClient) Get(key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, exists := m.data[key]
	if !exists {
		return "", fmt.Errorf("key not found: %s", key)
	}
	return value, nil
}

// Incr increments the integer stored at key, starting from zero.
func (m *MockRedisClient) Incr(key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	if v, exists := m.data[key]; exists {
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("value at %s is not an integer", key)
		}
		n = parsed
	}
	n++
	m.data[key] = strconv.FormatInt(n, 10)
	return n, nil
}

// Keys returns the sorted keys matching a glob pattern.
func (m *MockRedisClient) Keys(pattern string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := []string{}
	for k := range m.data {
		if ok, _ := path.Match(pattern, k); ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (m *MockRedisClient) Del(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// GetContext returns the mock Redis client's context.
func (m *MockRedisClient) GetContext() context.Context {
	return m.context
}

// Ping simulates a Redis Ping operation.
func (m *MockRedisClient) Ping() error {
	return nil
}
