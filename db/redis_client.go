package db

import "context"

// RedisClient defines the Redis operations used by the DAOs.
type RedisClient interface {
	Set(key, value string) error
	Get(key string) (string, error)
	Incr(key string) (int64, error)
	GetContext() context.Context
	Ping() error
	Keys(pattern string) ([]string, error)
	Del(key string) error
}
