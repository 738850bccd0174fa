package db

import (
	"context"
	"fmt"
	"log"

	"github.com/go-redis/redis/v8"
)

// GoRedisClient adapts a go-redis client to RedisClient.
type GoRedisClient struct {
	client *redis.Client
	ctx    context.Context
}

// NewGoRedisClient wraps client and verifies the connection.
func NewGoRedisClient(ctx context.Context, client *redis.Client) (*GoRedisClient, error) {
	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("could not connect to Redis: %w", err)
	}
	log.Println("[GoRedisClient] Connected to Redis")

	return &GoRedisClient{
		client: client,
		ctx:    ctx,
	}, nil
}

// Set sets a key-value pair in Redis
func (r *GoRedisClient) Set(key, value string) error {
	return r.client.Set(r.ctx, key, value, 0).Err()
}

// Get retrieves the value for a given key from Redis
func (r *GoRedisClient) Get(key string) (string, error) {
	return r.client.Get(r.ctx, key).Result()
}

// Incr atomically increments the counter stored at key.
func (r *GoRedisClient) Incr(key string) (int64, error) {
	return r.client.Incr(r.ctx, key).Result()
}

func (r *GoRedisClient) Keys(pattern string) ([]string, error) {
	return r.client.Keys(r.ctx, pattern).Result()
}

func (r *GoRedisClient) Del(key string) error {
	return r.client.Del(r.ctx, key).Err()
}

func (r *GoRedisClient) GetContext() context.Context {
	return r.ctx
}

func (r *GoRedisClient) Ping() error {
	_, err := r.client.Ping(r.ctx).Result()
	return err
}

// Close releases the underlying connection pool.
func (r *GoRedisClient) Close() error {
	return r.client.Close()
}
