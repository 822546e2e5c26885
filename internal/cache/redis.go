package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/XavierBriggs/Hermes/pkg/contracts"
	"github.com/redis/go-redis/v9"
)

// Key namespace for cached payloads.
// Format: hermes:payload:{endpoint_path}?{canonical_query}
const redisKeyPrefix = "hermes:payload:"

// Redis adapts a Redis client to the Cache contract. TTL semantics match the
// memory store: SET with expiry restarts the clock, GET on an expired key is
// a miss.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

var _ contracts.Cache = (*Redis)(nil)

// NewRedis creates a Redis-backed store with the given TTL
func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{
		client: client,
		ttl:    ttl,
	}
}

// Get returns the value stored under key, treating redis.Nil as a miss
func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := r.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}
	return data, true, nil
}

// Set stores value under key with the configured TTL
func (r *Redis) Set(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, redisKeyPrefix+key, value, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}
