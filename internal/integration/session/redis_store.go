// Package session implements adapter.SessionStore on Redis and in memory.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/okr-bot/backend/internal/application/adapter"
)

const keyPrefix = "okrbot:session:"

// RedisStore keeps sessions as JSON documents with a TTL.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a new RedisStore instance.
func NewRedisStore(client *redis.Client) adapter.SessionStore {
	return &RedisStore{
		client: client,
	}
}

// Get loads the session stored under key into dest.
func (s *RedisStore) Get(ctx context.Context, key string, dest any) (bool, error) {
	data, err := s.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read session: %w", err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to decode session: %w", err)
	}
	return true, nil
}

// Set stores value under key for ttl.
func (s *RedisStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := s.client.Set(ctx, keyPrefix+key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	return nil
}

// Delete removes the session stored under key.
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
