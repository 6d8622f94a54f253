// Package store persists game session blobs between turns. The engine
// itself never touches storage; the HTTP adapter loads a blob here,
// runs a turn, and writes the result back.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/northpole-labs/reindeergames/internal/config"
)

// RedisStore keeps session blobs in Redis, one JSON document per
// conversation, expiring after the configured idle TTL.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisStore creates a RedisStore with the given idle TTL.
func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

// Load fetches the session blob for a conversation. A missing key is
// not an error: it decodes as "no game in progress" downstream.
func (s *RedisStore) Load(ctx context.Context, sessionID string) (map[string]any, error) {
	raw, err := s.rdb.Get(ctx, config.CacheKey.GameSessionKey(sessionID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	var values map[string]any
	if err := json.Unmarshal(raw, &values); err != nil {
		// A corrupt blob is equivalent to no session; the next turn
		// starts fresh rather than wedging the conversation.
		return nil, nil
	}
	return values, nil
}

// Save writes the session blob and refreshes its TTL.
func (s *RedisStore) Save(ctx context.Context, sessionID string, values map[string]any) error {
	raw, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	if err := s.rdb.Set(ctx, config.CacheKey.GameSessionKey(sessionID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("set session: %w", err)
	}
	return nil
}

// Delete removes the session blob, reverting the conversation to a
// fresh state on its next turn.
func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.rdb.Del(ctx, config.CacheKey.GameSessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
