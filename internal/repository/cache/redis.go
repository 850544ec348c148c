// Package cache decorates a record source with a Redis snapshot cache.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/crimemap/backend/internal/domain"
)

// DefaultKey is the Redis key holding the cached record list
const DefaultKey = "crimemap:records"

// Source serves records from Redis and falls through to the inner source on a miss.
// A nil client disables caching.
type Source struct {
	inner domain.RecordSource
	rc    *redis.Client
	key   string
	ttl   time.Duration
}

// NewSource wraps inner with a cache of the given TTL
func NewSource(inner domain.RecordSource, rc *redis.Client, ttl time.Duration) *Source {
	return &Source{inner: inner, rc: rc, key: DefaultKey, ttl: ttl}
}

// Open creates a client for addr; it returns nil when addr is empty
func Open(addr, password string, db int) *redis.Client {
	if addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
}

// FetchRecords returns cached records when present. Redis errors are logged
// and treated as misses so the cache never blocks a load.
func (s *Source) FetchRecords(ctx context.Context) ([]domain.RecordInput, error) {
	if s.rc == nil {
		return s.inner.FetchRecords(ctx)
	}

	raw, err := s.rc.Get(ctx, s.key).Bytes()
	switch {
	case err == nil:
		var records []domain.RecordInput
		if jerr := json.Unmarshal(raw, &records); jerr == nil {
			return records, nil
		}
		zap.L().Warn("discarding undecodable cached records", zap.String("key", s.key))
	case err != redis.Nil:
		zap.L().Warn("redis get failed", zap.String("key", s.key), zap.Error(err))
	}

	records, err := s.inner.FetchRecords(ctx)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(records); err == nil {
		if err := s.rc.Set(ctx, s.key, payload, s.ttl).Err(); err != nil {
			zap.L().Warn("redis set failed", zap.String("key", s.key), zap.Error(err))
		}
	}
	return records, nil
}

// Invalidate drops the cached snapshot so the next fetch reaches the inner source
func (s *Source) Invalidate(ctx context.Context) error {
	if s.rc == nil {
		return nil
	}
	if err := s.rc.Del(ctx, s.key).Err(); err != nil {
		return eris.Wrap(err, "cache: failed to invalidate records")
	}
	return nil
}

// Health checks the inner source and, when configured, Redis
func (s *Source) Health(ctx context.Context) error {
	if s.rc != nil {
		if err := s.rc.Ping(ctx).Err(); err != nil {
			return eris.Wrap(err, "cache: redis ping failed")
		}
	}
	return s.inner.Health(ctx)
}
