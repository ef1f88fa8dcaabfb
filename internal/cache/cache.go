// Package cache memoises report responses for the short TTL the dashboard
// tolerates stale data.
package cache

import (
	"context"
	"net/url"
	"sort"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Store is a byte-oriented TTL cache. Services marshal the fully-built
// response DTO and memoise it under a key derived from the request params.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration)
}

// Key builds a deterministic cache key from the report name, customer id and
// request parameters. Params are sorted so equivalent requests share a key.
func Key(report, customerID string, params url.Values) string {
	var sb strings.Builder
	sb.WriteString("report:")
	sb.WriteString(report)
	if customerID != "" {
		sb.WriteString(":")
		sb.WriteString(customerID)
	}

	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := strings.Join(params[key], ",")
		if value == "" {
			continue
		}
		sb.WriteString(":")
		sb.WriteString(key)
		sb.WriteString("=")
		sb.WriteString(value)
	}
	return sb.String()
}

// Memory is the in-process TTL store backing single-instance deployments.
type Memory struct {
	inner *gocache.Cache
}

// NewMemory creates an in-memory store with the given default TTL.
func NewMemory(defaultTTL time.Duration) *Memory {
	return &Memory{inner: gocache.New(defaultTTL, defaultTTL*2)}
}

// Get implements Store.
func (m *Memory) Get(_ context.Context, key string) ([]byte, bool) {
	if value, found := m.inner.Get(key); found {
		if payload, ok := value.([]byte); ok {
			return payload, true
		}
	}
	return nil, false
}

// Set implements Store.
func (m *Memory) Set(_ context.Context, key string, payload []byte, ttl time.Duration) {
	m.inner.Set(key, payload, ttl)
}

// Redis is the shared store used when several API instances serve the same
// dashboard. Failures degrade to cache misses.
type Redis struct {
	client *redis.Client
	logger zerolog.Logger
}

// NewRedis wraps an established Redis client.
func NewRedis(client *redis.Client, logger zerolog.Logger) *Redis {
	return &Redis{
		client: client,
		logger: logger.With().Str("component", "report_cache").Logger(),
	}
}

// Get implements Store.
func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool) {
	payload, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			r.logger.Warn().Err(err).Str("key", key).Msg("failed to read report cache")
		}
		return nil, false
	}
	return payload, true
}

// Set implements Store.
func (r *Redis) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) {
	if err := r.client.Set(ctx, key, payload, ttl).Err(); err != nil {
		r.logger.Warn().Err(err).Str("key", key).Msg("failed to store report cache")
	}
}
