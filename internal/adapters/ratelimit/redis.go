// Package ratelimit implements fixed-window request quotas backed by Redis or process memory.
package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/technova/careers-api/internal/core"
)

// Config describes one quota: at most Limit requests per Window for each key.
type Config struct {
	Limit  int
	Window time.Duration
	// Prefix namespaces keys so several limiters can share a Redis database.
	Prefix string
}

func (c Config) validate() error {
	if c.Limit <= 0 {
		return errors.New("rate limit must be positive")
	}
	if c.Window <= 0 {
		return errors.New("rate limit window must be positive")
	}
	return nil
}

// RedisLimiter counts requests with INCR on a key per window, so all API replicas share one quota.
type RedisLimiter struct {
	client redis.UniversalClient
	cfg    Config
	now    func() time.Time
}

// NewRedisLimiter returns a limiter that stores counters in client.
func NewRedisLimiter(client redis.UniversalClient, cfg Config) (*RedisLimiter, error) {
	if client == nil {
		return nil, errors.New("redis client is required")
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(cfg.Prefix) == "" {
		cfg.Prefix = "default"
	}
	return &RedisLimiter{client: client, cfg: cfg, now: time.Now}, nil
}

// Allow increments the caller's counter for the current window.
func (l *RedisLimiter) Allow(ctx context.Context, key string) (core.RateDecision, error) {
	now := l.now()
	window := l.cfg.Window
	index := now.UnixNano() / int64(window)
	windowKey := fmt.Sprintf("ratelimit:%s:%s:%d", l.cfg.Prefix, key, index)
	resetAfter := time.Duration(int64(window) - now.UnixNano()%int64(window))

	var incr *redis.IntCmd
	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, windowKey)
		pipe.Expire(ctx, windowKey, window)
		return nil
	})
	if err != nil {
		return core.RateDecision{}, fmt.Errorf("rate limit incr: %w", err)
	}

	count := int(incr.Val())
	return core.RateDecision{
		Allowed:    count <= l.cfg.Limit,
		Limit:      l.cfg.Limit,
		Remaining:  max(0, l.cfg.Limit-count),
		ResetAfter: resetAfter,
	}, nil
}
