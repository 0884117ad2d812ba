package ratelimit

import (
	"context"
	"log/slog"
	"math"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/technova/careers-api/internal/core"
)

type memoryEntry struct {
	// window is the index of the fixed window the bucket belongs to.
	window int64
	// bucket never refills; a new one is issued when the window changes.
	bucket *rate.Limiter
}

// MemoryLimiter counts requests per key in process memory using the same
// fixed windows as RedisLimiter: at most Limit requests per key per Window.
type MemoryLimiter struct {
	cfg     Config
	mu      sync.Mutex
	entries map[string]*memoryEntry
	now     func() time.Time
	logger  *slog.Logger
}

// NewMemoryLimiter returns an in-process limiter.
func NewMemoryLimiter(cfg Config, logger *slog.Logger) (*MemoryLimiter, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &MemoryLimiter{
		cfg:     cfg,
		entries: make(map[string]*memoryEntry),
		now:     time.Now,
		logger:  logger.With("component", "ratelimit", "backend", "memory"),
	}, nil
}

func (l *MemoryLimiter) windowIndex(now time.Time) int64 {
	return now.UnixNano() / int64(l.cfg.Window)
}

// Allow takes one request from the caller's quota for the current window.
func (l *MemoryLimiter) Allow(_ context.Context, key string) (core.RateDecision, error) {
	now := l.now()
	index := l.windowIndex(now)
	resetAfter := time.Duration(int64(l.cfg.Window) - now.UnixNano()%int64(l.cfg.Window))

	l.mu.Lock()
	entry, ok := l.entries[key]
	if !ok || entry.window != index {
		entry = &memoryEntry{window: index, bucket: rate.NewLimiter(0, l.cfg.Limit)}
		l.entries[key] = entry
	}
	allowed := entry.bucket.AllowN(now, 1)
	remaining := entry.bucket.TokensAt(now)
	l.mu.Unlock()

	return core.RateDecision{
		Allowed:    allowed,
		Limit:      l.cfg.Limit,
		Remaining:  max(0, int(math.Floor(remaining))),
		ResetAfter: resetAfter,
	}, nil
}

// Len returns the number of tracked keys.
func (l *MemoryLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Sweep drops keys whose window has ended.
func (l *MemoryLimiter) Sweep() int {
	current := l.windowIndex(l.now())

	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for key, entry := range l.entries {
		if entry.window < current {
			delete(l.entries, key)
			removed++
		}
	}
	return removed
}

// Run sweeps expired keys once per window until ctx is done.
func (l *MemoryLimiter) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.cfg.Window)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if removed := l.Sweep(); removed > 0 {
				l.logger.DebugContext(ctx, "evicted expired rate limit keys", "count", removed)
			}
		}
	}
}
