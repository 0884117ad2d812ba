package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/technova/careers-api/internal/testutil"
)

func TestConfigValidation(t *testing.T) {
	_, err := NewMemoryLimiter(Config{Limit: 0, Window: time.Minute}, nil)
	require.Error(t, err)
	_, err = NewMemoryLimiter(Config{Limit: 5, Window: 0}, nil)
	require.Error(t, err)
	_, err = NewRedisLimiter(nil, Config{Limit: 5, Window: time.Minute})
	require.Error(t, err)
}

func TestMemoryLimiter_Allow(t *testing.T) {
	l, err := NewMemoryLimiter(Config{Limit: 3, Window: time.Minute}, nil)
	require.NoError(t, err)
	now := testutil.TestTime()
	l.now = func() time.Time { return now }
	ctx := context.Background()

	for i := range 3 {
		d, allowErr := l.Allow(ctx, "10.0.0.1")
		require.NoError(t, allowErr)
		assert.True(t, d.Allowed, "request %d", i+1)
		assert.Equal(t, 3, d.Limit)
		assert.Equal(t, 2-i, d.Remaining)
	}

	d, err := l.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.Equal(t, 0, d.Remaining)
	assert.Equal(t, time.Minute, d.ResetAfter)

	// Other clients are unaffected.
	other, err := l.Allow(ctx, "10.0.0.2")
	require.NoError(t, err)
	assert.True(t, other.Allowed)

	// Nothing comes back before the window ends.
	now = now.Add(30 * time.Second)
	d, err = l.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.Equal(t, 30*time.Second, d.ResetAfter)

	// The next window starts with a full quota.
	now = now.Add(30 * time.Second)
	d, err = l.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, d.Allowed)
	assert.Equal(t, 2, d.Remaining)
}

func TestMemoryLimiter_QuotaHoldsForWholeWindow(t *testing.T) {
	l, err := NewMemoryLimiter(Config{Limit: 5, Window: 15 * time.Minute}, nil)
	require.NoError(t, err)
	start := testutil.TestTime()
	now := start
	l.now = func() time.Time { return now }
	ctx := context.Background()

	allowed := 0
	for i := range 15 {
		now = start.Add(time.Duration(i) * time.Minute)
		d, allowErr := l.Allow(ctx, "192.0.2.7")
		require.NoError(t, allowErr)
		if d.Allowed {
			allowed++
		}
	}
	assert.Equal(t, 5, allowed, "requests allowed inside one 15m window")

	now = start.Add(15 * time.Minute)
	d, err := l.Allow(ctx, "192.0.2.7")
	require.NoError(t, err)
	assert.True(t, d.Allowed)
	assert.Equal(t, 4, d.Remaining)
}

func TestMemoryLimiter_Sweep(t *testing.T) {
	l, err := NewMemoryLimiter(Config{Limit: 1, Window: time.Minute}, nil)
	require.NoError(t, err)
	now := testutil.TestTime()
	l.now = func() time.Time { return now }

	_, _ = l.Allow(context.Background(), "a")
	now = now.Add(time.Minute)
	_, _ = l.Allow(context.Background(), "b")
	require.Equal(t, 2, l.Len())

	assert.Equal(t, 1, l.Sweep())
	assert.Equal(t, 1, l.Len())
}

func TestMemoryLimiter_RunStopsOnCancel(t *testing.T) {
	l, err := NewMemoryLimiter(Config{Limit: 1, Window: 10 * time.Millisecond}, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- l.Run(ctx) }()

	cancel()
	select {
	case runErr := <-done:
		assert.NoError(t, runErr)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRedisLimiter_Allow(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer client.Close()

	l, err := NewRedisLimiter(client, Config{Limit: 2, Window: time.Minute, Prefix: "apply"})
	require.NoError(t, err)
	fixed := time.Unix(60*28_333_333+45, 0)
	l.now = func() time.Time { return fixed }
	ctx := context.Background()

	first, err := l.Allow(ctx, "192.0.2.1")
	require.NoError(t, err)
	assert.True(t, first.Allowed)
	assert.Equal(t, 1, first.Remaining)
	assert.Equal(t, 15*time.Second, first.ResetAfter)

	second, err := l.Allow(ctx, "192.0.2.1")
	require.NoError(t, err)
	assert.True(t, second.Allowed)
	assert.Equal(t, 0, second.Remaining)

	third, err := l.Allow(ctx, "192.0.2.1")
	require.NoError(t, err)
	assert.False(t, third.Allowed)

	ttl, err := client.TTL(ctx, "ratelimit:apply:192.0.2.1:28333333").Result()
	require.NoError(t, err)
	assert.Positive(t, ttl)

	// Next window starts a fresh counter.
	l.now = func() time.Time { return fixed.Add(time.Minute) }
	next, err := l.Allow(ctx, "192.0.2.1")
	require.NoError(t, err)
	assert.True(t, next.Allowed)
}
