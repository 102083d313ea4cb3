package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func TestCircuitBreaker_Lifecycle(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	cb := newCircuitBreaker("backend", CircuitBreakerConfig{
		ErrorThreshold:   2,
		Timeout:          time.Second,
		SuccessThreshold: 2,
	}, clock.Now)

	fail := func() error { return errBoom }
	ok := func() error { return nil }

	require.ErrorIs(t, cb.Execute(ctx, fail), errBoom)
	assert.Equal(t, StateClosed, cb.State())
	require.ErrorIs(t, cb.Execute(ctx, fail), errBoom)
	assert.Equal(t, StateOpen, cb.State())

	called := false
	err := cb.Execute(ctx, func() error { called = true; return nil })
	require.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, called)

	clock.Advance(2 * time.Second)
	require.NoError(t, cb.Execute(ctx, ok))
	assert.Equal(t, StateHalfOpen, cb.State())
	require.NoError(t, cb.Execute(ctx, ok))
	assert.Equal(t, StateClosed, cb.State())
}

func TestCircuitBreaker_HalfOpenFailureReopens(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Now()}
	cb := newCircuitBreaker("backend", CircuitBreakerConfig{ErrorThreshold: 1, Timeout: time.Second, SuccessThreshold: 1}, clock.Now)

	_ = cb.Execute(ctx, func() error { return errBoom })
	clock.Advance(2 * time.Second)
	_ = cb.Execute(ctx, func() error { return errBoom })
	assert.Equal(t, StateOpen, cb.State())
}

func TestCircuitBreaker_SuccessResetsFailures(t *testing.T) {
	ctx := context.Background()
	cb := NewCircuitBreaker("backend", CircuitBreakerConfig{ErrorThreshold: 2, Timeout: time.Minute, SuccessThreshold: 1})

	_ = cb.Execute(ctx, func() error { return errBoom })
	_ = cb.Execute(ctx, func() error { return nil })
	_ = cb.Execute(ctx, func() error { return errBoom })
	assert.Equal(t, StateClosed, cb.State())
}

func TestRetry_SucceedsAfterFailures(t *testing.T) {
	r := NewRetry("profile", RetryConfig{MaxAttempts: 3, InitialBackoff: time.Millisecond, MaxBackoff: 2 * time.Millisecond, BackoffFactor: 2})

	attempts := 0
	got, err := Do(context.Background(), r, func() (string, error) {
		attempts++
		if attempts < 3 {
			return "", errBoom
		}
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Equal(t, 3, attempts)
}

func TestRetry_StopsAtMaxAttempts(t *testing.T) {
	r := NewRetry("profile", RetryConfig{MaxAttempts: 2, InitialBackoff: time.Millisecond, BackoffFactor: 2})

	attempts := 0
	err := r.Execute(context.Background(), func() error {
		attempts++
		return errBoom
	})
	require.ErrorIs(t, err, errBoom)
	assert.Equal(t, 2, attempts)
}

func TestRetry_NonRetryableError(t *testing.T) {
	r := NewRetry("profile", DefaultRetryConfig())

	attempts := 0
	err := r.Execute(context.Background(), func() error {
		attempts++
		return ErrCircuitOpen
	})
	require.ErrorIs(t, err, ErrCircuitOpen)
	assert.Equal(t, 1, attempts)
}

func TestRetry_ContextCanceledDuringBackoff(t *testing.T) {
	r := NewRetry("profile", RetryConfig{MaxAttempts: 3, InitialBackoff: time.Hour, BackoffFactor: 2})
	ctx, cancel := context.WithCancel(context.Background())

	err := r.Execute(ctx, func() error {
		cancel()
		return errBoom
	})
	require.ErrorIs(t, err, ErrContextCanceled)
	require.ErrorIs(t, err, context.Canceled)
}
