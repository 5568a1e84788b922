package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastConfig() *Config {
	return &Config{
		MaxAttempts:       3,
		InitialBackoff:    time.Millisecond,
		MaxBackoff:        5 * time.Millisecond,
		BackoffMultiplier: 2.0,
	}
}

func TestDo_SucceedsFirstAttempt(t *testing.T) {
	calls := 0
	got, err := Do(context.Background(), fastConfig(), "op", func(ctx context.Context) (int, error) {
		calls++
		return 42, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 42, got)
	assert.Equal(t, 1, calls)
}

func TestDo_RecoversAfterFailures(t *testing.T) {
	calls := 0
	got, err := Do(context.Background(), fastConfig(), "op", func(ctx context.Context) (string, error) {
		calls++
		if calls < 3 {
			return "", errors.New("transient")
		}
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Equal(t, 3, calls)
}

func TestDo_PermanentStopsRetrying(t *testing.T) {
	cause := errors.New("rejected")
	calls := 0

	_, err := Do(context.Background(), fastConfig(), "op", func(ctx context.Context) (int, error) {
		calls++
		return 0, Permanent(cause)
	})

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, 1, calls)
}

func TestDo_ExhaustsAttempts(t *testing.T) {
	cause := errors.New("still broken")
	calls := 0

	_, err := Do(context.Background(), fastConfig(), "op", func(ctx context.Context) (int, error) {
		calls++
		return 0, cause
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, 3, calls)
}

func TestDo_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	_, err := Do(ctx, fastConfig(), "op", func(ctx context.Context) (int, error) {
		calls++
		return 0, errors.New("never retried")
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, calls)
}

func TestBackoffCappedAtMax(t *testing.T) {
	cfg := &Config{
		InitialBackoff:    100 * time.Millisecond,
		MaxBackoff:        300 * time.Millisecond,
		BackoffMultiplier: 2.0,
	}

	assert.Equal(t, 100*time.Millisecond, backoffFor(0, cfg))
	assert.Equal(t, 200*time.Millisecond, backoffFor(1, cfg))
	assert.Equal(t, 300*time.Millisecond, backoffFor(2, cfg))
	assert.Equal(t, 300*time.Millisecond, backoffFor(5, cfg))
}
