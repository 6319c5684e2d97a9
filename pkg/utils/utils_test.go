package utils

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCalculateExponentialBackoffWithJitter(t *testing.T) {
	assert.Equal(t, time.Duration(0), CalculateExponentialBackoffWithJitter(0, time.Millisecond, time.Second))

	for count := 1; count <= 5; count++ {
		want := 100 * time.Millisecond << (count - 1)
		got := CalculateExponentialBackoffWithJitter(count, 100*time.Millisecond, time.Hour)
		assert.GreaterOrEqual(t, got, want-want/8)
		assert.Less(t, got, want+want/8)
	}

	assert.Equal(t, time.Second, CalculateExponentialBackoffWithJitter(20, 100*time.Millisecond, time.Second))
}

func TestRetryWithBackoff(t *testing.T) {
	errRetry := errors.New("retry")
	errFatal := errors.New("fatal")
	retryable := func(err error) bool { return errors.Is(err, errRetry) }

	calls := 0
	err := RetryWithBackoff(context.Background(), 3, time.Millisecond, time.Millisecond, retryable, func() error {
		calls++
		if calls < 3 {
			return errRetry
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)

	calls = 0
	err = RetryWithBackoff(context.Background(), 5, time.Millisecond, time.Millisecond, retryable, func() error {
		calls++
		return errFatal
	})
	assert.ErrorIs(t, err, errFatal)
	assert.Equal(t, 1, calls)

	calls = 0
	err = RetryWithBackoff(context.Background(), 2, time.Millisecond, time.Millisecond, retryable, func() error {
		calls++
		return errRetry
	})
	assert.ErrorIs(t, err, errRetry)
	assert.Equal(t, 2, calls)
}

func TestRetryWithBackoff_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := RetryWithBackoff(ctx, 3, time.Second, time.Second, func(error) bool { return true }, func() error {
		return errors.New("again")
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFormatConfigErrors(t *testing.T) {
	type cfg struct {
		Port      string `mapstructure:"PORT" validate:"required"`
		PrimaryDB string `mapstructure:"PRIMARY_DB_ADDR" validate:"required"`
	}
	c := cfg{Port: "8080"}

	err := FormatConfigErrors(zap.NewNop(), validator.New().Struct(c), &c)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "APP_PRIMARY_DB_ADDR")
	assert.NotContains(t, err.Error(), "APP_PORT")
}
