package retry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minibank/internal/pkg/logger"
	"minibank/internal/pkg/models"
)

func newTestRetrier(t *testing.T, maxRetries int) *Retrier {
	t.Helper()
	return New(Config{
		MaxRetries: maxRetries,
		BaseDelay:  time.Millisecond,
		MaxDelay:   5 * time.Millisecond,
		Multiplier: 2.0,
	}, logger.NewAppLogger("retry-test", models.LoggerConfig{Level: "error"}))
}

func TestExecute_SucceedsFirstTry(t *testing.T) {
	r := newTestRetrier(t, 3)
	calls := 0

	err := r.Execute(context.Background(), func(context.Context) error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestExecute_SucceedsAfterRetries(t *testing.T) {
	r := newTestRetrier(t, 3)
	calls := 0

	err := r.Execute(context.Background(), func(context.Context) error {
		calls++
		if calls < 3 {
			return assert.AnError
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestExecute_ExhaustsBudget(t *testing.T) {
	r := newTestRetrier(t, 2)
	calls := 0

	err := r.Execute(context.Background(), func(context.Context) error {
		calls++
		return assert.AnError
	})

	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, 3, calls)
}

func TestExecute_ContextCancelled(t *testing.T) {
	r := newTestRetrier(t, 5)
	ctx, cancel := context.WithCancel(context.Background())

	err := r.Execute(ctx, func(context.Context) error {
		cancel()
		return assert.AnError
	})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestDelayFor_IsCappedByMaxDelay(t *testing.T) {
	r := newTestRetrier(t, 10)

	for attempt := 0; attempt < 10; attempt++ {
		assert.LessOrEqual(t, r.delayFor(attempt), 5*time.Millisecond)
	}
}
