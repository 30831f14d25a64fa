package retry

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"minibank/internal/pkg/logger"
)

// Config holds retry configuration
type Config struct {
	MaxRetries int           // retry attempts after the first call
	BaseDelay  time.Duration // delay before the first retry
	MaxDelay   time.Duration // cap on the backoff delay
	Multiplier float64       // exponential backoff multiplier
	Jitter     bool          // randomize delays to avoid thundering herd
}

// DefaultConfig returns a default retry configuration
func DefaultConfig() Config {
	return Config{
		MaxRetries: 3,
		BaseDelay:  100 * time.Millisecond,
		MaxDelay:   5 * time.Second,
		Multiplier: 2.0,
		Jitter:     true,
	}
}

// Retrier executes functions with exponential backoff
type Retrier struct {
	config Config
	logger *logger.AppLogger
}

// New creates a new retrier with the given configuration
func New(config Config, appLogger *logger.AppLogger) *Retrier {
	return &Retrier{config: config, logger: appLogger}
}

// Execute runs fn, retrying failures with exponential backoff until it
// succeeds, the retry budget runs out or the context is cancelled.
func (r *Retrier) Execute(ctx context.Context, fn func(context.Context) error) error {
	var lastErr error

	for attempt := 0; attempt <= r.config.MaxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		err := fn(ctx)
		if err == nil {
			if attempt > 0 {
				r.logger.WithFields(logrus.Fields{
					"attempts": attempt + 1,
				}).Info("call succeeded after retries")
			}
			return nil
		}
		lastErr = err

		if attempt == r.config.MaxRetries {
			break
		}

		delay := r.delayFor(attempt)
		r.logger.WithFields(logrus.Fields{
			"attempt": attempt + 1,
			"delay":   delay.String(),
		}).WithError(err).Debug("call failed, retrying")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}

	return fmt.Errorf("retry limit exceeded after %d attempts: %w", r.config.MaxRetries+1, lastErr)
}

func (r *Retrier) delayFor(attempt int) time.Duration {
	delay := float64(r.config.BaseDelay) * math.Pow(r.config.Multiplier, float64(attempt))
	if delay > float64(r.config.MaxDelay) {
		delay = float64(r.config.MaxDelay)
	}
	if r.config.Jitter {
		delay += delay * 0.1 * rand.Float64()
	}
	return time.Duration(delay)
}
