package retry

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/orgball2608/social-post-fetcher/pkg/logger"
)

type Config struct {
	MaxRetries      uint64
	InitialInterval time.Duration
	MaxInterval     time.Duration
	Multiplier      float64
}

// StartupConfig is used while waiting for backing services (redis, postgres) to come up.
func StartupConfig() Config {
	return Config{
		MaxRetries:      5,
		InitialInterval: 250 * time.Millisecond,
		MaxInterval:     3 * time.Second,
		Multiplier:      2,
	}
}

// Do calls operation until it returns nil, the retry budget is spent or ctx is done.
// Upstream post fetches never go through here.
func Do(ctx context.Context, log logger.Logger, operationName string, operation func(context.Context) error, cfg Config) error {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = cfg.InitialInterval
	bo.MaxInterval = cfg.MaxInterval
	bo.Multiplier = cfg.Multiplier
	bo.MaxElapsedTime = 0
	bo.Reset()

	policy := backoff.WithContext(backoff.WithMaxRetries(bo, cfg.MaxRetries), ctx)

	attempts := 0
	op := func() error {
		attempts++
		return operation(ctx)
	}

	notify := func(err error, next time.Duration) {
		log.Warn("Operation failed, retrying",
			"operation", operationName,
			"attempt", attempts,
			"error", err,
			"next_attempt_in", next.Round(time.Millisecond).String(),
		)
	}

	if err := backoff.RetryNotify(op, policy, notify); err != nil {
		return fmt.Errorf("%s failed after %d attempt(s): %w", operationName, attempts, err)
	}
	return nil
}
