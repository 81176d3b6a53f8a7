package cacheimpl

import (
	"context"
	"time"

	"github.com/orgball2608/social-post-fetcher/internal/cache"
	"github.com/orgball2608/social-post-fetcher/pkg/logger"
)

// Resilient hides backend failures from adapters: a failed read is a miss and a
// failed write is logged and dropped. Empty values are misses as well.
type Resilient struct {
	backend cache.Client
	logger  logger.Logger
}

var _ cache.Client = (*Resilient)(nil)

func NewResilient(backend cache.Client, log logger.Logger) *Resilient {
	return &Resilient{
		backend: backend,
		logger:  log.WithComponent("Cache"),
	}
}

func (r *Resilient) Get(ctx context.Context, key string) (string, bool, error) {
	val, ok, err := r.backend.Get(ctx, key)
	if err != nil {
		r.logger.Warn("Cache read failed, treating as miss", "key", key, "error", err)
		return "", false, nil
	}
	if !ok || val == "" {
		return "", false, nil
	}
	return val, true, nil
}

func (r *Resilient) Set(ctx context.Context, key, value string) error {
	if err := r.backend.Set(ctx, key, value); err != nil {
		r.logger.Warn("Cache write failed", "key", key, "error", err)
	}
	return nil
}

func (r *Resilient) SetWithTTL(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := r.backend.SetWithTTL(ctx, key, value, ttl); err != nil {
		r.logger.Warn("Cache write failed", "key", key, "ttl", ttl.String(), "error", err)
	}
	return nil
}
