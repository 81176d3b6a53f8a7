package cacheimpl

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/orgball2608/social-post-fetcher/internal/cache"
	"github.com/orgball2608/social-post-fetcher/internal/domain"
	"github.com/orgball2608/social-post-fetcher/internal/repositories/cacheentry"
	"github.com/orgball2608/social-post-fetcher/pkg/logger"
)

// Postgres stores cache entries in the cache_entries table. Expired rows are
// invisible to Get and removed later by the cleanup job.
type Postgres struct {
	repo   cacheentry.Repository
	logger logger.Logger
	now    func() time.Time
}

var _ cache.Client = (*Postgres)(nil)

func NewPostgres(repo cacheentry.Repository, log logger.Logger) *Postgres {
	return &Postgres{
		repo:   repo,
		logger: log.WithComponent("PostgresCache"),
		now:    time.Now,
	}
}

func (p *Postgres) Get(ctx context.Context, key string) (string, bool, error) {
	entry, err := p.repo.Get(ctx, key, p.now())
	if errors.Is(err, cacheentry.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("postgres cache get %s: %w", key, err)
	}
	return entry.Value, true, nil
}

func (p *Postgres) Set(ctx context.Context, key, value string) error {
	return p.repo.Upsert(ctx, domain.CacheEntry{
		Key:       key,
		Value:     value,
		CreatedAt: p.now(),
	})
}

func (p *Postgres) SetWithTTL(ctx context.Context, key, value string, ttl time.Duration) error {
	if ttl <= 0 {
		return fmt.Errorf("postgres cache set %s: ttl must be positive, got %s", key, ttl)
	}
	now := p.now()
	expiresAt := now.Add(ttl)
	return p.repo.Upsert(ctx, domain.CacheEntry{
		Key:       key,
		Value:     value,
		ExpiresAt: &expiresAt,
		CreatedAt: now,
	})
}
