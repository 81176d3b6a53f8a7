package cacheentry

import (
	"context"
	"errors"
	"time"

	"github.com/orgball2608/social-post-fetcher/internal/domain"
)

const tableName = "cache_entries"

var ErrNotFound = errors.New("cache entry not found")

//go:generate go run go.uber.org/mock/mockgen -source=cacheentry.go -destination=mocks/mock.go
type Repository interface {
	// Get returns the live entry for key, or ErrNotFound when it is absent or expired at now.
	Get(ctx context.Context, key string, now time.Time) (*domain.CacheEntry, error)

	// Upsert inserts the entry or replaces value and expiry of an existing key.
	Upsert(ctx context.Context, entry domain.CacheEntry) error

	// DeleteExpired removes entries whose expiry is at or before now.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
