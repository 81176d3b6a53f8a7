package domain

import "time"

// CacheEntry is a row of the postgres-backed cache store.
type CacheEntry struct {
	Key       string
	Value     string
	ExpiresAt *time.Time // nil means the entry never expires
	CreatedAt time.Time
}

func (e CacheEntry) Expired(now time.Time) bool {
	return e.ExpiresAt != nil && !now.Before(*e.ExpiresAt)
}
