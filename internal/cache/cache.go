package cache

import (
	"context"
	"time"
)

// DefaultTTL is how long post lists stay cached.
const DefaultTTL = 300 * time.Second

// Client is the key-value store shared by every source adapter.
// A miss is reported as ok == false with a nil error.
//
//go:generate go run go.uber.org/mock/mockgen -source=cache.go -destination=mocks/mock.go
type Client interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set stores value without expiry.
	Set(ctx context.Context, key, value string) error

	// SetWithTTL stores value for ttl.
	SetWithTTL(ctx context.Context, key, value string, ttl time.Duration) error
}
