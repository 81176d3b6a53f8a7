package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter decides whether the holder of key may act now.
type Limiter interface {
	Allow(key string) bool
}

// InMemoryLimiter keeps one token bucket per key.
type InMemoryLimiter struct {
	buckets map[string]*rate.Limiter
	mu      sync.Mutex
	r       rate.Limit
	b       int
	now     func() time.Time
}

// NewInMemoryLimiter allows requests per period with the given burst.
// Example: NewInMemoryLimiter(1, 5*time.Second, 3) -> one action every 5 seconds, bursts of 3.
func NewInMemoryLimiter(requests int, per time.Duration, burst int) *InMemoryLimiter {
	if requests <= 0 {
		requests = 1
	}
	if burst <= 0 {
		burst = 1
	}
	return &InMemoryLimiter{
		buckets: make(map[string]*rate.Limiter),
		r:       rate.Every(per / time.Duration(requests)),
		b:       burst,
		now:     time.Now,
	}
}

var _ Limiter = (*InMemoryLimiter)(nil)

func (l *InMemoryLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	bucket, ok := l.buckets[key]
	if !ok {
		bucket = rate.NewLimiter(l.r, l.b)
		l.buckets[key] = bucket
	}
	return bucket.AllowN(l.now(), 1)
}
