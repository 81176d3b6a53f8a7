package dispatcher

import (
	"context"

	"github.com/orgball2608/social-post-fetcher/internal/domain"
)

// Client turns a newline separated list of profile URLs into one result per
// recognized URL, in input order. Unrecognized lines are skipped.
//
//go:generate go run go.uber.org/mock/mockgen -source=dispatcher.go -destination=mocks/mock.go
type Client interface {
	Dispatch(ctx context.Context, raw string) domain.BatchResult
}
