package facebook

import (
	"context"

	"github.com/orgball2608/social-post-fetcher/internal/domain"
)

// Client fetches recent posts of a Facebook page. Failures never escape:
// they come back as a result with StatusFailed and no posts.
//
//go:generate go run go.uber.org/mock/mockgen -source=facebook.go -destination=mocks/mock.go
type Client interface {
	GetPagePosts(ctx context.Context, pageURL string, postCount int) domain.SourceResult
}
