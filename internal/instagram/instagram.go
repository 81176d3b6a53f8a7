package instagram

import (
	"context"
	"errors"

	"github.com/orgball2608/social-post-fetcher/internal/domain"
)

var (
	ErrUserNotFound   = errors.New("instagram user not found")
	ErrPrivateAccount = errors.New("account is private and cannot be accessed")
)

// ProfileURL is the canonical URL results for username are reported under.
func ProfileURL(username string) string {
	return "https://www.instagram.com/" + username + "/"
}

// Item is one feed entry. Carousel holds the children of an album post.
type Item struct {
	Code     string
	Caption  string
	ImageURL string
	VideoURL string
	Carousel []Item
}

//go:generate go run go.uber.org/mock/mockgen -source=instagram.go -destination=mocks/mock.go
type Client interface {
	GetUserPosts(ctx context.Context, username string, postCount int) domain.SourceResult
}

type Session interface {
	// Load imports the exported session on first use.
	Load(ctx context.Context) error

	// UserFeed returns up to count of the newest feed items. It fails with
	// ErrUserNotFound or ErrPrivateAccount when the feed cannot be seen.
	UserFeed(ctx context.Context, username string, count int) ([]Item, error)
}
