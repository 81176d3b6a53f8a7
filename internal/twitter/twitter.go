package twitter

import (
	"context"
	"errors"

	"github.com/orgball2608/social-post-fetcher/internal/domain"
)

var ErrUserNotFound = errors.New("twitter user not found")

// ProfileURL is the canonical URL results for username are reported under.
func ProfileURL(username string) string {
	return "https://x.com/" + username
}

type User struct {
	ID         string
	ScreenName string
}

type Media struct {
	URL string
}

type Tweet struct {
	ID        string
	FullText  string
	Retweeted *Tweet
	Quote     *Tweet
	Media     []Media
}

// Client fetches recent posts of an X/Twitter account. Failures never escape.
//
//go:generate go run go.uber.org/mock/mockgen -source=twitter.go -destination=mocks/mock.go
type Client interface {
	GetUserPosts(ctx context.Context, username string, postCount int) domain.SourceResult
}

// Session is an authenticated connection to the platform, built from a
// previously exported cookie file. No login flow is attempted.
type Session interface {
	// Load makes the session usable. Calling it again is cheap.
	Load(ctx context.Context) error

	// UserByScreenName returns ErrUserNotFound for unknown handles.
	UserByScreenName(ctx context.Context, screenName string) (*User, error)

	// UserTweets returns up to count of the user's latest tweets, newest first.
	UserTweets(ctx context.Context, user *User, count int) ([]Tweet, error)
}
