package twitterimpl

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"sync"

	twitterscraper "github.com/n0madic/twitter-scraper"
	"github.com/orgball2608/social-post-fetcher/internal/twitter"
	"github.com/orgball2608/social-post-fetcher/pkg/config"
	apperrors "github.com/orgball2608/social-post-fetcher/pkg/errors"
	"github.com/orgball2608/social-post-fetcher/pkg/logger"
)

// scraper is the part of *twitterscraper.Scraper the session uses.
type scraper interface {
	SetCookies(cookies []*http.Cookie)
	IsLoggedIn() bool
	GetProfile(username string) (twitterscraper.Profile, error)
	GetTweets(ctx context.Context, user string, maxTweetsNbr int) <-chan *twitterscraper.TweetResult
}

// ScraperSession adapts twitter-scraper to twitter.Session. The scraper is not
// safe for concurrent use, so every call holds mu.
type ScraperSession struct {
	mu          sync.Mutex
	scraper     scraper
	cookiesPath string
	logger      logger.Logger

	// verified holds the cookie file contents last accepted by the platform.
	verified []byte
}

var (
	_ twitter.Session = (*ScraperSession)(nil)
	_ scraper         = (*twitterscraper.Scraper)(nil)
)

func NewScraperSession(cfg *config.Config, log logger.Logger) *ScraperSession {
	return newScraperSession(twitterscraper.New(), cfg.Twitter.CookiesPath, log)
}

func newScraperSession(sc scraper, cookiesPath string, log logger.Logger) *ScraperSession {
	return &ScraperSession{
		scraper:     sc,
		cookiesPath: cookiesPath,
		logger:      log.WithComponent("TwitterSession"),
	}
}

// Load reads the cookie file and verifies it with the platform. Verification
// is repeated only when the file contents change.
func (s *ScraperSession) Load(ctx context.Context) error {
	data, err := os.ReadFile(s.cookiesPath)
	if err != nil {
		return fmt.Errorf("%w: read cookie file %s: %v", apperrors.ErrSession, s.cookiesPath, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.verified != nil && bytes.Equal(s.verified, data) {
		return nil
	}
	s.verified = nil

	cookies, err := parseCookies(data)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", apperrors.ErrSession, s.cookiesPath, err)
	}

	s.scraper.SetCookies(cookies)
	if !s.scraper.IsLoggedIn() {
		return fmt.Errorf("%w: cookies in %s were rejected", apperrors.ErrSession, s.cookiesPath)
	}

	s.verified = data
	s.logger.Info("X session verified", "path", s.cookiesPath)
	return nil
}

func (s *ScraperSession) UserByScreenName(ctx context.Context, screenName string) (*twitter.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile, err := s.scraper.GetProfile(screenName)
	if err != nil {
		if isNotFound(err) {
			return nil, twitter.ErrUserNotFound
		}
		return nil, fmt.Errorf("get profile %s: %w", screenName, err)
	}
	if profile.UserID == "" {
		return nil, twitter.ErrUserNotFound
	}

	return &twitter.User{ID: profile.UserID, ScreenName: profile.Username}, nil
}

func (s *ScraperSession) UserTweets(ctx context.Context, user *twitter.User, count int) ([]twitter.Tweet, error) {
	count = max(count, 0)

	s.mu.Lock()
	defer s.mu.Unlock()

	tweets := make([]twitter.Tweet, 0, count)
	if count == 0 {
		return tweets, nil
	}
	for res := range s.scraper.GetTweets(ctx, user.ScreenName, count) {
		if res.Error != nil {
			return nil, fmt.Errorf("get tweets of %s: %w", user.ScreenName, res.Error)
		}
		tweets = append(tweets, convertTweet(&res.Tweet))
	}
	return tweets, nil
}

func convertTweet(t *twitterscraper.Tweet) twitter.Tweet {
	out := twitter.Tweet{
		ID:       t.ID,
		FullText: t.Text,
	}
	if t.RetweetedStatus != nil {
		rt := convertTweet(t.RetweetedStatus)
		out.Retweeted = &rt
	}
	if t.QuotedStatus != nil {
		q := convertTweet(t.QuotedStatus)
		out.Quote = &q
	}

	// The scraper groups attachments by kind; photos, videos, then gifs.
	for _, p := range t.Photos {
		out.Media = append(out.Media, twitter.Media{URL: p.URL})
	}
	for _, v := range t.Videos {
		out.Media = append(out.Media, twitter.Media{URL: v.URL})
	}
	for _, g := range t.GIFs {
		out.Media = append(out.Media, twitter.Media{URL: g.URL})
	}
	return out
}

func isNotFound(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "does not exist") ||
		strings.Contains(msg, "not found") ||
		strings.Contains(msg, "suspended")
}
