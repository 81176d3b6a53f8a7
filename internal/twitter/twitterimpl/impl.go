package twitterimpl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/orgball2608/social-post-fetcher/internal/cache"
	"github.com/orgball2608/social-post-fetcher/internal/domain"
	"github.com/orgball2608/social-post-fetcher/internal/telegram"
	"github.com/orgball2608/social-post-fetcher/internal/twitter"
	"github.com/orgball2608/social-post-fetcher/pkg/config"
	apperrors "github.com/orgball2608/social-post-fetcher/pkg/errors"
	"github.com/orgball2608/social-post-fetcher/pkg/logger"
	"go.uber.org/fx"
)

const (
	statusURLFormat = "https://x.com/%s/status/%s"

	// DefaultMaxPosts caps how many tweets are formatted per account.
	DefaultMaxPosts = 3
)

type Opts struct {
	fx.In

	Config  *config.Config
	Logger  logger.Logger
	Cache   cache.Client
	Session twitter.Session
	Alerter telegram.Alerter
}

type TwitterImpl struct {
	session  twitter.Session
	cache    cache.Client
	alerter  telegram.Alerter
	logger   logger.Logger
	ttl      time.Duration
	maxPosts int
}

func New(opts Opts) *TwitterImpl {
	maxPosts := opts.Config.Twitter.MaxPosts
	if maxPosts <= 0 {
		maxPosts = DefaultMaxPosts
	}
	return &TwitterImpl{
		session:  opts.Session,
		cache:    opts.Cache,
		alerter:  opts.Alerter,
		logger:   opts.Logger.WithComponent("Twitter"),
		ttl:      opts.Config.Cache.TTL,
		maxPosts: maxPosts,
	}
}

var _ twitter.Client = (*TwitterImpl)(nil)

// GetUserPosts serves the whole normalized result from cache when possible.
// Only successful results are cached; not-found and failed ones never are.
func (t *TwitterImpl) GetUserPosts(ctx context.Context, username string, postCount int) domain.SourceResult {
	if username == "" {
		return domain.NewNotFoundResult(profileURL(username))
	}
	postCount = max(postCount, 0)
	key := cache.TwitterKey(username)

	if cached, ok := t.fromCache(ctx, key); ok {
		t.logger.Debug("Cache hit for X user", "username", username)
		return cached
	}
	t.logger.Debug("Cache miss for X user", "username", username)

	result, err := t.fetch(ctx, username, postCount)
	switch {
	case errors.Is(err, twitter.ErrUserNotFound):
		t.logger.Info("X user not found", "username", username)
		return domain.NewNotFoundResult(profileURL(username))
	case err != nil:
		t.logger.Error("Error scraping X user", "username", username, "code", apperrors.GetCode(err), "error", err)
		return domain.NewFailedResult(profileURL(username), err)
	}

	encoded, err := json.Marshal(result)
	if err == nil {
		_ = t.cache.SetWithTTL(ctx, key, string(encoded), t.ttl)
	}
	return result
}

func (t *TwitterImpl) fromCache(ctx context.Context, key string) (domain.SourceResult, bool) {
	cached, ok, _ := t.cache.Get(ctx, key)
	if !ok {
		return domain.SourceResult{}, false
	}
	var result domain.SourceResult
	if err := json.Unmarshal([]byte(cached), &result); err != nil {
		t.logger.Warn("Discarding unreadable cached X result", "key", key, "error", err)
		return domain.SourceResult{}, false
	}
	return result, true
}

func (t *TwitterImpl) fetch(ctx context.Context, username string, postCount int) (domain.SourceResult, error) {
	if err := t.session.Load(ctx); err != nil {
		t.alerter.SendAlert("twitter", err)
		return domain.SourceResult{}, apperrors.WrapWithCode(err, apperrors.CodeSession, "load X session")
	}

	user, err := t.session.UserByScreenName(ctx, username)
	if err != nil {
		return domain.SourceResult{}, err
	}
	if user == nil {
		return domain.SourceResult{}, twitter.ErrUserNotFound
	}

	tweets, err := t.session.UserTweets(ctx, user, postCount)
	if err != nil {
		return domain.SourceResult{}, apperrors.WrapWithCode(err, apperrors.CodeUpstream, "fetch tweets of "+username)
	}

	limit := min(postCount, t.maxPosts)
	if len(tweets) > limit {
		tweets = tweets[:limit]
	}

	posts := make([]domain.Post, 0, len(tweets))
	for _, tw := range tweets {
		posts = append(posts, toPost(username, tw))
	}

	return domain.NewOkResult(profileURL(username), posts), nil
}

func toPost(username string, tw twitter.Tweet) domain.Post {
	media := make([]string, 0, len(tw.Media))
	for _, m := range tw.Media {
		media = append(media, m.URL)
	}
	return domain.Post{
		URL:     fmt.Sprintf(statusURLFormat, username, tw.ID),
		Content: FormatContent(tw),
		Media:   media,
	}
}

func profileURL(username string) string {
	return twitter.ProfileURL(username)
}
