package instagramimpl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/orgball2608/social-post-fetcher/internal/cache"
	"github.com/orgball2608/social-post-fetcher/internal/domain"
	"github.com/orgball2608/social-post-fetcher/internal/instagram"
	"github.com/orgball2608/social-post-fetcher/internal/telegram"
	"github.com/orgball2608/social-post-fetcher/pkg/config"
	apperrors "github.com/orgball2608/social-post-fetcher/pkg/errors"
	"github.com/orgball2608/social-post-fetcher/pkg/logger"
	"go.uber.org/fx"
)

const (
	postURLFormat = "https://www.instagram.com/p/%s/"

	DefaultMaxPosts = 3
)

type Opts struct {
	fx.In

	Config  *config.Config
	Logger  logger.Logger
	Cache   cache.Client
	Session instagram.Session
	Alerter telegram.Alerter
}

type InstaImpl struct {
	session  instagram.Session
	cache    cache.Client
	alerter  telegram.Alerter
	logger   logger.Logger
	ttl      time.Duration
	maxPosts int
}

func New(opts Opts) *InstaImpl {
	maxPosts := opts.Config.Instagram.MaxPosts
	if maxPosts <= 0 {
		maxPosts = DefaultMaxPosts
	}
	return &InstaImpl{
		session:  opts.Session,
		cache:    opts.Cache,
		alerter:  opts.Alerter,
		logger:   opts.Logger.WithComponent("Instagram"),
		ttl:      opts.Config.Cache.TTL,
		maxPosts: maxPosts,
	}
}

var _ instagram.Client = (*InstaImpl)(nil)

func (ig *InstaImpl) GetUserPosts(ctx context.Context, username string, postCount int) domain.SourceResult {
	postCount = max(postCount, 0)
	key := cache.InstagramKey(username)
	profileURL := instagram.ProfileURL(username)

	if cached, ok, _ := ig.cache.Get(ctx, key); ok {
		var result domain.SourceResult
		if err := json.Unmarshal([]byte(cached), &result); err == nil {
			ig.logger.Debug("Cache hit for Instagram user", "username", username)
			return result
		}
		ig.logger.Warn("Discarding unreadable cached Instagram result", "key", key)
	}

	if err := ig.session.Load(ctx); err != nil {
		ig.logger.Error("Instagram session error", "error", err)
		ig.alerter.SendAlert("instagram", err)
		return domain.NewFailedResult(profileURL, apperrors.WrapWithCode(err, apperrors.CodeSession, "load Instagram session"))
	}

	limit := min(postCount, ig.maxPosts)
	items, err := ig.session.UserFeed(ctx, username, limit)
	switch {
	case errors.Is(err, instagram.ErrUserNotFound), errors.Is(err, instagram.ErrPrivateAccount):
		ig.logger.Info("Instagram feed unavailable", "username", username, "reason", err)
		return domain.NewNotFoundResult(profileURL)
	case err != nil:
		ig.logger.Error("Error fetching Instagram feed", "username", username, "error", err)
		return domain.NewFailedResult(profileURL, err)
	}

	if len(items) > limit {
		items = items[:limit]
	}
	posts := make([]domain.Post, 0, len(items))
	for _, item := range items {
		posts = append(posts, domain.Post{
			URL:     fmt.Sprintf(postURLFormat, item.Code),
			Content: item.Caption,
			Media:   collectMedia(item),
		})
	}

	result := domain.NewOkResult(profileURL, posts)
	if encoded, err := json.Marshal(result); err == nil {
		_ = ig.cache.SetWithTTL(ctx, key, string(encoded), ig.ttl)
	}
	return result
}

// collectMedia lists the item's own image and video, then each carousel child's.
func collectMedia(item instagram.Item) []string {
	media := make([]string, 0, 2+2*len(item.Carousel))
	appendItem := func(it instagram.Item) {
		if it.ImageURL != "" {
			media = append(media, it.ImageURL)
		}
		if it.VideoURL != "" {
			media = append(media, it.VideoURL)
		}
	}

	appendItem(item)
	for _, child := range item.Carousel {
		appendItem(child)
	}
	return media
}
