package facebookimpl

import (
	"context"
	"net/http"
	"time"

	"github.com/orgball2608/social-post-fetcher/internal/cache"
	"github.com/orgball2608/social-post-fetcher/internal/credentials"
	"github.com/orgball2608/social-post-fetcher/internal/domain"
	"github.com/orgball2608/social-post-fetcher/internal/facebook"
	"github.com/orgball2608/social-post-fetcher/pkg/config"
	apperrors "github.com/orgball2608/social-post-fetcher/pkg/errors"
	"github.com/orgball2608/social-post-fetcher/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
	Cache  cache.Client
	Keys   credentials.Selector
}

type FacebookImpl struct {
	cache      cache.Client
	keys       credentials.Selector
	httpClient *http.Client
	baseURL    string
	host       string
	ttl        time.Duration
	logger     logger.Logger
}

func New(opts Opts) *FacebookImpl {
	return &FacebookImpl{
		cache:      opts.Cache,
		keys:       opts.Keys,
		httpClient: &http.Client{Timeout: opts.Config.Facebook.Timeout},
		baseURL:    opts.Config.Facebook.BaseURL,
		host:       opts.Config.Facebook.Host,
		ttl:        opts.Config.Cache.TTL,
		logger:     opts.Logger.WithComponent("Facebook"),
	}
}

var _ facebook.Client = (*FacebookImpl)(nil)

// GetPagePosts resolves the page id, fetches raw posts and normalizes the first
// postCount of them. Any error yields a failed result for pageURL.
func (f *FacebookImpl) GetPagePosts(ctx context.Context, pageURL string, postCount int) domain.SourceResult {
	pageID, err := f.ResolvePageID(ctx, pageURL)
	if err != nil {
		f.logger.Error("Error scraping Facebook page", "url", pageURL, "stage", "resolve", "code", apperrors.GetCode(err), "error", err)
		return domain.NewFailedResult(pageURL, err)
	}

	raw, err := f.FetchRawPosts(ctx, pageID)
	if err != nil {
		f.logger.Error("Error scraping Facebook page", "url", pageURL, "page_id", pageID, "stage", "fetch", "code", apperrors.GetCode(err), "error", err)
		return domain.NewFailedResult(pageURL, err)
	}

	if postCount >= 0 && len(raw) > postCount {
		raw = raw[:postCount]
	}

	posts := make([]domain.Post, 0, len(raw))
	for i, r := range raw {
		post, err := normalizePost(r)
		if err != nil {
			f.logger.Error("Error scraping Facebook page", "url", pageURL, "page_id", pageID, "stage", "normalize", "index", i, "error", err)
			return domain.NewFailedResult(pageURL, err)
		}
		posts = append(posts, post)
	}

	return domain.NewOkResult(pageURL, posts)
}
