package dispatcherimpl

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/orgball2608/social-post-fetcher/internal/dispatcher"
	"github.com/orgball2608/social-post-fetcher/internal/domain"
	"github.com/orgball2608/social-post-fetcher/internal/facebook"
	"github.com/orgball2608/social-post-fetcher/internal/instagram"
	"github.com/orgball2608/social-post-fetcher/internal/twitter"
	"github.com/orgball2608/social-post-fetcher/pkg/config"
	"github.com/orgball2608/social-post-fetcher/pkg/logger"
	"go.uber.org/fx"
	"golang.org/x/sync/errgroup"
)

const (
	defaultPostCount   = 3
	defaultConcurrency = 4
	defaultTimeout     = 45 * time.Second
)

type Opts struct {
	fx.In

	Config    *config.Config
	Logger    logger.Logger
	Facebook  facebook.Client
	Twitter   twitter.Client
	Instagram instagram.Client
}

type DispatcherImpl struct {
	facebook    facebook.Client
	twitter     twitter.Client
	instagram   instagram.Client
	logger      logger.Logger
	postCount   int
	concurrency int
	timeout     time.Duration
}

func New(opts Opts) *DispatcherImpl {
	d := &DispatcherImpl{
		facebook:    opts.Facebook,
		twitter:     opts.Twitter,
		instagram:   opts.Instagram,
		logger:      opts.Logger.WithComponent("Dispatcher"),
		postCount:   opts.Config.Fetcher.PostCount,
		concurrency: opts.Config.Fetcher.Concurrency,
		timeout:     opts.Config.Fetcher.Timeout,
	}
	if d.postCount <= 0 {
		d.postCount = defaultPostCount
	}
	if d.concurrency <= 0 {
		d.concurrency = defaultConcurrency
	}
	if d.timeout <= 0 {
		d.timeout = defaultTimeout
	}
	return d
}

var _ dispatcher.Client = (*DispatcherImpl)(nil)

type job struct {
	url      string
	platform domain.Platform
	handle   string
}

func (d *DispatcherImpl) Dispatch(ctx context.Context, raw string) domain.BatchResult {
	var jobs []job
	for _, url := range dispatcher.ParseURLs(raw) {
		platform, handle := dispatcher.Classify(url)
		if platform == domain.PlatformUnknown {
			d.logger.Warn("Unsupported URL, skipping", "url", url)
			continue
		}
		jobs = append(jobs, job{url: url, platform: platform, handle: handle})
	}

	results := make(domain.BatchResult, len(jobs))
	if len(jobs) == 0 {
		return results
	}

	var g errgroup.Group
	g.SetLimit(d.concurrency)
	for i, j := range jobs {
		g.Go(func() error {
			results[i] = d.fetch(ctx, j)
			return nil
		})
	}
	_ = g.Wait()

	d.logger.Info("Batch fetched", "requested", len(jobs))
	return results
}

// fetch runs one adapter call under its own deadline. The adapter keeps
// running in the background if it ignores cancellation.
func (d *DispatcherImpl) fetch(ctx context.Context, j job) domain.SourceResult {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	done := make(chan domain.SourceResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				d.logger.Error("Adapter panicked", "url", j.url, "panic", r, "stack", string(debug.Stack()))
				done <- domain.NewFailedResult(resultURL(j), fmt.Errorf("panic: %v", r))
			}
		}()
		done <- d.call(ctx, j)
	}()

	select {
	case res := <-done:
		return res
	case <-ctx.Done():
		d.logger.Error("Fetch timed out", "url", j.url, "timeout", d.timeout.String())
		return domain.NewFailedResult(resultURL(j), fmt.Errorf("fetch %s: %w", j.url, ctx.Err()))
	}
}

// resultURL is the URL the adapter for j reports its results under.
func resultURL(j job) string {
	switch j.platform {
	case domain.PlatformTwitter:
		return twitter.ProfileURL(j.handle)
	case domain.PlatformInstagram:
		return instagram.ProfileURL(j.handle)
	default:
		return j.url
	}
}

func (d *DispatcherImpl) call(ctx context.Context, j job) domain.SourceResult {
	switch j.platform {
	case domain.PlatformTwitter:
		return d.twitter.GetUserPosts(ctx, j.handle, d.postCount)
	case domain.PlatformFacebook:
		return d.facebook.GetPagePosts(ctx, j.handle, d.postCount)
	case domain.PlatformInstagram:
		return d.instagram.GetUserPosts(ctx, j.handle, d.postCount)
	default:
		return domain.NewFailedResult(j.url, fmt.Errorf("unsupported platform %s", j.platform))
	}
}
