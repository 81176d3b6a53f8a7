package app

import (
	"context"
	"errors"

	"github.com/orgball2608/social-post-fetcher/internal/cache/cacheimpl"
	"github.com/orgball2608/social-post-fetcher/internal/command"
	"github.com/orgball2608/social-post-fetcher/internal/command/commandimpl"
	"github.com/orgball2608/social-post-fetcher/internal/credentials"
	"github.com/orgball2608/social-post-fetcher/internal/dispatcher"
	"github.com/orgball2608/social-post-fetcher/internal/dispatcher/dispatcherimpl"
	"github.com/orgball2608/social-post-fetcher/internal/facebook"
	"github.com/orgball2608/social-post-fetcher/internal/facebook/facebookimpl"
	"github.com/orgball2608/social-post-fetcher/internal/instagram"
	"github.com/orgball2608/social-post-fetcher/internal/instagram/instagramimpl"
	"github.com/orgball2608/social-post-fetcher/internal/server"
	"github.com/orgball2608/social-post-fetcher/internal/telegram"
	"github.com/orgball2608/social-post-fetcher/internal/telegram/telegramimpl"
	"github.com/orgball2608/social-post-fetcher/internal/twitter"
	"github.com/orgball2608/social-post-fetcher/internal/twitter/twitterimpl"
	"github.com/orgball2608/social-post-fetcher/pkg/config"
	"github.com/orgball2608/social-post-fetcher/pkg/logger"
	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(
		config.New,
		logger.FxOption,
		cacheimpl.New,
	),
	fx.Provide(
		fx.Annotate(
			credentials.New,
			fx.As(new(credentials.Selector)),
		),
		fx.Annotate(
			twitterimpl.NewScraperSession,
			fx.As(new(twitter.Session)),
		),
		fx.Annotate(
			instagramimpl.NewGoinstaSession,
			fx.As(new(instagram.Session)),
		),
	),
	fx.Provide(
		fx.Annotate(
			telegramimpl.New,
			fx.As(new(telegram.Client), new(telegram.Alerter)),
		),
		fx.Annotate(
			facebookimpl.New,
			fx.As(new(facebook.Client)),
		),
		fx.Annotate(
			twitterimpl.New,
			fx.As(new(twitter.Client)),
		),
		fx.Annotate(
			instagramimpl.New,
			fx.As(new(instagram.Client)),
		),
		fx.Annotate(
			dispatcherimpl.New,
			fx.As(new(dispatcher.Client)),
		),
		fx.Annotate(
			commandimpl.New,
			fx.As(new(command.Client)),
		),
		server.New,
	),
	fx.Invoke(func(*server.Server) {}),
	fx.Invoke(run),
)

// run drives the bot command loop for the lifetime of the app.
func run(lc fx.Lifecycle, log logger.Logger, tgClient telegram.Client, cmdClient command.Client) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				defer close(done)
				if err := cmdClient.HandleCommand(ctx); err != nil && !errors.Is(err, context.Canceled) {
					log.Error("Command error", "error", err)
					tgClient.SendMessageToUser("Command error: " + err.Error())
				}
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
			case <-stopCtx.Done():
			}
			return nil
		},
	})
}
