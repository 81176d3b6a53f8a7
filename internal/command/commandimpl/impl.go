package commandimpl

import (
	"context"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/orgball2608/social-post-fetcher/internal/command"
	"github.com/orgball2608/social-post-fetcher/internal/dispatcher"
	"github.com/orgball2608/social-post-fetcher/internal/ratelimit"
	"github.com/orgball2608/social-post-fetcher/internal/telegram"
	"github.com/orgball2608/social-post-fetcher/pkg/logger"
	"go.uber.org/fx"
)

const (
	updateTimeout = 60

	usageText = "Send /fetch followed by one or more profile URLs, separated by spaces or new lines.\n" +
		"Supported: x.com, twitter.com, www.facebook.com, instagram.com.\n\n" +
		"Example:\n/fetch https://x.com/nasa https://www.facebook.com/VTV24"
	fetchUsageText   = "Usage: /fetch <url> [url...]"
	noURLsText       = "No supported URLs found."
	unknownText      = "Unknown command. Send /help for usage."
	rateLimitedText  = "Too many requests, please wait a moment."
	fetchFailureText = "Something went wrong while fetching, please try again later."
)

type Opts struct {
	fx.In

	Telegram   telegram.Client
	Dispatcher dispatcher.Client
	Logger     logger.Logger
}

type CommandImpl struct {
	telegram   telegram.Client
	dispatcher dispatcher.Client
	logger     logger.Logger
	limiter    ratelimit.Limiter
}

func New(opts Opts) *CommandImpl {
	return &CommandImpl{
		telegram:   opts.Telegram,
		dispatcher: opts.Dispatcher,
		logger:     opts.Logger.WithComponent("Command"),
		limiter:    ratelimit.NewInMemoryLimiter(1, 5*time.Second, 3),
	}
}

var _ command.Client = (*CommandImpl)(nil)

func (c *CommandImpl) HandleCommand(ctx context.Context) error {
	if !c.telegram.Enabled() {
		return nil
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = updateTimeout
	updates := c.telegram.GetUpdatesChan(u)

	c.logger.Info("Listening for bot commands")
	for {
		select {
		case <-ctx.Done():
			c.telegram.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			c.handleUpdate(ctx, update)
		}
	}
}

func (c *CommandImpl) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || !msg.IsCommand() || msg.Chat == nil {
		return
	}

	chatID := msg.Chat.ID
	sender := chatID
	if msg.From != nil {
		sender = msg.From.ID
	}

	if !c.limiter.Allow(strconv.FormatInt(sender, 10)) {
		c.logger.Warn("Command rate limited", "user", sender)
		c.reply(chatID, rateLimitedText)
		return
	}

	c.logger.Info("Command received", "command", msg.Command(), "user", sender)
	switch msg.Command() {
	case "start", "help":
		c.reply(chatID, usageText)
	case "fetch":
		c.handleFetch(ctx, chatID, msg.CommandArguments())
	default:
		c.reply(chatID, unknownText)
	}
}

func (c *CommandImpl) handleFetch(ctx context.Context, chatID int64, args string) {
	urls := strings.Fields(args)
	if len(urls) == 0 {
		c.reply(chatID, fetchUsageText)
		return
	}

	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("Fetch command panicked", "panic", r)
			c.reply(chatID, fetchFailureText)
		}
	}()

	results := c.dispatcher.Dispatch(ctx, strings.Join(urls, "\n"))
	if len(results) == 0 {
		c.reply(chatID, noURLsText)
		return
	}
	c.reply(chatID, FormatDigest(results))
}

func (c *CommandImpl) reply(chatID int64, text string) {
	if _, err := c.telegram.SendMessage(chatID, text); err != nil {
		c.logger.Error("Failed to reply", "chatID", chatID, "error", err)
	}
}
