package telegramimpl

import (
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/orgball2608/social-post-fetcher/internal/ratelimit"
	"github.com/orgball2608/social-post-fetcher/internal/telegram"
	"github.com/orgball2608/social-post-fetcher/pkg/config"
	"github.com/orgball2608/social-post-fetcher/pkg/logger"
	"go.uber.org/fx"
)

// alertInterval is the minimum gap between two alerts about the same platform.
const alertInterval = time.Hour

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
}

// TelegramImpl talks to the Bot API. Without a token it is disabled and every
// send is a no-op.
type TelegramImpl struct {
	bot    *tgbotapi.BotAPI
	logger logger.Logger
	userID int64
	alerts ratelimit.Limiter
}

func New(opts Opts) (*TelegramImpl, error) {
	log := opts.Logger.WithComponent("Telegram")
	if opts.Config.Telegram.Token == "" {
		log.Info("Telegram token not set, bot disabled")
		return newWithBot(nil, opts.Config, log), nil
	}

	bot, err := tgbotapi.NewBotAPI(opts.Config.Telegram.Token)
	if err != nil {
		log.Error("Error creating bot", "error", err)
		return nil, err
	}
	log.Info("Authorized on Telegram", "account", bot.Self.UserName)
	return newWithBot(bot, opts.Config, log), nil
}

func newWithBot(bot *tgbotapi.BotAPI, cfg *config.Config, log logger.Logger) *TelegramImpl {
	return &TelegramImpl{
		bot:    bot,
		logger: log,
		userID: cfg.Telegram.User,
		alerts: ratelimit.NewInMemoryLimiter(1, alertInterval, 1),
	}
}

var _ telegram.Client = (*TelegramImpl)(nil)

func (tg *TelegramImpl) Enabled() bool {
	return tg.bot != nil
}

// SendAlert tells the admin about a failing source, at most once per alertInterval per source.
func (tg *TelegramImpl) SendAlert(source string, err error) {
	if !tg.Enabled() || tg.userID == 0 {
		return
	}
	if !tg.alerts.Allow(source) {
		tg.logger.Debug("Alert throttled", "source", source)
		return
	}
	tg.SendMessageToUser(fmt.Sprintf("%s session error: %v", source, err))
}

// SendMessageToUser sends a text message to the configured admin user.
func (tg *TelegramImpl) SendMessageToUser(message string) {
	if !tg.Enabled() {
		return
	}
	if _, err := tg.bot.Send(tgbotapi.NewMessage(tg.userID, message)); err != nil {
		tg.logger.Error("Error sending message to user", "userID", tg.userID, "error", err)
		return
	}
	tg.logger.Info("Message sent to user", "userID", tg.userID)
}

func (tg *TelegramImpl) SendMessage(chatID int64, text string) (int, error) {
	if !tg.Enabled() {
		return 0, nil
	}

	msg := tgbotapi.NewMessage(chatID, text)
	msg.DisableWebPagePreview = true
	sent, err := tg.bot.Send(msg)
	if err != nil {
		tg.logger.Error("Error sending message", "chatID", chatID, "error", err)
		return 0, fmt.Errorf("failed to send message: %w", err)
	}
	return sent.MessageID, nil
}

func (tg *TelegramImpl) GetUpdatesChan(u tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	if !tg.Enabled() {
		ch := make(chan tgbotapi.Update)
		close(ch)
		return ch
	}
	return tg.bot.GetUpdatesChan(u)
}

func (tg *TelegramImpl) StopReceivingUpdates() {
	if tg.Enabled() {
		tg.bot.StopReceivingUpdates()
	}
}
