package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Alerter notifies the operator about failures that need a human, such as an
// expired platform session.
//
//go:generate go run go.uber.org/mock/mockgen -source=telegram.go -destination=mocks/mock.go
type Alerter interface {
	SendAlert(source string, err error)
}

type Client interface {
	Alerter

	// Enabled reports whether a bot token is configured.
	Enabled() bool

	GetUpdatesChan(u tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()

	SendMessage(chatID int64, text string) (int, error)
	SendMessageToUser(text string)
}
