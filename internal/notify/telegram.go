package notify

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"btc-tracker-go/internal/config"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const defaultTelegramTimeout = 10 * time.Second

// Telegram delivers events as Telegram messages.
type Telegram struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	logger *zap.Logger
}

// NewTelegram connects the bot. Every API call, including the initial getMe
// probe, is bounded by the configured timeout. Returns an error when the
// token is rejected; callers typically fall back to running without
// Telegram alerts.
func NewTelegram(cfg *config.Telegram, logger *zap.Logger) (*Telegram, error) {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = defaultTelegramTimeout
	}

	bot, err := tgbotapi.NewBotAPIWithClient(cfg.BotToken, tgbotapi.APIEndpoint, &http.Client{Timeout: timeout})
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	logger.Info("Telegram bot connected", zap.String("username", bot.Self.UserName))

	return &Telegram{
		bot:    bot,
		chatID: cfg.ChatID,
		logger: logger,
	}, nil
}

func (t *Telegram) Notify(ctx context.Context, event Event) error {
	msg := tgbotapi.NewMessage(t.chatID, body(event))
	if _, err := t.bot.Send(msg); err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}
	return nil
}
