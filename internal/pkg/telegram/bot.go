package telegram

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"relay/internal/pkg/config"
	"relay/pkg/logger"
	"relay/pkg/retrier"
	"relay/pkg/retrier/backoff_adapter"
)

// Sender - клиент Bot API для исходящих сообщений. Каждый запрос ограничен
// TELEGRAM_REQUEST_TIMEOUT.
type Sender struct {
	*tgbotapi.BotAPI
}

func NewSender(ctx context.Context, log logger.Logger, cfg *config.Telegram) (*Sender, error) {
	bot, err := newBot(ctx, log.With(logger.NewField("client", "sender")), cfg.BotToken, cfg.RequestTimeout)
	if err != nil {
		return nil, err
	}
	return &Sender{BotAPI: bot}, nil
}

// newBot проверяет токен через getMe. Неверный токен не ретраится.
func newBot(ctx context.Context, log logger.Logger, token string, timeout time.Duration) (*tgbotapi.BotAPI, error) {
	client := &http.Client{Timeout: timeout}

	cfg := retrier.Startup()
	cfg.ShouldRetry = func(err error) bool {
		var apiErr *tgbotapi.Error
		if errors.As(err, &apiErr) {
			return apiErr.Code != http.StatusUnauthorized && apiErr.Code != http.StatusNotFound
		}
		return true
	}
	r := backoff_adapter.New(cfg)

	var (
		bot     *tgbotapi.BotAPI
		attempt uint64
	)
	err := r.ExecuteWithContext(ctx, func(context.Context) error {
		attempt++
		log.Info("attempting telegram connection", logger.NewField("attempt", attempt))

		var err error
		bot, err = tgbotapi.NewBotAPIWithClient(token, tgbotapi.APIEndpoint, client)
		return err
	})
	if err != nil {
		log.Error("telegram connection failed after retries",
			logger.NewField("error", err),
			logger.NewField("attempts", attempt),
		)
		return nil, fmt.Errorf("telegram getMe: %w", err)
	}

	log.Info("telegram connection established",
		logger.NewField("bot", bot.Self.UserName),
		logger.NewField("attempts", attempt),
	)
	return bot, nil
}

// botLogger направляет внутренние сообщения библиотеки в общий логгер.
type botLogger struct {
	log logger.Logger
}

func (l botLogger) Println(v ...interface{}) {
	l.log.Warn(fmt.Sprint(v...))
}

func (l botLogger) Printf(format string, v ...interface{}) {
	l.log.Warn(fmt.Sprintf(format, v...))
}

// UseLogger подключает логгер к библиотеке Bot API. Вызывается один раз при старте.
func UseLogger(log logger.Logger) error {
	return tgbotapi.SetLogger(botLogger{log: log.With(logger.NewField("component", "telegram-bot-api"))})
}
