package telegram

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"relay/internal/entities"
	"relay/internal/service/notification"
)

const methodSendMessage = "sendMessage"

type Gateway struct {
	client client
}

func New(client client) *Gateway {
	return &Gateway{client: client}
}

// SendText отправляет одно сообщение без повторов. parseMode может быть пустым.
func (g *Gateway) SendText(ctx context.Context, chatID int64, text, parseMode string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = parseMode
	msg.DisableWebPagePreview = true

	if err := g.execute(ctx, methodSendMessage, msg); err != nil {
		return fmt.Errorf("gateway telegram, send message to %d: %w", chatID, err)
	}
	return nil
}

// SendReply отправляет ответ бота в чат вместе с клавиатурой.
func (g *Gateway) SendReply(ctx context.Context, chatID int64, reply entities.ChatReply) error {
	msg := tgbotapi.NewMessage(chatID, reply.Text)
	msg.ParseMode = tgbotapi.ModeHTML
	if markup := replyMarkup(reply); markup != nil {
		msg.ReplyMarkup = markup
	}

	if err := g.execute(ctx, methodSendMessage, msg); err != nil {
		return fmt.Errorf("gateway telegram, send reply to %d: %w", chatID, err)
	}
	return nil
}

// execute не ретраит: доставка уведомлений best effort.
// Bot API не принимает контекст, поэтому отмена ctx только перестает ждать ответ,
// сам HTTP-вызов ограничен таймаутом клиента.
func (g *Gateway) execute(ctx context.Context, method string, c tgbotapi.Chattable) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	start := time.Now()
	done := make(chan error, 1)
	go func() {
		_, err := g.client.Send(c)
		done <- err
	}()

	var err error
	select {
	case <-ctx.Done():
		err = ctx.Err()
	case err = <-done:
	}

	err = classify(err)
	gatewayRequestDuration.WithLabelValues(method, resultLabel(err)).Observe(time.Since(start).Seconds())
	return err
}

func classify(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *tgbotapi.Error
	if !errors.As(err, &apiErr) {
		return err
	}

	switch apiErr.Code {
	case http.StatusForbidden:
		return fmt.Errorf("%w: %s", notification.ErrRecipientBlocked, apiErr.Message)
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", notification.ErrBadRequest, apiErr.Message)
	default:
		return fmt.Errorf("telegram api error %d: %s", apiErr.Code, apiErr.Message)
	}
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, notification.ErrRecipientBlocked):
		return strconv.Itoa(http.StatusForbidden)
	case errors.Is(err, notification.ErrBadRequest):
		return strconv.Itoa(http.StatusBadRequest)
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return "timeout"
	default:
		return "error"
	}
}
