package updates

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"relay/internal/entities"
	"relay/internal/service/notification"
	"relay/pkg/logger"
)

type Handler struct {
	log          handlerLogger
	registration RegistrationService
	sender       ReplySender
}

func New(log handlerLogger, registration RegistrationService, sender ReplySender) *Handler {
	return &Handler{
		log:          log,
		registration: registration,
		sender:       sender,
	}
}

// Handle обрабатывает личные сообщения пользователей. Остальные типы обновлений игнорируются.
func (h *Handler) Handle(ctx context.Context, update tgbotapi.Update) {
	msg, ok := incomingMessage(update)
	if !ok {
		return
	}

	reply, ok := h.registration.HandleMessage(ctx, msg)
	if !ok {
		return
	}

	err := h.sender.SendReply(ctx, msg.ChatID, reply)
	if err == nil {
		return
	}

	log := h.log.With(
		logger.NewField("telegram_id", msg.TelegramID),
		logger.NewField("update_id", update.UpdateID),
	)
	if errors.Is(err, notification.ErrRecipientBlocked) {
		log.Warn("chat reply not delivered: user blocked the bot")
		return
	}
	log.Error("chat reply not delivered", logger.NewField("error", err))
}

func incomingMessage(update tgbotapi.Update) (entities.IncomingMessage, bool) {
	m := update.Message
	if m == nil || m.From == nil || m.Chat == nil || !m.Chat.IsPrivate() {
		return entities.IncomingMessage{}, false
	}

	msg := entities.IncomingMessage{
		TelegramID: m.From.ID,
		ChatID:     m.Chat.ID,
		FirstName:  m.From.FirstName,
		Text:       m.Text,
	}
	if m.From.UserName != "" {
		username := m.From.UserName
		msg.Username = &username
	}
	if m.Contact != nil && m.Contact.PhoneNumber != "" {
		phone := m.Contact.PhoneNumber
		msg.ContactPhone = &phone
	}
	return msg, true
}
