package notification

import (
	"context"
	"errors"
	"fmt"

	"relay/internal/entities"
	"relay/internal/pkg/factory/message_template"
	"relay/internal/pkg/orderid"
	"relay/pkg/logger"
)

const (
	kindTemplated = "templated"
	kindDirect    = "direct"

	messageNotificationSent = "Notification sent successfully"
	messageDirectSent       = "Message sent successfully"
	messageUserBlocked      = "User blocked the bot"
)

type Service struct {
	log       serviceLogger
	messenger Messenger
	templates TemplateFactory
}

func New(log serviceLogger, messenger Messenger, templates TemplateFactory) *Service {
	return &Service{
		log:       log,
		messenger: messenger,
		templates: templates,
	}
}

// Notify рендерит шаблон статуса заказа и делает ровно одну попытку отправки.
// Ошибки не возвращаются: исход всегда описан в DeliveryOutcome.
func (s *Service) Notify(ctx context.Context, req entities.NotificationRequest) entities.DeliveryOutcome {
	log := s.log.With(
		logger.NewField("telegram_user_id", req.TelegramUserID),
		logger.NewField("order_id", req.OrderID),
		logger.NewField("status", req.Status.String()),
	)

	tmpl, err := s.templates.GetTemplate(req.Status)
	if err != nil {
		log.Error("notification rejected", logger.NewField("error", err))
		return s.record(kindTemplated, entities.DeliveryOutcome{
			Reason:  entities.ReasonInvalidStatus,
			Message: fmt.Sprintf("Invalid status: %s", req.Status),
		})
	}

	if req.TelegramUserID == 0 {
		log.Error("notification rejected", logger.NewField("error", ErrInvalidRecipient))
		return s.record(kindTemplated, badRequest(ErrInvalidRecipient))
	}

	text := tmpl.Render(orderid.Format(req.OrderID), req.ProductName)

	err = s.messenger.SendText(ctx, req.TelegramUserID, text, message_template.ParseMode)
	outcome := s.classify(log, err, messageNotificationSent)
	if outcome.Success {
		log.Info("notification sent")
	}
	return s.record(kindTemplated, outcome)
}

// SendDirect отправляет произвольный текст без шаблона и без разметки.
func (s *Service) SendDirect(ctx context.Context, chatID int64, text string) entities.DeliveryOutcome {
	log := s.log.With(logger.NewField("telegram_user_id", chatID))

	if text == "" {
		log.Error("direct message rejected", logger.NewField("error", ErrEmptyText))
		return s.record(kindDirect, badRequest(ErrEmptyText))
	}
	if chatID == 0 {
		log.Error("direct message rejected", logger.NewField("error", ErrInvalidRecipient))
		return s.record(kindDirect, badRequest(ErrInvalidRecipient))
	}

	err := s.messenger.SendText(ctx, chatID, text, "")
	outcome := s.classify(log, err, messageDirectSent)
	if outcome.Success {
		log.Info("direct message sent")
	}
	return s.record(kindDirect, outcome)
}

func (s *Service) classify(log logger.Logger, err error, successMessage string) entities.DeliveryOutcome {
	switch {
	case err == nil:
		return entities.DeliveryOutcome{
			Success: true,
			Reason:  entities.ReasonOK,
			Message: successMessage,
		}
	case errors.Is(err, ErrRecipientBlocked):
		log.Warn("user blocked the bot")
		return entities.DeliveryOutcome{
			Reason:  entities.ReasonUserBlocked,
			Message: messageUserBlocked,
		}
	case errors.Is(err, ErrBadRequest):
		log.Error("bad request sending message", logger.NewField("error", err))
		return badRequest(err)
	default:
		log.Error("error sending message", logger.NewField("error", err))
		return entities.DeliveryOutcome{
			Reason:  entities.ReasonTransportError,
			Message: fmt.Sprintf("Error: %s", err),
		}
	}
}

func (s *Service) record(kind string, outcome entities.DeliveryOutcome) entities.DeliveryOutcome {
	notificationsTotal.WithLabelValues(kind, outcome.Reason.String()).Inc()
	return outcome
}

func badRequest(err error) entities.DeliveryOutcome {
	return entities.DeliveryOutcome{
		Reason:  entities.ReasonBadRequest,
		Message: fmt.Sprintf("Bad request: %s", err),
	}
}
