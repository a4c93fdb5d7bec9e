package order_status_changed

import (
	"context"
	"encoding/json"
	"time"

	"github.com/IBM/sarama"
	"relay/internal/entities"
	"relay/pkg/logger"
)

type Handler struct {
	notifier                 Service
	log                      handlerLogger
	messageProcessingTimeout time.Duration
}

func New(log handlerLogger, notifier Service, timeout time.Duration) *Handler {
	handlerLog := log.With(logger.NewField("handler", "order.status.changed"))

	return &Handler{
		notifier:                 notifier,
		log:                      handlerLog,
		messageProcessingTimeout: timeout,
	}
}

func (h *Handler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *Handler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *Handler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				h.log.Info("order.status.changed: claim.Messages() closed, exiting ConsumeClaim")
				return nil
			}

			shouldExit := h.messageProcessing(sess, message)
			if shouldExit {
				return nil
			}

		case <-sess.Context().Done():
			// rebalance или остановка consumer group
			h.log.Info("order.status.changed: session context done, exiting ConsumeClaim")
			return nil
		}
	}
}

// messageProcessing отправляет одно уведомление. Сообщение помечается обработанным при любом
// исходе доставки: повторная отправка не делается. Исключение - отмена контекста сессии,
// тогда сообщение остается для повторной доставки и возвращается true.
func (h *Handler) messageProcessing(sess sarama.ConsumerGroupSession, message *sarama.ConsumerMessage) bool {
	ctx, cancel := context.WithTimeout(sess.Context(), h.messageProcessingTimeout)
	defer cancel()

	var event statusChangedEvent
	err := json.Unmarshal(message.Value, &event)
	if err == nil {
		err = event.validate()
	}
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
			logger.NewField("offset", message.Offset),
		).Error("order.status.changed handler received bad message")
		sess.MarkMessage(message, "")
		return false
	}

	msgLog := h.log.With(
		logger.NewField("order", event.OrderID),
		logger.NewField("telegram_user_id", event.TelegramUserID),
		logger.NewField("status", event.Status),
		logger.NewField("offset", message.Offset),
	)

	msgLog.Info("order.status.changed processing")

	outcome := h.notifier.Notify(ctx, entities.NotificationRequest{
		TelegramUserID: event.TelegramUserID,
		OrderID:        event.OrderID,
		Status:         entities.OrderStatusType(event.Status),
		ProductName:    event.ProductName,
	})

	switch {
	case outcome.Success:
		msgLog.Info("order.status.changed: processed")
	case sess.Context().Err() != nil:
		msgLog.Warn("order.status.changed handler context cancelled, message will be reprocessed")
		return true
	case outcome.Reason == entities.ReasonUserBlocked:
		msgLog.Warn("order.status.changed: recipient blocked the bot")
	default:
		msgLog.With(
			logger.NewField("reason", outcome.Reason.String()),
			logger.NewField("message", outcome.Message),
		).Error("order.status.changed: notification not delivered")
	}

	sess.MarkMessage(message, "")
	return false
}
