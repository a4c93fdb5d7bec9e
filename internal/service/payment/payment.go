package payment

import (
	"context"
	"fmt"

	"relay/internal/entities"
	"relay/internal/pkg/config"
	"relay/internal/pkg/orderid"
	"relay/pkg/logger"
)

const paymentReceivedText = "✅ To'lov qabul qilindi!\n\nBuyurtma #%s uchun to'lov muvaffaqiyatli amalga oshirildi. Tez orada buyurtmangiz tasdiqlanadi."

type Service struct {
	log      serviceLogger
	orders   OrderService
	notifier Notifier
	click    config.Click
	payme    config.Payme
}

func New(log serviceLogger, orders OrderService, notifier Notifier, cfg config.Payments) *Service {
	return &Service{
		log:      log,
		orders:   orders,
		notifier: notifier,
		click:    cfg.Click,
		payme:    cfg.Payme,
	}
}

// markPaid переводит заказ из pending_payment в pending.
func (s *Service) markPaid(ctx context.Context, orderID string) (entities.TransitionResult, error) {
	result, err := s.orders.Transition(ctx, orderID, entities.OrderPendingPayment, entities.OrderPending)
	if err != nil {
		return entities.TransitionResult{}, fmt.Errorf("mark order %s paid: %w", orderID, err)
	}
	return result, nil
}

// notifyPaid сообщает покупателю о поступлении оплаты. Неудача только логируется:
// ответ платежной системе от нее не зависит.
func (s *Service) notifyPaid(ctx context.Context, log logger.Logger, orderID string) {
	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		log.Warn("payment notification skipped: order unavailable", logger.NewField("error", err))
		return
	}
	s.sendPaidNotice(ctx, log, order)
}

func (s *Service) sendPaidNotice(ctx context.Context, log logger.Logger, order *entities.Order) {
	outcome := s.notifier.SendDirect(ctx, order.TelegramUserID, fmt.Sprintf(paymentReceivedText, orderid.Format(order.ID)))
	if !outcome.Success {
		log.Warn("payment notification not delivered",
			logger.NewField("reason", outcome.Reason.String()),
			logger.NewField("message", outcome.Message),
		)
	}
}
