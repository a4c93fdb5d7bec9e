//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=payment_test
package payment

import (
	"context"

	"relay/internal/entities"
	"relay/pkg/logger"
)

type serviceLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type OrderService interface {
	Transition(ctx context.Context, orderID string, expected, next entities.OrderStatusType) (entities.TransitionResult, error)
	GetOrder(ctx context.Context, orderID string) (*entities.Order, error)
}

type Notifier interface {
	SendDirect(ctx context.Context, chatID int64, text string) entities.DeliveryOutcome
}
