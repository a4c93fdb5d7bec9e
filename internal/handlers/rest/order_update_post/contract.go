//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=order_update_post_test
package order_update_post

import (
	"context"

	"relay/internal/entities"
	"relay/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	Notify(ctx context.Context, req entities.NotificationRequest) entities.DeliveryOutcome
}
