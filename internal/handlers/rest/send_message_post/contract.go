//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=send_message_post_test
package send_message_post

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
	SendDirect(ctx context.Context, chatID int64, text string) entities.DeliveryOutcome
}
