//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=notification_test
package notification

import (
	"context"

	"relay/internal/entities"
	"relay/internal/pkg/factory/message_template"
	"relay/pkg/logger"
)

type serviceLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Messenger interface {
	SendText(ctx context.Context, chatID int64, text, parseMode string) error
}

type TemplateFactory interface {
	GetTemplate(status entities.OrderStatusType) (message_template.Template, error)
}
