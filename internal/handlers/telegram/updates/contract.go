//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=updates_test
package updates

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

type RegistrationService interface {
	HandleMessage(ctx context.Context, msg entities.IncomingMessage) (entities.ChatReply, bool)
}

type ReplySender interface {
	SendReply(ctx context.Context, chatID int64, reply entities.ChatReply) error
}
