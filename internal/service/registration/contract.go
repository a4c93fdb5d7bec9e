//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=registration_test
package registration

import (
	"context"

	"relay/internal/entities"
	"relay/internal/pkg/factory/webapp_link"
	"relay/pkg/logger"
)

type serviceLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type ProfileRepository interface {
	GetByTelegramID(ctx context.Context, telegramID int64) (*entities.Profile, error)
	Create(ctx context.Context, profile entities.Profile) (*entities.Profile, error)
}

type SessionStore interface {
	Get(telegramID int64) (entities.RegistrationSession, bool)
	Set(telegramID int64, session entities.RegistrationSession)
	Delete(telegramID int64)
	Prune() int
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type LinkFactory interface {
	Build(telegramID int64, profile *entities.Profile) webapp_link.Link
}
