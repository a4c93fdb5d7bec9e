//go:build wireinject
// +build wireinject

package app

import (
	"context"

	telegramGateway "relay/internal/gateway/telegram"
	"relay/internal/handlers/tasks/session_cleanup"
	"relay/internal/handlers/telegram/updates"
	"relay/internal/pkg/config"
	"relay/internal/pkg/factory/message_template"
	"relay/internal/pkg/factory/webapp_link"
	"relay/internal/pkg/metrics"
	"relay/internal/pkg/telegram"

	orderRepo "relay/internal/repository/order"
	profileRepo "relay/internal/repository/profile"
	notificationService "relay/internal/service/notification"
	orderService "relay/internal/service/order"
	paymentService "relay/internal/service/payment"
	registrationService "relay/internal/service/registration"

	"relay/internal/entities"
	"relay/pkg/logger"
	"relay/pkg/session"
	"relay/pkg/tx"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/google/wire"
	"github.com/jackc/pgx/v5/pgxpool"
)

// InitializeApplication для HTTP сервиса и бота (cmd/relay)
func InitializeApplication(
	ctx context.Context,
	log logger.Logger,
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
	sender *telegram.Sender,
	cfg *config.Config,
) (*Application, error) {
	wire.Build(
		provideTxManager,
		provideQuerier,
		provideSessionTTL,
		provideCleanupInterval,

		provideOrderRepository,
		provideProfileRepository,
		provideSessionStore,
		provideLinkFactory,
		message_template.New,
		provideTelegramGateway,

		provideOrderService,
		provideNotificationService,
		providePaymentService,
		provideRegistrationService,

		provideUpdatesHandler,
		provideTelegramPoller,

		provideSessionCleanupTask,
		metrics.NewSystemCollector,
		provideTaskList,
		provideBackgroundWorkers,

		wire.Struct(new(Application), "*"),

		wire.Bind(new(orderService.Repository), new(*orderRepo.Repository)),
		wire.Bind(new(orderService.TxManager), new(*tx.Manager)),

		wire.Bind(new(notificationService.Messenger), new(*telegramGateway.Gateway)),
		wire.Bind(new(notificationService.TemplateFactory), new(*message_template.TemplateFactory)),

		wire.Bind(new(paymentService.OrderService), new(*orderService.Service)),
		wire.Bind(new(paymentService.Notifier), new(*notificationService.Service)),

		wire.Bind(new(registrationService.ProfileRepository), new(*profileRepo.Repository)),
		wire.Bind(new(registrationService.SessionStore), new(*session.Store[int64, entities.RegistrationSession])),
		wire.Bind(new(registrationService.TxManager), new(*tx.Manager)),
		wire.Bind(new(registrationService.LinkFactory), new(*webapp_link.LinkFactory)),

		wire.Bind(new(updates.RegistrationService), new(*registrationService.Service)),
		wire.Bind(new(updates.ReplySender), new(*telegramGateway.Gateway)),
		wire.Bind(new(telegram.UpdateHandler), new(*updates.Handler)),

		wire.Bind(new(session_cleanup.Service), new(*registrationService.Service)),
	)
	return &Application{}, nil
}

// InitializeKafkaWorkerApp для Kafka воркера (cmd/worker-order-status-changed)
func InitializeKafkaWorkerApp(
	log logger.Logger,
	sender *telegram.Sender,
) (*KafkaWorkerApp, error) {
	wire.Build(
		message_template.New,
		provideTelegramGateway,
		provideNotificationService,

		wire.Bind(new(notificationService.Messenger), new(*telegramGateway.Gateway)),
		wire.Bind(new(notificationService.TemplateFactory), new(*message_template.TemplateFactory)),

		wire.Struct(new(KafkaWorkerApp), "*"),
	)
	return nil, nil
}
