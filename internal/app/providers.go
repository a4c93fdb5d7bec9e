package app

import (
	"context"
	"time"

	telegramGateway "relay/internal/gateway/telegram"
	"relay/internal/handlers/tasks/session_cleanup"
	"relay/internal/handlers/telegram/updates"
	"relay/internal/pkg/config"
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
	"relay/pkg/background"
	"relay/pkg/logger"
	"relay/pkg/querier"
	"relay/pkg/session"
	"relay/pkg/tx"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type (
	SessionTTL      time.Duration
	CleanupInterval time.Duration
)

type Application struct {
	Notifications     *notificationService.Service
	Payments          *paymentService.Service
	Poller            *telegram.Poller
	BackgroundWorkers *background.Worker
}

type KafkaWorkerApp struct {
	Notifications *notificationService.Service
}

func provideTxManager(pool *pgxpool.Pool) *tx.Manager {
	return tx.New(pool)
}

func provideQuerier(pool *pgxpool.Pool, getter *pgxv5.CtxGetter) *querier.Querier {
	return querier.New(pool, getter)
}

func provideSessionTTL(cfg *config.Config) SessionTTL {
	return SessionTTL(cfg.Registration.SessionTTL)
}

func provideCleanupInterval(cfg *config.Config) CleanupInterval {
	return CleanupInterval(cfg.Registration.CleanupInterval)
}

func provideOrderRepository(querier *querier.Querier) *orderRepo.Repository {
	return orderRepo.New(querier)
}

func provideProfileRepository(querier *querier.Querier) *profileRepo.Repository {
	return profileRepo.New(querier)
}

func provideSessionStore(ttl SessionTTL) *session.Store[int64, entities.RegistrationSession] {
	return session.New[int64, entities.RegistrationSession](time.Duration(ttl))
}

func provideLinkFactory(cfg *config.Config) *webapp_link.LinkFactory {
	return webapp_link.New(cfg.Website.URL)
}

func provideTelegramGateway(sender *telegram.Sender) *telegramGateway.Gateway {
	return telegramGateway.New(sender)
}

func provideOrderService(
	log logger.Logger,
	repository orderService.Repository,
	txManager orderService.TxManager,
) *orderService.Service {
	return orderService.New(log, repository, txManager)
}

func provideNotificationService(
	log logger.Logger,
	messenger notificationService.Messenger,
	templates notificationService.TemplateFactory,
) *notificationService.Service {
	return notificationService.New(log, messenger, templates)
}

func providePaymentService(
	log logger.Logger,
	orders paymentService.OrderService,
	notifier paymentService.Notifier,
	cfg *config.Config,
) *paymentService.Service {
	return paymentService.New(log, orders, notifier, cfg.Payments)
}

func provideRegistrationService(
	log logger.Logger,
	profiles registrationService.ProfileRepository,
	sessions registrationService.SessionStore,
	txManager registrationService.TxManager,
	links registrationService.LinkFactory,
) *registrationService.Service {
	return registrationService.New(log, profiles, sessions, txManager, links)
}

func provideUpdatesHandler(
	log logger.Logger,
	registration updates.RegistrationService,
	sender updates.ReplySender,
) *updates.Handler {
	return updates.New(log, registration, sender)
}

func provideTelegramPoller(
	ctx context.Context,
	log logger.Logger,
	cfg *config.Config,
	handler telegram.UpdateHandler,
) (*telegram.Poller, error) {
	return telegram.NewPoller(ctx, log, &cfg.Telegram, handler)
}

func provideSessionCleanupTask(
	log logger.Logger,
	registration session_cleanup.Service,
	interval CleanupInterval,
) *session_cleanup.SessionCleanup {
	return session_cleanup.NewSessionCleanup(log, registration, time.Duration(interval))
}

func provideTaskList(
	sessionCleanupTask *session_cleanup.SessionCleanup,
	systemCollector *metrics.SystemCollector,
) []background.Task {
	return []background.Task{
		sessionCleanupTask,
		systemCollector,
	}
}

func provideBackgroundWorkers(ctx context.Context, log logger.Logger, tasks []background.Task) (*background.Worker, error) {
	return background.Start(ctx, log, tasks...)
}
