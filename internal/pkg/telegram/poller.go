package telegram

import (
	"context"
	"errors"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/sync/errgroup"
	"relay/internal/pkg/config"
	"relay/pkg/logger"
)

const maxConcurrentUpdates = 16

var errUpdatesClosed = errors.New("telegram updates channel closed")

type UpdateHandler interface {
	Handle(ctx context.Context, update tgbotapi.Update)
}

type updatesSource interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Poller получает обновления long polling'ом и передает их обработчику.
type Poller struct {
	log           logger.Logger
	source        updatesSource
	handler       UpdateHandler
	pollTimeout   time.Duration
	updateTimeout time.Duration
}

func NewPoller(ctx context.Context, log logger.Logger, cfg *config.Telegram, handler UpdateHandler) (*Poller, error) {
	pollLog := log.With(logger.NewField("client", "poller"))

	// getUpdates держит соединение до PollTimeout, клиенту нужен запас сверху.
	bot, err := newBot(ctx, pollLog, cfg.BotToken, cfg.PollTimeout+cfg.RequestTimeout)
	if err != nil {
		return nil, err
	}
	return newPoller(pollLog, bot, handler, cfg.PollTimeout, 2*cfg.RequestTimeout), nil
}

func newPoller(
	log logger.Logger,
	source updatesSource,
	handler UpdateHandler,
	pollTimeout, updateTimeout time.Duration,
) *Poller {
	return &Poller{
		log:           log,
		source:        source,
		handler:       handler,
		pollTimeout:   pollTimeout,
		updateTimeout: updateTimeout,
	}
}

// Start блокируется до отмены ctx. Уже полученные обновления дообрабатываются
// с собственным таймаутом, новые не запрашиваются.
func (p *Poller) Start(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = int(p.pollTimeout.Seconds())
	updates := p.source.GetUpdatesChan(u)

	p.log.Info("telegram polling started", logger.NewField("poll_timeout", p.pollTimeout.String()))

	var g errgroup.Group
	g.SetLimit(maxConcurrentUpdates)

	defer func() {
		_ = g.Wait()
		p.log.Info("telegram polling stopped")
	}()

	for {
		select {
		case <-ctx.Done():
			p.source.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return errUpdatesClosed
			}
			g.Go(func() error {
				p.handle(ctx, update)
				return nil
			})
		}
	}
}

func (p *Poller) handle(ctx context.Context, update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Error("telegram update handler panicked",
				logger.NewField("update_id", update.UpdateID),
				logger.NewField("panic", fmt.Sprint(r)),
			)
		}
	}()

	updateCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.updateTimeout)
	defer cancel()

	p.handler.Handle(updateCtx, update)
}
