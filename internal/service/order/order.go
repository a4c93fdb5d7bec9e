package order

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"relay/internal/entities"
	"relay/pkg/logger"
)

type Service struct {
	log        serviceLogger
	repository Repository
	txManager  TxManager
}

func New(log serviceLogger, repository Repository, txManager TxManager) *Service {
	return &Service{
		log:        log,
		repository: repository,
		txManager:  txManager,
	}
}

// Transition переводит заказ из expected в next, только если сохраненный статус равен expected.
// Повтор и неизвестный заказ не ошибки: они возвращаются как Applied=false.
// Из конкурентных вызовов с одинаковыми аргументами Applied=true получает ровно один.
func (s *Service) Transition(
	ctx context.Context,
	orderID string,
	expected, next entities.OrderStatusType,
) (entities.TransitionResult, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return entities.TransitionResult{}, ErrInvalidOrderID
	}
	if !expected.IsValid() {
		return entities.TransitionResult{}, fmt.Errorf("%w: expected %q", ErrInvalidStatus, expected)
	}
	if !next.IsValid() {
		return entities.TransitionResult{}, fmt.Errorf("%w: next %q", ErrInvalidStatus, next)
	}
	if expected == next {
		return entities.TransitionResult{}, fmt.Errorf("%w: %s", ErrInvalidTransition, next)
	}

	var result entities.TransitionResult
	err := s.txManager.DoReadCommitted(ctx, func(ctx context.Context) error {
		applied, err := s.repository.CompareAndSetStatus(ctx, orderID, expected, next)
		if err != nil {
			return fmt.Errorf("compare and set status: %w", err)
		}
		if applied {
			result = entities.TransitionResult{Applied: true, Found: true, CurrentStatus: next}
			return nil
		}

		current, err := s.repository.GetByID(ctx, orderID)
		if err != nil {
			if errors.Is(err, ErrOrderNotFound) {
				result = entities.TransitionResult{}
				return nil
			}
			return fmt.Errorf("read current order: %w", err)
		}
		result = entities.TransitionResult{Found: true, CurrentStatus: current.Status}
		return nil
	})
	if err != nil {
		return entities.TransitionResult{}, fmt.Errorf("order %s transition %s -> %s: %w", orderID, expected, next, err)
	}

	log := s.log.With(
		logger.NewField("order_id", orderID),
		logger.NewField("expected", expected.String()),
		logger.NewField("next", next.String()),
	)
	switch {
	case result.Applied:
		log.Info("order status updated")
	case !result.Found:
		log.Info("order transition skipped: order not found")
	default:
		log.Info("order transition skipped: status mismatch",
			logger.NewField("current", result.CurrentStatus.String()),
		)
	}

	return result, nil
}

func (s *Service) GetOrder(ctx context.Context, orderID string) (*entities.Order, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return nil, ErrInvalidOrderID
	}

	order, err := s.repository.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order %s: %w", orderID, err)
	}
	return order, nil
}
