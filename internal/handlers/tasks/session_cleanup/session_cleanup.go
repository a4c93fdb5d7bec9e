package session_cleanup

import (
	"context"
	"time"

	"relay/pkg/logger"
)

type Service interface {
	PruneSessions() int
}

// SessionCleanup удаляет незавершенные регистрации, у которых истек TTL.
type SessionCleanup struct {
	log      logger.Logger
	service  Service
	interval time.Duration
}

func NewSessionCleanup(log logger.Logger, service Service, interval time.Duration) *SessionCleanup {
	return &SessionCleanup{
		log:      log,
		service:  service,
		interval: interval,
	}
}

func (s *SessionCleanup) TTL() time.Duration {
	return s.interval
}

func (s *SessionCleanup) Do(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	removed := s.service.PruneSessions()
	if removed > 0 {
		s.log.With(
			logger.NewField("expired_sessions", removed),
		).Info("registration session cleanup")
	}
	return nil
}

func (s *SessionCleanup) Info() string {
	return "registration session cleanup"
}
