package notification

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type Scheduler struct {
	svc      Service
	interval time.Duration
	logger   *zap.Logger
}

func NewScheduler(svc Service, interval time.Duration, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{svc: svc, interval: interval, logger: logger.Named("sweeper")}
}

// Run sweeps once immediately and then on every tick until ctx is done.
// A non-positive interval disables the scheduler; the job endpoint still works.
func (s *Scheduler) Run(ctx context.Context) {
	if s.interval <= 0 {
		s.logger.Info("scheduled sweep disabled", zap.Duration("interval", s.interval))
		return
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Scheduler) sweep(ctx context.Context) {
	res := s.svc.CleanupExpiredNotifications(ctx)
	if !res.Success {
		s.logger.Warn("scheduled sweep failed", zap.String("error", res.Error))
		return
	}
	s.logger.Debug("scheduled sweep done", zap.Int("deleted", res.Data.Deleted))
}
