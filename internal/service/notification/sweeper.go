package notification

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"storefront-admin/internal/domain"
	"storefront-admin/internal/metrics"
	"storefront-admin/internal/repository"
)

type sweepReason string

const (
	reasonExpired   sweepReason = "expired"
	reasonRetention sweepReason = "retention"
)

type sweepCandidate struct {
	notification domain.Notification
	reason       sweepReason
}

// sweepReasonFor decides whether n is due for deletion at now. An explicit
// expiry wins over the read-retention window.
func sweepReasonFor(n domain.Notification, now time.Time, retention time.Duration) (sweepReason, bool) {
	if n.ExpiresAt != nil && n.ExpiresAt.Before(now) {
		return reasonExpired, true
	}
	if n.IsRead && n.ReadAt != nil && now.Sub(*n.ReadAt) > retention {
		return reasonRetention, true
	}
	return "", false
}

// CleanupExpiredNotifications scans the collection once and deletes due
// notifications in fixed-size batches, archiving each batch first when an
// archive is configured. Cancelling ctx stops between batches.
func (s *service) CleanupExpiredNotifications(ctx context.Context) domain.Result[domain.SweepResult] {
	all, err := s.loadAll(ctx)
	if err != nil {
		s.logger.Warn("sweep failed to load notifications", zap.Error(err))
		return failure[domain.SweepResult](err)
	}

	now := s.timestamp()
	result := domain.SweepResult{Scanned: len(all)}

	var due []sweepCandidate
	for _, n := range all {
		if reason, ok := sweepReasonFor(n, now, s.readRetention); ok {
			due = append(due, sweepCandidate{notification: n, reason: reason})
		}
	}

	for start := 0; start < len(due); start += s.sweepBatchSize {
		if err := ctx.Err(); err != nil {
			s.logger.Warn("sweep interrupted", zap.Int("deleted", result.Deleted), zap.Error(err))
			return domain.Result[domain.SweepResult]{
				Success: false,
				Data:    result,
				Error:   err.Error(),
				Code:    domain.CodeStoreFailure,
			}
		}

		end := start + s.sweepBatchSize
		if end > len(due) {
			end = len(due)
		}
		s.sweepBatch(ctx, due[start:end], &result)
	}

	s.logger.Info("notification sweep finished",
		zap.Int("scanned", result.Scanned),
		zap.Int("deleted", result.Deleted),
		zap.Int("failed", result.Failed),
	)

	if result.Failed > 0 {
		return domain.Result[domain.SweepResult]{
			Success: false,
			Data:    result,
			Error:   "some notifications could not be removed",
			Code:    domain.CodePartialFailure,
		}
	}
	return domain.OK(result, "Expired notifications cleaned up")
}

func (s *service) sweepBatch(ctx context.Context, batch []sweepCandidate, result *domain.SweepResult) {
	if s.archive != nil {
		archived := make([]domain.Notification, len(batch))
		for i, c := range batch {
			archived[i] = c.notification
		}
		if err := s.archive.ArchiveNotifications(ctx, archived); err != nil {
			s.logger.Warn("archive failed, batch kept", zap.Int("size", len(batch)), zap.Error(err))
			result.Failed += len(batch)
			return
		}
	}

	for _, c := range batch {
		err := s.store.Delete(ctx, domain.NotificationCollection, c.notification.ID)
		if errors.Is(err, repository.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			s.logger.Warn("failed to delete notification", zap.String("id", c.notification.ID), zap.Error(err))
			result.Failed++
			continue
		}

		result.Deleted++
		if c.reason == reasonExpired {
			result.Expired++
		} else {
			result.Retention++
		}
		metrics.NotificationsSweptTotal.WithLabelValues(string(c.reason)).Inc()
	}
}
