package notification

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"storefront-admin/internal/domain"
	"storefront-admin/internal/metrics"
	"storefront-admin/internal/repository"
)

func (s *service) MarkNotificationAsRead(ctx context.Context, id, readBy string) domain.Result[*domain.Notification] {
	n, err := s.markRead(ctx, id, readBy)
	if err != nil {
		s.logger.Warn("failed to mark notification read", zap.String("id", id), zap.Error(err))
		return failure[*domain.Notification](err)
	}
	metrics.NotificationsMarkedReadTotal.WithLabelValues("user").Inc()
	return domain.OK(n, "Notification marked as read")
}

func (s *service) markRead(ctx context.Context, id, readBy string) (*domain.Notification, error) {
	if _, err := s.store.Read(ctx, domain.NotificationCollection, id); err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotificationNotFound, id)
		}
		return nil, err
	}

	now := s.timestamp()
	updated, err := s.store.Update(ctx, domain.NotificationCollection, id, repository.Record{
		"isRead":    true,
		"readAt":    now,
		"readBy":    readBy,
		"updatedAt": now,
	})
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotificationNotFound, id)
		}
		return nil, err
	}
	return decode(updated)
}

func (s *service) MarkMultipleNotificationsAsRead(ctx context.Context, ids []string, readBy string) domain.Result[domain.BatchReadResult] {
	batch := s.markMany(ctx, ids, readBy, "user")
	return batchResult(batch, "Notifications marked as read")
}

// markMany marks ids one after another, never in parallel, and records the
// outcome of each.
func (s *service) markMany(ctx context.Context, ids []string, readBy, source string) domain.BatchReadResult {
	batch := domain.BatchReadResult{Results: make([]domain.BatchItemResult, 0, len(ids))}

	for _, id := range ids {
		if _, err := s.markRead(ctx, id, readBy); err != nil {
			batch.FailureCount++
			batch.Results = append(batch.Results, domain.BatchItemResult{ID: id, Success: false, Error: err.Error()})
			continue
		}
		batch.SuccessCount++
		batch.Results = append(batch.Results, domain.BatchItemResult{ID: id, Success: true})
	}

	if batch.SuccessCount > 0 {
		metrics.NotificationsMarkedReadTotal.WithLabelValues(source).Add(float64(batch.SuccessCount))
	}
	if batch.FailureCount > 0 {
		s.logger.Warn("batch mark read finished with failures",
			zap.Int("succeeded", batch.SuccessCount),
			zap.Int("failed", batch.FailureCount),
		)
	}
	return batch
}

func batchResult(batch domain.BatchReadResult, message string) domain.Result[domain.BatchReadResult] {
	if batch.FailureCount == 0 {
		return domain.OK(batch, message)
	}
	return domain.Result[domain.BatchReadResult]{
		Success: false,
		Data:    batch,
		Error:   fmt.Sprintf("%d of %d notifications could not be marked as read", batch.FailureCount, len(batch.Results)),
		Code:    domain.CodePartialFailure,
	}
}

func (s *service) UpdateNotification(ctx context.Context, id string, input domain.UpdateNotificationInput) domain.Result[*domain.Notification] {
	current, err := s.get(ctx, id)
	if err != nil {
		return failure[*domain.Notification](err)
	}

	patch := repository.Record{"updatedAt": s.timestamp()}
	if input.Title != nil {
		patch["title"] = *input.Title
	}
	if input.Message != nil {
		patch["message"] = *input.Message
	}
	if input.Priority != nil {
		priority, err := domain.ParsePriority(*input.Priority)
		if err != nil {
			return failure[*domain.Notification](err)
		}
		patch["priority"] = priority
	}
	if input.ActionLink != nil {
		patch["actionLink"] = *input.ActionLink
	}
	if input.ActionText != nil {
		patch["actionText"] = *input.ActionText
	}
	if input.ExpiresAt.Set {
		patch["expiresAt"] = input.ExpiresAt.Value
	}
	if len(input.Metadata) > 0 {
		metadata := make(map[string]any, len(current.Metadata)+len(input.Metadata))
		for k, v := range current.Metadata {
			metadata[k] = v
		}
		for k, v := range input.Metadata {
			metadata[k] = v
		}
		patch["metadata"] = metadata
	}

	updated, err := s.store.Update(ctx, domain.NotificationCollection, id, patch)
	if err != nil {
		return failure[*domain.Notification](err)
	}
	n, err := decode(updated)
	if err != nil {
		return failure[*domain.Notification](err)
	}
	return domain.OK(n, "Notification updated")
}

func (s *service) DeleteNotification(ctx context.Context, id string) domain.Result[string] {
	if err := s.store.Delete(ctx, domain.NotificationCollection, id); err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return failure[string](fmt.Errorf("%w: %s", domain.ErrNotificationNotFound, id))
		}
		s.logger.Warn("failed to delete notification", zap.String("id", id), zap.Error(err))
		return failure[string](err)
	}
	return domain.OK(id, "Notification deleted")
}
