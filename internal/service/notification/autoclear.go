package notification

import (
	"context"

	"go.uber.org/zap"

	"storefront-admin/internal/domain"
	"storefront-admin/internal/pkg/i18n"
)

func (s *service) AutoMarkOrderNotificationsRead(ctx context.Context, orderID, newStatus, actorID string) domain.Result[domain.AutoClearResult] {
	status, err := domain.ParseOrderStatus(newStatus)
	if err != nil {
		return failure[domain.AutoClearResult](err)
	}

	if status.AwaitingReview() {
		reason := i18n.TranslateOr(s.locale, "AUTO_CLEAR_SKIPPED", "Order is still awaiting review")
		return domain.OK(domain.AutoClearResult{Marked: 0, Reason: reason}, reason)
	}

	all, err := s.loadAll(ctx)
	if err != nil {
		s.logger.Warn("auto clear failed to load notifications", zap.String("order_id", orderID), zap.Error(err))
		return failure[domain.AutoClearResult](err)
	}

	var ids []string
	for _, n := range all {
		if n.RelatedID == orderID && n.Type == domain.NotifOrder && !n.IsRead && n.AutoMarkRead {
			ids = append(ids, n.ID)
		}
	}

	return s.clear(ctx, orderID, ids, actorID, "auto_clear")
}

// ClearOrderNotifications marks every unread notification tied to the order
// read, whether or not it opted into auto-clear.
func (s *service) ClearOrderNotifications(ctx context.Context, orderID, actorID string) domain.Result[domain.AutoClearResult] {
	all, err := s.loadAll(ctx)
	if err != nil {
		return failure[domain.AutoClearResult](err)
	}

	var ids []string
	for _, n := range all {
		if n.RelatedID == orderID && n.RelatedType == domain.RelatedTypeOrder && !n.IsRead {
			ids = append(ids, n.ID)
		}
	}

	return s.clear(ctx, orderID, ids, actorID, "order_clear")
}

func (s *service) clear(ctx context.Context, orderID string, ids []string, actorID, source string) domain.Result[domain.AutoClearResult] {
	if len(ids) == 0 {
		reason := "No unread notifications for order"
		return domain.OK(domain.AutoClearResult{Marked: 0, Reason: reason}, reason)
	}

	batch := s.markMany(ctx, ids, actorID, source)
	result := domain.AutoClearResult{Marked: batch.SuccessCount, Batch: &batch}

	s.logger.Info("order notifications cleared",
		zap.String("order_id", orderID),
		zap.String("source", source),
		zap.Int("marked", batch.SuccessCount),
		zap.Int("failed", batch.FailureCount),
	)

	if batch.FailureCount > 0 {
		return domain.Result[domain.AutoClearResult]{
			Success: false,
			Data:    result,
			Error:   batchResult(batch, "").Error,
			Code:    domain.CodePartialFailure,
		}
	}
	return domain.OK(result, "Order notifications marked as read")
}
