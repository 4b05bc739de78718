package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"storefront-admin/internal/domain"
	"storefront-admin/internal/repository"
	"storefront-admin/internal/service/notification"
)

type Service interface {
	Create(ctx context.Context, input domain.CreateOrderInput) (*domain.Order, error)
	Get(ctx context.Context, orderID string) (*domain.Order, error)
	UpdateStatus(ctx context.Context, orderID, status, actorID string) (*domain.Order, *domain.AutoClearResult, error)
}

type service struct {
	store         repository.CollectionStore
	notifications notification.Service
	logger        *zap.Logger
	now           func() time.Time
}

func NewService(store repository.CollectionStore, notifications notification.Service, logger *zap.Logger, now func() time.Time) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if now == nil {
		now = time.Now
	}
	return &service{store: store, notifications: notifications, logger: logger.Named("orders"), now: now}
}

func (s *service) Create(ctx context.Context, input domain.CreateOrderInput) (*domain.Order, error) {
	status := domain.OrderPending
	if input.Status != "" {
		parsed, err := domain.ParseOrderStatus(input.Status)
		if err != nil {
			return nil, err
		}
		status = parsed
	}

	orderType := domain.OrderTypeOnline
	if input.OrderType != "" {
		parsed, err := domain.ParseOrderType(input.OrderType)
		if err != nil {
			return nil, err
		}
		orderType = parsed
	}

	now := s.now().UTC()
	order := domain.Order{
		ID:            "order_" + uuid.NewString(),
		OrderNumber:   input.OrderNumber,
		CustomerName:  input.CustomerName,
		CustomerEmail: input.CustomerEmail,
		Total:         input.Total,
		Currency:      input.Currency,
		Status:        status,
		OrderType:     orderType,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if order.OrderNumber == "" {
		order.OrderNumber = fmt.Sprintf("%d", now.UnixMilli())
	}

	rec, err := repository.ToRecord(order)
	if err != nil {
		return nil, err
	}
	if _, err := s.store.Create(ctx, domain.OrderCollection, rec); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	res := s.notifications.CreateOrderNotification(ctx, domain.OrderNotificationInput{
		OrderID:       order.ID,
		OrderNumber:   order.OrderNumber,
		CustomerName:  order.CustomerName,
		CustomerEmail: order.CustomerEmail,
		Total:         order.Total,
		Currency:      order.Currency,
		Status:        string(order.Status),
		OrderType:     string(order.OrderType),
	})
	if !res.Success {
		s.logger.Warn("order notification failed", zap.String("order_id", order.ID), zap.String("error", res.Error))
	}

	return &order, nil
}

func (s *service) Get(ctx context.Context, orderID string) (*domain.Order, error) {
	rec, err := s.store.Read(ctx, domain.OrderCollection, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", domain.ErrOrderNotFound, orderID)
		}
		return nil, err
	}

	var order domain.Order
	if err := repository.FromRecord(rec, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateStatus moves the order to status and lets the auto-clear policy
// acknowledge its notifications. An auto-clear failure is reported in the
// returned result, never as an error of the status change.
func (s *service) UpdateStatus(ctx context.Context, orderID, status, actorID string) (*domain.Order, *domain.AutoClearResult, error) {
	parsed, err := domain.ParseOrderStatus(status)
	if err != nil {
		return nil, nil, err
	}

	if _, err := s.Get(ctx, orderID); err != nil {
		return nil, nil, err
	}

	rec, err := s.store.Update(ctx, domain.OrderCollection, orderID, repository.Record{
		"status":    parsed,
		"updatedBy": actorID,
		"updatedAt": s.now().UTC(),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to update order: %w", err)
	}

	var order domain.Order
	if err := repository.FromRecord(rec, &order); err != nil {
		return nil, nil, err
	}

	res := s.notifications.AutoMarkOrderNotificationsRead(ctx, orderID, string(parsed), actorID)
	if !res.Success {
		s.logger.Warn("auto clear after status change failed",
			zap.String("order_id", orderID),
			zap.String("status", string(parsed)),
			zap.String("error", res.Error),
		)
	}
	return &order, &res.Data, nil
}
