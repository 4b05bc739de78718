package notification

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"storefront-admin/internal/domain"
	"storefront-admin/internal/metrics"
	"storefront-admin/internal/pkg/i18n"
	"storefront-admin/internal/repository"
	"storefront-admin/internal/service/email"
)

const (
	defaultTitle = "New Notification"
	emailTimeout = 30 * time.Second
)

func NewID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("notification_%d_%s", now.UnixMilli(), suffix)
}

func BuildNotification(input domain.NotificationInput, id string, now time.Time, title string) (*domain.Notification, error) {
	notifType, err := domain.ParseNotificationType(input.Type)
	if err != nil {
		return nil, err
	}
	priority, err := domain.ParsePriority(input.Priority)
	if err != nil {
		return nil, err
	}

	if input.Title != "" {
		title = input.Title
	}
	if title == "" {
		title = defaultTitle
	}

	metadata := make(map[string]any, len(input.Metadata))
	for k, v := range input.Metadata {
		metadata[k] = v
	}

	return &domain.Notification{
		ID:             id,
		Title:          title,
		Message:        input.Message,
		Type:           notifType,
		Priority:       priority,
		UserID:         input.UserID,
		IsRead:         false,
		RequiresAction: input.RequiresAction,
		ActionLink:     input.ActionLink,
		ActionText:     input.ActionText,
		AutoMarkRead:   input.AutoMarkRead,
		RelatedID:      input.RelatedID,
		RelatedType:    input.RelatedType,
		Metadata:       metadata,
		CreatedAt:      now,
		UpdatedAt:      now,
		ExpiresAt:      input.ExpiresAt,
	}, nil
}

func (s *service) CreateNotification(ctx context.Context, input domain.NotificationInput) domain.Result[*domain.Notification] {
	notif, err := s.create(ctx, input)
	if err != nil {
		s.logger.Warn("failed to create notification", zap.String("type", input.Type), zap.Error(err))
		return failure[*domain.Notification](err)
	}
	return domain.OK(notif, "Notification created")
}

func (s *service) create(ctx context.Context, input domain.NotificationInput) (*domain.Notification, error) {
	now := s.timestamp()
	title := i18n.TranslateOr(s.locale, "DEFAULT_TITLE", defaultTitle)

	notif, err := BuildNotification(input, NewID(now), now, title)
	if err != nil {
		return nil, err
	}

	rec, err := repository.ToRecord(notif)
	if err != nil {
		return nil, err
	}
	stored, err := s.store.Create(ctx, domain.NotificationCollection, rec)
	if err != nil {
		return nil, err
	}

	created, err := decode(stored)
	if err != nil {
		return nil, err
	}

	metrics.NotificationsCreatedTotal.WithLabelValues(string(created.Type)).Inc()
	s.logger.Info("notification created",
		zap.String("id", created.ID),
		zap.String("type", string(created.Type)),
		zap.Bool("global", created.IsGlobal()),
	)
	return created, nil
}

func (s *service) CreateOrderNotification(ctx context.Context, input domain.OrderNotificationInput) domain.Result[*domain.Notification] {
	if input.OrderType != "" {
		if _, err := domain.ParseOrderType(input.OrderType); err != nil {
			return failure[*domain.Notification](err)
		}
	}
	if domain.OrderType(input.OrderType) != domain.OrderTypeOnline {
		metrics.OrderNotificationsSuppressedTotal.Inc()
		msg := i18n.TranslateOr(s.locale, "MANUAL_ORDER_SUPPRESSED", "Manual orders do not create notifications")
		return domain.OK[*domain.Notification](nil, msg)
	}

	status := domain.OrderPending
	if input.Status != "" {
		parsed, err := domain.ParseOrderStatus(input.Status)
		if err != nil {
			return failure[*domain.Notification](err)
		}
		status = parsed
	}

	total := formatTotal(input.Total, input.Currency)
	customer := input.CustomerName
	if customer == "" {
		customer = input.CustomerEmail
	}

	notif, err := s.create(ctx, domain.NotificationInput{
		Title:          i18n.TranslateOr(s.locale, "ORDER_TITLE", "New Order Received"),
		Message:        fmt.Sprintf(i18n.TranslateOr(s.locale, "ORDER_MESSAGE", "Order #%s from %s - %s"), input.OrderNumber, customer, total),
		Type:           string(domain.NotifOrder),
		Priority:       string(domain.PriorityHigh),
		UserID:         nil,
		RequiresAction: true,
		ActionLink:     "/admin/store/orders/" + input.OrderID,
		ActionText:     i18n.TranslateOr(s.locale, "ORDER_ACTION", "View Order"),
		AutoMarkRead:   true,
		RelatedID:      input.OrderID,
		RelatedType:    domain.RelatedTypeOrder,
		Metadata: map[string]any{
			"orderId":       input.OrderID,
			"orderNumber":   input.OrderNumber,
			"customerName":  input.CustomerName,
			"customerEmail": input.CustomerEmail,
			"total":         input.Total,
			"status":        string(status),
			"orderType":     string(domain.OrderTypeOnline),
		},
	})
	if err != nil {
		s.logger.Warn("failed to create order notification", zap.String("order_id", input.OrderID), zap.Error(err))
		return failure[*domain.Notification](err)
	}

	if s.emailSvc != nil {
		order := email.NewOrder{
			OrderNumber:   input.OrderNumber,
			CustomerName:  customer,
			CustomerEmail: input.CustomerEmail,
			Total:         total,
			Status:        string(status),
			Link:          strings.TrimRight(s.adminURL, "/") + "/store/orders/" + input.OrderID,
		}
		s.async(func() {
			sendCtx, cancel := context.WithTimeout(context.Background(), emailTimeout)
			defer cancel()
			if err := s.emailSvc.SendNewOrderEmail(sendCtx, order); err != nil {
				s.logger.Warn("failed to send new order email", zap.String("order_id", input.OrderID), zap.Error(err))
			}
		})
	}

	return domain.OK(notif, "Order notification created")
}

func (s *service) CreateSystemNotification(ctx context.Context, input domain.SystemNotificationInput) domain.Result[*domain.Notification] {
	autoMarkRead := !input.RequiresAction
	if input.AutoMarkRead != nil {
		autoMarkRead = *input.AutoMarkRead
	}

	return s.CreateNotification(ctx, domain.NotificationInput{
		Title:          input.Title,
		Message:        input.Message,
		Type:           input.Type,
		Priority:       input.Priority,
		UserID:         input.UserID,
		RequiresAction: input.RequiresAction,
		ActionLink:     input.ActionLink,
		ActionText:     input.ActionText,
		AutoMarkRead:   autoMarkRead,
		RelatedID:      input.RelatedID,
		RelatedType:    input.RelatedType,
		Metadata:       input.Metadata,
		ExpiresAt:      input.ExpiresAt,
	})
}

func formatTotal(total float64, currency string) string {
	if currency == "" || strings.EqualFold(currency, "USD") {
		return fmt.Sprintf("$%.2f", total)
	}
	return fmt.Sprintf("%.2f %s", total, strings.ToUpper(currency))
}

func decode(rec repository.Record) (*domain.Notification, error) {
	var n domain.Notification
	if err := repository.FromRecord(rec, &n); err != nil {
		return nil, err
	}
	n.ID = rec.ID()
	return &n, nil
}
