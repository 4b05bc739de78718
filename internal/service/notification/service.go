package notification

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"storefront-admin/internal/domain"
	"storefront-admin/internal/repository"
	"storefront-admin/internal/service/email"
)

type Service interface {
	CreateNotification(ctx context.Context, input domain.NotificationInput) domain.Result[*domain.Notification]
	CreateOrderNotification(ctx context.Context, input domain.OrderNotificationInput) domain.Result[*domain.Notification]
	CreateSystemNotification(ctx context.Context, input domain.SystemNotificationInput) domain.Result[*domain.Notification]

	GetNotification(ctx context.Context, id string) domain.Result[*domain.Notification]
	GetAllNotifications(ctx context.Context, query domain.NotificationQuery) domain.Result[[]domain.Notification]
	ListNotifications(ctx context.Context, query domain.NotificationQuery, params domain.PaginationParams) domain.Result[domain.PaginatedResponse[domain.Notification]]
	GetUnreadNotificationsCount(ctx context.Context, userID domain.NullableString) domain.Result[int]

	MarkNotificationAsRead(ctx context.Context, id, readBy string) domain.Result[*domain.Notification]
	MarkMultipleNotificationsAsRead(ctx context.Context, ids []string, readBy string) domain.Result[domain.BatchReadResult]
	UpdateNotification(ctx context.Context, id string, input domain.UpdateNotificationInput) domain.Result[*domain.Notification]
	DeleteNotification(ctx context.Context, id string) domain.Result[string]

	AutoMarkOrderNotificationsRead(ctx context.Context, orderID, newStatus, actorID string) domain.Result[domain.AutoClearResult]
	ClearOrderNotifications(ctx context.Context, orderID, actorID string) domain.Result[domain.AutoClearResult]

	GetStoreOrdersNotificationCount(ctx context.Context, userID domain.NullableString) domain.Result[int]
	GetSystemNotificationCount(ctx context.Context, userID domain.NullableString) domain.Result[domain.SystemCount]
	GetMarketingNotificationCount(ctx context.Context, userID domain.NullableString) domain.Result[int]
	GetAllNavigationNotificationCounts(ctx context.Context, userID domain.NullableString) domain.Result[domain.NavigationCounts]

	CleanupExpiredNotifications(ctx context.Context) domain.Result[domain.SweepResult]
}

type Archiver interface {
	ArchiveNotifications(ctx context.Context, notifications []domain.Notification) error
}

type Options struct {
	Now            func() time.Time
	ReadRetention  time.Duration
	SweepBatchSize int
	AdminURL       string
	Locale         string
}

const (
	DefaultReadRetention  = 30 * 24 * time.Hour
	DefaultSweepBatchSize = 100
)

type service struct {
	store    repository.CollectionStore
	emailSvc email.Service
	archive  Archiver
	logger   *zap.Logger

	now            func() time.Time
	readRetention  time.Duration
	sweepBatchSize int
	adminURL       string
	locale         string

	// async runs fire-and-forget side effects such as admin emails.
	async func(func())
}

func NewService(store repository.CollectionStore, emailSvc email.Service, archive Archiver, logger *zap.Logger, opts Options) Service {
	return newService(store, emailSvc, archive, logger, opts)
}

func newService(store repository.CollectionStore, emailSvc email.Service, archive Archiver, logger *zap.Logger, opts Options) *service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.ReadRetention <= 0 {
		opts.ReadRetention = DefaultReadRetention
	}
	if opts.SweepBatchSize <= 0 {
		opts.SweepBatchSize = DefaultSweepBatchSize
	}
	if opts.Locale == "" {
		opts.Locale = "en"
	}

	return &service{
		store:          store,
		emailSvc:       emailSvc,
		archive:        archive,
		logger:         logger.Named("notification"),
		now:            opts.Now,
		readRetention:  opts.ReadRetention,
		sweepBatchSize: opts.SweepBatchSize,
		adminURL:       opts.AdminURL,
		locale:         opts.Locale,
		async:          func(f func()) { go f() },
	}
}

func failure[T any](err error) domain.Result[T] {
	switch {
	case errors.Is(err, domain.ErrNotificationNotFound),
		errors.Is(err, domain.ErrOrderNotFound),
		errors.Is(err, repository.ErrRecordNotFound):
		return domain.Fail[T](domain.CodeNotFound, err)
	case errors.Is(err, domain.ErrInvalidNotificationType),
		errors.Is(err, domain.ErrInvalidPriority),
		errors.Is(err, domain.ErrInvalidOrderStatus),
		errors.Is(err, domain.ErrInvalidOrderType):
		return domain.Fail[T](domain.CodeValidation, err)
	default:
		return domain.Fail[T](domain.CodeStoreFailure, err)
	}
}

func (s *service) timestamp() time.Time {
	return s.now().UTC()
}
