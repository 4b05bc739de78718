package notification

import (
	"context"
	"errors"
	"sort"

	"go.uber.org/zap"

	"storefront-admin/internal/domain"
	"storefront-admin/internal/repository"
)

// loadAll reads the whole collection. Records that no longer decode are
// logged and skipped so one bad row cannot hide the rest.
func (s *service) loadAll(ctx context.Context) ([]domain.Notification, error) {
	records, err := s.store.ReadAll(ctx, domain.NotificationCollection)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Notification, 0, len(records))
	for _, rec := range records {
		n, err := decode(rec)
		if err != nil {
			s.logger.Warn("skipping undecodable notification", zap.String("id", rec.ID()), zap.Error(err))
			continue
		}
		out = append(out, *n)
	}
	return out, nil
}

// Filter applies the query to an in-memory collection: user scope (own plus
// global), unread state and exact type, newest first, then the limit.
func Filter(all []domain.Notification, q domain.NotificationQuery) []domain.Notification {
	out := make([]domain.Notification, 0, len(all))
	for _, n := range all {
		if q.UserID.Set && !n.VisibleTo(q.UserID.Value) {
			continue
		}
		if q.UnreadOnly && n.IsRead {
			continue
		}
		if q.Type != "" && n.Type != q.Type {
			continue
		}
		out = append(out, n)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out
}

func (s *service) query(ctx context.Context, q domain.NotificationQuery) ([]domain.Notification, error) {
	all, err := s.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	return Filter(all, q), nil
}

func (s *service) GetAllNotifications(ctx context.Context, q domain.NotificationQuery) domain.Result[[]domain.Notification] {
	notifications, err := s.query(ctx, q)
	if err != nil {
		s.logger.Warn("failed to query notifications", zap.Error(err))
		return failure[[]domain.Notification](err)
	}
	return domain.OK(notifications, "")
}

func (s *service) ListNotifications(ctx context.Context, q domain.NotificationQuery, params domain.PaginationParams) domain.Result[domain.PaginatedResponse[domain.Notification]] {
	notifications, err := s.query(ctx, q)
	if err != nil {
		s.logger.Warn("failed to list notifications", zap.Error(err))
		return failure[domain.PaginatedResponse[domain.Notification]](err)
	}
	return domain.OK(domain.Paginate(notifications, params), "")
}

func (s *service) GetNotification(ctx context.Context, id string) domain.Result[*domain.Notification] {
	n, err := s.get(ctx, id)
	if err != nil {
		return failure[*domain.Notification](err)
	}
	return domain.OK(n, "")
}

func (s *service) get(ctx context.Context, id string) (*domain.Notification, error) {
	rec, err := s.store.Read(ctx, domain.NotificationCollection, id)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, domain.ErrNotificationNotFound
		}
		return nil, err
	}
	return decode(rec)
}

func (s *service) GetUnreadNotificationsCount(ctx context.Context, userID domain.NullableString) domain.Result[int] {
	unread, err := s.query(ctx, domain.NotificationQuery{UserID: userID, UnreadOnly: true})
	if err != nil {
		return failure[int](err)
	}
	return domain.OK(len(unread), "")
}
