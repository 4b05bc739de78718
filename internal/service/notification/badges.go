package notification

import (
	"context"

	"golang.org/x/sync/errgroup"

	"storefront-admin/internal/domain"
)

var systemTypes = []domain.NotificationType{
	domain.NotifSecurity,
	domain.NotifMaintenance,
	domain.NotifError,
	domain.NotifWarning,
}

func (s *service) storeOrdersCount(ctx context.Context, userID domain.NullableString) (int, error) {
	unread, err := s.query(ctx, domain.NotificationQuery{UserID: userID, UnreadOnly: true, Type: domain.NotifOrder})
	if err != nil {
		return 0, err
	}

	count := 0
	for _, n := range unread {
		if orderType, _ := n.MetadataString("orderType"); orderType == string(domain.OrderTypeManual) {
			continue
		}
		if n.RelatedType != domain.RelatedTypeOrder {
			continue
		}
		count++
	}
	return count, nil
}

func (s *service) systemCount(ctx context.Context, userID domain.NullableString) (domain.SystemCount, error) {
	unread, err := s.query(ctx, domain.NotificationQuery{UserID: userID, UnreadOnly: true})
	if err != nil {
		return domain.SystemCount{}, err
	}

	result := domain.SystemCount{Breakdown: make(map[domain.NotificationType]int, len(systemTypes))}
	for _, t := range systemTypes {
		result.Breakdown[t] = 0
	}
	for _, n := range unread {
		if _, ok := result.Breakdown[n.Type]; ok {
			result.Breakdown[n.Type]++
			result.Count++
		}
	}
	return result, nil
}

func (s *service) marketingCount(ctx context.Context, userID domain.NullableString) (int, error) {
	unread, err := s.query(ctx, domain.NotificationQuery{UserID: userID, UnreadOnly: true})
	if err != nil {
		return 0, err
	}

	count := 0
	for _, n := range unread {
		if n.Type != domain.NotifReport && n.Type != domain.NotifInfo {
			continue
		}
		if n.HasMetadata("reportType") || n.HasMetadata("campaignType") {
			count++
		}
	}
	return count, nil
}

func (s *service) GetStoreOrdersNotificationCount(ctx context.Context, userID domain.NullableString) domain.Result[int] {
	count, err := s.storeOrdersCount(ctx, userID)
	if err != nil {
		return failure[int](err)
	}
	return domain.OK(count, "")
}

func (s *service) GetSystemNotificationCount(ctx context.Context, userID domain.NullableString) domain.Result[domain.SystemCount] {
	count, err := s.systemCount(ctx, userID)
	if err != nil {
		return failure[domain.SystemCount](err)
	}
	return domain.OK(count, "")
}

func (s *service) GetMarketingNotificationCount(ctx context.Context, userID domain.NullableString) domain.Result[int] {
	count, err := s.marketingCount(ctx, userID)
	if err != nil {
		return failure[int](err)
	}
	return domain.OK(count, "")
}

func (s *service) GetAllNavigationNotificationCounts(ctx context.Context, userID domain.NullableString) domain.Result[domain.NavigationCounts] {
	var counts domain.NavigationCounts

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.storeOrdersCount(gctx, userID)
		counts.StoreOrders = n
		return err
	})
	g.Go(func() error {
		n, err := s.systemCount(gctx, userID)
		counts.System = n
		return err
	})
	g.Go(func() error {
		n, err := s.marketingCount(gctx, userID)
		counts.Marketing = n
		return err
	})

	if err := g.Wait(); err != nil {
		return failure[domain.NavigationCounts](err)
	}

	counts.Total = counts.StoreOrders + counts.System.Count + counts.Marketing
	return domain.OK(counts, "")
}
