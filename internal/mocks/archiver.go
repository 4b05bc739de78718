package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"storefront-admin/internal/domain"
)

type Archiver struct {
	mock.Mock
}

func (m *Archiver) ArchiveNotifications(ctx context.Context, notifications []domain.Notification) error {
	args := m.Called(ctx, notifications)
	return args.Error(0)
}
