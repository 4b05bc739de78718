package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"storefront-admin/internal/service/email"
)

type EmailService struct {
	mock.Mock
}

func (m *EmailService) SendNewOrderEmail(ctx context.Context, order email.NewOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}
