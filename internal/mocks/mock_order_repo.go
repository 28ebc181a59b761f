package mocks

import (
	"context"

	"github.com/metinatakli/esim-marketplace/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockOrderRepo struct {
	mock.Mock
	domain.OrderRepository
}

func (m *MockOrderRepo) AttachOrder(
	ctx context.Context,
	checkoutID string,
	customerEmail *string) (*domain.Order, bool, error) {

	args := m.Called(ctx, checkoutID, customerEmail)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.Order), args.Bool(1), args.Error(2)
}
