package mocks

import (
	"context"

	"github.com/metinatakli/esim-marketplace/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockCheckoutRepo struct {
	mock.Mock
	domain.CheckoutRepository
}

func (m *MockCheckoutRepo) GetSummary(ctx context.Context, checkoutID string) (*domain.CheckoutSummary, error) {
	args := m.Called(ctx, checkoutID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CheckoutSummary), args.Error(1)
}

func (m *MockCheckoutRepo) UpdateState(
	ctx context.Context,
	checkoutID string,
	status domain.CheckoutStatus,
	paymentStatus domain.PaymentStatus) (domain.PaymentStatus, error) {

	args := m.Called(ctx, checkoutID, status, paymentStatus)
	return args.Get(0).(domain.PaymentStatus), args.Error(1)
}
