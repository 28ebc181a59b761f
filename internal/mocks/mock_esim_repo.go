package mocks

import (
	"context"

	"github.com/metinatakli/esim-marketplace/internal/domain"
)

type MockESimRepo struct {
	domain.ESimRepository
	GetByICCIDFunc func(ctx context.Context, iccid string) (*domain.ESim, error)
}

func (m *MockESimRepo) GetByICCID(ctx context.Context, iccid string) (*domain.ESim, error) {
	return m.GetByICCIDFunc(ctx, iccid)
}
