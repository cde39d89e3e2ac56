package mocks

import (
	"context"

	"github.com/metinatakli/seat-inventory/internal/domain"
	"github.com/shopspring/decimal"
)

type MockPricingEngine struct {
	ComputePriceFunc func(ctx context.Context, show domain.Show, seats []domain.Seat) (decimal.Decimal, error)
}

func (m *MockPricingEngine) ComputePrice(ctx context.Context, show domain.Show, seats []domain.Seat) (decimal.Decimal, error) {
	return m.ComputePriceFunc(ctx, show, seats)
}
