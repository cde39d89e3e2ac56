package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// PricingEngine computes the final price of a seat set. Implementations must
// be free of side effects and must not block on external I/O.
type PricingEngine interface {
	ComputePrice(ctx context.Context, show Show, seats []Seat) (decimal.Decimal, error)
}
