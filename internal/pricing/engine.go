// Package pricing computes ticket prices from a show's base price, per-seat
// surcharges and a set of discount rules combined under a configurable policy.
package pricing

import (
	"context"
	"fmt"
	"strings"

	"github.com/metinatakli/seat-inventory/internal/domain"
	"github.com/shopspring/decimal"
)

type Policy string

const (
	// PolicyAdditive evaluates every rule against the original subtotal and
	// subtracts the sum of the discounts.
	PolicyAdditive Policy = "additive"
	// PolicyCompound applies the rules one after another, each on what is
	// left after the previous ones.
	PolicyCompound Policy = "compound"
	// PolicyBestOffer applies only the largest single discount.
	PolicyBestOffer Policy = "best"
)

func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(strings.ToLower(strings.TrimSpace(s))); p {
	case PolicyAdditive, PolicyCompound, PolicyBestOffer:
		return p, nil
	case "":
		return PolicyAdditive, nil
	default:
		return "", fmt.Errorf("unknown pricing policy %q", s)
	}
}

var hundred = decimal.NewFromInt(100)

// Engine implements domain.PricingEngine.
type Engine struct {
	policy Policy
	rules  []Rule
}

func NewEngine(policy Policy, rules ...Rule) *Engine {
	if policy == "" {
		policy = PolicyAdditive
	}

	return &Engine{
		policy: policy,
		rules:  rules,
	}
}

func (e *Engine) Policy() Policy {
	return e.policy
}

func (e *Engine) ComputePrice(ctx context.Context, show domain.Show, seats []domain.Seat) (decimal.Decimal, error) {
	if err := ctx.Err(); err != nil {
		return decimal.Zero, fmt.Errorf("%w: %w", domain.ErrPricingFailure, err)
	}

	quote, err := newQuote(show, seats)
	if err != nil {
		return decimal.Zero, err
	}

	discount := e.totalDiscount(quote)

	total := quote.Subtotal.Sub(discount)
	if total.IsNegative() {
		total = decimal.Zero
	}

	return total.Round(2), nil
}

type applied struct {
	rule     Rule
	discount decimal.Decimal
}

func (e *Engine) totalDiscount(quote Quote) decimal.Decimal {
	var (
		matched   []applied
		exclusive *applied
	)

	for _, rule := range e.rules {
		discount, ok := rule.Discount(quote)
		if !ok || !discount.IsPositive() {
			continue
		}

		a := applied{rule: rule, discount: discount}
		matched = append(matched, a)

		if rule.Exclusive() && (exclusive == nil || discount.GreaterThan(exclusive.discount)) {
			exclusive = &a
		}
	}

	if exclusive != nil {
		return exclusive.discount
	}

	switch e.policy {
	case PolicyBestOffer:
		best := decimal.Zero
		for _, a := range matched {
			best = decimal.Max(best, a.discount)
		}
		return best

	case PolicyCompound:
		if quote.Subtotal.IsZero() {
			return decimal.Zero
		}

		remaining := quote.Subtotal
		for _, a := range matched {
			// scale the rule's share of the original subtotal to what is left
			ratio := a.discount.Div(quote.Subtotal)
			remaining = remaining.Sub(remaining.Mul(ratio))
		}
		return quote.Subtotal.Sub(remaining)

	default:
		sum := decimal.Zero
		for _, a := range matched {
			sum = sum.Add(a.discount)
		}
		return sum
	}
}

// Quote is what every rule is evaluated against.
type Quote struct {
	Show       domain.Show
	Seats      []domain.Seat
	SeatPrices []decimal.Decimal
	Subtotal   decimal.Decimal
}

func newQuote(show domain.Show, seats []domain.Seat) (Quote, error) {
	if len(seats) == 0 {
		return Quote{}, fmt.Errorf("%w: no seats to price", domain.ErrPricingFailure)
	}

	if show.BasePrice.IsNegative() {
		return Quote{}, fmt.Errorf("%w: negative base price for show %s", domain.ErrPricingFailure, show.ID)
	}

	quote := Quote{
		Show:       show,
		Seats:      seats,
		SeatPrices: make([]decimal.Decimal, len(seats)),
		Subtotal:   decimal.Zero,
	}

	for i, seat := range seats {
		if seat.ExtraPrice.IsNegative() {
			return Quote{}, fmt.Errorf("%w: negative surcharge for seat %s", domain.ErrPricingFailure, seat.ID)
		}

		price := show.BasePrice.Add(seat.ExtraPrice)
		quote.SeatPrices[i] = price
		quote.Subtotal = quote.Subtotal.Add(price)
	}

	return quote, nil
}

func percentOf(amount, percent decimal.Decimal) decimal.Decimal {
	return amount.Mul(percent).Div(hundred)
}
