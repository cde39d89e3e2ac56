package pricing

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// Rule is a discount strategy. Discount returns the amount the rule takes off
// the quote's original subtotal and whether the rule applies at all.
type Rule interface {
	Name() string
	Discount(quote Quote) (decimal.Decimal, bool)
	// Exclusive rules override every other rule when they apply.
	Exclusive() bool
}

// PercentageOff takes a percentage off the whole order once it has at least
// MinSeats seats.
type PercentageOff struct {
	Percent  decimal.Decimal
	MinSeats int
	Override bool
}

func (r PercentageOff) Name() string {
	return fmt.Sprintf("%s%% off", r.Percent.String())
}

func (r PercentageOff) Discount(quote Quote) (decimal.Decimal, bool) {
	if len(quote.Seats) < r.MinSeats || !r.Percent.IsPositive() {
		return decimal.Zero, false
	}

	return percentOf(quote.Subtotal, decimal.Min(r.Percent, hundred)), true
}

func (r PercentageOff) Exclusive() bool {
	return r.Override
}

// NthTicket discounts every Nth ticket. Tickets are ranked cheapest first so
// the discount does not depend on the order seats were requested in.
type NthTicket struct {
	N        int
	Percent  decimal.Decimal
	Override bool
}

func (r NthTicket) Name() string {
	return fmt.Sprintf("%s%% off every ticket #%d", r.Percent.String(), r.N)
}

func (r NthTicket) Discount(quote Quote) (decimal.Decimal, bool) {
	if r.N < 1 || len(quote.Seats) < r.N || !r.Percent.IsPositive() {
		return decimal.Zero, false
	}

	idx := make([]int, len(quote.Seats))
	for i := range idx {
		idx[i] = i
	}

	slices.SortStableFunc(idx, func(a, b int) int {
		if c := quote.SeatPrices[a].Cmp(quote.SeatPrices[b]); c != 0 {
			return c
		}
		return cmp.Compare(quote.Seats[a].ID, quote.Seats[b].ID)
	})

	percent := decimal.Min(r.Percent, hundred)
	discount := decimal.Zero

	for rank := r.N; rank <= len(idx); rank += r.N {
		discount = discount.Add(percentOf(quote.SeatPrices[idx[rank-1]], percent))
	}

	return discount, true
}

func (r NthTicket) Exclusive() bool {
	return r.Override
}

// TimeWindow discounts shows that start inside [From, To) measured as time of
// day in the show's own location, e.g. afternoon matinees.
type TimeWindow struct {
	From     time.Duration
	To       time.Duration
	Percent  decimal.Decimal
	Override bool
}

func (r TimeWindow) Name() string {
	return fmt.Sprintf("%s%% off shows between %s and %s", r.Percent.String(), r.From, r.To)
}

func (r TimeWindow) Discount(quote Quote) (decimal.Decimal, bool) {
	start := quote.Show.StartTime
	if start.IsZero() || !r.Percent.IsPositive() || r.From >= r.To {
		return decimal.Zero, false
	}

	sinceMidnight := time.Duration(start.Hour())*time.Hour +
		time.Duration(start.Minute())*time.Minute +
		time.Duration(start.Second())*time.Second

	if sinceMidnight < r.From || sinceMidnight >= r.To {
		return decimal.Zero, false
	}

	return percentOf(quote.Subtotal, decimal.Min(r.Percent, hundred)), true
}

func (r TimeWindow) Exclusive() bool {
	return r.Override
}
