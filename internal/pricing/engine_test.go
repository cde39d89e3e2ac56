package pricing

import (
	"context"
	"testing"
	"time"

	"github.com/metinatakli/seat-inventory/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testShow(start time.Time) domain.Show {
	return domain.Show{
		ID:        "show-1",
		StartTime: start,
		BasePrice: decimal.NewFromInt(10),
	}
}

func testSeats(extras ...string) []domain.Seat {
	seats := make([]domain.Seat, 0, len(extras))
	for i, extra := range extras {
		seats = append(seats, domain.Seat{
			ID:         string(rune('A'+i)) + "1",
			ExtraPrice: decimal.RequireFromString(extra),
		})
	}
	return seats
}

var evening = time.Date(2026, 10, 20, 20, 0, 0, 0, time.UTC)

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    Policy
		wantErr bool
	}{
		{in: "", want: PolicyAdditive},
		{in: "additive", want: PolicyAdditive},
		{in: " Compound ", want: PolicyCompound},
		{in: "BEST", want: PolicyBestOffer},
		{in: "cheapest", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePolicy(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComputePrice(t *testing.T) {
	tenPercent := PercentageOff{Percent: decimal.NewFromInt(10)}
	twentyPercentFromThree := PercentageOff{Percent: decimal.NewFromInt(20), MinSeats: 3}
	halfOffEveryThird := NthTicket{N: 3, Percent: decimal.NewFromInt(50)}
	matinee := TimeWindow{From: 12 * time.Hour, To: 17 * time.Hour, Percent: decimal.NewFromInt(25)}

	tests := []struct {
		name   string
		show   domain.Show
		seats  []domain.Seat
		rules  []Rule
		policy Policy
		want   string
	}{
		{
			name:  "base price plus surcharges without rules",
			show:  testShow(evening),
			seats: testSeats("0", "2.50"),
			want:  "22.5",
		},
		{
			name:  "percentage off the whole order",
			show:  testShow(evening),
			seats: testSeats("0", "0"),
			rules: []Rule{tenPercent},
			want:  "18",
		},
		{
			name:  "percentage rule below its minimum seat count does not apply",
			show:  testShow(evening),
			seats: testSeats("0", "0"),
			rules: []Rule{twentyPercentFromThree},
			want:  "20",
		},
		{
			name:  "every third ticket discounted, cheapest first",
			show:  testShow(evening),
			seats: testSeats("5", "0", "2"),
			rules: []Rule{halfOffEveryThird},
			// 10 + 12 + 15, third cheapest is the 15 seat
			want: "29.5",
		},
		{
			name:  "time window applies to matinees",
			show:  testShow(time.Date(2026, 10, 20, 14, 30, 0, 0, time.UTC)),
			seats: testSeats("0", "0"),
			rules: []Rule{matinee},
			want:  "15",
		},
		{
			name:  "time window end is exclusive",
			show:  testShow(time.Date(2026, 10, 20, 17, 0, 0, 0, time.UTC)),
			seats: testSeats("0"),
			rules: []Rule{matinee},
			want:  "10",
		},
		{
			name:   "additive policy sums discounts against the original subtotal",
			show:   testShow(time.Date(2026, 10, 20, 14, 0, 0, 0, time.UTC)),
			seats:  testSeats("0", "0", "0", "0"),
			rules:  []Rule{tenPercent, matinee},
			policy: PolicyAdditive,
			// 40 - 4 - 10
			want: "26",
		},
		{
			name:   "compound policy applies discounts one after another",
			show:   testShow(time.Date(2026, 10, 20, 14, 0, 0, 0, time.UTC)),
			seats:  testSeats("0", "0", "0", "0"),
			rules:  []Rule{tenPercent, matinee},
			policy: PolicyCompound,
			// 40 * 0.9 * 0.75
			want: "27",
		},
		{
			name:   "best offer policy keeps the largest discount",
			show:   testShow(time.Date(2026, 10, 20, 14, 0, 0, 0, time.UTC)),
			seats:  testSeats("0", "0", "0", "0"),
			rules:  []Rule{tenPercent, matinee},
			policy: PolicyBestOffer,
			want:   "30",
		},
		{
			name:  "exclusive rule overrides the others",
			show:  testShow(time.Date(2026, 10, 20, 14, 0, 0, 0, time.UTC)),
			seats: testSeats("0", "0", "0", "0"),
			rules: []Rule{
				tenPercent,
				TimeWindow{From: 12 * time.Hour, To: 17 * time.Hour, Percent: decimal.NewFromInt(5), Override: true},
			},
			want: "38",
		},
		{
			name:  "total is clamped at zero",
			show:  testShow(evening),
			seats: testSeats("0"),
			rules: []Rule{PercentageOff{Percent: decimal.NewFromInt(80)}, PercentageOff{Percent: decimal.NewFromInt(70)}},
			want:  "0",
		},
		{
			name:  "total is rounded to cents",
			show:  testShow(evening),
			seats: testSeats("0.33", "0", "0"),
			rules: []Rule{PercentageOff{Percent: decimal.RequireFromString("33.333")}},
			// 30.33 - 33.333% = 20.2201...
			want: "20.22",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := NewEngine(tt.policy, tt.rules...)

			got, err := engine.ComputePrice(context.Background(), tt.show, tt.seats)
			require.NoError(t, err)

			want := decimal.RequireFromString(tt.want)
			assert.Truef(t, want.Equal(got), "want %s, got %s", want, got)
		})
	}
}

func TestComputePriceFailures(t *testing.T) {
	engine := NewEngine(PolicyAdditive)

	negativeBase := testShow(evening)
	negativeBase.BasePrice = decimal.NewFromInt(-1)

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		name  string
		ctx   context.Context
		show  domain.Show
		seats []domain.Seat
	}{
		{name: "no seats", ctx: context.Background(), show: testShow(evening)},
		{name: "negative base price", ctx: context.Background(), show: negativeBase, seats: testSeats("0")},
		{name: "negative surcharge", ctx: context.Background(), show: testShow(evening), seats: testSeats("-1")},
		{name: "cancelled context", ctx: cancelled, show: testShow(evening), seats: testSeats("0")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.ComputePrice(tt.ctx, tt.show, tt.seats)
			assert.ErrorIs(t, err, domain.ErrPricingFailure)
		})
	}
}

func TestNthTicketIgnoresRequestOrder(t *testing.T) {
	rule := NthTicket{N: 2, Percent: decimal.NewFromInt(100)}

	seats := testSeats("3", "0", "1")
	reversed := []domain.Seat{seats[2], seats[1], seats[0]}

	first, err := NewEngine(PolicyAdditive, rule).ComputePrice(context.Background(), testShow(evening), seats)
	require.NoError(t, err)

	second, err := NewEngine(PolicyAdditive, rule).ComputePrice(context.Background(), testShow(evening), reversed)
	require.NoError(t, err)

	assert.True(t, first.Equal(second))
	// 10 + 11 + 13 with the 11 seat free
	assert.True(t, decimal.NewFromInt(23).Equal(first))
}
